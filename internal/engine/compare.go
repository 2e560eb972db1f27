package engine

import (
	"context"
	"fmt"

	"github.com/piwi3910/ShipPack/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.AnnealSettings
}

// ComparisonResult holds the packing result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario     ComparisonScenario
	Result       model.PackResult
	PackagesUsed int
	Area         float64
	Efficiency   float64
	DroppedCount int
}

// CompareScenarios runs the optimizer for each scenario in order and returns
// one result per scenario. The first failing scenario aborts the comparison.
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, catalog model.Catalog, specs []model.BoxSpec, opts ...Option) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := New(scenario.Settings, catalog, opts...).Optimize(ctx, specs)
		if err != nil {
			return results, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		results = append(results, ComparisonResult{
			Scenario:     scenario,
			Result:       result,
			PackagesUsed: len(result.Packages),
			Area:         result.Area,
			Efficiency:   result.TotalEfficiency(),
			DroppedCount: len(result.Dropped),
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying the schedule to show what-if alternatives.
func BuildDefaultScenarios(base model.AnnealSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	// Scenario: Slower cooling
	if base.Alpha != 0.8 {
		slow := base
		slow.Alpha = 0.8
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Slow Cooling (alpha 0.8)",
			Settings: slow,
		})
	}

	// Scenario: Twice the proposals per temperature
	moreSteps := base
	moreSteps.StepsPerTemperature = base.StepsPerTemperature * 2
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("%d Steps per Temperature", moreSteps.StepsPerTemperature),
		Settings: moreSteps,
	})

	// Scenario: Same schedule, different random stream
	altSeed := base
	altSeed.Seed = base.Seed + 1
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Seed %d", altSeed.Seed),
		Settings: altSeed,
	})

	return scenarios
}
