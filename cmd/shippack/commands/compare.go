package commands

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/ShipPack/internal/engine"
)

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <boxes-file>",
		Short: "Pack a box list under alternative schedules side by side",
		Long: `Run the current schedule and a few variations of it (slower cooling,
more proposals per temperature, another seed) and print one row per run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := a.loadBoxes(args[0])
			if err != nil {
				return err
			}
			catalog, err := a.catalog()
			if err != nil {
				return err
			}

			scenarios := engine.BuildDefaultScenarios(a.settings())
			results, err := engine.CompareScenarios(cmd.Context(), scenarios, catalog, specs, engine.WithLogger(a.logger))
			if err != nil {
				return err
			}
			renderComparison(cmd.OutOrStdout(), results)
			return nil
		},
	}
}
