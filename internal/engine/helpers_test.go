package engine

import (
	"math/rand"

	"github.com/piwi3910/ShipPack/internal/model"
)

func testCatalog() model.Catalog {
	return model.Catalog{Types: []model.PackageType{
		{Name: "A", Width: 800, Height: 1200},
		{Name: "B", Width: 800, Height: 600},
	}}
}

func scenarioBoxes() []model.BoxSpec {
	return []model.BoxSpec{
		{Index: 1, Width: 400, Height: 400},
		{Index: 2, Width: 400, Height: 400},
		{Index: 3, Width: 800, Height: 600},
	}
}

func shortSettings(seed int64) model.AnnealSettings {
	return model.AnnealSettings{
		InitialControl:      100,
		MinControl:          10,
		Alpha:               0.5,
		StepsPerTemperature: 50,
		Precision:           10,
		Seed:                seed,
	}
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// randomBoxes returns n boxes with sides drawn from 100..800 in steps of 50.
func randomBoxes(n int, seed int64) []model.BoxSpec {
	rng := newRand(seed)
	specs := make([]model.BoxSpec, n)
	for i := range specs {
		specs[i] = model.BoxSpec{
			Index:  i + 1,
			Width:  float64(100 + 50*rng.Intn(15)),
			Height: float64(100 + 50*rng.Intn(15)),
		}
	}
	return specs
}
