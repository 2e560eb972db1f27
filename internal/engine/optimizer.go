package engine

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"

	"github.com/piwi3910/ShipPack/internal/model"
)

// Optimizer runs the complete packing pipeline: initial packing followed by
// annealing, both driven by one seeded random source.
type Optimizer struct {
	Settings model.AnnealSettings
	Catalog  model.Catalog

	opts []Option
}

// New creates an optimizer for the schedule and catalog. Options are passed
// through to the packer and annealer.
func New(settings model.AnnealSettings, catalog model.Catalog, opts ...Option) *Optimizer {
	return &Optimizer{Settings: settings, Catalog: catalog, opts: opts}
}

// Optimize packs the boxes and returns the annealed layout. When ctx is
// cancelled mid-run the partial result is returned together with ctx.Err().
func (o *Optimizer) Optimize(ctx context.Context, specs []model.BoxSpec) (model.PackResult, error) {
	cfg := buildOptions(o.opts)
	ctx, span := cfg.tracer.Start(ctx, "engine.Optimize", trace.WithAttributes(
		attribute.Int("pack.boxes", len(specs)),
		attribute.Int64("pack.seed", o.Settings.Seed),
	))
	defer span.End()

	if err := multierr.Combine(o.Settings.Validate(), o.Catalog.Validate()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid configuration")
		return model.PackResult{}, fmt.Errorf("invalid configuration: %w", err)
	}

	rng := rand.New(rand.NewSource(o.Settings.Seed))

	initial, dropped, err := NewPacker(o.Catalog, o.Settings.Precision, rng, cfg.logger).Pack(specs)
	if err != nil {
		return model.PackResult{}, err
	}
	if err := Check(initial); err != nil {
		return model.PackResult{}, fmt.Errorf("initial packing is infeasible: %w", err)
	}

	annealer := NewAnnealer(o.Settings, NewMoveGenerator(o.Settings.Precision, rng), rng, o.opts...)
	final, stats, runErr := annealer.Run(ctx, initial)

	res := final.Result()
	res.RunID = uuid.NewString()
	res.Dropped = dropped
	res.InitialArea = initial.Area
	res.LowerBound = model.CalculateAreaBound(specs, o.Catalog).LowerBound
	res.Settings = o.Settings
	res.Stats = stats

	span.SetAttributes(
		attribute.String("pack.run_id", res.RunID),
		attribute.Int("pack.packages", len(res.Packages)),
		attribute.Float64("pack.area", res.Area),
	)
	if runErr != nil {
		span.RecordError(runErr)
		return res, runErr
	}
	return res, nil
}
