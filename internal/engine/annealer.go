package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/piwi3910/ShipPack/internal/model"
)

// Outcome is what the annealer decided about one proposal.
type Outcome int

const (
	// OutcomeInfeasible means the candidate failed the validity check.
	OutcomeInfeasible Outcome = iota
	// OutcomeDownhill means the candidate did not increase area and was taken.
	OutcomeDownhill
	// OutcomeUphill means the candidate increased area and won the Metropolis draw.
	OutcomeUphill
	// OutcomeRejected means the candidate increased area and lost the draw.
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInfeasible:
		return "infeasible"
	case OutcomeDownhill:
		return "downhill"
	case OutcomeUphill:
		return "uphill"
	case OutcomeRejected:
		return "rejected"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Accepted reports whether the candidate replaced the current state.
func (o Outcome) Accepted() bool {
	return o == OutcomeDownhill || o == OutcomeUphill
}

// MoveEvent describes one evaluated proposal.
type MoveEvent struct {
	Kind    MoveKind
	Outcome Outcome
	Delta   float64 // Candidate area minus current area; zero for infeasible candidates
	Control float64
	Area    float64 // Current area after the decision
	Removed int     // Packages pruned from an accepted candidate
}

// AcceptanceProbability returns the Metropolis probability of taking a move
// that changes the area by delta at control parameter c.
func AcceptanceProbability(delta, c float64) float64 {
	if delta <= 0 {
		return 1
	}
	return math.Exp(-delta / c)
}

// Accept applies the Metropolis criterion. Non-increasing moves are always
// accepted without drawing from rng.
func Accept(delta, c float64, rng *rand.Rand) bool {
	if delta <= 0 {
		return true
	}
	return rng.Float64() < math.Exp(-delta/c)
}

// Annealer runs Metropolis simulated annealing over shipments with a
// geometric cooling schedule.
type Annealer struct {
	settings model.AnnealSettings
	moves    Proposer
	rng      *rand.Rand
	opts     options
}

// NewAnnealer creates an annealer. The rng must be the same source the
// proposer draws from when runs are to be reproducible.
func NewAnnealer(settings model.AnnealSettings, moves Proposer, rng *rand.Rand, opts ...Option) *Annealer {
	return &Annealer{
		settings: settings,
		moves:    moves,
		rng:      rng,
		opts:     buildOptions(opts),
	}
}

// Run anneals from initial, which must be feasible, and returns the final
// current state. Cancelling ctx stops the run between temperatures and
// returns the current state along with ctx.Err().
func (a *Annealer) Run(ctx context.Context, initial *model.Shipment) (*model.Shipment, model.AnnealStats, error) {
	ctx, span := a.opts.tracer.Start(ctx, "engine.Anneal", trace.WithAttributes(
		attribute.Float64("anneal.c0", a.settings.InitialControl),
		attribute.Float64("anneal.cmin", a.settings.MinControl),
		attribute.Float64("anneal.alpha", a.settings.Alpha),
		attribute.Int("anneal.steps", a.settings.StepsPerTemperature),
		attribute.Int("anneal.boxes", len(initial.Boxes)),
	))
	defer span.End()

	stats := model.AnnealStats{
		InitialArea:    initial.Area,
		FinalArea:      initial.Area,
		AcceptedByMove: make(map[string]int),
	}
	if err := a.settings.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid settings")
		return initial, stats, fmt.Errorf("invalid anneal settings: %w", err)
	}

	log := a.opts.logger
	start := time.Now()
	current := initial

	for c := a.settings.InitialControl; c >= a.settings.MinControl; c *= a.settings.Alpha {
		if err := ctx.Err(); err != nil {
			log.Info("annealing interrupted", "control", c, "area", current.Area)
			span.SetStatus(codes.Error, "interrupted")
			stats.FinalArea = current.Area
			return current, stats, err
		}

		for step := 0; step < a.settings.StepsPerTemperature; step++ {
			next, err := a.step(current, c, &stats)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "inconsistent state")
				stats.FinalArea = current.Area
				return current, stats, err
			}
			current = next
		}

		stats.Temperatures++
		stats.FinalControl = c
		span.AddEvent("temperature", trace.WithAttributes(
			attribute.Float64("control", c),
			attribute.Float64("area", current.Area),
			attribute.Int("packages", len(current.Packages)),
		))
		log.Debug("temperature done",
			"control", c, "area", current.Area, "packages", len(current.Packages), "accepted", stats.Accepted())
		a.opts.observer.TemperatureDone(c, current)
	}

	stats.FinalArea = current.Area
	span.SetAttributes(attribute.Float64("anneal.final_area", current.Area))
	log.Info("annealing finished",
		"temperatures", stats.Temperatures,
		"proposed", stats.Proposed,
		"accepted", stats.Accepted(),
		"initial_area", stats.InitialArea,
		"final_area", stats.FinalArea,
		"duration", time.Since(start))
	return current, stats, nil
}

// step evaluates one proposal at control c and returns the new current state.
func (a *Annealer) step(current *model.Shipment, c float64, stats *model.AnnealStats) (*model.Shipment, error) {
	cand, kind := a.moves.Propose(current)
	stats.Proposed++

	ev := MoveEvent{Kind: kind, Control: c, Area: current.Area}
	if !Valid(cand) {
		stats.Infeasible++
		ev.Outcome = OutcomeInfeasible
		a.opts.observer.MoveEvaluated(ev)
		return current, nil
	}

	removed, err := cand.PruneEmptyPackages()
	if err != nil {
		return current, fmt.Errorf("prune %s candidate: %w", kind, err)
	}

	ev.Delta = cand.Area - current.Area
	switch {
	case ev.Delta <= 0:
		ev.Outcome = OutcomeDownhill
		stats.AcceptedDownhill++
	case Accept(ev.Delta, c, a.rng):
		ev.Outcome = OutcomeUphill
		stats.AcceptedUphill++
	default:
		ev.Outcome = OutcomeRejected
		stats.Rejected++
		a.opts.observer.MoveEvaluated(ev)
		return current, nil
	}

	stats.AcceptedByMove[kind.String()]++
	stats.PackagesRemoved += removed
	ev.Removed = removed
	ev.Area = cand.Area
	a.opts.observer.MoveEvaluated(ev)
	return cand, nil
}
