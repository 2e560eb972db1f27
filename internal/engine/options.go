package engine

import (
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/piwi3910/ShipPack/internal/model"
)

const tracerName = "github.com/piwi3910/ShipPack/internal/engine"

// Observer receives progress from an annealing run. Implementations must be
// fast; they are called on every proposal.
type Observer interface {
	MoveEvaluated(ev MoveEvent)
	TemperatureDone(control float64, current *model.Shipment)
}

type nopObserver struct{}

func (nopObserver) MoveEvaluated(MoveEvent) {}
func (nopObserver) TemperatureDone(float64, *model.Shipment) {}

type options struct {
	logger   *slog.Logger
	observer Observer
	tracer   trace.Tracer
}

// Option defines a functional configuration override.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver registers an observer for move and temperature events.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: nopObserver{},
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
