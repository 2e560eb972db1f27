// Package metrics exposes annealing progress as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/piwi3910/ShipPack/internal/engine"
	"github.com/piwi3910/ShipPack/internal/model"
)

const (
	namespace = "shippack"
	subsystem = "anneal"

	LabelMove    = "move"
	LabelOutcome = "outcome"
)

// Recorder is an engine.Observer that feeds a dedicated Prometheus registry.
// A CLI run has no scrape endpoint, so the registry is usually dumped with
// WriteTextfile for the node exporter textfile collector.
type Recorder struct {
	registry *prometheus.Registry

	moves           *prometheus.CounterVec
	deltas          *prometheus.HistogramVec
	packagesRemoved prometheus.Counter
	temperatures    prometheus.Counter
	control         prometheus.Gauge
	area            prometheus.Gauge
	packages        prometheus.Gauge
	boxArea         prometheus.Gauge
}

var _ engine.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "moves_total",
			Help:      "Proposed moves by kind and outcome",
		}, []string{LabelMove, LabelOutcome}),
		deltas: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "accepted_delta_area",
			Help:      "Area change of accepted moves",
			Buckets:   []float64{-960000, -480000, -240000, 0, 240000, 480000, 960000},
		}, []string{LabelMove}),
		packagesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "packages_removed_total",
			Help:      "Empty packages pruned from accepted candidates",
		}),
		temperatures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "temperatures_total",
			Help:      "Control parameter values completed",
		}),
		control: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "control_parameter",
			Help:      "Control parameter of the last completed temperature",
		}),
		area: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "area",
			Help:      "Total package area of the current shipment",
		}),
		packages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "packages",
			Help:      "Packages in use by the current shipment",
		}),
		boxArea: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "box_area",
			Help:      "Summed footprint of all placed boxes",
		}),
	}

	r.registry.MustRegister(
		r.moves,
		r.deltas,
		r.packagesRemoved,
		r.temperatures,
		r.control,
		r.area,
		r.packages,
		r.boxArea,
	)
	return r
}

// Registry returns the registry the recorder writes to.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// MoveEvaluated implements engine.Observer.
func (r *Recorder) MoveEvaluated(ev engine.MoveEvent) {
	r.moves.WithLabelValues(ev.Kind.String(), ev.Outcome.String()).Inc()
	if ev.Outcome.Accepted() {
		r.deltas.WithLabelValues(ev.Kind.String()).Observe(ev.Delta)
		r.area.Set(ev.Area)
	}
	if ev.Removed > 0 {
		r.packagesRemoved.Add(float64(ev.Removed))
	}
}

// TemperatureDone implements engine.Observer.
func (r *Recorder) TemperatureDone(control float64, current *model.Shipment) {
	r.temperatures.Inc()
	r.control.Set(control)
	r.area.Set(current.Area)
	r.packages.Set(float64(len(current.Packages)))
	r.boxArea.Set(current.BoxArea())
}

// WriteTextfile dumps the registry in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
