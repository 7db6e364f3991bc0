// Package metrics exports search run statistics as Prometheus metrics.
//
// # Description
//
// Collector implements controller.Observer and keeps:
//   - run counters by algorithm and by outcome, plus cancellations
//   - a settled-cell counter and a frontier-size gauge, updated every step
//   - histograms of path cost and steps per finished run
//
// Metrics are registered on a caller-supplied registry so tests and embedders
// never touch the global one.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/pathviz/controller"
	"github.com/katalvlaran/pathviz/search"
)

// Namespace for all metrics
const metricsNamespace = "pathviz"

// Collector holds the Prometheus metrics for search runs.
type Collector struct {
	// RunsStarted counts started runs. Labels: algorithm (dijkstra, astar)
	RunsStarted *prometheus.CounterVec

	// RunsFinished counts finished runs. Labels: outcome (path_found, no_path)
	RunsFinished *prometheus.CounterVec

	// RunsCancelled counts runs cancelled or aborted before finishing.
	RunsCancelled prometheus.Counter

	// CellsSettled counts settle steps across all runs.
	CellsSettled prometheus.Counter

	// FrontierSize is the open-set size after the latest step.
	FrontierSize prometheus.Gauge

	// PathCost observes the cost of every found path.
	PathCost prometheus.Histogram

	// RunSteps observes the number of steps of every finished run.
	RunSteps prometheus.Histogram
}

// NewCollector creates the metrics and registers them on reg.
// Returns the registration error, e.g. prometheus.AlreadyRegisteredError.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		RunsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "runs_started_total",
				Help:      "Total number of search runs started by algorithm",
			},
			[]string{"algorithm"},
		),
		RunsFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "runs_finished_total",
				Help:      "Total number of search runs finished by outcome",
			},
			[]string{"outcome"},
		),
		RunsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_cancelled_total",
			Help:      "Total number of search runs cancelled before finishing",
		}),
		CellsSettled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cells_settled_total",
			Help:      "Total number of cells settled across all runs",
		}),
		FrontierSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "frontier_size",
			Help:      "Open-set size after the latest step",
		}),
		PathCost: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "path_cost",
			Help:      "Cost of found paths in tenths of a cell",
			Buckets:   prometheus.ExponentialBuckets(10, 2, 10),
		}),
		RunSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "run_steps",
			Help:      "Steps taken by finished runs",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}

	for _, m := range []prometheus.Collector{
		c.RunsStarted, c.RunsFinished, c.RunsCancelled,
		c.CellsSettled, c.FrontierSize, c.PathCost, c.RunSteps,
	} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// RunStarted counts the run under its algorithm name.
func (c *Collector) RunStarted(run controller.RunInfo) {
	c.RunsStarted.WithLabelValues(run.Algorithm.Name()).Inc()
	c.FrontierSize.Set(1)
}

// Stepped counts the settled cell and records the frontier size.
func (c *Collector) Stepped(_ controller.RunInfo, step search.StepResult) {
	c.CellsSettled.Inc()
	c.FrontierSize.Set(float64(step.OpenLen))
}

// RunFinished counts the outcome and observes steps and, for found paths, cost.
func (c *Collector) RunFinished(run controller.RunInfo, outcome controller.Outcome, path search.Path) {
	c.RunsFinished.WithLabelValues(outcome.String()).Inc()
	c.RunSteps.Observe(float64(run.Steps))
	if outcome == controller.OutcomePathFound {
		c.PathCost.Observe(float64(path.Cost))
	}
}

// RunCancelled counts the cancellation and clears the frontier gauge.
func (c *Collector) RunCancelled(controller.RunInfo) {
	c.RunsCancelled.Inc()
	c.FrontierSize.Set(0)
}

var _ controller.Observer = (*Collector)(nil)

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
