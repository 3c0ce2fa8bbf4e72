// Package metrics records circuit analysis activity in a private Prometheus registry.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Analysis outcomes, used as the "outcome" label.
const (
	OutcomeNoBattery  = "no_battery"
	OutcomeOpen       = "open_circuit"
	OutcomeSwitchOpen = "switch_open"
	OutcomeLit        = "lit"
	OutcomeUnlit      = "unlit"
)

// Registry holds all circuit analysis collectors.
type Registry struct {
	registry *prometheus.Registry

	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	PathsFound       prometheus.Histogram
	PathLimitHits    prometheus.Counter
	BulbsLit         prometheus.Histogram
}

// NewRegistry creates a Registry backed by a fresh prometheus.Registry.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.AnalysesTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuitq_analyses_total",
			Help: "Total number of circuit analyses by outcome",
		},
		[]string{"outcome"},
	)

	r.AnalysisDuration = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "circuitq_analysis_duration_seconds",
			Help:    "Circuit analysis duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	r.PathsFound = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "circuitq_paths_found",
			Help:    "Number of battery positive to negative paths per analysis",
			Buckets: []float64{0, 1, 2, 4, 8, 32, 128, 1024},
		},
	)

	r.PathLimitHits = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "circuitq_path_limit_hits_total",
			Help: "Analyses whose path enumeration hit the exploration bound",
		},
	)

	r.BulbsLit = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "circuitq_bulbs_lit",
			Help:    "Number of lit bulbs per analysis",
			Buckets: []float64{0, 1, 2, 3, 5, 8},
		},
	)

	return r
}

// Gatherer exposes the underlying registry, e.g. for promhttp.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// RecordAnalysis records one analysis run.
func (r *Registry) RecordAnalysis(outcome string, duration time.Duration, pathCount, bulbsLit int, truncated bool) {
	r.AnalysesTotal.WithLabelValues(outcome).Inc()
	r.AnalysisDuration.Observe(duration.Seconds())
	r.PathsFound.Observe(float64(pathCount))
	r.BulbsLit.Observe(float64(bulbsLit))
	if truncated {
		r.PathLimitHits.Inc()
	}
}

// WriteText writes every metric in the Prometheus text exposition format.
func (r *Registry) WriteText(w io.Writer) error {
	mfs, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
