package pipeline

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors for conversion and enrichment.
type Metrics struct {
	// Triples counts triples added, by stage ("convert" or a pass name).
	Triples *prometheus.CounterVec
	// Runs counts stage executions by outcome.
	Runs *prometheus.CounterVec
	// Duration observes stage wall time in seconds.
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg when it is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Triples: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sbml2rdf",
				Name:      "triples_added_total",
				Help:      "Total number of triples added to model graphs",
			},
			[]string{"stage"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sbml2rdf",
				Name:      "stage_runs_total",
				Help:      "Total number of pipeline stage executions",
			},
			[]string{"stage", "status"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sbml2rdf",
				Name:      "stage_duration_seconds",
				Help:      "Pipeline stage duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Triples, m.Runs, m.Duration)
	}
	return m
}

func (m *Metrics) observe(stage string, added int, seconds float64, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Runs.WithLabelValues(stage, status).Inc()
	m.Duration.WithLabelValues(stage).Observe(seconds)
	if added > 0 {
		m.Triples.WithLabelValues(stage).Add(float64(added))
	}
}
