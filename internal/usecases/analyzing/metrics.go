package analyzing

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics são os coletores do pipeline. Com registerer nil os coletores não são registrados.
type Metrics struct {
	runs             *prometheus.CounterVec
	analyzerDuration *prometheus.HistogramVec
	analyzerFailures *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "traffic_advisor_analysis_runs_total",
				Help: "Total number of unified analysis runs",
			},
			[]string{"has_data"},
		),
		analyzerDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "traffic_advisor_analyzer_duration_seconds",
				Help:    "Analyzer execution time in seconds",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
			},
			[]string{"analyzer"},
		),
		analyzerFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "traffic_advisor_analyzer_failures_total",
				Help: "Total number of analyzer failures converted to empty results",
			},
			[]string{"analyzer", "reason"},
		),
	}
}

func (m *Metrics) observeRun(hasData bool) {
	m.runs.WithLabelValues(strconv.FormatBool(hasData)).Inc()
}

func (m *Metrics) observeAnalyzer(analyzer string, duration time.Duration) {
	m.analyzerDuration.WithLabelValues(analyzer).Observe(duration.Seconds())
}

func (m *Metrics) observeFailure(analyzer, reason string) {
	m.analyzerFailures.WithLabelValues(analyzer, reason).Inc()
}
