package progress

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports progress records as Prometheus series, labelled by algorithm:
//
//	metatsp_best_distance{algorithm}        gauge, last reported best distance
//	metatsp_step_duration_seconds{algorithm} histogram of per-record durations
//	metatsp_steps_total{algorithm}          counter of records
type Metrics struct {
	bestDistance *prometheus.GaugeVec
	stepDuration *prometheus.HistogramVec
	steps        *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg. A nil reg means
// prometheus.DefaultRegisterer. Registering twice on the same registry panics,
// as with any promauto collector.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		bestDistance: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "metatsp_best_distance",
			Help: "Best tour distance last reported per algorithm",
		}, []string{"algorithm"}),
		stepDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "metatsp_step_duration_seconds",
			Help:    "Duration of a generation, iteration or hybrid run",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"algorithm"}),
		steps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "metatsp_steps_total",
			Help: "Progress records received per algorithm",
		}, []string{"algorithm"}),
	}
}

// Record implements tsp.ProgressSink.
func (m *Metrics) Record(label string, distance float64, elapsed time.Duration, _ map[string]any) {
	m.bestDistance.WithLabelValues(label).Set(distance)
	m.stepDuration.WithLabelValues(label).Observe(elapsed.Seconds())
	m.steps.WithLabelValues(label).Inc()
}
