package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "media"

// prometheusMetrics is the Prometheus implementation of Metrics.
type prometheusMetrics struct {
	callsTotal     *prometheus.CounterVec
	callDuration   *prometheus.HistogramVec
	callsInFlight  *prometheus.GaugeVec
	methodNotFound prometheus.Counter
}

// NewPrometheusMetrics registers the RPC collectors on reg and returns a
// Metrics backed by them.
func NewPrometheusMetrics(reg prometheus.Registerer) Metrics {
	factory := promauto.With(reg)

	return &prometheusMetrics{
		callsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rpc_calls_total",
				Help:      "Total number of RPC calls by method and status code",
			},
			[]string{"method", "code"},
		),
		callDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rpc_call_duration_seconds",
				Help:      "Duration of RPC handler execution in seconds",
				Buckets: []float64{
					0.001, // 1ms
					0.005,
					0.025,
					0.1,
					0.5,
					1,
					5,
					30, // long media jobs
				},
			},
			[]string{"method"},
		),
		callsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "rpc_calls_in_flight",
				Help:      "Number of RPC calls currently being handled",
			},
			[]string{"method"},
		),
		methodNotFound: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rpc_method_not_found_total",
				Help:      "Total number of calls to methods with no registered handler",
			},
		),
	}
}

func (m *prometheusMetrics) CallStarted(method string) {
	m.callsInFlight.WithLabelValues(method).Inc()
}

func (m *prometheusMetrics) CallFinished(method string, code string, duration time.Duration) {
	m.callsInFlight.WithLabelValues(method).Dec()
	m.callsTotal.WithLabelValues(method, code).Inc()
	m.callDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func (m *prometheusMetrics) MethodNotFound() {
	m.methodNotFound.Inc()
}
