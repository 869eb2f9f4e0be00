package nospam

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusObserver is an Observer exporting gating decisions
// as Prometheus counters.
type PrometheusObserver struct {
	attempts *prometheus.CounterVec
	resets   *prometheus.CounterVec
}

// NewPrometheusObserver creates the counters and registers them
// with the given registerer (nothing is registered when it is nil).
//
// Registering twice on the same registerer with the same namespace panics,
// so build one observer and share it between your limiters.
func NewPrometheusObserver(registerer prometheus.Registerer, namespace string) *PrometheusObserver {
	factory := promauto.With(registerer)

	return &PrometheusObserver{
		attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "gate_attempts_total",
				Help:      "Total number of gated calls, by gate and result",
			},
			[]string{"gate", "result"},
		),

		resets: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "window_resets_total",
				Help:      "Total number of window counter resets, by gate",
			},
			[]string{"gate"},
		),
	}
}

// Gated records a gating decision.
func (o *PrometheusObserver) Gated(gate string, permitted bool) {
	result := "permitted"
	if !permitted {
		result = "skipped"
	}
	o.attempts.WithLabelValues(gate, result).Inc()
}

// WindowReset records a window reset.
func (o *PrometheusObserver) WindowReset(gate string) {
	o.resets.WithLabelValues(gate).Inc()
}
