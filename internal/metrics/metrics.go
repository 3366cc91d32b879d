// Package metrics exposes the Prometheus instrumentation for the push
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pushservice_notifications_total",
		Help: "Total notify invocations by overall result.",
	}, []string{"result"})

	outcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pushservice_dispatch_outcomes_total",
		Help: "Total per-target send outcomes by provider and status.",
	}, []string{"provider", "status"})

	tokensPrunedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pushservice_tokens_pruned_total",
		Help: "Total device tokens deactivated after a permanent-invalidity report.",
	})

	deliveryStrategy = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pushservice_delivery_strategy",
		Help: "Set to 1 for the delivery strategy selected at startup.",
	}, []string{"strategy"})
)

// Metrics is a thin handle passed to the components that record counters.
type Metrics struct{}

func New() *Metrics { return &Metrics{} }

// RecordNotification counts one notify invocation. result is "success",
// "failure" or "empty".
func (m *Metrics) RecordNotification(result string) {
	notificationsTotal.WithLabelValues(result).Inc()
}

// RecordOutcome counts one per-target send outcome.
func (m *Metrics) RecordOutcome(provider, status string) {
	outcomesTotal.WithLabelValues(provider, status).Inc()
}

// RecordPrunedToken counts one token deactivation write.
func (m *Metrics) RecordPrunedToken() {
	tokensPrunedTotal.Inc()
}

// SetStrategy publishes the delivery strategy selected at startup, so a
// simulated fallback is observable and not a hidden behavior.
func (m *Metrics) SetStrategy(strategy string) {
	deliveryStrategy.Reset()
	deliveryStrategy.WithLabelValues(strategy).Set(1)
}
