package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderingMetrics records the externally consequential events of the
// ordering core.
type OrderingMetrics struct {
	ordersFinalized  *prometheus.CounterVec
	notifyFailures   *prometheus.CounterVec
	rehydrateDropped prometheus.Counter
}

// NewOrderingMetrics registers the ordering metrics on the provided registerer.
func NewOrderingMetrics(reg prometheus.Registerer) *OrderingMetrics {
	if reg == nil {
		return &OrderingMetrics{}
	}
	ordersFinalized := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_finalized_total",
		Help: "Orders persisted, labeled by initial status.",
	}, []string{"status"})
	notifyFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_notify_failures_total",
		Help: "Post-persistence notification failures that did not roll back the order.",
	}, []string{"sink"})
	rehydrateDropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_rehydrate_dropped_lines_total",
		Help: "Cart lines dropped during rehydration because the catalog item vanished.",
	})
	reg.MustRegister(ordersFinalized, notifyFailures, rehydrateDropped)
	return &OrderingMetrics{
		ordersFinalized:  ordersFinalized,
		notifyFailures:   notifyFailures,
		rehydrateDropped: rehydrateDropped,
	}
}

// IncOrderFinalized increments the finalized counter for the given status.
func (m *OrderingMetrics) IncOrderFinalized(status string) {
	if m == nil || m.ordersFinalized == nil {
		return
	}
	m.ordersFinalized.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncNotifyFailure increments the notification failure counter for the sink.
func (m *OrderingMetrics) IncNotifyFailure(sink string) {
	if m == nil || m.notifyFailures == nil {
		return
	}
	m.notifyFailures.WithLabelValues(normalizeLabel(sink)).Inc()
}

// AddRehydrateDropped records lines dropped while rebuilding a cart.
func (m *OrderingMetrics) AddRehydrateDropped(count int) {
	if m == nil || m.rehydrateDropped == nil || count <= 0 {
		return
	}
	m.rehydrateDropped.Add(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
