package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records order lifecycle and cart activity counters.
type OrderMetrics struct {
	submitted   prometheus.Counter
	transitions *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	cartOps     *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	submitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Orders accepted for submission.",
	})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Applied order status transitions.",
	}, []string{"from", "to"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transition_rejections_total",
		Help: "Status transitions rejected by the lifecycle rules.",
	}, []string{"from", "to"})
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart store mutations by operation.",
	}, []string{"op"})
	reg.MustRegister(submitted, transitions, rejections, cartOps)
	return &OrderMetrics{
		submitted:   submitted,
		transitions: transitions,
		rejections:  rejections,
		cartOps:     cartOps,
	}
}

// IncSubmitted counts an accepted order submission.
func (m *OrderMetrics) IncSubmitted() {
	if m == nil || m.submitted == nil {
		return
	}
	m.submitted.Inc()
}

// IncTransition counts an applied status transition.
func (m *OrderMetrics) IncTransition(from, to string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

// IncRejectedTransition counts a transition rejected by the state machine.
func (m *OrderMetrics) IncRejectedTransition(from, to string) {
	if m == nil || m.rejections == nil {
		return
	}
	m.rejections.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

// IncCartOp counts a cart store mutation.
func (m *OrderMetrics) IncCartOp(op string) {
	if m == nil || m.cartOps == nil {
		return
	}
	m.cartOps.WithLabelValues(normalizeLabel(op)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
