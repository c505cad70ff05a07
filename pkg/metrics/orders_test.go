package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestOrderMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOrderMetrics(reg)

	m.IncSubmitted()
	m.IncSubmitted()
	m.IncTransition("pending", "confirmed")
	m.IncRejectedTransition("completed", "pending")
	m.IncCartOp("add_item")

	if got := testutil.ToFloat64(m.submitted); got != 2 {
		t.Fatalf("expected 2 submissions, got %v", got)
	}
	if got := testutil.ToFloat64(m.transitions.WithLabelValues("pending", "confirmed")); got != 1 {
		t.Fatalf("expected 1 transition, got %v", got)
	}
	if got := testutil.ToFloat64(m.rejections.WithLabelValues("completed", "pending")); got != 1 {
		t.Fatalf("expected 1 rejection, got %v", got)
	}
	if got := testutil.ToFloat64(m.cartOps.WithLabelValues("add_item")); got != 1 {
		t.Fatalf("expected 1 cart op, got %v", got)
	}
}

func TestOrderMetricsNilSafe(t *testing.T) {
	var m *OrderMetrics
	m.IncSubmitted()
	m.IncTransition("a", "b")
	m.IncRejectedTransition("", "")
	m.IncCartOp("clear")

	empty := NewOrderMetrics(nil)
	empty.IncSubmitted()
}
