package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.LayoutRunsTotal == nil || r.LayoutDuration == nil || r.HullsBuiltTotal == nil {
		t.Error("layout metrics not initialized")
	}
	if r.RelayoutRequestsTotal == nil || r.InteractionTransitionsTotal == nil {
		t.Error("relayout/interaction metrics not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordLayout(t *testing.T) {
	r := NewRegistry()

	r.RecordLayout("success", 12, 7)
	r.RecordLayout("success", 10, 5)
	r.RecordLayout("error", 0, 0)

	if got := counterValue(t, r.LayoutRunsTotal.WithLabelValues("success")); got != 2 {
		t.Errorf("success runs = %v, want 2", got)
	}
	if got := counterValue(t, r.LayoutRunsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("error runs = %v, want 1", got)
	}
	if got := gaugeValue(t, r.LayoutNodes); got != 10 {
		t.Errorf("nodes gauge = %v, want 10", got)
	}
	if got := gaugeValue(t, r.LayoutEdges); got != 5 {
		t.Errorf("edges gauge = %v, want 5", got)
	}
	if got := counterValue(t, r.FilterEdgesTotal); got != 12 {
		t.Errorf("filter edges = %v, want 12", got)
	}
}

func TestRecordHullAndTicks(t *testing.T) {
	r := NewRegistry()

	r.RecordHull(true, 9)
	r.RecordHull(false, 0)
	r.RecordHull(false, 0)
	r.RecordTicks(500)
	r.RecordStage("simulate", 20*time.Millisecond)

	if got := counterValue(t, r.HullsBuiltTotal.WithLabelValues("built")); got != 1 {
		t.Errorf("built hulls = %v, want 1", got)
	}
	if got := counterValue(t, r.HullsBuiltTotal.WithLabelValues("absent")); got != 2 {
		t.Errorf("absent hulls = %v, want 2", got)
	}
	if got := counterValue(t, r.SimulationTicks); got != 500 {
		t.Errorf("ticks = %v, want 500", got)
	}

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "simgraph_layout_stage_duration_seconds" {
			found = true
			if n := mf.GetMetric()[0].GetHistogram().GetSampleCount(); n != 1 {
				t.Errorf("stage samples = %d, want 1", n)
			}
		}
	}
	if !found {
		t.Error("stage duration histogram not gathered")
	}
}

func TestRecordTransition(t *testing.T) {
	r := NewRegistry()
	r.RecordTransition("enter_node")
	r.RecordTransition("enter_node")
	r.RecordTransition("toggle_tag")

	if got := counterValue(t, r.InteractionTransitionsTotal.WithLabelValues("enter_node")); got != 2 {
		t.Errorf("enter_node = %v, want 2", got)
	}
}
