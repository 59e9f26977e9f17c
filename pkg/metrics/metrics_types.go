package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the layout engine
type Registry struct {
	// Layout pipeline
	LayoutRunsTotal     *prometheus.CounterVec
	LayoutDuration      *prometheus.HistogramVec
	LayoutNodes         prometheus.Gauge
	LayoutEdges         prometheus.Gauge
	SimulationTicks     prometheus.Counter
	FilterEdgesTotal    prometheus.Counter
	HullsBuiltTotal     *prometheus.CounterVec
	HullPointsHistogram prometheus.Histogram

	// Resize handling
	RelayoutRequestsTotal  prometheus.Counter
	RelayoutCoalescedTotal prometheus.Counter
	RelayoutSkippedTotal   prometheus.Counter

	// Interaction
	InteractionTransitionsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with every metric registered
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initLayoutMetrics()
	r.initRelayoutMetrics()
	r.initInteractionMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
