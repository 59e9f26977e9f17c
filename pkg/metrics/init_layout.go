package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initLayoutMetrics() {
	r.LayoutRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "simgraph_layout_runs_total",
			Help: "Total number of layout runs",
		},
		[]string{"status"},
	)

	r.LayoutDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "simgraph_layout_stage_duration_seconds",
			Help:    "Duration of each layout stage in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"stage"},
	)

	r.LayoutNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "simgraph_layout_nodes",
			Help: "Number of nodes in the most recent layout",
		},
	)

	r.LayoutEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "simgraph_layout_edges",
			Help: "Number of edges in the most recent layout",
		},
	)

	r.SimulationTicks = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "simgraph_simulation_ticks_total",
			Help: "Total number of force simulation ticks executed",
		},
	)

	r.FilterEdgesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "simgraph_filter_edges_total",
			Help: "Total number of edges emitted by the similarity filter",
		},
	)

	r.HullsBuiltTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "simgraph_hulls_total",
			Help: "Tag hulls computed, by outcome",
		},
		[]string{"outcome"},
	)

	r.HullPointsHistogram = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "simgraph_hull_points",
			Help:    "Number of boundary points per tag hull",
			Buckets: []float64{4, 8, 16, 32, 64, 128},
		},
	)
}

func (r *Registry) initRelayoutMetrics() {
	r.RelayoutRequestsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "simgraph_relayout_requests_total",
			Help: "Resize notifications received",
		},
	)

	r.RelayoutCoalescedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "simgraph_relayout_coalesced_total",
			Help: "Resize notifications superseded by a later one in the quiet window",
		},
	)

	r.RelayoutSkippedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "simgraph_relayout_skipped_total",
			Help: "Settled resizes that did not change the width",
		},
	)
}

func (r *Registry) initInteractionMetrics() {
	r.InteractionTransitionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "simgraph_interaction_transitions_total",
			Help: "Interaction state transitions by trigger",
		},
		[]string{"trigger"},
	)
}
