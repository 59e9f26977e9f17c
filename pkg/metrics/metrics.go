package metrics

import (
	"time"
)

// RecordStage records the duration of one layout stage
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.LayoutDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordLayout records a completed or failed layout run
func (r *Registry) RecordLayout(status string, nodes, edges int) {
	r.LayoutRunsTotal.WithLabelValues(status).Inc()
	if status != "success" {
		return
	}
	r.LayoutNodes.Set(float64(nodes))
	r.LayoutEdges.Set(float64(edges))
	r.FilterEdgesTotal.Add(float64(edges))
}

// RecordTicks adds simulation ticks
func (r *Registry) RecordTicks(ticks int) {
	r.SimulationTicks.Add(float64(ticks))
}

// RecordHull records a tag hull computation. points is ignored when absent.
func (r *Registry) RecordHull(present bool, points int) {
	if !present {
		r.HullsBuiltTotal.WithLabelValues("absent").Inc()
		return
	}
	r.HullsBuiltTotal.WithLabelValues("built").Inc()
	r.HullPointsHistogram.Observe(float64(points))
}

// RecordTransition counts an interaction trigger
func (r *Registry) RecordTransition(trigger string) {
	r.InteractionTransitionsTotal.WithLabelValues(trigger).Inc()
}
