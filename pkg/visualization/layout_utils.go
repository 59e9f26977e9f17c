package visualization

import (
	"math"

	"github.com/dd0wney/cluso-simgraph/pkg/graph"
)

// Bounds is the box node centers are confined to.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NodeBounds returns the allowed range for node centers: padding plus one
// radius in from every edge. An axis too short for the inset collapses to
// the canvas midpoint.
func NodeBounds(config LayoutConfig) Bounds {
	inset := config.Padding + config.NodeRadius
	b := Bounds{
		MinX: inset,
		MinY: inset,
		MaxX: config.Width - inset,
		MaxY: config.Height - inset,
	}
	if b.MaxX < b.MinX {
		b.MinX, b.MaxX = config.Width/2, config.Width/2
	}
	if b.MaxY < b.MinY {
		b.MinY, b.MaxY = config.Height/2, config.Height/2
	}
	return b
}

// Contains reports whether p lies inside the bounds.
func (b Bounds) Contains(p Position) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// constrain clamps every node into NodeBounds.
func constrain(nodes []*graph.Node, config LayoutConfig) {
	b := NodeBounds(config)
	for _, n := range nodes {
		n.X = math.Max(b.MinX, math.Min(b.MaxX, n.X))
		n.Y = math.Max(b.MinY, math.Min(b.MaxY, n.Y))
	}
}

// positionsOf snapshots node coordinates in arena order.
func positionsOf(g *graph.Graph) []Position {
	out := make([]Position, len(g.Nodes))
	for i, n := range g.Nodes {
		out[i] = Position{X: n.X, Y: n.Y}
	}
	return out
}
