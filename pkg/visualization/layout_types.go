package visualization

import (
	"fmt"

	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/hull"
	"github.com/dd0wney/cluso-simgraph/pkg/validation"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Placement selects how nodes are seeded before the first tick.
type Placement int

const (
	// PhyllotaxisPlacement seeds nodes on a sunflower spiral around the
	// canvas center.
	PhyllotaxisPlacement Placement = iota
	// CircularPlacement seeds nodes evenly on a circle.
	CircularPlacement
)

// String returns the config name of the placement.
func (p Placement) String() string {
	switch p {
	case PhyllotaxisPlacement:
		return "phyllotaxis"
	case CircularPlacement:
		return "circular"
	default:
		return "unknown"
	}
}

// ParsePlacement converts a config name to a Placement.
func ParsePlacement(s string) (Placement, error) {
	switch s {
	case "", "phyllotaxis":
		return PhyllotaxisPlacement, nil
	case "circular":
		return CircularPlacement, nil
	default:
		return PhyllotaxisPlacement, fmt.Errorf("unknown placement %q", s)
	}
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width           float64 // Canvas width
	Height          float64 // Canvas height
	NodeRadius      float64
	Ticks           int     // Simulation steps per run
	Padding         float64 // Bounding inset from every canvas edge
	LinkDistance    float64 // Rest length of a zero-weight link, on top of LinkMinDistance
	LinkMinDistance float64
	ChargeStrength  float64
	CollisionScale  float64 // Collision radius as a multiple of NodeRadius
	VelocityDecay   float64
	AlphaMin        float64
	Seed            int64
	Placement       Placement
}

// Hull outline parameters.
const (
	HullCornerOffset = 20
	HullConcavity    = 400
	HullSmoothing    = 0.3 // Catmull-Rom alpha of the drawn outline
)

// DefaultLayoutConfig returns the layout used for a canvas of the given size.
func DefaultLayoutConfig(width, height float64) LayoutConfig {
	return LayoutConfig{
		Width:           width,
		Height:          height,
		NodeRadius:      40,
		Ticks:           500,
		Padding:         73,
		LinkDistance:    350,
		LinkMinDistance: 22,
		ChargeStrength:  -60,
		CollisionScale:  2.0,
		VelocityDecay:   0.2,
		AlphaMin:        0.001,
		Seed:            1,
		Placement:       PhyllotaxisPlacement,
	}
}

// withDefaults fills zero-valued tuning fields. ChargeStrength is left alone
// since zero disables repulsion.
func (c LayoutConfig) withDefaults() LayoutConfig {
	d := DefaultLayoutConfig(c.Width, c.Height)
	c.NodeRadius = validation.DefaultOr(c.NodeRadius, d.NodeRadius)
	c.Ticks = validation.DefaultOr(c.Ticks, d.Ticks)
	c.Padding = validation.DefaultOr(c.Padding, d.Padding)
	c.LinkDistance = validation.DefaultOr(c.LinkDistance, d.LinkDistance)
	c.LinkMinDistance = validation.DefaultOr(c.LinkMinDistance, d.LinkMinDistance)
	c.CollisionScale = validation.DefaultOr(c.CollisionScale, d.CollisionScale)
	c.VelocityDecay = validation.DefaultOr(c.VelocityDecay, d.VelocityDecay)
	c.AlphaMin = validation.DefaultOr(c.AlphaMin, d.AlphaMin)
	return c
}

// Validate implements validation.Validatable.
func (c LayoutConfig) Validate() error {
	return validation.NewConfigValidator("LayoutConfig").
		PositiveFloat("Width", c.Width).
		PositiveFloat("Height", c.Height).
		PositiveFloat("NodeRadius", c.NodeRadius).
		MinInt("Ticks", c.Ticks, 1).
		NonNegativeFloat("Padding", c.Padding).
		NonNegativeFloat("LinkDistance", c.LinkDistance).
		NonNegativeFloat("LinkMinDistance", c.LinkMinDistance).
		NonNegativeFloat("CollisionScale", c.CollisionScale).
		RangeFloat("VelocityDecay", c.VelocityDecay, 0, 1).
		RangeFloat("AlphaMin", c.AlphaMin, 0, 1).
		OneOf("Placement", c.Placement.String(), []string{"phyllotaxis", "circular"}).
		Validate()
}

// HullPolygon is the concave outline around the nodes sharing a tag.
type HullPolygon struct {
	Tag    string       `json:"tag"`
	Points []hull.Point `json:"points"`
}

// Smoothed samples the closed curve drawn through the hull's corners,
// segments points per corner.
func (h HullPolygon) Smoothed(segments int) []hull.Point {
	return hull.CatmullRomClosed(h.Points, HullSmoothing, segments)
}

// NodeViz is a laid-out node in the exported visualization
type NodeViz struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Title  string   `json:"title"`
	Tags   []string `json:"tags"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Linked []string `json:"linked"`
}

// Visualization represents a graph visualization with layout
type Visualization struct {
	RunID string
	Graph *graph.Graph
	Nodes []NodeViz
	Edges []graph.ResolvedEdge
	Hulls []HullPolygon
	Tags  []string
}
