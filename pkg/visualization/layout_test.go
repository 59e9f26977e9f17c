package visualization

import (
	"math"
	"testing"

	"github.com/dd0wney/cluso-simgraph/pkg/graph"
)

func newGraph(t *testing.T, records ...graph.Record) *graph.Graph {
	t.Helper()
	n := len(records)
	for i := range records {
		if records[i].Similarities == nil {
			records[i].Similarities = make([]float64, n)
			records[i].Similarities[i] = 1
		}
	}
	g, err := graph.New(records)
	if err != nil {
		t.Fatalf("graph.New() error = %v", err)
	}
	return g
}

func distance(a, b *graph.Node) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// TestForceSimulation_SingleNode tests that a lone node settles on the center
func TestForceSimulation_SingleNode(t *testing.T) {
	g := newGraph(t, graph.Record{ID: "solo"})

	ticks := NewForceSimulation(DefaultLayoutConfig(800, 600), nil).Run(g)
	if ticks != 500 {
		t.Errorf("Expected 500 ticks, got %d", ticks)
	}

	n := g.Nodes[0]
	if math.Abs(n.X-400) > 1e-9 || math.Abs(n.Y-300) > 1e-9 {
		t.Errorf("Single node at (%f, %f), want (400, 300)", n.X, n.Y)
	}
	if !n.Placed {
		t.Error("Node should be marked placed")
	}
}

func TestForceSimulation_Empty(t *testing.T) {
	g := newGraph(t)
	if ticks := NewForceSimulation(DefaultLayoutConfig(800, 600), nil).Run(g); ticks != 0 {
		t.Errorf("Expected no ticks for an empty graph, got %d", ticks)
	}
}

// TestForceSimulation_LinkedNodesCloser tests that a link holds its pair
// together while an unlinked node drifts away
func TestForceSimulation_LinkedNodesCloser(t *testing.T) {
	g := newGraph(t,
		graph.Record{ID: "a"},
		graph.Record{ID: "b"},
		graph.Record{ID: "c"},
	)
	g.Edges = []graph.Edge{{Source: 0, Target: 1, Weight: 0.95}}

	NewForceSimulation(DefaultLayoutConfig(2000, 2000), nil).Run(g)

	ab := distance(g.Nodes[0], g.Nodes[1])
	ac := distance(g.Nodes[0], g.Nodes[2])
	bc := distance(g.Nodes[1], g.Nodes[2])

	if ab >= ac || ab >= bc {
		t.Errorf("Linked pair distance %f should be below unlinked distances %f, %f", ab, ac, bc)
	}
}

func TestForceSimulation_NoEdgesSpreadsNodes(t *testing.T) {
	g := newGraph(t, graph.Record{ID: "a"}, graph.Record{ID: "b"}, graph.Record{ID: "c"}, graph.Record{ID: "d"})
	config := DefaultLayoutConfig(1600, 1600)
	NewForceSimulation(config, nil).Run(g)

	// collision keeps predicted centers at least two collision radii apart
	minGap := config.CollisionScale * config.NodeRadius
	for i := range g.Nodes {
		for j := i + 1; j < len(g.Nodes); j++ {
			if d := distance(g.Nodes[i], g.Nodes[j]); d < minGap {
				t.Errorf("Nodes %d and %d only %f apart", i, j, d)
			}
		}
	}
}

func TestForceSimulation_SmallCanvasCentersNodes(t *testing.T) {
	g := newGraph(t, graph.Record{ID: "a"}, graph.Record{ID: "b"})
	NewForceSimulation(DefaultLayoutConfig(200, 1000), nil).Run(g)

	b := NodeBounds(DefaultLayoutConfig(200, 1000))
	if b.MinX != 100 || b.MaxX != 100 {
		t.Fatalf("Expected collapsed x range at 100, got [%f, %f]", b.MinX, b.MaxX)
	}
	for _, n := range g.Nodes {
		if n.X != 100 {
			t.Errorf("Node %s x = %f, want 100", n.ID, n.X)
		}
		if n.Y < 113 || n.Y > 887 {
			t.Errorf("Node %s y = %f out of bounds", n.ID, n.Y)
		}
	}
}

func TestForceSimulation_RerunRestarts(t *testing.T) {
	g := newGraph(t, graph.Record{ID: "a"}, graph.Record{ID: "b"}, graph.Record{ID: "c"})
	g.Edges = []graph.Edge{{Source: 0, Target: 2, Weight: 0.5}}
	sim := NewForceSimulation(DefaultLayoutConfig(900, 700), nil)

	sim.Run(g)
	first := positionsOf(g)

	g.Nodes[1].X, g.Nodes[1].Y = 0, 0
	sim.Run(g)
	second := positionsOf(g)

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Node %d moved between runs: %v vs %v", i, first[i], second[i])
		}
	}
}

// TestCircularPlacement tests circular seeding
func TestCircularPlacement(t *testing.T) {
	g := newGraph(t, graph.Record{ID: "a"}, graph.Record{ID: "b"}, graph.Record{ID: "c"}, graph.Record{ID: "d"})
	config := DefaultLayoutConfig(800, 600)
	placeCircular(g.Nodes, config)

	centerX, centerY := 400.0, 300.0
	expectedRadius := 300.0 - config.Padding - config.NodeRadius

	for _, n := range g.Nodes {
		r := math.Sqrt((n.X-centerX)*(n.X-centerX) + (n.Y-centerY)*(n.Y-centerY))
		if math.Abs(r-expectedRadius) > 1e-9 {
			t.Errorf("Node %s radius %f, want %f", n.ID, r, expectedRadius)
		}
	}

	config.Placement = CircularPlacement
	NewForceSimulation(config, nil).Run(g)
	b := NodeBounds(config)
	for _, p := range positionsOf(g) {
		if !b.Contains(p) {
			t.Errorf("Position %v outside %+v", p, b)
		}
	}
}

func TestPhyllotaxisPlacement(t *testing.T) {
	g := newGraph(t, graph.Record{ID: "a"}, graph.Record{ID: "b"}, graph.Record{ID: "c"})
	placePhyllotaxis(g.Nodes, DefaultLayoutConfig(800, 600))

	seen := make(map[Position]bool)
	for _, p := range positionsOf(g) {
		if seen[p] {
			t.Errorf("Duplicate seed position %v", p)
		}
		seen[p] = true
	}
	if r := math.Hypot(g.Nodes[0].X-400, g.Nodes[0].Y-300); math.Abs(r-10*math.Sqrt(0.5)) > 1e-9 {
		t.Errorf("First seed radius %f", r)
	}
}

func TestParsePlacement(t *testing.T) {
	if p, err := ParsePlacement("circular"); err != nil || p != CircularPlacement {
		t.Errorf("ParsePlacement(circular) = %v, %v", p, err)
	}
	if p, _ := ParsePlacement(""); p != PhyllotaxisPlacement {
		t.Errorf("empty placement should default to phyllotaxis, got %v", p)
	}
	if _, err := ParsePlacement("grid"); err == nil {
		t.Error("Expected error for unknown placement")
	}
}

func TestLayoutConfig_Validate(t *testing.T) {
	if err := DefaultLayoutConfig(800, 600).Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}

	bad := DefaultLayoutConfig(0, 600)
	bad.VelocityDecay = 1.5
	if err := bad.Validate(); err == nil {
		t.Error("Expected error for zero width and out-of-range decay")
	}

	zero := LayoutConfig{Width: 100, Height: 100}.withDefaults()
	if zero.Ticks != 500 || zero.NodeRadius != 40 || zero.Padding != 73 {
		t.Errorf("withDefaults() = %+v", zero)
	}
}
