package interaction

import (
	"testing"

	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/metrics"
	dto "github.com/prometheus/client_model/go"
)

// a-b linked, c isolated. a and b carry "math", b and c carry "art".
func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New([]graph.Record{
		{ID: "a", Tags: []string{"math"}, Similarities: []float64{1, 0.9, 0.1}},
		{ID: "b", Tags: []string{"math", "art"}, Similarities: []float64{0.9, 1, 0.1}},
		{ID: "c", Tags: []string{"art"}, Similarities: []float64{0.1, 0.1, 1}},
	})
	if err != nil {
		t.Fatalf("graph.New() error = %v", err)
	}
	g.Edges = []graph.Edge{{Source: 0, Target: 1, Weight: 0.9}, {Source: 1, Target: 2, Weight: 0.3}}
	g.Link(0, 1)
	return g
}

func TestState_Idle(t *testing.T) {
	s := New(testGraph(t))

	if s.Mode() != Idle {
		t.Fatalf("Mode() = %v, want idle", s.Mode())
	}
	for i := 0; i < 3; i++ {
		if s.NodeOpacity(i) != Full || s.TitleOpacity(i) != Full {
			t.Errorf("node %d opacity = %v", i, s.NodeOpacity(i))
		}
		if s.Focused(i) {
			t.Errorf("node %d should not be focused", i)
		}
	}
	if s.EdgeOpacity(graph.Edge{Source: 0, Target: 1}) != EdgeOn {
		t.Error("idle edges should use the resting opacity")
	}
	if got := s.HullStyle("math"); got != (HullStyle{Fill: 0, Stroke: 0.04}) {
		t.Errorf("idle hull style = %+v", got)
	}
}

func TestState_NodeHover(t *testing.T) {
	g := testGraph(t)
	s := New(g)
	s.EnterNode(0)

	if s.Mode() != NodeHovered {
		t.Fatalf("Mode() = %v, want node_hovered", s.Mode())
	}

	tests := []struct {
		node int
		want float64
	}{
		{0, Full},
		{1, Full},
		{2, Faded},
	}
	for _, tt := range tests {
		if got := s.NodeOpacity(tt.node); got != tt.want {
			t.Errorf("NodeOpacity(%d) = %v, want %v", tt.node, got, tt.want)
		}
	}

	if got := s.EdgeOpacity(g.Edges[0]); got != EdgeOn {
		t.Errorf("touching edge opacity = %v, want 0.8", got)
	}
	if got := s.EdgeOpacity(g.Edges[1]); got != Faded {
		t.Errorf("other edge opacity = %v, want 0.1", got)
	}
	if !s.Focused(0) || s.Focused(1) {
		t.Error("only the hovered node should be focused")
	}

	s.LeaveNode()
	if s.Mode() != Idle || s.Focused(0) {
		t.Error("LeaveNode should return to idle")
	}

	s.EnterNode(99)
	if _, ok := s.HoveredNode(); ok {
		t.Error("out-of-range hover should be ignored")
	}
}

func TestState_TagHover(t *testing.T) {
	g := testGraph(t)
	s := New(g)
	s.EnterTag("art")

	if s.Mode() != TagHovered {
		t.Fatalf("Mode() = %v, want tag_hovered", s.Mode())
	}
	if s.NodeOpacity(0) != Faded || s.NodeOpacity(1) != Full || s.NodeOpacity(2) != Full {
		t.Errorf("node opacities = %v %v %v", s.NodeOpacity(0), s.NodeOpacity(1), s.NodeOpacity(2))
	}

	// a-b has only one "art" endpoint
	if s.EdgeOpacity(g.Edges[0]) != Faded {
		t.Error("edge with one tagged endpoint should fade")
	}
	if s.EdgeOpacity(g.Edges[1]) != Full {
		t.Error("edge with both endpoints tagged should be full")
	}
	if got := s.HullStyle("art"); got != (HullStyle{Fill: 0.9, Stroke: 0}) {
		t.Errorf("hovered hull style = %+v", got)
	}
	if got := s.HullStyle("math"); got.Fill != 0 {
		t.Errorf("other hull style = %+v", got)
	}
}

func TestState_TagOverridesNodeHover(t *testing.T) {
	s := New(testGraph(t))
	s.ToggleTag("math")
	s.EnterNode(2)

	if s.Mode() != TagSelected {
		t.Fatalf("Mode() = %v, want tag_selected", s.Mode())
	}
	if s.NodeOpacity(2) != Faded {
		t.Error("tag selection should win over node hover")
	}
	if s.NodeOpacity(0) != Full {
		t.Error("tagged node should be full while selected")
	}
	if !s.Focused(2) {
		t.Error("hovered node keeps its focus while a tag is selected")
	}

	s.EnterTag("art")
	if s.Mode() != TagHovered || s.NodeOpacity(2) != Full || s.NodeOpacity(0) != Faded {
		t.Error("tag hover should win over tag selection")
	}
	if s.HullStyle("math").Fill != HullOn || s.HullStyle("art").Fill != HullOn {
		t.Error("selected and hovered hulls should both be filled")
	}

	s.LeaveTag()
	if tag, ok := s.SelectedTag(); !ok || tag != "math" {
		t.Errorf("selection should survive hover changes, got %q", tag)
	}
}

func TestState_ToggleTag(t *testing.T) {
	s := New(testGraph(t))

	s.ToggleTag("math")
	if tag, _ := s.SelectedTag(); tag != "math" {
		t.Fatalf("SelectedTag() = %q", tag)
	}
	s.ToggleTag("art")
	if tag, _ := s.SelectedTag(); tag != "art" {
		t.Errorf("different tag should replace selection, got %q", tag)
	}
	s.ToggleTag("art")
	if _, ok := s.SelectedTag(); ok {
		t.Error("same tag should clear selection")
	}
	if s.Mode() != Idle {
		t.Errorf("Mode() = %v, want idle", s.Mode())
	}
}

func TestState_RecordsTransitions(t *testing.T) {
	reg := metrics.NewRegistry()
	s := New(testGraph(t), WithRecorder(reg))

	s.EnterTag("art")
	s.LeaveTag()
	s.ToggleTag("art")
	s.ToggleTag("art")

	var m dto.Metric
	if err := reg.InteractionTransitionsTotal.WithLabelValues(TriggerToggleTag).Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if m.Counter.GetValue() != 2 {
		t.Errorf("toggle transitions = %v, want 2", m.Counter.GetValue())
	}
}
