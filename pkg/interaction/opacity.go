package interaction

import (
	"github.com/dd0wney/cluso-simgraph/pkg/graph"
)

// Opacity levels
const (
	Full    = 1.0
	Faded   = 0.1
	EdgeOn  = 0.8
	HullOn  = 0.9
	HullOff = 0.0
	Outline = 0.04
)

// HullStyle is the fill and stroke opacity of a tag outline.
type HullStyle struct {
	Fill   float64
	Stroke float64
}

func pick(match bool, on float64) float64 {
	if match {
		return on
	}
	return Faded
}

// NodeOpacity returns the opacity of node i. Titles use the same value.
func (s *State) NodeOpacity(i int) float64 {
	n := s.graph.Nodes[i]
	switch s.Mode() {
	case TagHovered:
		return pick(n.HasTag(s.hoveredTag), Full)
	case TagSelected:
		return pick(n.HasTag(s.selectedTag), Full)
	case NodeHovered:
		return pick(i == s.hoveredNode || s.graph.Linked(s.hoveredNode, i), Full)
	default:
		return Full
	}
}

// TitleOpacity returns the opacity of node i's title.
func (s *State) TitleOpacity(i int) float64 {
	return s.NodeOpacity(i)
}

// EdgeOpacity returns the opacity of e. Tag rules need both endpoints to
// carry the tag.
func (s *State) EdgeOpacity(e graph.Edge) float64 {
	src, dst := s.graph.Nodes[e.Source], s.graph.Nodes[e.Target]
	switch s.Mode() {
	case TagHovered:
		return pick(src.HasTag(s.hoveredTag) && dst.HasTag(s.hoveredTag), Full)
	case TagSelected:
		return pick(src.HasTag(s.selectedTag) && dst.HasTag(s.selectedTag), Full)
	case NodeHovered:
		return pick(e.Source == s.hoveredNode || e.Target == s.hoveredNode, EdgeOn)
	default:
		return EdgeOn
	}
}

// HullStyle returns how the outline of tag is drawn. The hovered and the
// selected tag are both filled.
func (s *State) HullStyle(tag string) HullStyle {
	if tag != "" && (tag == s.selectedTag || tag == s.hoveredTag) {
		return HullStyle{Fill: HullOn, Stroke: HullOff}
	}
	return HullStyle{Fill: HullOff, Stroke: Outline}
}

// Focused reports whether node i is drawn with its animated portrait.
func (s *State) Focused(i int) bool {
	return i == s.hoveredNode
}
