// Package interaction tracks hover and selection over a laid-out graph and
// resolves the opacity every element should be drawn with.
package interaction

import (
	"github.com/dd0wney/cluso-simgraph/pkg/graph"
)

// Mode is the highlight rule currently in force.
type Mode int

const (
	Idle Mode = iota
	NodeHovered
	TagSelected
	TagHovered
)

// String returns a readable mode name
func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case NodeHovered:
		return "node_hovered"
	case TagSelected:
		return "tag_selected"
	case TagHovered:
		return "tag_hovered"
	default:
		return "unknown"
	}
}

// Transition triggers
const (
	TriggerEnterNode = "enter_node"
	TriggerLeaveNode = "leave_node"
	TriggerEnterTag  = "enter_tag"
	TriggerLeaveTag  = "leave_tag"
	TriggerToggleTag = "toggle_tag"
)

// Recorder receives one call per state transition.
type Recorder interface {
	RecordTransition(trigger string)
}

// State is the hover/selection state for one graph. Node hover, tag hover
// and tag selection are tracked independently; Mode reports which one
// drives the highlight. State is not safe for concurrent use.
type State struct {
	graph    *graph.Graph
	recorder Recorder

	hoveredNode int
	hoveredTag  string
	selectedTag string
}

// Option configures a State
type Option func(*State)

// WithRecorder reports transitions to r.
func WithRecorder(r Recorder) Option {
	return func(s *State) {
		s.recorder = r
	}
}

// New creates an idle state over g.
func New(g *graph.Graph, opts ...Option) *State {
	s := &State{graph: g, hoveredNode: -1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *State) record(trigger string) {
	if s.recorder != nil {
		s.recorder.RecordTransition(trigger)
	}
}

// EnterNode marks node i as hovered. Out-of-range indices are ignored.
func (s *State) EnterNode(i int) {
	if i < 0 || i >= s.graph.Len() {
		return
	}
	s.hoveredNode = i
	s.record(TriggerEnterNode)
}

// LeaveNode clears the node hover.
func (s *State) LeaveNode() {
	s.hoveredNode = -1
	s.record(TriggerLeaveNode)
}

// EnterTag marks tag as hovered.
func (s *State) EnterTag(tag string) {
	s.hoveredTag = tag
	s.record(TriggerEnterTag)
}

// LeaveTag clears the tag hover. The selection is kept.
func (s *State) LeaveTag() {
	s.hoveredTag = ""
	s.record(TriggerLeaveTag)
}

// ToggleTag selects tag, or clears the selection when tag is already
// selected.
func (s *State) ToggleTag(tag string) {
	if s.selectedTag == tag {
		s.selectedTag = ""
	} else {
		s.selectedTag = tag
	}
	s.record(TriggerToggleTag)
}

// Mode returns the rule that currently drives opacity.
func (s *State) Mode() Mode {
	switch {
	case s.hoveredTag != "":
		return TagHovered
	case s.selectedTag != "":
		return TagSelected
	case s.hoveredNode >= 0:
		return NodeHovered
	default:
		return Idle
	}
}

// HoveredNode returns the hovered node index, if any.
func (s *State) HoveredNode() (int, bool) {
	return s.hoveredNode, s.hoveredNode >= 0
}

// HoveredTag returns the hovered tag, if any.
func (s *State) HoveredTag() (string, bool) {
	return s.hoveredTag, s.hoveredTag != ""
}

// SelectedTag returns the selected tag, if any.
func (s *State) SelectedTag() (string, bool) {
	return s.selectedTag, s.selectedTag != ""
}
