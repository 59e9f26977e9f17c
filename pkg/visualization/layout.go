// Package visualization lays out a similarity graph on a fixed canvas and
// outlines the nodes that share a tag.
package visualization

import (
	"encoding/json"

	"github.com/dd0wney/cluso-simgraph/pkg/graph"
)

// Node returns the laid-out node with the given id.
func (v *Visualization) Node(id string) (NodeViz, bool) {
	for _, n := range v.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeViz{}, false
}

// Hull returns the outline for tag, if one exists.
func (v *Visualization) Hull(tag string) (HullPolygon, bool) {
	for _, h := range v.Hulls {
		if h.Tag == tag {
			return h, true
		}
	}
	return HullPolygon{}, false
}

// ExportJSON exports the visualization to JSON
func (v *Visualization) ExportJSON() ([]byte, error) {
	type VizData struct {
		RunID string               `json:"run_id"`
		Nodes []NodeViz            `json:"nodes"`
		Edges []graph.ResolvedEdge `json:"edges"`
		Hulls []HullPolygon        `json:"hulls"`
		Tags  []string             `json:"tags"`
	}

	data := VizData{
		RunID: v.RunID,
		Nodes: v.Nodes,
		Edges: v.Edges,
		Hulls: v.Hulls,
		Tags:  v.Tags,
	}

	// Keep empty collections as [] rather than null
	if data.Nodes == nil {
		data.Nodes = []NodeViz{}
	}
	if data.Edges == nil {
		data.Edges = []graph.ResolvedEdge{}
	}
	if data.Hulls == nil {
		data.Hulls = []HullPolygon{}
	}
	if data.Tags == nil {
		data.Tags = []string{}
	}

	return json.MarshalIndent(data, "", "  ")
}
