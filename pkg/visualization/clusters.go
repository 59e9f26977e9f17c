package visualization

import (
	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/hull"
)

// TagHull outlines the nodes carrying tag. Each member contributes the four
// corners of a square around its center so the outline clears the node
// circle. ok is false when fewer than two nodes carry the tag.
func TagHull(g *graph.Graph, tag string, config LayoutConfig) (HullPolygon, bool) {
	members := g.TaggedIndices(tag)
	if len(members) < 2 {
		return HullPolygon{}, false
	}

	offset := config.withDefaults().NodeRadius + HullCornerOffset
	points := make([]hull.Point, 0, len(members)*4)
	for _, i := range members {
		n := g.Nodes[i]
		points = append(points,
			hull.Point{X: n.X - offset, Y: n.Y - offset},
			hull.Point{X: n.X - offset, Y: n.Y + offset},
			hull.Point{X: n.X + offset, Y: n.Y - offset},
			hull.Point{X: n.X + offset, Y: n.Y + offset},
		)
	}

	return HullPolygon{
		Tag:    tag,
		Points: hull.Concave(points, HullConcavity),
	}, true
}

// TagHulls outlines every tag in sorted tag order, skipping absent hulls.
func TagHulls(g *graph.Graph, config LayoutConfig) []HullPolygon {
	tags := g.Tags()
	hulls := make([]HullPolygon, 0, len(tags))
	for _, tag := range tags {
		if h, ok := TagHull(g, tag, config); ok {
			hulls = append(hulls, h)
		}
	}
	return hulls
}
