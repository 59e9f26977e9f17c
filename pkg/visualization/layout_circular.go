package visualization

import (
	"math"

	"github.com/dd0wney/cluso-simgraph/pkg/graph"
)

const initialRadius = 10

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// placePhyllotaxis seeds nodes on a sunflower spiral around the canvas
// center and zeroes their velocities.
func placePhyllotaxis(nodes []*graph.Node, config LayoutConfig) {
	centerX := config.Width / 2
	centerY := config.Height / 2

	for i, n := range nodes {
		radius := initialRadius * math.Sqrt(0.5+float64(i))
		angle := float64(i) * initialAngle
		n.X = centerX + radius*math.Cos(angle)
		n.Y = centerY + radius*math.Sin(angle)
		n.VX, n.VY = 0, 0
	}
}

// placeCircular arranges nodes evenly on the largest circle that fits
// inside the bounding box.
func placeCircular(nodes []*graph.Node, config LayoutConfig) {
	centerX := config.Width / 2
	centerY := config.Height / 2
	radius := math.Min(centerX, centerY) - config.Padding - config.NodeRadius
	if radius < initialRadius {
		radius = initialRadius
	}

	angleStep := 2 * math.Pi / float64(len(nodes))

	for i, n := range nodes {
		angle := float64(i) * angleStep
		n.X = centerX + radius*math.Cos(angle)
		n.Y = centerY + radius*math.Sin(angle)
		n.VX, n.VY = 0, 0
	}
}
