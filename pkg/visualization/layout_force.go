package visualization

import (
	"math"
	"math/rand"

	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/logging"
)

// ForceSimulation positions nodes with a velocity-Verlet style simulation
// made of link, charge, collision and centering forces followed by a hard
// bounding clamp. Every run executes exactly Ticks steps.
type ForceSimulation struct {
	config LayoutConfig
	logger logging.Logger

	rng        *rand.Rand
	alpha      float64
	alphaDecay float64
}

type simLink struct {
	source, target int
	distance       float64
	strength       float64
	bias           float64
}

// alpha decays from 1 to AlphaMin over this many ticks
const alphaDecayTicks = 300

// NewForceSimulation creates a new force simulation
func NewForceSimulation(config LayoutConfig, logger logging.Logger) *ForceSimulation {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	config = config.withDefaults()
	return &ForceSimulation{
		config:     config,
		logger:     logger.With(logging.Component("force")),
		alphaDecay: 1 - math.Pow(config.AlphaMin, 1.0/alphaDecayTicks),
	}
}

// Config returns the effective configuration
func (fs *ForceSimulation) Config() LayoutConfig {
	return fs.config
}

// Run seeds fresh positions for every node and runs the simulation to
// completion. It returns the number of ticks executed.
func (fs *ForceSimulation) Run(g *graph.Graph) int {
	nodes := g.Nodes
	if len(nodes) == 0 {
		return 0
	}

	fs.rng = rand.New(rand.NewSource(fs.config.Seed))
	fs.alpha = 1

	switch fs.config.Placement {
	case CircularPlacement:
		placeCircular(nodes, fs.config)
	default:
		placePhyllotaxis(nodes, fs.config)
	}

	links := fs.prepareLinks(g)
	for tick := 0; tick < fs.config.Ticks; tick++ {
		fs.tick(nodes, links)
	}

	for _, n := range nodes {
		n.Placed = true
	}

	fs.logger.Debug("simulation finished",
		logging.Count(len(nodes)),
		logging.Int("links", len(links)),
		logging.Int("ticks", fs.config.Ticks),
		logging.Float64("alpha", fs.alpha))

	return fs.config.Ticks
}

// prepareLinks derives per-link rest length, strength and bias from node
// degrees.
func (fs *ForceSimulation) prepareLinks(g *graph.Graph) []simLink {
	degree := make([]int, len(g.Nodes))
	for _, e := range g.Edges {
		degree[e.Source]++
		degree[e.Target]++
	}

	links := make([]simLink, 0, len(g.Edges))
	for _, e := range g.Edges {
		ds, dt := float64(degree[e.Source]), float64(degree[e.Target])
		links = append(links, simLink{
			source:   e.Source,
			target:   e.Target,
			distance: fs.config.LinkDistance*(1-e.Weight) + fs.config.LinkMinDistance,
			strength: 1 / math.Min(ds, dt),
			bias:     ds / (ds + dt),
		})
	}
	return links
}

func (fs *ForceSimulation) tick(nodes []*graph.Node, links []simLink) {
	fs.alpha += (0 - fs.alpha) * fs.alphaDecay

	fs.applyLinks(nodes, links)
	fs.applyCharge(nodes)
	fs.applyCollision(nodes)
	fs.applyCenter(nodes)

	keep := 1 - fs.config.VelocityDecay
	for _, n := range nodes {
		n.VX *= keep
		n.VY *= keep
		n.X += n.VX
		n.Y += n.VY
	}

	constrain(nodes, fs.config)
}

func (fs *ForceSimulation) applyLinks(nodes []*graph.Node, links []simLink) {
	for _, l := range links {
		s, t := nodes[l.source], nodes[l.target]

		x := t.X + t.VX - s.X - s.VX
		if x == 0 {
			x = fs.jiggle()
		}
		y := t.Y + t.VY - s.Y - s.VY
		if y == 0 {
			y = fs.jiggle()
		}

		d := math.Sqrt(x*x + y*y)
		k := (d - l.distance) / d * fs.alpha * l.strength
		x *= k
		y *= k

		t.VX -= x * l.bias
		t.VY -= y * l.bias
		s.VX += x * (1 - l.bias)
		s.VY += y * (1 - l.bias)
	}
}

// applyCharge is the exact pairwise form of many-body repulsion.
func (fs *ForceSimulation) applyCharge(nodes []*graph.Node) {
	strength := fs.config.ChargeStrength
	if strength == 0 {
		return
	}

	for i, n := range nodes {
		for j, o := range nodes {
			if i == j {
				continue
			}
			x := o.X - n.X
			y := o.Y - n.Y
			l := x*x + y*y
			if x == 0 {
				x = fs.jiggle()
				l += x * x
			}
			if y == 0 {
				y = fs.jiggle()
				l += y * y
			}
			if l < 1 {
				l = math.Sqrt(l)
			}
			n.VX += x * strength * fs.alpha / l
			n.VY += y * strength * fs.alpha / l
		}
	}
}

// applyCollision pushes apart nodes whose predicted positions overlap.
// Pairs are visited once, lower index first.
func (fs *ForceSimulation) applyCollision(nodes []*graph.Node) {
	radius := fs.config.CollisionScale * fs.config.NodeRadius
	if radius <= 0 {
		return
	}
	r := 2 * radius

	for i, n := range nodes {
		xi := n.X + n.VX
		yi := n.Y + n.VY

		for _, o := range nodes[i+1:] {
			x := xi - o.X - o.VX
			y := yi - o.Y - o.VY
			l := x*x + y*y
			if l >= r*r {
				continue
			}
			if x == 0 {
				x = fs.jiggle()
				l += x * x
			}
			if y == 0 {
				y = fs.jiggle()
				l += y * y
			}

			d := math.Sqrt(l)
			k := (r - d) / d
			x *= k
			y *= k

			// equal radii split the correction evenly
			n.VX += x / 2
			n.VY += y / 2
			o.VX -= x / 2
			o.VY -= y / 2
		}
	}
}

// applyCenter translates every node so the centroid sits on the canvas
// center.
func (fs *ForceSimulation) applyCenter(nodes []*graph.Node) {
	var sx, sy float64
	for _, n := range nodes {
		sx += n.X
		sy += n.Y
	}
	sx = sx/float64(len(nodes)) - fs.config.Width/2
	sy = sy/float64(len(nodes)) - fs.config.Height/2

	for _, n := range nodes {
		n.X -= sx
		n.Y -= sy
	}
}

func (fs *ForceSimulation) jiggle() float64 {
	return (fs.rng.Float64() - 0.5) * 1e-6
}
