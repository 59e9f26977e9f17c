// Package similarity turns dense per-node similarity vectors into a sparse
// graph by keeping only statistically unusual scores.
package similarity

import (
	"fmt"
	"math"

	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/logging"
)

// Spread selects how a node's reference distribution is summarised.
type Spread int

const (
	// PopulationSpread uses the population standard deviation, so a single
	// reference value yields zero spread and an infinite score for anything
	// above it.
	PopulationSpread Spread = iota
	// SampleSpread uses the sample standard deviation. Distributions with
	// fewer than two values carry no signal.
	SampleSpread
)

// String returns the config name of the spread.
func (s Spread) String() string {
	switch s {
	case PopulationSpread:
		return "population"
	case SampleSpread:
		return "sample"
	default:
		return "unknown"
	}
}

// ParseSpread converts a config name to a Spread.
func ParseSpread(s string) (Spread, error) {
	switch s {
	case "", "population":
		return PopulationSpread, nil
	case "sample":
		return SampleSpread, nil
	default:
		return PopulationSpread, fmt.Errorf("unknown spread %q", s)
	}
}

// Direction selects which side(s) of a pair must pass the z-test.
type Direction int

const (
	// EitherDirection keeps a pair when either node finds the other unusual.
	// The edge weight comes from the first passing direction in scan order.
	EitherDirection Direction = iota
	// MutualDirection keeps a pair only when both nodes find each other
	// unusual. The weight is the mean of the two scores.
	MutualDirection
)

// String returns the config name of the direction.
func (d Direction) String() string {
	switch d {
	case EitherDirection:
		return "either"
	case MutualDirection:
		return "mutual"
	default:
		return "unknown"
	}
}

// ParseDirection converts a config name to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "either":
		return EitherDirection, nil
	case "mutual":
		return MutualDirection, nil
	default:
		return EitherDirection, fmt.Errorf("unknown direction %q", s)
	}
}

// Options configures the filter.
type Options struct {
	Threshold float64   // minimum z-score for an edge
	Cutoff    float64   // reference values must be strictly below this
	Spread    Spread    // standard deviation flavour
	Direction Direction // asymmetric or mutual test
}

// DefaultOptions returns the tuned defaults.
func DefaultOptions() Options {
	return Options{
		Threshold: 1.5,
		Cutoff:    0.9,
		Spread:    PopulationSpread,
		Direction: EitherDirection,
	}
}

// Filter selects significant edges from a graph's similarity vectors.
type Filter struct {
	opts   Options
	logger logging.Logger
}

// NewFilter creates a filter. A nil logger discards output.
func NewFilter(opts Options, logger logging.Logger) *Filter {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Filter{opts: opts, logger: logger.With(logging.Component("similarity"))}
}

// profile is the summary of one node's reference distribution.
type profile struct {
	mean   float64
	stdDev float64
	size   int
}

func (f *Filter) profileOf(n *graph.Node) profile {
	ref := make([]float64, 0, len(n.Similarities))
	for _, v := range n.Similarities {
		if v < f.opts.Cutoff {
			ref = append(ref, v)
		}
	}

	p := profile{mean: Mean(ref), size: len(ref)}
	if f.opts.Spread == PopulationSpread {
		p.stdDev = PopulationStdDev(ref)
	} else {
		p.stdDev = SampleStdDev(ref)
	}
	return p
}

// passes reports whether value is significant against p. NaN never passes.
func (f *Filter) passes(value float64, p profile) bool {
	z := ZScore(value, p.mean, p.stdDev)
	return !math.IsNaN(z) && z >= f.opts.Threshold
}

// Apply computes the edge list for g, stores it on g.Edges and rebuilds every
// node's linked set. Each unordered pair appears at most once.
func (f *Filter) Apply(g *graph.Graph) ([]graph.Edge, error) {
	n := g.Len()
	for i, node := range g.Nodes {
		if len(node.Similarities) != n {
			return nil, fmt.Errorf("node %d (%s) has %d similarities for %d nodes: %w",
				i, node.ID, len(node.Similarities), n, graph.ErrSimilarityLength)
		}
	}

	g.ResetLinks()

	profiles := make([]profile, n)
	for i, node := range g.Nodes {
		profiles[i] = f.profileOf(node)
		if profiles[i].size < 2 {
			f.logger.Debug("sparse reference distribution",
				logging.NodeID(node.ID), logging.Int("reference_size", profiles[i].size))
		}
	}

	edges := make([]graph.Edge, 0)
	seen := make(map[string]struct{})

	for i := 0; i < n; i++ {
		source := g.Nodes[i]
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			target := g.Nodes[j]

			weight := source.Similarities[j]
			if !f.passes(weight, profiles[i]) {
				continue
			}
			if f.opts.Direction == MutualDirection {
				if !f.passes(target.Similarities[i], profiles[j]) {
					continue
				}
				weight = (weight + target.Similarities[i]) / 2
			}

			key := graph.PairKey(source.ID, target.ID)
			if _, done := seen[key]; !done {
				edges = append(edges, graph.Edge{Source: i, Target: j, Weight: weight})
				seen[key] = struct{}{}
			}
			g.Link(i, j)
		}
	}

	g.Edges = edges
	f.logger.Debug("similarity filter applied",
		logging.Count(n), logging.Int("edges", len(edges)),
		logging.Float64("threshold", f.opts.Threshold))
	return edges, nil
}
