package graph

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrSimilarityLength is returned when a node's similarity vector is not
	// index-aligned with the node list.
	ErrSimilarityLength = errors.New("similarity vector length does not match node count")
	// ErrDuplicateID is returned when two records share an id
	ErrDuplicateID = errors.New("duplicate node id")
	// ErrEmptyID is returned when a record has no id
	ErrEmptyID = errors.New("empty node id")
)

// Record is a single input node as supplied by the data-loading collaborator.
type Record struct {
	ID           string    `json:"id" yaml:"id" validate:"required,max=200"`
	Name         string    `json:"name" yaml:"name" validate:"max=500"`
	Title        string    `json:"title" yaml:"title" validate:"max=500"`
	Tags         []string  `json:"tags" yaml:"tags" validate:"dive,required,max=100"`
	Similarities []float64 `json:"similarities" yaml:"similarities" validate:"required,dive,gte=-1,lte=1"`
}

// Node is a speaker in the arena. Linked holds arena indices of nodes that
// passed the similarity test against this one; it never owns them.
type Node struct {
	ID           string
	Name         string
	Title        string
	Tags         []string
	Similarities []float64

	X, Y   float64
	VX, VY float64
	Placed bool

	Linked map[int]struct{}
}

// HasTag reports whether the node carries tag.
func (n *Node) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Edge is an undirected similarity link between two arena indices.
type Edge struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Weight float64 `json:"weight"`
}

// Graph owns every node; edges and links refer to nodes by index.
type Graph struct {
	Nodes []*Node
	Edges []Edge

	index map[string]int
}

// New builds an arena from input records. Every similarity vector must have
// exactly one entry per record.
func New(records []Record) (*Graph, error) {
	g := &Graph{
		Nodes: make([]*Node, 0, len(records)),
		index: make(map[string]int, len(records)),
	}

	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("record %d: %w", i, ErrEmptyID)
		}
		if _, exists := g.index[r.ID]; exists {
			return nil, fmt.Errorf("record %d (%s): %w", i, r.ID, ErrDuplicateID)
		}
		if len(r.Similarities) != len(records) {
			return nil, fmt.Errorf("node %s has %d similarities for %d nodes: %w",
				r.ID, len(r.Similarities), len(records), ErrSimilarityLength)
		}

		tags := make([]string, len(r.Tags))
		copy(tags, r.Tags)
		sims := make([]float64, len(r.Similarities))
		copy(sims, r.Similarities)

		g.index[r.ID] = i
		g.Nodes = append(g.Nodes, &Node{
			ID:           r.ID,
			Name:         r.Name,
			Title:        r.Title,
			Tags:         tags,
			Similarities: sims,
			Linked:       make(map[int]struct{}),
		})
	}

	return g, nil
}

// Len returns the number of nodes
func (g *Graph) Len() int {
	return len(g.Nodes)
}

// IndexOf returns the arena index of the node with the given id.
func (g *Graph) IndexOf(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Link records a bidirectional highlight relation between two nodes.
func (g *Graph) Link(i, j int) {
	g.Nodes[i].Linked[j] = struct{}{}
	g.Nodes[j].Linked[i] = struct{}{}
}

// Linked reports whether j is in i's linked set.
func (g *Graph) Linked(i, j int) bool {
	_, ok := g.Nodes[i].Linked[j]
	return ok
}

// ResetLinks clears every node's linked set.
func (g *Graph) ResetLinks() {
	for _, n := range g.Nodes {
		n.Linked = make(map[int]struct{})
	}
}

// Tags returns the sorted, de-duplicated union of all node tags.
func (g *Graph) Tags() []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, n := range g.Nodes {
		for _, t := range n.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags
}

// TaggedIndices returns the indices of nodes carrying tag, in arena order.
func (g *Graph) TaggedIndices(tag string) []int {
	out := make([]int, 0)
	for i, n := range g.Nodes {
		if n.HasTag(tag) {
			out = append(out, i)
		}
	}
	return out
}

// ResolvedEdge is an edge with its endpoints resolved to node ids.
type ResolvedEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// Resolve maps an edge's indices to node ids.
func (g *Graph) Resolve(e Edge) ResolvedEdge {
	return ResolvedEdge{
		Source: g.Nodes[e.Source].ID,
		Target: g.Nodes[e.Target].ID,
		Weight: e.Weight,
	}
}

// PairKey is the order-independent key for an unordered pair of ids.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "\x00" + b
}

// SplitLines splits a display label into the lines a renderer should stack.
func SplitLines(label string) []string {
	if label == "" {
		return nil
	}
	return strings.Split(label, "\n")
}
