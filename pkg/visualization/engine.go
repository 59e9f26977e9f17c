package visualization

import (
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/logging"
	"github.com/dd0wney/cluso-simgraph/pkg/metrics"
	"github.com/dd0wney/cluso-simgraph/pkg/parallel"
	"github.com/dd0wney/cluso-simgraph/pkg/similarity"
	"github.com/dd0wney/cluso-simgraph/pkg/validation"
	"github.com/google/uuid"
)

// Layout stage names used for timing metrics
const (
	StageValidate = "validate"
	StageFilter   = "filter"
	StageSimulate = "simulate"
	StageHulls    = "hulls"
)

// Engine runs the full pipeline from input records to a laid-out
// visualization: validate, filter edges, simulate positions, outline tags.
type Engine struct {
	layout      LayoutConfig
	filter      similarity.Options
	logger      logging.Logger
	metrics     *metrics.Registry
	hullWorkers int
}

// NewEngine creates an engine. A nil logger discards output and a nil
// registry falls back to metrics.DefaultRegistry.
func NewEngine(layout LayoutConfig, filter similarity.Options, logger logging.Logger, registry *metrics.Registry) (*Engine, error) {
	layout = layout.withDefaults()
	if err := validation.ValidateConfig(layout); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if registry == nil {
		registry = metrics.DefaultRegistry()
	}

	return &Engine{
		layout:      layout,
		filter:      filter,
		logger:      logger.With(logging.Component("engine")),
		metrics:     registry,
		hullWorkers: runtime.GOMAXPROCS(0),
	}, nil
}

// Config returns the effective layout configuration
func (e *Engine) Config() LayoutConfig {
	return e.layout
}

// WithCanvas returns a copy of the engine laying out onto a canvas of the
// given size.
func (e *Engine) WithCanvas(width, height float64) *Engine {
	c := *e
	c.layout.Width = width
	c.layout.Height = height
	return &c
}

// Layout validates records, builds the graph and lays it out.
func (e *Engine) Layout(records []graph.Record) (*Visualization, error) {
	runID := uuid.NewString()
	logger := e.logger.With(logging.RunID(runID))

	var g *graph.Graph
	err := e.stage(StageValidate, func() error {
		if err := validation.ValidateRecords(records); err != nil {
			return err
		}
		var err error
		g, err = graph.New(records)
		return err
	})
	if err != nil {
		e.metrics.RecordLayout("invalid", len(records), 0)
		logger.Warn("rejected input", logging.Count(len(records)), logging.Error(err))
		return nil, fmt.Errorf("layout %s: %w", runID, err)
	}

	return e.run(runID, logger, g)
}

// LayoutGraph lays out an already built graph. Positions and links on g
// are overwritten.
func (e *Engine) LayoutGraph(g *graph.Graph) (*Visualization, error) {
	runID := uuid.NewString()
	return e.run(runID, e.logger.With(logging.RunID(runID)), g)
}

func (e *Engine) run(runID string, logger logging.Logger, g *graph.Graph) (*Visualization, error) {
	timer := logging.StartTimer(logger, "layout",
		logging.Count(g.Len()),
		logging.Canvas(e.layout.Width, e.layout.Height))

	var edges []graph.Edge
	err := e.stage(StageFilter, func() error {
		var err error
		edges, err = similarity.NewFilter(e.filter, logger).Apply(g)
		return err
	})
	if err != nil {
		e.metrics.RecordLayout("error", g.Len(), 0)
		timer.EndError(err)
		return nil, fmt.Errorf("layout %s: %w", runID, err)
	}

	var ticks int
	_ = e.stage(StageSimulate, func() error {
		ticks = NewForceSimulation(e.layout, logger).Run(g)
		return nil
	})
	e.metrics.RecordTicks(ticks)

	var hulls []HullPolygon
	err = e.stage(StageHulls, func() error {
		var err error
		hulls, err = e.buildHulls(g, logger)
		return err
	})
	if err != nil {
		e.metrics.RecordLayout("error", g.Len(), len(edges))
		timer.EndError(err)
		return nil, fmt.Errorf("layout %s: %w", runID, err)
	}

	viz := newVisualization(runID, g, hulls)
	e.metrics.RecordLayout("success", g.Len(), len(edges))
	timer.End(
		logging.Int("edges", len(edges)),
		logging.Int("hulls", len(hulls)),
		logging.Int("ticks", ticks))

	return viz, nil
}

// buildHulls outlines every tag concurrently. Results keep tag order.
func (e *Engine) buildHulls(g *graph.Graph, logger logging.Logger) ([]HullPolygon, error) {
	tags := g.Tags()
	built := make([]HullPolygon, len(tags))
	present := make([]bool, len(tags))

	err := parallel.ForEach(len(tags), e.hullWorkers, logger, func(i int) {
		built[i], present[i] = TagHull(g, tags[i], e.layout)
	})
	if err != nil {
		return nil, fmt.Errorf("outline tags: %w", err)
	}

	hulls := make([]HullPolygon, 0, len(tags))
	for i, h := range built {
		if !present[i] {
			e.metrics.RecordHull(false, 0)
			continue
		}
		e.metrics.RecordHull(true, len(h.Points))
		hulls = append(hulls, h)
	}
	return hulls, nil
}

func (e *Engine) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	e.metrics.RecordStage(name, time.Since(start))
	return err
}

func newVisualization(runID string, g *graph.Graph, hulls []HullPolygon) *Visualization {
	viz := &Visualization{
		RunID: runID,
		Graph: g,
		Nodes: make([]NodeViz, 0, g.Len()),
		Edges: make([]graph.ResolvedEdge, 0, len(g.Edges)),
		Hulls: hulls,
		Tags:  g.Tags(),
	}

	for _, n := range g.Nodes {
		linked := make([]string, 0, len(n.Linked))
		for j := range n.Linked {
			linked = append(linked, g.Nodes[j].ID)
		}
		slices.Sort(linked)

		viz.Nodes = append(viz.Nodes, NodeViz{
			ID:     n.ID,
			Name:   n.Name,
			Title:  n.Title,
			Tags:   n.Tags,
			X:      n.X,
			Y:      n.Y,
			Linked: linked,
		})
	}

	for _, edge := range g.Edges {
		viz.Edges = append(viz.Edges, g.Resolve(edge))
	}

	return viz
}
