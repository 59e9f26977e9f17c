package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/interaction"
	"github.com/dd0wney/cluso-simgraph/pkg/visualization"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(1)

	sidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1).
			Width(sidebarWidth - 4)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF00"))

	nodeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFF00"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	edgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))
	hullStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F00AF"))
	outlineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
	fadedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginLeft(1)
)

const (
	sidebarWidth = 28
	chromeRows   = 4
	hullSegments = 8
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Next   key.Binding
	Prev   key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "prev tag"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next tag"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select tag"),
	),
	Next: key.NewBinding(
		key.WithKeys("n", "tab"),
		key.WithHelp("n", "next speaker"),
	),
	Prev: key.NewBinding(
		key.WithKeys("p", "shift+tab"),
		key.WithHelp("p", "prev speaker"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear hover"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Toggle, k.Next, k.Clear, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Next, k.Prev, k.Clear},
		{k.Quit},
	}
}

// resizer receives canvas widths; relayout.Debouncer in production
type resizer interface {
	Request(width float64)
}

type model struct {
	sess    *session
	resizer resizer

	viz   *visualization.Visualization
	state *interaction.State

	// seq of the layout on screen
	seq uint64

	tagCursor  int
	nodeCursor int

	help   help.Model
	keys   keyMap
	width  int
	height int
	err    error
}

func newModel(sess *session, r resizer) model {
	return model{
		sess:       sess,
		resizer:    r,
		tagCursor:  -1,
		nodeCursor: -1,
		help:       help.New(),
		keys:       keys,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// canvasSize is the grid left over for the network
func (m model) canvasSize() (int, int) {
	return max(m.width-sidebarWidth, 1), max(m.height-chromeRows, 1)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		w, h := newCanvas(m.canvasSize()).pixelSize()
		m.sess.setHeight(h)
		m.resizer.Request(w)

	case layoutMsg:
		if msg.seq < m.seq {
			return m, nil
		}
		m.seq = msg.seq
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.adopt(msg.viz)

	case configMsg:
		if err := m.sess.reconfigure(msg.cfg); err != nil {
			m.err = err
			return m, nil
		}
		w, _ := newCanvas(m.canvasSize()).pixelSize()
		sess := m.sess
		return m, func() tea.Msg { return sess.layout(w) }

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case m.state == nil:
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.moveTag(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveTag(1)
		case key.Matches(msg, m.keys.Toggle):
			if m.tagCursor >= 0 {
				m.state.ToggleTag(m.viz.Tags[m.tagCursor])
			}
		case key.Matches(msg, m.keys.Next):
			m.moveNode(1)
		case key.Matches(msg, m.keys.Prev):
			m.moveNode(-1)
		case key.Matches(msg, m.keys.Clear):
			m.tagCursor, m.nodeCursor = -1, -1
			m.state.LeaveTag()
			m.state.LeaveNode()
		}
	}

	return m, nil
}

// adopt swaps in a new layout and replays hover and selection onto it.
// Record order is fixed, so node indices carry over.
func (m *model) adopt(viz *visualization.Visualization) {
	next := interaction.New(viz.Graph, interaction.WithRecorder(m.sess.registry))
	if m.state != nil {
		if tag, ok := m.state.SelectedTag(); ok {
			next.ToggleTag(tag)
		}
		if tag, ok := m.state.HoveredTag(); ok {
			next.EnterTag(tag)
		}
		if i, ok := m.state.HoveredNode(); ok {
			next.EnterNode(i)
		}
	}
	m.viz = viz
	m.state = next
	if m.tagCursor >= len(viz.Tags) {
		m.tagCursor = -1
	}
}

func (m *model) moveTag(step int) {
	n := len(m.viz.Tags)
	if n == 0 {
		return
	}
	m.tagCursor = wrap(m.tagCursor, step, n)
	m.state.EnterTag(m.viz.Tags[m.tagCursor])
}

func (m *model) moveNode(step int) {
	n := m.viz.Graph.Len()
	if n == 0 {
		return
	}
	m.nodeCursor = wrap(m.nodeCursor, step, n)
	m.state.EnterNode(m.nodeCursor)
}

// wrap steps a cursor that starts unset at -1
func wrap(cursor, step, n int) int {
	if cursor < 0 {
		if step > 0 {
			return 0
		}
		return n - 1
	}
	return ((cursor+step)%n + n) % n
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("simgraph"))
	s.WriteString(helpStyle.Render(m.status()))
	s.WriteString("\n\n")

	if m.viz == nil {
		s.WriteString(helpStyle.Render("Laying out..."))
	} else {
		body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderNetwork(), m.renderSidebar())
		s.WriteString(body)
	}

	if m.err != nil {
		s.WriteString("\n")
		s.WriteString(errorStyle.Render("✗ " + m.err.Error()))
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return s.String()
}

func (m model) status() string {
	if m.state == nil {
		return ""
	}
	return fmt.Sprintf("%d speakers · %d links · %s",
		len(m.viz.Nodes), len(m.viz.Edges), m.state.Mode())
}

// draw rasterizes the current layout with the opacity the state assigns
func (m model) draw(c *canvas) {
	g := m.viz.Graph

	for _, h := range m.viz.Hulls {
		style := m.state.HullStyle(h.Tag)
		if style.Fill > 0 {
			c.fill(h.Smoothed(hullSegments), '░', style.Fill)
		} else if style.Stroke > 0 {
			c.outline(h.Smoothed(hullSegments), '·', style.Stroke)
		}
	}

	for _, e := range g.Edges {
		a, b := g.Nodes[e.Source], g.Nodes[e.Target]
		c.line(a.X, a.Y, b.X, b.Y, '∙', layerEdge, m.state.EdgeOpacity(e))
	}

	for i, n := range g.Nodes {
		glyph := '●'
		if m.state.Focused(i) {
			glyph = '◉'
		}
		col, row := c.cellOf(n.X, n.Y)
		c.set(col, row, glyph, layerNode, m.state.NodeOpacity(i))
		c.text(n.X+cellWidth, n.Y, shortName(n), m.state.TitleOpacity(i))
	}
}

func (m model) renderNetwork() string {
	c := newCanvas(m.canvasSize())
	m.draw(c)
	return c.render(styleFor)
}

func styleFor(l layer, opacity float64) lipgloss.Style {
	if opacity <= interaction.Faded && l != layerHull {
		return fadedStyle
	}
	switch l {
	case layerHull:
		return hullStyle
	case layerOutline:
		return outlineStyle
	case layerEdge:
		return edgeStyle
	case layerNode:
		return nodeStyle
	default:
		return labelStyle
	}
}

func (m model) renderSidebar() string {
	var s strings.Builder
	s.WriteString("Tags\n")

	selected, _ := m.state.SelectedTag()
	for i, tag := range m.viz.Tags {
		line := tag
		if tag == selected {
			line = selectedStyle.Render("✓ " + tag)
		} else {
			line = "  " + line
		}
		if i == m.tagCursor {
			line = cursorStyle.Render(line)
		}
		s.WriteString(line)
		s.WriteString("\n")
	}
	if len(m.viz.Tags) == 0 {
		s.WriteString(helpStyle.Render("none"))
		s.WriteString("\n")
	}

	if i, ok := m.state.HoveredNode(); ok {
		n := m.viz.Nodes[i]
		s.WriteString("\n")
		s.WriteString(selectedStyle.Render(n.Name))
		s.WriteString("\n")
		for _, line := range graph.SplitLines(n.Title) {
			s.WriteString(line)
			s.WriteString("\n")
		}
		s.WriteString(fmt.Sprintf("%d linked\n", len(n.Linked)))
	}

	return sidebarStyle.Render(s.String())
}

// shortName is the first word of the node's name, or its id
func shortName(n *graph.Node) string {
	if fields := strings.Fields(n.Name); len(fields) > 0 {
		return fields[0]
	}
	return n.ID
}
