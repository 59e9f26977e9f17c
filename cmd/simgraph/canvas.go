package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dd0wney/cluso-simgraph/pkg/hull"
)

// Terminal cells are roughly twice as tall as they are wide
const (
	cellWidth  = 10.0
	cellHeight = 20.0
)

type layer int

const (
	layerEmpty layer = iota
	layerHull
	layerOutline
	layerEdge
	layerLabel
	layerNode
)

type cell struct {
	r       rune
	layer   layer
	opacity float64
}

// canvas rasterizes layout coordinates onto a grid of terminal cells
type canvas struct {
	cols, rows int
	cells      [][]cell
}

func newCanvas(cols, rows int) *canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	cells := make([][]cell, rows)
	for i := range cells {
		cells[i] = make([]cell, cols)
		for j := range cells[i] {
			cells[i][j] = cell{r: ' '}
		}
	}
	return &canvas{cols: cols, rows: rows, cells: cells}
}

// pixelSize is the layout canvas the grid represents
func (c *canvas) pixelSize() (float64, float64) {
	return float64(c.cols) * cellWidth, float64(c.rows) * cellHeight
}

func (c *canvas) cellOf(x, y float64) (int, int) {
	return int(math.Floor(x / cellWidth)), int(math.Floor(y / cellHeight))
}

func (c *canvas) set(col, row int, r rune, l layer, opacity float64) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	if c.cells[row][col].layer > l {
		return
	}
	c.cells[row][col] = cell{r: r, layer: l, opacity: opacity}
}

func (c *canvas) runeAt(col, row int) rune {
	return c.cells[row][col].r
}

// line draws from a to b with Bresenham's algorithm
func (c *canvas) line(ax, ay, bx, by float64, r rune, l layer, opacity float64) {
	x0, y0 := c.cellOf(ax, ay)
	x1, y1 := c.cellOf(bx, by)

	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0, r, l, opacity)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// fill shades every cell whose center lies inside the polygon
func (c *canvas) fill(points []hull.Point, r rune, opacity float64) {
	if len(points) < 3 {
		return
	}
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			center := hull.Point{
				X: (float64(col) + 0.5) * cellWidth,
				Y: (float64(row) + 0.5) * cellHeight,
			}
			if hull.Contains(points, center) {
				c.set(col, row, r, layerHull, opacity)
			}
		}
	}
}

// outline traces the closed polygon
func (c *canvas) outline(points []hull.Point, r rune, opacity float64) {
	for i := range points {
		a, b := points[i], points[(i+1)%len(points)]
		c.line(a.X, a.Y, b.X, b.Y, r, layerOutline, opacity)
	}
}

// text writes s starting at the cell holding (x, y)
func (c *canvas) text(x, y float64, s string, opacity float64) {
	col, row := c.cellOf(x, y)
	for i, r := range []rune(s) {
		c.set(col+i, row, r, layerLabel, opacity)
	}
}

func (c *canvas) render(styleFor func(layer, float64) lipgloss.Style) string {
	var b strings.Builder
	for row, line := range c.cells {
		if row > 0 {
			b.WriteByte('\n')
		}
		for _, cl := range line {
			if cl.layer == layerEmpty {
				b.WriteRune(cl.r)
				continue
			}
			b.WriteString(styleFor(cl.layer, cl.opacity).Render(string(cl.r)))
		}
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
