package hull

import "math"

// grid buckets the not-yet-used inner points so edge searches only look at
// nearby candidates.
type grid struct {
	cells    map[[2]int][]Point
	cellSize float64
	inverse  float64
}

func newGrid(points []Point, cellSize float64) *grid {
	g := &grid{
		cells:    make(map[[2]int][]Point),
		cellSize: cellSize,
		inverse:  1 / cellSize,
	}
	for _, p := range points {
		key := [2]int{g.cell(p.X), g.cell(p.Y)}
		g.cells[key] = append(g.cells[key], p)
	}
	return g
}

func (g *grid) cell(v float64) int {
	return int(math.Trunc(v * g.inverse))
}

// rangePoints returns the points in every cell touched by box, column by
// column.
func (g *grid) rangePoints(box [4]float64) []Point {
	x0, y0 := g.cell(box[0]), g.cell(box[1])
	x1, y1 := g.cell(box[2]), g.cell(box[3])

	var out []Point
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			out = append(out, g.cells[[2]int{x, y}]...)
		}
	}
	return out
}

func (g *grid) remove(p Point) {
	key := [2]int{g.cell(p.X), g.cell(p.Y)}
	cell := g.cells[key]
	for i, q := range cell {
		if q == p {
			g.cells[key] = append(cell[:i], cell[i+1:]...)
			return
		}
	}
}

// extend grows box by scale cells on every side.
func (g *grid) extend(box [4]float64, scale float64) [4]float64 {
	d := scale * g.cellSize
	return [4]float64{box[0] - d, box[1] - d, box[2] + d, box[3] + d}
}
