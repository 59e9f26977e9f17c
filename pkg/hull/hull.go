// Package hull computes concave outlines around point sets.
//
// Concave starts from the convex hull and repeatedly replaces long boundary
// edges with a detour through a nearby inner point, as long as the detour
// keeps the boundary simple. The concavity parameter is the edge length
// below which an edge is left alone: larger values give rounder, more
// convex shapes.
package hull

import (
	"math"
	"slices"
)

// Point is a 2D coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

var (
	// inner points must see the edge at less than 90 degrees from both ends
	maxConcaveAngleCos = math.Cos(math.Pi / 2)
)

// search boxes never grow beyond this share of the occupied area
const maxSearchBoxShare = 0.6

// Concave returns a concave boundary around points in walk order. The ring
// is implicitly closed: the first point is not repeated at the end. Inputs
// with fewer than four points are returned unchanged.
func Concave(points []Point, concavity float64) []Point {
	if len(points) < 4 {
		return slices.Clone(points)
	}

	sorted := sortUnique(points)
	if len(sorted) < 3 {
		return sorted
	}

	w, h := occupiedArea(sorted)
	ring := convex(sorted)

	cellSize := math.Ceil(w * h / float64(len(sorted)))
	if cellSize <= 0 || math.IsInf(cellSize, 0) || math.IsNaN(cellSize) {
		return open(ring)
	}

	onRing := make(map[Point]struct{}, len(ring))
	for _, p := range ring {
		onRing[p] = struct{}{}
	}
	// Inner points enter the grid largest first. midPoint keeps the first of
	// two candidates that each beat the other on one angle, so this order
	// decides which of them digs into an edge.
	inner := make([]Point, 0, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		if _, ok := onRing[sorted[i]]; !ok {
			inner = append(inner, sorted[i])
		}
	}

	d := &digger{
		maxSqEdge: concavity * concavity,
		maxSearch: [2]float64{w * maxSearchBoxShare, h * maxSearchBoxShare},
		grid:      newGrid(inner, cellSize),
		skip:      make(map[[4]float64]bool),
	}
	return open(d.dig(ring))
}

func sortUnique(points []Point) []Point {
	sorted := slices.Clone(points)
	slices.SortFunc(sorted, func(a, b Point) int {
		if a.X != b.X {
			if a.X < b.X {
				return -1
			}
			return 1
		}
		switch {
		case a.Y < b.Y:
			return -1
		case a.Y > b.Y:
			return 1
		}
		return 0
	})
	return slices.Compact(sorted)
}

func occupiedArea(points []Point) (float64, float64) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return maxX - minX, maxY - minY
}

// open drops the closing point of a ring
func open(ring []Point) []Point {
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		return ring[:len(ring)-1]
	}
	return ring
}

type digger struct {
	maxSqEdge float64
	maxSearch [2]float64
	grid      *grid
	skip      map[[4]float64]bool
}

// dig inserts inner points into long edges of the closed ring until a full
// pass makes no change.
func (d *digger) dig(ring []Point) []Point {
	for {
		inserted := false

		for i := 0; i < len(ring)-1; i++ {
			a, b := ring[i], ring[i+1]
			key := [4]float64{a.X, a.Y, b.X, b.Y}
			if sqLength(a, b) < d.maxSqEdge || d.skip[key] {
				continue
			}

			box := boxAround(a, b)
			var (
				mid        Point
				found      bool
				boxW, boxH float64
			)
			for scale := 0.0; ; scale++ {
				box = d.grid.extend(box, scale)
				boxW, boxH = box[2]-box[0], box[3]-box[1]
				mid, found = midPoint(a, b, d.grid.rangePoints(box), ring)
				if found || !(d.maxSearch[0] > boxW || d.maxSearch[1] > boxH) {
					break
				}
			}

			if boxW >= d.maxSearch[0] && boxH >= d.maxSearch[1] {
				d.skip[key] = true
			}

			if found {
				ring = slices.Insert(ring, i+1, mid)
				d.grid.remove(mid)
				inserted = true
			}
		}

		if !inserted {
			return ring
		}
	}
}

// midPoint picks the candidate that sits most squarely over edge a-b without
// making the boundary cross itself.
func midPoint(a, b Point, candidates, ring []Point) (Point, bool) {
	var (
		best  Point
		found bool
	)
	cos1, cos2 := maxConcaveAngleCos, maxConcaveAngleCos

	for _, p := range candidates {
		c1 := cosAngle(a, b, p)
		c2 := cosAngle(b, a, p)
		if c1 > cos1 && c2 > cos2 &&
			!crossesRing(a, p, ring) &&
			!crossesRing(b, p, ring) {
			cos1, cos2 = c1, c2
			best = p
			found = true
		}
	}
	return best, found
}

// cosAngle is the cosine of the angle at o between o->a and o->b.
func cosAngle(o, a, b Point) float64 {
	ax, ay := a.X-o.X, a.Y-o.Y
	bx, by := b.X-o.X, b.Y-o.Y
	return (ax*bx + ay*by) / math.Sqrt((ax*ax+ay*ay)*(bx*bx+by*by))
}

func sqLength(a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	return dx*dx + dy*dy
}

func boxAround(a, b Point) [4]float64 {
	return [4]float64{
		math.Min(a.X, b.X),
		math.Min(a.Y, b.Y),
		math.Max(a.X, b.X),
		math.Max(a.Y, b.Y),
	}
}

// crossesRing reports whether segment from-to crosses any ring edge that
// does not start or end at from.
func crossesRing(from, to Point, ring []Point) bool {
	for i := 0; i < len(ring)-1; i++ {
		c, d := ring[i], ring[i+1]
		if from == c || from == d {
			continue
		}
		if intersects(from, to, c, d) {
			return true
		}
	}
	return false
}

// ccw treats collinear triples as counter-clockwise.
func ccw(a, b, c Point) bool {
	return (c.Y-a.Y)*(b.X-a.X)-(b.Y-a.Y)*(c.X-a.X) >= 0
}

func intersects(p1, p2, p3, p4 Point) bool {
	return ccw(p1, p3, p4) != ccw(p2, p3, p4) && ccw(p1, p2, p3) != ccw(p1, p2, p4)
}
