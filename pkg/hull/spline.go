package hull

import "math"

// CatmullRomClosed samples a closed Catmull-Rom spline through ring. alpha
// selects the knot parameterisation (0 uniform, 0.5 centripetal, 1 chordal);
// segments is the number of samples per ring edge. Consecutive duplicate
// points are ignored.
func CatmullRomClosed(ring []Point, alpha float64, segments int) []Point {
	pts := make([]Point, 0, len(ring))
	for _, p := range ring {
		if len(pts) == 0 || pts[len(pts)-1] != p {
			pts = append(pts, p)
		}
	}
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 || segments < 1 {
		return pts
	}

	n := len(pts)
	out := make([]Point, 0, n*segments)
	for i := 0; i < n; i++ {
		p0 := pts[(i-1+n)%n]
		p1 := pts[i]
		p2 := pts[(i+1)%n]
		p3 := pts[(i+2)%n]
		for s := 0; s < segments; s++ {
			out = append(out, catmullRom(p0, p1, p2, p3, alpha, float64(s)/float64(segments)))
		}
	}
	return out
}

func knot(t float64, a, b Point, alpha float64) float64 {
	d := math.Pow(sqLength(a, b), alpha/2)
	if d == 0 {
		d = 1
	}
	return t + d
}

func lerp(a, b Point, ta, tb, t float64) Point {
	if tb == ta {
		return a
	}
	wa := (tb - t) / (tb - ta)
	wb := (t - ta) / (tb - ta)
	return Point{X: wa*a.X + wb*b.X, Y: wa*a.Y + wb*b.Y}
}

// catmullRom evaluates the Barry-Goldman pyramid between p1 and p2 at u in [0,1).
func catmullRom(p0, p1, p2, p3 Point, alpha, u float64) Point {
	t0 := 0.0
	t1 := knot(t0, p0, p1, alpha)
	t2 := knot(t1, p1, p2, alpha)
	t3 := knot(t2, p2, p3, alpha)
	t := t1 + (t2-t1)*u

	a1 := lerp(p0, p1, t0, t1, t)
	a2 := lerp(p1, p2, t1, t2, t)
	a3 := lerp(p2, p3, t2, t3, t)
	b1 := lerp(a1, a2, t0, t2, t)
	b2 := lerp(a2, a3, t1, t3, t)
	return lerp(b1, b2, t1, t2, t)
}

// Contains reports whether p lies strictly inside the implicitly closed ring
// (even-odd rule).
func Contains(ring []Point, p Point) bool {
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}
