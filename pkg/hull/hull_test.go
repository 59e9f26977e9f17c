package hull

import (
	"math"
	"testing"
)

func chevron() []Point {
	return []Point{
		{0, 10}, {1, 8}, {2, 6}, {3, 4}, {4, 2}, {5, 0},
		{6, 2}, {7, 4}, {8, 6}, {9, 8}, {10, 10},
	}
}

func contains(points []Point, p Point) bool {
	for _, q := range points {
		if q == p {
			return true
		}
	}
	return false
}

// area is the signed shoelace area of an implicitly closed ring
func area(ring []Point) float64 {
	sum := 0.0
	for i := range ring {
		j := (i + 1) % len(ring)
		sum += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return sum / 2
}

func convexHull(points []Point) []Point {
	sorted := sortUnique(points)
	if len(sorted) < 3 {
		return sorted
	}
	return open(convex(sorted))
}

func TestConcave_SmallInputsUnchanged(t *testing.T) {
	in := []Point{{0, 0}, {1, 1}, {2, 0}}
	out := Concave(in, 10)
	if len(out) != 3 {
		t.Fatalf("expected input back, got %v", out)
	}
	out[0] = Point{9, 9}
	if in[0] != (Point{0, 0}) {
		t.Error("Concave should not alias its input")
	}
	if got := Concave(nil, 10); len(got) != 0 {
		t.Errorf("Concave(nil) = %v", got)
	}
}

func TestConcave_Square(t *testing.T) {
	square := []Point{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {1, 1}}
	ring := Concave(square, 400)
	if len(ring) != 4 {
		t.Fatalf("expected 4 corners, got %v", ring)
	}
	for _, p := range []Point{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		if !contains(ring, p) {
			t.Errorf("corner %v missing from %v", p, ring)
		}
	}
	if ring[0] == ring[len(ring)-1] {
		t.Error("ring should not repeat its first point")
	}
	if math.Abs(area(ring)) != 1 {
		t.Errorf("area = %v, want 1", area(ring))
	}
}

func TestConcave_DigsIntoChevron(t *testing.T) {
	points := chevron()
	convexArea := math.Abs(area(convexHull(points)))
	if convexArea != 50 {
		t.Fatalf("convex area = %v, want 50", convexArea)
	}

	ring := Concave(points, 1)
	if len(ring) <= 3 {
		t.Fatalf("expected the top edge to be dug, got %v", ring)
	}
	if got := math.Abs(area(ring)); got >= convexArea {
		t.Errorf("concave area %v should be below convex area %v", got, convexArea)
	}
	for _, p := range ring {
		if !contains(points, p) {
			t.Errorf("ring point %v is not an input point", p)
		}
	}
}

func TestConcave_IncomparableCandidatesPreferLargerX(t *testing.T) {
	// (30,1) sits closer to the angle at one end of the long bottom edge and
	// (70,1) closer to the other. Only one is needed to bring every edge
	// under the concavity.
	points := []Point{{0, 0}, {30, 1}, {50, 5}, {70, 1}, {100, 0}}
	ring := Concave(points, 75)
	if len(ring) != 4 {
		t.Fatalf("expected one point dug in, got %v", ring)
	}
	if !contains(ring, Point{70, 1}) || contains(ring, Point{30, 1}) {
		t.Errorf("expected (70,1) to win the edge, got %v", ring)
	}
}

func TestConcave_LargeConcavityIsConvex(t *testing.T) {
	points := chevron()
	ring := Concave(points, 1000)
	if got := math.Abs(area(ring)); got != 50 {
		t.Errorf("area = %v, want convex area 50", got)
	}
}

func TestConvexHull(t *testing.T) {
	points := []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {2, 2}, {1, 3}, {2, 0}}
	ring := convexHull(points)
	if len(ring) != 4 {
		t.Fatalf("expected 4 hull points, got %v", ring)
	}
	if contains(ring, Point{2, 2}) || contains(ring, Point{2, 0}) {
		t.Errorf("interior or collinear point on hull: %v", ring)
	}
}

func TestContains(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if !Contains(square, Point{5, 5}) {
		t.Error("center should be inside")
	}
	if Contains(square, Point{15, 5}) {
		t.Error("point outside reported inside")
	}
}

func TestCatmullRomClosed(t *testing.T) {
	ring := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 10}}
	curve := CatmullRomClosed(ring, 0.3, 8)
	if len(curve) != 4*8 {
		t.Fatalf("expected 32 samples, got %d", len(curve))
	}

	// every segment starts on its control point
	for i, p := range []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}} {
		got := curve[i*8]
		if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
			t.Errorf("sample %d = %v, want %v", i*8, got, p)
		}
	}
	for _, p := range curve {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Fatalf("NaN sample in %v", curve)
		}
	}

	if got := CatmullRomClosed([]Point{{0, 0}, {1, 1}}, 0.3, 8); len(got) != 2 {
		t.Errorf("degenerate ring should be returned as-is, got %v", got)
	}
}
