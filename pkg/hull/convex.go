package hull

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// chain runs one monotone-chain pass and drops the final point, which the
// opposite pass starts from.
func chain(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		for len(out) >= 2 && cross(out[len(out)-2], out[len(out)-1], p) <= 0 {
			out = out[:len(out)-1]
		}
		out = append(out, p)
	}
	return out[:len(out)-1]
}

// convex returns the closed convex hull of points, which must be sorted by
// x then y and free of duplicates. The ring starts and ends at the point
// with the largest x.
func convex(sorted []Point) []Point {
	reversed := make([]Point, len(sorted))
	for i, p := range sorted {
		reversed[len(sorted)-1-i] = p
	}

	forward := chain(sorted)
	backward := chain(reversed)

	ring := make([]Point, 0, len(forward)+len(backward)+1)
	ring = append(ring, backward...)
	ring = append(ring, forward...)
	return append(ring, reversed[0])
}
