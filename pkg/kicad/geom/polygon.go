package geom

// SignedArea returns the shoelace area of the closed polygon pts. The sign
// depends on winding: positive when the points run counter-clockwise in
// y-up coordinates, which is clockwise on a y-down board.
func SignedArea(pts []Point) float64 {
	var a float64
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return a / 2
}

// MirrorPointsX mirrors every point about the vertical line x = m.
func MirrorPointsX(pts []Point, m float64) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = p.MirrorX(m)
	}
	return out
}

// MirrorPointsY mirrors every point about the horizontal line y = m.
func MirrorPointsY(pts []Point, m float64) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = p.MirrorY(m)
	}
	return out
}

// TranslatePoints shifts every point by d.
func TranslatePoints(pts []Point, d Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = p.Add(d)
	}
	return out
}

// OffsetPolygon displaces every edge of the polygon pts by d along its
// outward normal. Negative d shrinks the shape. Corners are mitered, so two
// edges meeting at a right angle still meet at a right angle afterwards.
// When closed is false the first and last vertices are moved along the normal
// of their single edge, unless the last point repeats the first: that chain is
// a closed outline and its shared corner is mitered like any other. Winding is detected from the signed area, so the
// result is the same for either orientation.
func OffsetPolygon(pts []Point, d float64, closed bool) []Point {
	n := len(pts)
	out := make([]Point, n)
	if n < 2 || d == 0 {
		copy(out, pts)
		return out
	}
	if !closed && n > 2 && pts[0].Equal(pts[n-1]) {
		ring := OffsetPolygon(pts[:n-1], d, true)
		return append(ring, ring[0])
	}

	// Outward normal of edge a->b is (dy, -dx) for positive area.
	sign := 1.0
	if SignedArea(pts) < 0 {
		sign = -1
	}
	normal := func(a, b Point) (Point, bool) {
		e := b.Sub(a)
		l := e.Len()
		if l < Epsilon {
			return Point{}, false
		}
		return Point{X: sign * e.Y / l, Y: -sign * e.X / l}, true
	}

	for i := range pts {
		var n1, n2 Point
		var ok1, ok2 bool
		if prev, ok := neighbour(pts, i, -1, closed); ok {
			n1, ok1 = normal(pts[prev], pts[i])
		}
		if next, ok := neighbour(pts, i, 1, closed); ok {
			n2, ok2 = normal(pts[i], pts[next])
		}
		switch {
		case ok1 && ok2:
			denom := 1 + n1.Dot(n2)
			if denom < Epsilon {
				// Edge doubles back on itself; no finite miter exists.
				out[i] = pts[i].Add(n1.Scale(d))
				continue
			}
			out[i] = pts[i].Add(n1.Add(n2).Scale(d / denom))
		case ok1:
			out[i] = pts[i].Add(n1.Scale(d))
		case ok2:
			out[i] = pts[i].Add(n2.Scale(d))
		default:
			out[i] = pts[i]
		}
	}
	return out
}

// neighbour finds the nearest vertex in direction step that is not a
// duplicate of pts[i].
func neighbour(pts []Point, i, step int, closed bool) (int, bool) {
	n := len(pts)
	for k := 1; k < n; k++ {
		j := i + k*step
		if closed {
			j = ((j % n) + n) % n
		} else if j < 0 || j >= n {
			return 0, false
		}
		if !pts[j].Equal(pts[i]) {
			return j, true
		}
	}
	return 0, false
}
