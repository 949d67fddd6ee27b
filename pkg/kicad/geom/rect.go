package geom

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min Point // Minimum (top-left) corner
	Max Point // Maximum (bottom-right) corner
}

// NewRect returns the rectangle spanned by two opposite corners in any order.
func NewRect(a, b Point) Rect {
	r := Rect{Min: a, Max: b}
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// RectAround returns a rectangle of the given size centered on c.
func RectAround(c Point, s Size) Rect {
	return NewRect(c.Offset(-s.W/2, -s.H/2), c.Offset(s.W/2, s.H/2))
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Inflate moves every edge outward by d, or inward for negative d.
// Inflate(d).Inflate(-d) returns r.
func (r Rect) Inflate(d float64) Rect {
	return Rect{Min: r.Min.Offset(-d, -d), Max: r.Max.Offset(d, d)}
}

// Translate shifts the rectangle by p.
func (r Rect) Translate(p Point) Rect {
	return Rect{Min: r.Min.Add(p), Max: r.Max.Add(p)}
}

// RoundTo snaps both corners to grid.
func (r Rect) RoundTo(grid float64) Rect {
	return Rect{Min: r.Min.RoundTo(grid), Max: r.Max.RoundTo(grid)}
}

// Corners returns the four corners clockwise on screen, starting at Min.
func (r Rect) Corners() []Point {
	return []Point{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}
}

// Contains reports whether p lies inside or on the edge of r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Equal reports whether both corners match within Epsilon.
func (r Rect) Equal(o Rect) bool {
	return r.Min.Equal(o.Min) && r.Max.Equal(o.Max)
}
