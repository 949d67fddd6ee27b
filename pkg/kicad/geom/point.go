// Package geom provides the value types used to describe footprint geometry.
// All coordinates are in millimeters in KiCad's y-down board coordinate system.
// Every operation returns a new value; nothing in this package mutates its receiver.
package geom

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the absolute tolerance used when comparing coordinates.
const Epsilon = 1e-9

// gridPrecision is the number of decimal places kept after snapping to a grid.
// It removes binary noise such as 0.15000000000000002 without moving a
// value off the grid.
const gridPrecision = 10

// Point represents a 2D coordinate.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Offset returns p shifted by (dx, dy).
func (p Point) Offset(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Scale returns p with both coordinates multiplied by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Neg returns -p.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// MirrorX mirrors p about the vertical line x = m.
func (p Point) MirrorX(m float64) Point {
	return Point{X: 2*m - p.X, Y: p.Y}
}

// MirrorY mirrors p about the horizontal line y = m.
func (p Point) MirrorY(m float64) Point {
	return Point{X: p.X, Y: 2*m - p.Y}
}

// Rotate rotates p by deg degrees around origin. Positive angles turn
// counter-clockwise on screen, which is the direction KiCad uses for
// footprint orientation (board y axis points down).
func (p Point) Rotate(deg float64, origin Point) Point {
	if math.Mod(deg, 360) == 0 {
		return p
	}
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	d := p.Sub(origin)
	return Point{
		X: origin.X + d.X*cos + d.Y*sin,
		Y: origin.Y - d.X*sin + d.Y*cos,
	}
}

// RoundTo snaps both coordinates to the nearest multiple of grid.
func (p Point) RoundTo(grid float64) Point {
	return Point{X: RoundToGrid(p.X, grid), Y: RoundToGrid(p.Y, grid)}
}

// Distance returns the euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Dot returns the dot product of p and q taken as vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Len returns the length of p taken as a vector.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Equal reports whether p and q are the same point within Epsilon.
func (p Point) Equal(q Point) bool {
	return scalar.EqualWithinAbs(p.X, q.X, Epsilon) && scalar.EqualWithinAbs(p.Y, q.Y, Epsilon)
}

// IsFinite reports whether neither coordinate is NaN or infinite.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// RoundToGrid maps v to the nearest multiple of grid. Ties are rounded away
// from zero so that v and -v land on mirrored grid points. The result is
// idempotent: RoundToGrid(RoundToGrid(v, g), g) == RoundToGrid(v, g).
// A non-positive grid leaves v unchanged.
func RoundToGrid(v, grid float64) float64 {
	if grid <= 0 || !isFinite(v) {
		return v
	}
	// v/grid is snapped first so decimal ties like 0.125/0.05 are not lost
	// to binary representation (2.4999999999999996).
	steps := math.Round(scalar.Round(v/grid, gridPrecision-1))
	r := scalar.Round(steps*grid, gridPrecision)
	if r == 0 {
		return 0
	}
	return r
}

// NormalizeAngle maps deg into [0, 360).
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 || a == 0 {
		return 0
	}
	return a
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Size represents the dimensions of a pad or text glyph.
type Size struct {
	W float64
	H float64
}

// Sz is shorthand for Size{W: w, H: h}.
func Sz(w, h float64) Size {
	return Size{W: w, H: h}
}

// IsSquare reports whether W and H are equal within Epsilon.
func (s Size) IsSquare() bool {
	return scalar.EqualWithinAbs(s.W, s.H, Epsilon)
}

// XYZ is a 3D vector used by model placement.
type XYZ struct {
	X float64
	Y float64
	Z float64
}
