package geom

import (
	"math"
	"testing"
)

func TestRoundToGrid(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		grid float64
		want float64
	}{
		{name: "already on grid", v: 1.25, grid: 0.05, want: 1.25},
		{name: "round down", v: 1.234, grid: 0.01, want: 1.23},
		{name: "round up", v: 1.236, grid: 0.01, want: 1.24},
		{name: "tie away from zero", v: 0.125, grid: 0.05, want: 0.15},
		{name: "negative tie away from zero", v: -0.125, grid: 0.05, want: -0.15},
		{name: "integer tie", v: 2.5, grid: 1, want: 3},
		{name: "negative integer tie", v: -2.5, grid: 1, want: -3},
		{name: "negative rounds to zero", v: -0.004, grid: 0.01, want: 0},
		{name: "zero grid is a no-op", v: 1.2345, grid: 0, want: 1.2345},
		{name: "negative grid is a no-op", v: 1.2345, grid: -1, want: 1.2345},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundToGrid(tt.v, tt.grid)
			if got != tt.want {
				t.Errorf("RoundToGrid(%v, %v) = %v, want %v", tt.v, tt.grid, got, tt.want)
			}
			if math.Signbit(got) && got == 0 {
				t.Errorf("RoundToGrid(%v, %v) returned negative zero", tt.v, tt.grid)
			}
		})
	}
}

func TestRoundToGridIdempotent(t *testing.T) {
	grids := []float64{0.01, 0.05, 0.1, 0.25, 1.27, 2.54}
	values := []float64{-13.337, -2.5, -0.125, 0, 0.001, 0.07, 0.125, 1.905, 3.81, 17.4999, 123.456}

	for _, g := range grids {
		for _, v := range values {
			p := Pt(v, -v/3)
			once := p.RoundTo(g)
			twice := once.RoundTo(g)
			if once != twice {
				t.Errorf("RoundTo(%v) not idempotent for %v: %v then %v", g, p, once, twice)
			}
		}
	}
}

func TestMirror(t *testing.T) {
	tests := []struct {
		name string
		in   Point
		want Point
	}{
		{name: "left of axis", in: Pt(2, 3), want: Pt(8, 3)},
		{name: "on axis is fixed", in: Pt(5, 0), want: Pt(5, 0)},
		{name: "right of axis", in: Pt(7.5, -1), want: Pt(2.5, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.MirrorX(5); !got.Equal(tt.want) {
				t.Errorf("MirrorX(5) = %v, want %v", got, tt.want)
			}
			// Mirroring about y swaps roles.
			flipped := Pt(tt.in.Y, tt.in.X).MirrorY(5)
			if !flipped.Equal(Pt(tt.want.Y, tt.want.X)) {
				t.Errorf("MirrorY(5) = %v, want %v", flipped, Pt(tt.want.Y, tt.want.X))
			}
		})
	}

	pts := MirrorPointsX([]Point{Pt(2, 3), Pt(5, 0)}, 5)
	if !pts[0].Equal(Pt(8, 3)) || !pts[1].Equal(Pt(5, 0)) {
		t.Errorf("MirrorPointsX = %v", pts)
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name   string
		p      Point
		deg    float64
		origin Point
		want   Point
	}{
		{name: "zero", p: Pt(1, 2), deg: 0, want: Pt(1, 2)},
		{name: "quarter turn goes up on screen", p: Pt(1, 0), deg: 90, want: Pt(0, -1)},
		{name: "half turn", p: Pt(1, 2), deg: 180, want: Pt(-1, -2)},
		{name: "about another origin", p: Pt(2, 1), deg: 90, origin: Pt(1, 1), want: Pt(1, 0)},
		{name: "full turn", p: Pt(3, 4), deg: 360, want: Pt(3, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Rotate(tt.deg, tt.origin); !got.Equal(tt.want) {
				t.Errorf("Rotate(%v) = %v, want %v", tt.deg, got, tt.want)
			}
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{90, 90},
		{360, 0},
		{450, 90},
		{-90, 270},
		{-360, 0},
		{-720.5, 359.5},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); got != tt.want {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRectInflateInvertible(t *testing.T) {
	rects := []Rect{
		NewRect(Pt(0, 0), Pt(2, 1)),
		NewRect(Pt(3.3, -1.7), Pt(-4.1, 2.25)),
		RectAround(Pt(0.5, 0.5), Sz(0.1, 7)),
	}
	offsets := []float64{0.25, -0.05, 1.27, -3}

	for _, r := range rects {
		for _, d := range offsets {
			got := r.Inflate(d).Inflate(-d)
			if !got.Equal(r) {
				t.Errorf("%v.Inflate(%v).Inflate(%v) = %v", r, d, -d, got)
			}
		}
	}
}

func TestRectInflate(t *testing.T) {
	r := NewRect(Pt(2, 1), Pt(0, 0)).Inflate(0.5)
	want := Rect{Min: Pt(-0.5, -0.5), Max: Pt(2.5, 1.5)}
	if !r.Equal(want) {
		t.Errorf("Inflate(0.5) = %v, want %v", r, want)
	}
	if r.Width() != 3 || r.Height() != 2 {
		t.Errorf("size = %vx%v, want 3x2", r.Width(), r.Height())
	}
}

func TestOffsetPolygon(t *testing.T) {
	square := []Point{Pt(0, 0), Pt(2, 0), Pt(2, 2), Pt(0, 2)}
	grown := []Point{Pt(-0.5, -0.5), Pt(2.5, -0.5), Pt(2.5, 2.5), Pt(-0.5, 2.5)}

	t.Run("square", func(t *testing.T) {
		got := OffsetPolygon(square, 0.5, true)
		assertPoints(t, got, grown)
	})

	t.Run("reversed winding", func(t *testing.T) {
		rev := []Point{square[3], square[2], square[1], square[0]}
		want := []Point{grown[3], grown[2], grown[1], grown[0]}
		assertPoints(t, OffsetPolygon(rev, 0.5, true), want)
	})

	t.Run("invertible", func(t *testing.T) {
		back := OffsetPolygon(OffsetPolygon(square, 0.3, true), -0.3, true)
		assertPoints(t, back, square)
	})

	t.Run("right angles stay right", func(t *testing.T) {
		l := []Point{Pt(0, 0), Pt(3, 0), Pt(3, 1), Pt(1, 1), Pt(1, 3), Pt(0, 3)}
		got := OffsetPolygon(l, 0.2, true)
		for i := range got {
			a := got[(i+len(got)-1)%len(got)]
			b := got[i]
			c := got[(i+1)%len(got)]
			if dot := b.Sub(a).Dot(c.Sub(b)); math.Abs(dot) > 1e-9 {
				t.Errorf("corner %d not square after offset: dot=%v", i, dot)
			}
		}
	})

	t.Run("open polyline", func(t *testing.T) {
		got := OffsetPolygon([]Point{Pt(0, 0), Pt(2, 0), Pt(2, 2)}, 0.5, false)
		assertPoints(t, got, []Point{Pt(0, -0.5), Pt(2.5, -0.5), Pt(2.5, 2)})
	})

	t.Run("open polyline returning to start", func(t *testing.T) {
		outline := []Point{Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 1), Pt(0, 0)}
		got := OffsetPolygon(outline, 0.5, false)
		want := []Point{Pt(-0.5, -0.5), Pt(1.5, -0.5), Pt(1.5, 1.5), Pt(-0.5, 1.5), Pt(-0.5, -0.5)}
		assertPoints(t, got, want)
	})
}

func TestBoundingBox(t *testing.T) {
	bb := NewBoundingBox()
	if !bb.IsEmpty() {
		t.Fatal("new bounding box should be empty")
	}
	bb.Expand(Pt(1, -2))
	bb.ExpandRect(NewRect(Pt(-3, 0), Pt(0, 4)))

	want := Rect{Min: Pt(-3, -2), Max: Pt(1, 4)}
	if !bb.Rect().Equal(want) {
		t.Errorf("bounds = %v, want %v", bb.Rect(), want)
	}
	if c := bb.Center(); !c.Equal(Pt(-1, 1)) {
		t.Errorf("Center() = %v, want (-1, 1)", c)
	}
}

func assertPoints(t *testing.T, got, want []Point) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}
