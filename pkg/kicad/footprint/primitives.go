package footprint

import (
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/geom"
)

// Line is a straight graphic segment.
type Line struct {
	Base
	Start geom.Point
	End   geom.Point
	Layer Layer
	Width float64
}

// NewLine creates a line from start to end.
func NewLine(start, end geom.Point, layer Layer, width float64) *Line {
	return &Line{Start: start, End: end, Layer: layer, Width: width}
}

// Circle is a circle outline.
type Circle struct {
	Base
	Center geom.Point
	Radius float64
	Layer  Layer
	Width  float64
}

// NewCircle creates a circle of radius r around center.
func NewCircle(center geom.Point, r float64, layer Layer, width float64) *Circle {
	return &Circle{Center: center, Radius: r, Layer: layer, Width: width}
}

// Arc is a circular arc starting at Start and sweeping Angle degrees around
// Center. Positive angles sweep clockwise on screen.
type Arc struct {
	Base
	Center geom.Point
	Start  geom.Point
	Angle  float64
	Layer  Layer
	Width  float64
}

// NewArc creates an arc.
func NewArc(center, start geom.Point, angle float64, layer Layer, width float64) *Arc {
	return &Arc{Center: center, Start: start, Angle: angle, Layer: layer, Width: width}
}

// End returns the point where the arc stops.
func (a *Arc) End() geom.Point {
	// Board y points down, so a clockwise sweep on screen is a negative
	// rotation in Rotate's terms.
	return a.Start.Rotate(-a.Angle, a.Center)
}

// PolygonLine is a chain of segments through Points, closed back to the
// first point when Closed is set.
type PolygonLine struct {
	Base
	Points []geom.Point
	Closed bool
	Layer  Layer
	Width  float64
}

// NewPolygonLine creates an open polyline. The point slice is copied.
func NewPolygonLine(points []geom.Point, layer Layer, width float64) *PolygonLine {
	return &PolygonLine{Points: append([]geom.Point(nil), points...), Layer: layer, Width: width}
}

// Segments returns the segments as start/end pairs.
func (p *PolygonLine) Segments() [][2]geom.Point {
	n := len(p.Points)
	if n < 2 {
		return nil
	}
	segs := make([][2]geom.Point, 0, n)
	for i := 0; i+1 < n; i++ {
		segs = append(segs, [2]geom.Point{p.Points[i], p.Points[i+1]})
	}
	if p.Closed && n > 2 && !p.Points[0].Equal(p.Points[n-1]) {
		segs = append(segs, [2]geom.Point{p.Points[n-1], p.Points[0]})
	}
	return segs
}

// MirrorX returns a detached copy mirrored about the vertical line x = m.
func (p *PolygonLine) MirrorX(m float64) *PolygonLine {
	return p.derive(geom.MirrorPointsX(p.Points, m))
}

// MirrorY returns a detached copy mirrored about the horizontal line y = m.
func (p *PolygonLine) MirrorY(m float64) *PolygonLine {
	return p.derive(geom.MirrorPointsY(p.Points, m))
}

// Offset returns a detached copy with every edge moved outward by d.
func (p *PolygonLine) Offset(d float64) *PolygonLine {
	return p.derive(geom.OffsetPolygon(p.Points, d, p.Closed))
}

func (p *PolygonLine) derive(points []geom.Point) *PolygonLine {
	return &PolygonLine{Points: points, Closed: p.Closed, Layer: p.Layer, Width: p.Width}
}

// RectLine is a rectangle outline drawn as four lines. The rectangle spanned
// by Start and End is inflated by Offset and, when Grid is positive, its
// corners are snapped to Grid. Courtyards use both.
type RectLine struct {
	Base
	Start  geom.Point
	End    geom.Point
	Layer  Layer
	Width  float64
	Offset float64
	Grid   float64
}

// NewRectLine creates a rectangle outline between two opposite corners.
func NewRectLine(start, end geom.Point, layer Layer, width float64) *RectLine {
	return &RectLine{Start: start, End: end, Layer: layer, Width: width}
}

// Rect returns the final rectangle after offset and grid snapping.
func (r *RectLine) Rect() geom.Rect {
	rect := geom.NewRect(r.Start, r.End).Inflate(r.Offset)
	if r.Grid > 0 {
		rect = rect.RoundTo(r.Grid)
	}
	return rect
}

// Lines returns the four detached edge lines, clockwise from the top-left
// corner.
func (r *RectLine) Lines() []*Line {
	c := r.Rect().Corners()
	lines := make([]*Line, 4)
	for i := range c {
		lines[i] = NewLine(c[i], c[(i+1)%4], r.Layer, r.Width)
	}
	return lines
}

// TextKind is the role of a text field.
type TextKind string

const (
	TextReference TextKind = "reference"
	TextValue     TextKind = "value"
	TextUser      TextKind = "user"
)

// Default text geometry used by KiCad libraries.
const (
	DefaultTextSize      = 1.0
	DefaultTextThickness = 0.15
)

// Text is a text field.
type Text struct {
	Base
	Kind      TextKind
	Text      string
	At        geom.Point
	Rotation  float64
	Layer     Layer
	Size      geom.Size
	Thickness float64
	Hidden    bool
}

// NewText creates a text field with the default font geometry.
func NewText(kind TextKind, text string, at geom.Point, layer Layer) (*Text, error) {
	t := &Text{
		Kind:      kind,
		Text:      text,
		At:        at,
		Layer:     layer,
		Size:      geom.Sz(DefaultTextSize, DefaultTextSize),
		Thickness: DefaultTextThickness,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the text kind and layer.
func (t *Text) Validate() error {
	switch t.Kind {
	case TextReference, TextValue, TextUser:
	default:
		return &ValidationError{Kind: "Text", Field: "kind", Value: t.Kind, Reason: "must be reference, value or user"}
	}
	if !t.Layer.Known() {
		return &ValidationError{Kind: "Text", Field: "layer", Value: t.Layer, Reason: "unknown layer"}
	}
	return nil
}

// Model references a 3D model placed relative to the footprint.
type Model struct {
	Base
	Path   string
	At     geom.XYZ
	Scale  geom.XYZ
	Rotate geom.XYZ
}

// NewModel creates a model reference with unit scale and no offset.
func NewModel(path string) *Model {
	return &Model{Path: path, Scale: geom.XYZ{X: 1, Y: 1, Z: 1}}
}
