package footprint

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/geom"
)

// PadType is the mounting technology of a pad.
type PadType string

const (
	PadTHT     PadType = "thru_hole"
	PadSMD     PadType = "smd"
	PadConnect PadType = "connect"
	PadNPTH    PadType = "np_thru_hole"
)

// PadShape is the copper outline of a pad.
type PadShape string

const (
	ShapeRect      PadShape = "rect"
	ShapeCircle    PadShape = "circle"
	ShapeOval      PadShape = "oval"
	ShapeRoundRect PadShape = "roundrect"
	ShapeTrapezoid PadShape = "trapezoid"
)

// Drill describes the hole of a through-hole pad. Round holes use Size.W only.
type Drill struct {
	Size geom.Size
	Oval bool
}

// RoundDrill returns a round drill of diameter d.
func RoundDrill(d float64) Drill {
	return Drill{Size: geom.Sz(d, d)}
}

// OvalDrill returns a slotted drill of w by h.
func OvalDrill(w, h float64) Drill {
	return Drill{Size: geom.Sz(w, h), Oval: true}
}

// IsZero reports whether no hole is drilled.
func (d Drill) IsZero() bool {
	return d.Size.W == 0 && (!d.Oval || d.Size.H == 0)
}

// PadOptions holds everything needed to build a pad.
type PadOptions struct {
	// Number is the pad name. Empty means unnumbered, as used for
	// mechanical holes and mounting pads.
	Number   string
	Type     PadType
	Shape    PadShape
	At       geom.Point
	Rotation float64
	Size     geom.Size
	Drill    Drill
	Layers   LayerSet

	// RoundRectRatio is the corner radius as a fraction of the shorter
	// side, used only by ShapeRoundRect. Must be in (0, 0.5].
	RoundRectRatio float64

	// TrapezoidDelta is the size change across the pad, used only by
	// ShapeTrapezoid.
	TrapezoidDelta geom.Size
}

// Pad is a copper or mechanical pad.
type Pad struct {
	Base
	PadOptions
}

// NewPad validates o and creates a pad.
func NewPad(o PadOptions) (*Pad, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	o.Layers = append(LayerSet(nil), o.Layers...)
	return &Pad{PadOptions: o}, nil
}

// Validate checks that type, shape, size, drill and layers form a pad KiCad
// can load.
func (o PadOptions) Validate() error {
	invalid := func(field string, value any, reason string) error {
		return &ValidationError{Kind: "Pad", Field: field, Value: value, Reason: reason}
	}

	switch o.Type {
	case PadTHT, PadSMD, PadConnect, PadNPTH:
	default:
		return invalid("type", o.Type, "unknown pad type")
	}

	switch o.Shape {
	case ShapeRect, ShapeCircle, ShapeOval, ShapeTrapezoid:
	case ShapeRoundRect:
		if !(o.RoundRectRatio > 0 && o.RoundRectRatio <= 0.5) {
			return invalid("roundrect ratio", o.RoundRectRatio, "must be in (0, 0.5]")
		}
	default:
		return invalid("shape", o.Shape, "unknown pad shape")
	}

	if !positive(o.Size.W) || !positive(o.Size.H) {
		return invalid("size", o.Size, "must be positive")
	}
	if !o.At.IsFinite() || !finite(o.Rotation) {
		return invalid("position", o.At, "must be finite")
	}

	drilled := o.Type == PadTHT || o.Type == PadNPTH
	if drilled {
		if !positive(o.Drill.Size.W) || (o.Drill.Oval && !positive(o.Drill.Size.H)) {
			return invalid("drill", o.Drill.Size, "drilled pads need a positive drill size")
		}
	} else if !o.Drill.IsZero() {
		return invalid("drill", o.Drill.Size, string(o.Type)+" pads cannot be drilled")
	}

	if len(o.Layers) == 0 {
		return invalid("layers", o.Layers, "no layers given")
	}
	for _, l := range o.Layers {
		if !l.Known() {
			return invalid("layers", l, "unknown layer")
		}
	}

	copper := o.Layers.copperLayers()
	switch o.Type {
	case PadTHT:
		if len(copper) == 0 {
			return invalid("layers", o.Layers, "through-hole pads need a copper layer")
		}
	case PadSMD, PadConnect:
		if len(copper) == 0 {
			return invalid("layers", o.Layers, "surface pads need a copper layer")
		}
		for _, l := range copper {
			if l.IsWildcard() {
				return invalid("layers", o.Layers, "surface pads must be on one side, got "+string(l))
			}
		}
	}
	return nil
}

// MountingHole returns an unnumbered non-plated hole of diameter d.
func MountingHole(at geom.Point, d float64) (*Pad, error) {
	return NewPad(PadOptions{
		Type:   PadNPTH,
		Shape:  ShapeCircle,
		At:     at,
		Size:   geom.Sz(d, d),
		Drill:  RoundDrill(d),
		Layers: LayersNPTH,
	})
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
