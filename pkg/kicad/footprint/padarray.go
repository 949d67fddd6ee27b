package footprint

import (
	"strconv"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/geom"
)

// PadArray expands into Pincount pads laid out in a line. Pad j sits at
// Start + j*Spacing and is numbered Initial + j*Increment. Spacing may have
// an x part, a y part or both, and either may be negative.
//
// A dual-row interleaved header is two arrays with Increment 2, the second
// starting at Initial 2 with its Start shifted by the row pitch.
type PadArray struct {
	Base

	Pincount int
	Spacing  geom.Point
	Start    geom.Point

	// Center, when set, places the array so that its middle pad position
	// lands on Center. Start is ignored.
	Center *geom.Point

	// Initial is the first pad number; zero means 1.
	Initial int
	// Increment is the step between pad numbers; zero means 1.
	Increment int

	// Pad is the template for every pad. Number and At are overwritten.
	Pad PadOptions

	// FirstShape, when set, replaces the template shape for pad index 0,
	// typically ShapeRect to mark pin 1.
	FirstShape PadShape
}

// NewPadArray validates the array parameters and the pad template.
func NewPadArray(a PadArray) (*PadArray, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	a.Base = Base{}
	return &a, nil
}

// Validate checks the array parameters and the pad template.
func (a *PadArray) Validate() error {
	if a.Pincount <= 0 {
		return &ConfigurationError{Field: "pincount", Value: a.Pincount, Reason: "pad array needs at least one pad"}
	}
	if !a.Spacing.IsFinite() || !a.Start.IsFinite() {
		return &ConfigurationError{Field: "spacing", Value: a.Spacing, Reason: "must be finite"}
	}
	if a.Center != nil && !a.Center.IsFinite() {
		return &ConfigurationError{Field: "center", Value: *a.Center, Reason: "must be finite"}
	}
	for j := 0; j < min(a.Pincount, 2); j++ {
		if err := a.padOptions(j).Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Pads expands the array into detached pads.
func (a *PadArray) Pads() ([]*Pad, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	pads := make([]*Pad, a.Pincount)
	for j := range pads {
		o := a.padOptions(j)
		o.Layers = append(LayerSet(nil), o.Layers...)
		pads[j] = &Pad{PadOptions: o}
	}
	return pads, nil
}

// Numbers returns the pad numbers the array produces, in order.
func (a *PadArray) Numbers() []int {
	if a.Pincount <= 0 {
		return nil
	}
	nums := make([]int, a.Pincount)
	for j := range nums {
		nums[j] = a.number(j)
	}
	return nums
}

func (a *PadArray) padOptions(j int) PadOptions {
	o := a.Pad
	o.Number = strconv.Itoa(a.number(j))
	o.At = a.origin().Add(a.Spacing.Scale(float64(j)))
	if j == 0 && a.FirstShape != "" {
		o.Shape = a.FirstShape
	}
	return o
}

func (a *PadArray) number(j int) int {
	initial, increment := a.Initial, a.Increment
	if initial == 0 {
		initial = 1
	}
	if increment == 0 {
		increment = 1
	}
	return initial + j*increment
}

func (a *PadArray) origin() geom.Point {
	if a.Center == nil {
		return a.Start
	}
	return a.Center.Sub(a.Spacing.Scale(float64(a.Pincount-1) / 2))
}
