// Package footprint is the document model of a KiCad footprint: a tree of
// pads, graphics, text and model references owned by a Footprint, and the
// encoder that writes it in the .kicad_mod format.
//
// A generator builds a Footprint once, appends nodes, and hands it to an
// Encoder:
//
//	fp, _ := footprint.NewFootprint("PinHeader_1x05_P2.54mm")
//	arr, _ := footprint.NewPadArray(footprint.PadArray{
//		Pincount: 5,
//		Spacing:  geom.Pt(0, 2.54),
//		Pad:      footprint.PadOptions{Type: footprint.PadTHT, Shape: footprint.ShapeOval, ...},
//	})
//	fp.Append(arr)
//	footprint.WriteFile("PinHeader_1x05_P2.54mm.kicad_mod", fp)
package footprint

import (
	"strings"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/geom"
)

// Attribute is the footprint placement attribute.
type Attribute string

const (
	AttrNormal  Attribute = "" // through-hole or mixed; not written
	AttrSMD     Attribute = "smd"
	AttrVirtual Attribute = "virtual"
)

// Footprint is the root of a footprint document.
type Footprint struct {
	Name        string
	Description string
	Tags        []string
	Attribute   Attribute

	// Center is the footprint origin. Every coordinate is written
	// relative to it.
	Center geom.Point

	// Model is an optional 3D model, written after all other elements.
	Model *Model

	root Group
}

// NewFootprint creates an empty footprint. The name must be non-empty.
func NewFootprint(name string) (*Footprint, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Kind: "Footprint", Field: "name", Value: name, Reason: "must not be empty"}
	}
	return &Footprint{Name: name}, nil
}

// SetTags replaces the tag list. Tags are written joined by spaces.
func (f *Footprint) SetTags(tags ...string) {
	f.Tags = append([]string(nil), tags...)
}

// Append adds nodes to the end of the footprint's child list. A node that
// already belongs to another container is rejected.
func (f *Footprint) Append(nodes ...Node) error {
	return f.root.Append(nodes...)
}

// Children returns the top-level nodes in order.
func (f *Footprint) Children() []Node {
	return f.root.Children()
}

// Walk visits every leaf node with its accumulated translation offset. The
// footprint-level Model is not visited.
func (f *Footprint) Walk(fn WalkFunc) error {
	return walkChildren(f.root.nodes, geom.Point{}, "", fn)
}

// Pads returns every pad in the footprint with its position resolved to
// footprint coordinates (including the translations above it, before the
// Center shift). Pad arrays are expanded.
func (f *Footprint) Pads() ([]*Pad, error) {
	var pads []*Pad
	err := f.Walk(func(n Node, offset geom.Point, path string) error {
		switch v := n.(type) {
		case *Pad:
			p := &Pad{PadOptions: v.PadOptions}
			p.At = p.At.Add(offset)
			pads = append(pads, p)
		case *PadArray:
			expanded, err := v.Pads()
			if err != nil {
				return &SerializationError{Footprint: f.Name, Path: path, Err: err}
			}
			for _, p := range expanded {
				p.At = p.At.Add(offset)
				pads = append(pads, p)
			}
		}
		return nil
	})
	return pads, err
}

// Validate checks the footprint-level fields.
func (f *Footprint) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Kind: "Footprint", Field: "name", Value: f.Name, Reason: "must not be empty"}
	}
	switch f.Attribute {
	case AttrNormal, AttrSMD, AttrVirtual:
	default:
		return &ValidationError{Kind: "Footprint", Field: "attribute", Value: f.Attribute, Reason: "must be smd, virtual or empty"}
	}
	if !f.Center.IsFinite() {
		return &ValidationError{Kind: "Footprint", Field: "center", Value: f.Center, Reason: "must be finite"}
	}
	return nil
}
