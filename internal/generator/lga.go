package generator

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/footprint"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/klc"
)

// lgaPackage describes a land grid array with pads on all four edges.
type lgaPackage struct {
	Pitch    float64 // N1
	Length   float64 // E1, body size in y
	Width    float64 // D1, body size in x
	PadLen   float64 // T1
	PadWidth float64 // T2
	Overhang float64 // M, pad extension past the body edge
	NX, NY   int     // pads per horizontal and vertical edge
}

func (p lgaPackage) pins() int { return 2*p.NX + 2*p.NY }

// LGA generates small land grid array packages.
type LGA struct{}

func init() { Register(LGA{}) }

var lgaPackages = map[string]lgaPackage{
	"lga-14-2x2": {Pitch: 0.35, Length: 2, Width: 2, PadLen: 0.275, PadWidth: 0.2, Overhang: 0.1, NX: 3, NY: 4},
	"lga-16-3x3": {Pitch: 0.5, Length: 3, Width: 3, PadLen: 0.35, PadWidth: 0.25, Overhang: 0.1, NX: 3, NY: 5},
	"lga-24-3x5": {Pitch: 0.5, Length: 5, Width: 3, PadLen: 0.65, PadWidth: 0.25, Overhang: 0.1, NX: 5, NY: 7},
	"lga-16-4x4": {Pitch: 0.65, Length: 4, Width: 4, PadLen: 0.4, PadWidth: 0.3, Overhang: 0.1, NX: 4, NY: 4},
	"lga-16-5x5": {Pitch: 0.8, Length: 5, Width: 5, PadLen: 0.8, PadWidth: 0.5, Overhang: 0.1, NX: 3, NY: 5},
	"lga-28-4x5": {Pitch: 0.5, Length: 4, Width: 5, PadLen: 0.325, PadWidth: 0.25, Overhang: 0.075, NX: 8, NY: 6},
	"lga-28-7x7": {Pitch: 0.8, Length: 7, Width: 7, PadLen: 0.45, PadWidth: 0.35, Overhang: 0.1, NX: 7, NY: 7},
}

func (LGA) Name() string    { return "lga" }
func (LGA) Library() string { return "Package_LGA" }

func (LGA) Variants() []string {
	return []string{"lga-14-2x2", "lga-16-3x3", "lga-24-3x5", "lga-16-4x4", "lga-16-5x5", "lga-28-4x5", "lga-28-7x7"}
}

func (f LGA) Build(variant string, cfg *klc.Config) (*footprint.Footprint, error) {
	p, ok := lgaPackages[variant]
	if !ok {
		return nil, unknownVariant(f, variant)
	}

	n := p.pins()
	w, l, pitch := footprint.FormatFloat(p.Width), footprint.FormatFloat(p.Length), footprint.FormatFloat(p.Pitch)
	name := fmt.Sprintf("LGA-%d_%sx%smm_P%smm", n, w, l, pitch)
	b := newBuilder(cfg, name,
		fmt.Sprintf("LGA-%d, %sx%smm, pitch %smm", n, w, l, pitch),
		"LGA", pitch)
	b.attr(footprint.AttrSMD)

	hw, hl := p.Width/2, p.Length/2

	// Fabrication outline with a pin 1 chamfer.
	chamfer := 1.0
	if p.Width < 2 {
		chamfer = 0.5
	}
	b.add(b.fab(
		geom.Pt(-hw+chamfer, -hl),
		geom.Pt(hw, -hl),
		geom.Pt(hw, hl),
		geom.Pt(-hw, hl),
		geom.Pt(-hw, -hl+chamfer),
		geom.Pt(-hw+chamfer, -hl),
	))

	padLen := p.PadLen + p.Overhang + 0.2
	x := hw - p.PadLen/2 + 0.2
	y := hl - p.PadLen/2 + 0.2

	// Pads are numbered counterclockwise from the top of the left edge.
	edges := []struct {
		count   int
		initial int
		spacing geom.Point
		center  geom.Point
		size    geom.Size
	}{
		{p.NY, 1, geom.Pt(0, p.Pitch), geom.Pt(-x, 0), geom.Sz(padLen, p.PadWidth)},
		{p.NX, 1 + p.NY, geom.Pt(p.Pitch, 0), geom.Pt(0, y), geom.Sz(p.PadWidth, padLen)},
		{p.NY, 1 + p.NX + p.NY, geom.Pt(0, -p.Pitch), geom.Pt(x, 0), geom.Sz(padLen, p.PadWidth)},
		{p.NX, 1 + p.NX + 2*p.NY, geom.Pt(-p.Pitch, 0), geom.Pt(0, -y), geom.Sz(p.PadWidth, padLen)},
	}
	for _, e := range edges {
		center := e.center
		b.padArray(footprint.PadArray{
			Pincount: e.count,
			Spacing:  e.spacing,
			Center:   &center,
			Initial:  e.initial,
			Pad: footprint.PadOptions{
				Type:   footprint.PadSMD,
				Shape:  footprint.ShapeRect,
				Size:   e.size,
				Layers: footprint.LayersSMD,
			},
		})
	}

	// Silkscreen corners, open toward the pads, plus the pin 1 lead-in.
	l1 := float64(p.NX-1)*p.Pitch + p.PadWidth
	l2 := float64(p.NY-1)*p.Pitch + p.PadWidth
	off := cfg.SilkFabOffset
	corner := b.silk(
		geom.Pt(l1/2+0.3, -hl-off),
		geom.Pt(hw+off, -hl-off),
		geom.Pt(hw+off, -l2/2-0.3),
	)
	b.add(corner, corner.MirrorY(0), corner.MirrorX(0).MirrorY(0))
	b.add(b.silk(geom.Pt(-l1/2-0.3, -hl-off), geom.Pt(-hw-off, -hl-off)))

	xmax, ymax := x+padLen/2, y+padLen/2
	body := geom.NewRect(geom.Pt(-hw, -hl), geom.Pt(hw, hl))
	outer := geom.NewBoundingBox()
	outer.ExpandRect(body)
	outer.ExpandRect(geom.NewRect(geom.Pt(-xmax, -ymax), geom.Pt(xmax, ymax)))
	cy := b.courtyard(outer.Rect(), cfg.CourtyardOffset.Default)

	b.textFields(body, cy, false)
	b.model(f.Library())
	return b.done()
}
