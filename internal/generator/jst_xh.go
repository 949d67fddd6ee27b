package generator

import (
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/footprint"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/klc"
)

// JSTXH is the JST XH top entry through-hole connector series, 2.50mm pitch.
// Datasheet: http://www.jst-mfg.com/product/pdf/eng/eXH.pdf
type JSTXH struct{}

func init() { Register(JSTXH{}) }

const xhPitch = 2.5

func (JSTXH) Name() string    { return "jst-xh" }
func (JSTXH) Library() string { return "Connector_JST" }

// Variants are the pin counts as decimal strings.
func (JSTXH) Variants() []string {
	var v []string
	for n := 2; n <= 16; n++ {
		v = append(v, strconv.Itoa(n))
	}
	return append(v, "20")
}

func (f JSTXH) Build(variant string, cfg *klc.Config) (*footprint.Footprint, error) {
	pins, err := strconv.Atoi(variant)
	if err != nil || pins < 2 || pins > 20 {
		return nil, unknownVariant(f, variant)
	}

	part := fmt.Sprintf("B%02dB-XH-A", pins)
	name := fmt.Sprintf("JST_XH_%s_1x%02d_P2.50mm_Vertical", part, pins)
	b := newBuilder(cfg, name,
		"JST XH series connector, "+part+", top entry type, through hole",
		"connector", "jst", "xh", "tht", "top", "vertical", "2.50mm")

	a := float64(pins-1) * xhPitch
	body := geom.NewRect(geom.Pt(-2.45, -2.35), geom.Pt(-2.45+a+4.9, -2.35+5.75))

	b.add(footprint.NewRectLine(body.Min, body.Max, footprint.LayerFFab, cfg.FabLineWidth))

	drill := 0.9
	if pins == 2 {
		drill = 1.0
	}
	b.padArray(footprint.PadArray{
		Pincount: pins,
		Spacing:  geom.Pt(xhPitch, 0),
		Pad: footprint.PadOptions{
			Type:   footprint.PadTHT,
			Shape:  footprint.ShapeCircle,
			Size:   geom.Sz(1.75, 1.75),
			Drill:  footprint.RoundDrill(drill),
			Layers: footprint.LayersTHT,
		},
		FirstShape: footprint.ShapeRect,
	})

	cy := b.courtyard(body, cfg.CourtyardOffset.Connector)

	// Silkscreen outline and the latch wall cutouts.
	off := cfg.SilkFabOffset
	outline := footprint.NewRectLine(body.Min, body.Max, footprint.LayerFSilkS, cfg.SilkLineWidth)
	outline.Offset = off
	b.add(outline)

	const wall, gap = 0.75, 1.5
	silk := body.Inflate(off)
	x1, y1, x2, y2 := silk.Min.X, silk.Min.Y, silk.Max.X, silk.Max.Y
	for _, r := range [][2]geom.Point{
		{geom.Pt(gap/2, y1), geom.Pt(a-gap/2, y1+wall)},
		{geom.Pt(x1, y1), geom.Pt(-gap/2, y1+wall)},
		{geom.Pt(a+gap/2, y1), geom.Pt(x2, y1+wall)},
	} {
		b.add(footprint.NewRectLine(r[0], r[1], footprint.LayerFSilkS, cfg.SilkLineWidth))
	}
	side := b.silk(
		geom.Pt(x1, y1+wall+gap),
		geom.Pt(x1+wall, y1+wall+gap),
		geom.Pt(x1+wall, y2-wall),
		geom.Pt(a/2, y2-wall),
	)
	b.add(side, side.MirrorX(a/2))

	// Pin 1 marker above the housing.
	const my, m = -2.75, 0.3
	marker := b.silk(geom.Pt(0, my), geom.Pt(-m, my-2*m), geom.Pt(m, my-2*m))
	marker.Closed = true
	b.add(marker)

	const markerW, markerH = 1.25, 1.0
	b.add(b.fab(
		geom.Pt(-markerW/2, body.Min.Y),
		geom.Pt(0, body.Min.Y+markerH),
		geom.Pt(markerW/2, body.Min.Y),
	))

	b.textFields(body, cy, false)
	b.model(f.Library())
	return b.done()
}
