package generator

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/footprint"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/klc"
)

// HarwinGecko is the Harwin Gecko G125 dual row male vertical header,
// 1.25mm pitch, with and without latch holes.
type HarwinGecko struct{}

func init() { Register(HarwinGecko{}) }

const (
	geckoPitch   = 1.25
	geckoRows    = 2
	geckoWidth   = 4.9
	geckoPadSize = 0.95
	geckoDrill   = 0.55
)

var geckoPincounts = []int{3, 4, 6, 8, 10, 13, 17, 25}

func (HarwinGecko) Name() string    { return "harwin-gecko" }
func (HarwinGecko) Library() string { return "Connector_Harwin" }

// Variants are Harwin part numbers, latched parts first.
func (HarwinGecko) Variants() []string {
	var v []string
	for _, latch := range []bool{true, false} {
		for _, n := range geckoPincounts {
			v = append(v, geckoPart(n, latch))
		}
	}
	return v
}

func geckoPart(pins int, latch bool) string {
	l := 0
	if latch {
		l = 1
	}
	return fmt.Sprintf("G125-MVX%02d05L%dX", pins*geckoRows, l)
}

func (f HarwinGecko) Build(variant string, cfg *klc.Config) (*footprint.Footprint, error) {
	pins, latch, ok := 0, false, false
	for _, n := range geckoPincounts {
		for _, l := range []bool{true, false} {
			if geckoPart(n, l) == variant {
				pins, latch, ok = n, l, true
			}
		}
	}
	if !ok {
		return nil, unknownVariant(f, variant)
	}

	latchDesc := "no latches"
	if latch {
		latchDesc = "with latches"
	}
	name := fmt.Sprintf("Harwin_Gecko-%s_2x%02d_P1.25mm_Vertical", variant, pins)
	b := newBuilder(cfg, name,
		fmt.Sprintf("Harwin Gecko Connector, %d pins, dual row male, vertical entry, %s, PN:%s", pins*geckoRows, latchDesc, variant),
		"connector", "harwin", "gecko")

	a := float64(pins-1) * geckoPitch
	n := pins * geckoRows
	length := float64(n-2)*0.625 + 3.8

	ymid := -float64(geckoRows-1) * geckoPitch / 2
	x2 := a/2 + length/2
	x1 := x2 - length
	y1 := ymid - geckoWidth/2
	y2 := ymid + geckoWidth/2

	// Odd pins on the bottom row, even pins on the top row.
	for i := 0; i < geckoRows; i++ {
		b.padArray(footprint.PadArray{
			Pincount:  pins,
			Spacing:   geom.Pt(geckoPitch, 0),
			Start:     geom.Pt(0, -float64(i)*geckoPitch),
			Initial:   i + 1,
			Increment: geckoRows,
			Pad: footprint.PadOptions{
				Type:   footprint.PadTHT,
				Shape:  footprint.ShapeCircle,
				Size:   geom.Sz(geckoPadSize, geckoPadSize),
				Drill:  footprint.RoundDrill(geckoDrill),
				Layers: footprint.LayersTHT,
			},
		})
	}

	if latch {
		m := float64(n-2)*0.625 + 2.5
		for _, x := range []float64{a/2 - m/2, a/2 + m/2} {
			b.pad(footprint.PadOptions{
				Type:   footprint.PadNPTH,
				Shape:  footprint.ShapeOval,
				At:     geom.Pt(x, ymid),
				Size:   geom.Sz(1.1, 2),
				Drill:  footprint.OvalDrill(1, 1.9),
				Layers: footprint.LayersNPTH,
			})
		}
	}

	silkArc := func(center, start geom.Point) {
		b.add(footprint.NewArc(center, start, 90, footprint.LayerFSilkS, cfg.SilkLineWidth))
	}
	silkLine := func(start, end geom.Point) {
		b.add(footprint.NewLine(start, end, footprint.LayerFSilkS, cfg.SilkLineWidth))
	}

	// Outer body with rounded corners.
	const r = 0.75
	silkArc(geom.Pt(x1+r, y1+r), geom.Pt(x1, y1+r))
	silkArc(geom.Pt(x2-r, y1+r), geom.Pt(x2-r, y1))
	silkArc(geom.Pt(x2-r, y2-r), geom.Pt(x2, y2-r))
	silkArc(geom.Pt(x1+r, y2-r), geom.Pt(x1+r, y2))
	silkLine(geom.Pt(x1+r, y1), geom.Pt(x2-r, y1))
	silkLine(geom.Pt(x1+r, y2), geom.Pt(x2-r, y2))

	// Inner wall with the polarization key.
	const wall, rr = 0.7, 0.25
	xa, xb := x1+1, x2-1
	xm1, xm2 := a/2-geckoPitch/2, a/2+geckoPitch/2
	ya, yb, yc := y1+wall, y2-0.4, y1+0.4

	b.add(b.silk(
		geom.Pt(xa+rr, yb),
		geom.Pt(xa+geckoPitch, yb),
		geom.Pt(xa+geckoPitch, y2-wall),
		geom.Pt(xb-geckoPitch, y2-wall),
		geom.Pt(xb-geckoPitch, yb),
		geom.Pt(xb-rr, yb),
	))
	b.add(b.silk(
		geom.Pt(xa+rr, ya),
		geom.Pt(xm1, ya),
		geom.Pt(xm1, yc),
		geom.Pt(xm2, yc),
		geom.Pt(xm2, ya),
		geom.Pt(xb-rr, ya),
	))
	silkArc(geom.Pt(xa+rr, ya+rr), geom.Pt(xa, ya+rr))
	silkArc(geom.Pt(xb-rr, ya+rr), geom.Pt(xb-rr, ya))
	silkArc(geom.Pt(xb-rr, yb-rr), geom.Pt(xb, yb-rr))
	silkArc(geom.Pt(xa+rr, yb-rr), geom.Pt(xa+rr, yb))

	const t = 1.5
	side := b.silk(
		geom.Pt(x1, y1+r),
		geom.Pt(x1, ymid-t),
		geom.Pt(xa, ymid-t),
		geom.Pt(xa, ya+rr),
	)
	b.add(side, side.MirrorX(a/2), side.MirrorY(ymid), side.MirrorX(a/2).MirrorY(ymid))
	silkLine(geom.Pt(xa, yb-rr), geom.Pt(xa, ymid+t))
	silkLine(geom.Pt(xb, yb-rr), geom.Pt(xb, ymid+t))

	body := geom.NewRect(geom.Pt(x1, y1), geom.Pt(x2, y2))
	if latch {
		l := float64(n-2)*0.625 + 5.2
		ears := b.silk(
			geom.Pt((x1+xa)/2, ymid-1.25),
			geom.Pt(a/2-l/2, ymid-1.25),
			geom.Pt(a/2-l/2, ymid+1.25),
			geom.Pt((x1+xa)/2, ymid+1.25),
		)
		b.add(ears, ears.MirrorX(a/2))
		body = geom.NewRect(geom.Pt(a/2-l/2, y1), geom.Pt(a/2+l/2, y2))
	}
	cy := b.courtyard(body, cfg.CourtyardOffset.Connector)

	const px, py, m = 0.0, 2.1, 0.3
	marker := b.silk(geom.Pt(px, py), geom.Pt(px-m, py+2*m), geom.Pt(px+m, py+2*m))
	marker.Closed = true
	b.add(marker)

	b.add(footprint.NewRectLine(geom.Pt(x1, y1), geom.Pt(x2, y2), footprint.LayerFFab, cfg.FabLineWidth))

	b.textFields(geom.NewRect(geom.Pt(x1, y1), geom.Pt(x2, y2)), cy, false)
	b.model(f.Library())
	return b.done()
}
