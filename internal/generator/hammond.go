package generator

import (
	"fmt"
	"sort"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/footprint"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/klc"
)

// enclosure holds Hammond 1551 drawing dimensions.
type enclosure struct {
	L, W         float64 // outside, without flange
	InnerL       float64
	InnerW       float64
	PostL, PostW float64 // between the outsides of the mounting posts
	PCBL, PCBW   float64 // largest board that fits
	HoleV        float64 // hole offset from the vertical board edge
	HoleH        float64 // hole offset from the horizontal board edge
}

// Board corner cutout around the lid posts.
const (
	pcbCutout       = 6.25
	pcbCutoutRadius = 3.0
	pcbHole         = 2.5
)

var hammond1551 = map[string]enclosure{
	"1551N": {L: 35, W: 35, InnerL: 30.17, InnerW: 30.17, PostL: 28.73, PostW: 28.8, PCBL: 29, PCBW: 29, HoleV: 2.75, HoleH: 5.75},
	"1551M": {L: 35, W: 35, InnerL: 29.73, InnerW: 29.73, PostL: 28.73, PostW: 28.28, PCBL: 29, PCBW: 29, HoleV: 2.75, HoleH: 5.75},
	"1551Q": {L: 40, W: 40, InnerL: 35.12, InnerW: 35, PostL: 33.8, PostW: 33.8, PCBL: 34.5, PCBW: 34.5, HoleV: 3, HoleH: 7.25},
	"1551P": {L: 40, W: 40, InnerL: 34.72, InnerW: 34.72, PostL: 33.8, PostW: 33.8, PCBL: 34, PCBW: 34, HoleV: 2.75, HoleH: 7},
	"1551F": {L: 50, W: 35, InnerL: 45.17, InnerW: 30.17, PostL: 43.88, PostW: 28.88, PCBL: 44.5, PCBW: 29.5, HoleV: 3, HoleH: 9.75},
	"1551G": {L: 50, W: 35, InnerL: 44.73, InnerW: 29.73, PostL: 43.88, PostW: 28.88, PCBL: 44, PCBW: 29, HoleV: 2.75, HoleH: 12},
	"1551S": {L: 50, W: 50, InnerL: 45.12, InnerW: 45.12, PostL: 43.8, PostW: 43.73, PCBL: 44, PCBW: 44, HoleV: 2.75, HoleH: 9.5},
	"1551R": {L: 50, W: 50, InnerL: 44.72, InnerW: 44.72, PostL: 43.8, PostW: 43.73, PCBL: 44, PCBW: 44, HoleV: 2.75, HoleH: 9.5},
	"1551J": {L: 60, W: 35, InnerL: 55.17, InnerW: 30.17, PostL: 53.88, PostW: 28.88, PCBL: 54.5, PCBW: 29.5, HoleV: 3, HoleH: 12.25},
	"1551H": {L: 60, W: 35, InnerL: 54.73, InnerW: 29.73, PostL: 53.88, PostW: 28.88, PCBL: 54, PCBW: 29, HoleV: 2.75, HoleH: 12.7},
	"1551L": {L: 80, W: 40, InnerL: 75.17, InnerW: 35.17, PostL: 73.8, PostW: 33.8, PCBL: 74, PCBW: 34, HoleV: 2.75, HoleH: 17},
	"1551K": {L: 80, W: 40, InnerL: 74.73, InnerW: 34.73, PostL: 73.8, PostW: 33.8, PCBL: 74, PCBW: 34, HoleV: 2.75, HoleH: 17},
}

// Hammond1551 is the Hammond 1551-FL miniature plastic enclosure series.
// The footprint is a board outline template: mounting holes, the usable
// board shape on Eco1.User and the enclosure walls on Eco2.User.
// Drawings: http://www.hammondmfg.com/dwg9FL.htm
type Hammond1551 struct{}

func init() { Register(Hammond1551{}) }

func (Hammond1551) Name() string    { return "hammond-1551" }
func (Hammond1551) Library() string { return "Enclosure_Hammond" }

func (Hammond1551) Variants() []string {
	v := make([]string, 0, len(hammond1551))
	for k := range hammond1551 {
		v = append(v, k)
	}
	sort.Strings(v)
	return v
}

func (f Hammond1551) Build(variant string, cfg *klc.Config) (*footprint.Footprint, error) {
	e, ok := hammond1551[variant]
	if !ok {
		return nil, unknownVariant(f, variant)
	}

	name := fmt.Sprintf("Hammond_%s_%dx%d", variant, int(e.L), int(e.W))
	b := newBuilder(cfg, name,
		"Hammond miniature plastic enclosure, 1551-FL series, flanged lid, http://www.hammondmfg.com/pdf/"+variant+".pdf",
		"enclosure", "hammond", "plastic", "1551")
	b.attr(footprint.AttrVirtual)

	if ref := b.text(footprint.TextReference, "REF**", geom.Pt(0, -2), footprint.LayerFSilkS); ref != nil {
		ref.Hidden = true
	}
	if val := b.text(footprint.TextValue, name, geom.Pt(0, 2), footprint.LayerFFab); val != nil {
		val.Hidden = true
	}

	w := cfg.EdgeCutsLineWidth
	b.add(
		footprint.NewLine(geom.Pt(-1, 0), geom.Pt(1, 0), footprint.LayerEco1User, w),
		footprint.NewLine(geom.Pt(0, -1), geom.Pt(0, 1), footprint.LayerEco1User, w),
	)

	hole := geom.Pt(e.PCBL/2-e.HoleH, e.PCBW/2-e.HoleV)
	for _, at := range []geom.Point{hole, hole.Neg()} {
		b.pad(footprint.PadOptions{
			Type:   footprint.PadNPTH,
			Shape:  footprint.ShapeCircle,
			At:     at,
			Size:   geom.Sz(pcbHole, pcbHole),
			Drill:  footprint.RoundDrill(pcbHole),
			Layers: footprint.LayersNPTH,
		})
		b.add(footprint.NewCircle(at, 1.5, footprint.LayerFSilkS, cfg.SilkLineWidth))
	}

	// Board outline: one half, its point reflection, and the two corner arcs
	// that join them around the lid posts.
	hl, hw := e.PCBL/2, e.PCBW/2
	half := footprint.NewPolygonLine([]geom.Point{
		geom.Pt(-hl+pcbCutout-pcbCutoutRadius, hw-pcbCutout),
		geom.Pt(-hl, hw-pcbCutout),
		geom.Pt(-hl, -hw),
		geom.Pt(hl-pcbCutout, -hw),
		geom.Pt(hl-pcbCutout, -hw+pcbCutout-pcbCutoutRadius),
	}, footprint.LayerEco1User, w)
	b.add(half, half.MirrorX(0).MirrorY(0))

	corner := geom.Pt(hl-pcbCutout+pcbCutoutRadius, -hw+pcbCutout-pcbCutoutRadius)
	b.add(
		footprint.NewArc(corner, corner.Offset(0, pcbCutoutRadius), 90, footprint.LayerEco1User, w),
		footprint.NewArc(corner.Neg(), corner.Neg().Offset(0, -pcbCutoutRadius), 90, footprint.LayerEco1User, w),
	)

	inner := geom.NewRect(geom.Pt(-e.InnerL/2, -e.InnerW/2), geom.Pt(e.InnerL/2, e.InnerW/2))
	wall := footprint.NewRectLine(inner.Min, inner.Max, footprint.LayerEco2User, w)
	outer := footprint.NewRectLine(inner.Min, inner.Max, footprint.LayerEco2User, w)
	outer.Offset = (e.W - e.InnerW) / 2
	b.add(wall, outer)

	post := geom.Pt(e.PostL/2-10.3/4, e.PostW/2-10.3/4)
	for _, at := range []geom.Point{geom.Pt(post.X, -post.Y), geom.Pt(-post.X, post.Y)} {
		b.add(
			footprint.NewCircle(at, 1.75, footprint.LayerEco2User, w),
			footprint.NewCircle(at, 2.5, footprint.LayerEco2User, w),
		)
	}

	return b.done()
}
