package generator

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/footprint"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/klc"
)

// builder accumulates nodes for one footprint. The first error is kept and
// later calls do nothing, so family code can stay linear.
type builder struct {
	fp  *footprint.Footprint
	cfg *klc.Config
	err error
}

func newBuilder(cfg *klc.Config, name, description string, tags ...string) *builder {
	fp, err := footprint.NewFootprint(name)
	if err != nil {
		return &builder{cfg: cfg, err: err}
	}
	fp.Description = description
	fp.SetTags(tags...)
	return &builder{fp: fp, cfg: cfg}
}

func (b *builder) add(nodes ...footprint.Node) {
	if b.err != nil {
		return
	}
	b.err = b.fp.Append(nodes...)
}

func (b *builder) attr(a footprint.Attribute) {
	if b.err == nil {
		b.fp.Attribute = a
	}
}

func (b *builder) pad(o footprint.PadOptions) {
	if b.err != nil {
		return
	}
	p, err := footprint.NewPad(o)
	if err != nil {
		b.err = err
		return
	}
	b.add(p)
}

func (b *builder) padArray(a footprint.PadArray) {
	if b.err != nil {
		return
	}
	arr, err := footprint.NewPadArray(a)
	if err != nil {
		b.err = err
		return
	}
	b.add(arr)
}

func (b *builder) text(kind footprint.TextKind, s string, at geom.Point, layer footprint.Layer) *footprint.Text {
	if b.err != nil {
		return nil
	}
	t, err := footprint.NewText(kind, s, at, layer)
	if err != nil {
		b.err = err
		return nil
	}
	t.Size = geom.Sz(b.cfg.TextSize[0], b.cfg.TextSize[1])
	t.Thickness = b.cfg.TextThickness
	b.add(t)
	return t
}

func (b *builder) silk(pts ...geom.Point) *footprint.PolygonLine {
	return footprint.NewPolygonLine(pts, footprint.LayerFSilkS, b.cfg.SilkLineWidth)
}

func (b *builder) fab(pts ...geom.Point) *footprint.PolygonLine {
	return footprint.NewPolygonLine(pts, footprint.LayerFFab, b.cfg.FabLineWidth)
}

// courtyard adds a courtyard rectangle around body, grown by offset and
// snapped to the courtyard grid. It returns the final rectangle.
func (b *builder) courtyard(body geom.Rect, offset float64) geom.Rect {
	cy := footprint.NewRectLine(body.Min, body.Max, footprint.LayerFCrtYd, b.cfg.CourtyardLineWidth)
	cy.Offset = offset
	cy.Grid = b.cfg.CourtyardGrid
	b.add(cy)
	return cy.Rect()
}

func (b *builder) model(lib string) {
	if b.err == nil {
		b.fp.Model = footprint.NewModel(b.cfg.ModelPath(lib, b.fp.Name))
	}
}

func (b *builder) done() (*footprint.Footprint, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.fp, nil
}

// textFields places the standard reference, value and %R fields. The
// reference goes on silkscreen above the courtyard, the value on the
// fabrication layer below it, and %R in the middle of the body. With
// allowRotation, %R is turned upright on bodies taller than wide.
func (b *builder) textFields(body, courtyard geom.Rect, allowRotation bool) {
	h := b.cfg.TextSize[1]
	gap := h/2 + 0.2
	x := body.Center().X

	b.text(footprint.TextReference, "REF**", geom.Pt(x, courtyard.Min.Y-gap), footprint.LayerFSilkS)
	b.text(footprint.TextValue, b.name(), geom.Pt(x, courtyard.Max.Y+gap), footprint.LayerFFab)

	user := b.text(footprint.TextUser, "%R", body.Center(), footprint.LayerFFab)
	if user == nil {
		return
	}
	along, across := body.Width(), body.Height()
	if allowRotation && across > along {
		user.Rotation = 90
		along, across = across, along
	}
	// Three characters must fit along the body and one line across it.
	size := math.Min(b.cfg.TextSize[0], math.Min(along/3, across))
	size = math.Max(geom.RoundToGrid(size, 0.01), 0.25)
	if size < b.cfg.TextSize[0] {
		user.Size = geom.Sz(size, size)
		user.Thickness = geom.RoundToGrid(size*0.15, 0.01)
	}
}

func (b *builder) name() string {
	if b.fp == nil {
		return ""
	}
	return b.fp.Name
}
