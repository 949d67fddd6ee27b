package footprint

import (
	"slices"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/geom"
)

// Bounds calculates the bounding box of the footprint in tree coordinates
// (translations applied, Center not subtracted). When layers are given only
// elements on one of them count; a pad counts if any of its layers match.
// Line widths and text extents are ignored.
func (f *Footprint) Bounds(layers ...Layer) (geom.BoundingBox, error) {
	bbox := geom.NewBoundingBox()
	on := func(ls ...Layer) bool {
		if len(layers) == 0 {
			return true
		}
		for _, l := range ls {
			if slices.Contains(layers, l) {
				return true
			}
		}
		return false
	}

	err := f.Walk(func(n Node, offset geom.Point, path string) error {
		switch v := n.(type) {
		case *Line:
			if on(v.Layer) {
				bbox.Expand(v.Start.Add(offset))
				bbox.Expand(v.End.Add(offset))
			}
		case *Circle:
			if on(v.Layer) {
				bbox.ExpandRect(geom.RectAround(v.Center.Add(offset), geom.Sz(2*v.Radius, 2*v.Radius)))
			}
		case *Arc:
			if on(v.Layer) {
				// Start, middle and end; approximate but good enough for extents
				mid := v.Start.Rotate(-v.Angle/2, v.Center)
				for _, p := range []geom.Point{v.Start, mid, v.End()} {
					bbox.Expand(p.Add(offset))
				}
			}
		case *PolygonLine:
			if on(v.Layer) {
				for _, p := range v.Points {
					bbox.Expand(p.Add(offset))
				}
			}
		case *RectLine:
			if on(v.Layer) {
				bbox.ExpandRect(v.Rect().Translate(offset))
			}
		case *Text:
			if on(v.Layer) {
				bbox.Expand(v.At.Add(offset))
			}
		case *Pad:
			if on(v.Layers...) {
				expandPad(&bbox, v, offset)
			}
		case *PadArray:
			pads, err := v.Pads()
			if err != nil {
				return &SerializationError{Footprint: f.Name, Path: path, Err: err}
			}
			for _, p := range pads {
				if on(p.Layers...) {
					expandPad(&bbox, p, offset)
				}
			}
		}
		return nil
	})
	return bbox, err
}

// expandPad adds the corners of the pad's (possibly rotated) outline.
func expandPad(bbox *geom.BoundingBox, p *Pad, offset geom.Point) {
	at := p.At.Add(offset)
	for _, c := range geom.RectAround(at, p.Size).Corners() {
		bbox.Expand(c.Rotate(p.Rotation, at))
	}
}
