package footprint

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/sexp/kicadsexp"
)

// ParseFile reads a .kicad_mod file.
func ParseFile(path string) (*Footprint, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads a footprint in the format written by Encoder. Graphic
// outlines come back as individual lines, since the file does not record
// which polyline or rectangle they belonged to.
func Parse(r io.Reader) (*Footprint, error) {
	sexps, err := kicadsexp.Parse(r)
	if err != nil {
		return nil, err
	}
	if len(sexps) == 0 {
		return nil, fmt.Errorf("empty footprint file")
	}
	return parseFootprint(sexps[0])
}

func parseFootprint(node kicadsexp.Sexp) (*Footprint, error) {
	if node.IsLeaf() {
		return nil, fmt.Errorf("expected module list, got leaf")
	}
	head, err := sexp.GetNodeName(node)
	if err != nil {
		return nil, err
	}
	if head != "module" && head != "footprint" {
		return nil, fmt.Errorf("expected 'module', got %q", head)
	}

	name, err := sexp.GetString(node, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse footprint name: %w", err)
	}
	fp, err := NewFootprint(name)
	if err != nil {
		return nil, err
	}

	for _, item := range sexp.GetListItems(node)[1:] {
		if item.IsLeaf() {
			continue
		}
		key, err := sexp.GetNodeName(item)
		if err != nil {
			return nil, err
		}

		var n Node
		switch key {
		case "layer", "tedit":
		case "descr":
			fp.Description, err = sexp.GetString(item, 1)
		case "tags":
			var tags string
			tags, err = sexp.GetString(item, 1)
			fp.Tags = strings.Fields(tags)
		case "attr":
			var attr string
			attr, err = sexp.GetString(item, 1)
			fp.Attribute = Attribute(attr)
		case "fp_text":
			n, err = parseText(item)
		case "fp_line":
			n, err = parseLine(item)
		case "fp_circle":
			n, err = parseCircle(item)
		case "fp_arc":
			n, err = parseArc(item)
		case "pad":
			n, err = parsePad(item)
		case "model":
			fp.Model, err = parseModel(item)
		default:
			Logger().Debug("skipping unsupported footprint element", "footprint", name, "element", key)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", key, err)
		}
		if n != nil {
			if err := fp.Append(n); err != nil {
				return nil, err
			}
		}
	}

	if err := fp.Validate(); err != nil {
		return nil, err
	}
	return fp, nil
}

// graphic reads the (layer L) and (width W) fields shared by all drawings.
func graphic(node kicadsexp.Sexp) (Layer, float64, error) {
	layerNode, ok := sexp.FindNode(node, "layer")
	if !ok {
		return "", 0, fmt.Errorf("missing required 'layer' field")
	}
	layer, err := sexp.GetString(layerNode, 1)
	if err != nil {
		return "", 0, fmt.Errorf("failed to parse layer: %w", err)
	}

	var width float64
	if widthNode, ok := sexp.FindNode(node, "width"); ok {
		if width, err = sexp.GetFloat(widthNode, 1); err != nil {
			return "", 0, fmt.Errorf("failed to parse width: %w", err)
		}
	}
	return Layer(layer), width, nil
}

func pointField(node kicadsexp.Sexp, key string) (geom.Point, error) {
	n, ok := sexp.FindNode(node, key)
	if !ok {
		return geom.Point{}, fmt.Errorf("missing required '%s' field", key)
	}
	p, err := sexp.GetPoint(n)
	if err != nil {
		return geom.Point{}, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return p, nil
}

func parseLine(node kicadsexp.Sexp) (*Line, error) {
	start, err := pointField(node, "start")
	if err != nil {
		return nil, err
	}
	end, err := pointField(node, "end")
	if err != nil {
		return nil, err
	}
	layer, width, err := graphic(node)
	if err != nil {
		return nil, err
	}
	return NewLine(start, end, layer, width), nil
}

func parseCircle(node kicadsexp.Sexp) (*Circle, error) {
	center, err := pointField(node, "center")
	if err != nil {
		return nil, err
	}
	end, err := pointField(node, "end")
	if err != nil {
		return nil, err
	}
	layer, width, err := graphic(node)
	if err != nil {
		return nil, err
	}
	return NewCircle(center, center.Distance(end), layer, width), nil
}

func parseArc(node kicadsexp.Sexp) (*Arc, error) {
	// Legacy arcs store the center in (start) and the first point in (end).
	center, err := pointField(node, "start")
	if err != nil {
		return nil, err
	}
	start, err := pointField(node, "end")
	if err != nil {
		return nil, err
	}
	angleNode, ok := sexp.FindNode(node, "angle")
	if !ok {
		return nil, fmt.Errorf("missing required 'angle' field")
	}
	angle, err := sexp.GetFloat(angleNode, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse angle: %w", err)
	}
	layer, width, err := graphic(node)
	if err != nil {
		return nil, err
	}
	return NewArc(center, start, angle, layer, width), nil
}

func parseText(node kicadsexp.Sexp) (*Text, error) {
	kind, err := sexp.GetString(node, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse text kind: %w", err)
	}
	value, err := sexp.GetString(node, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to parse text value: %w", err)
	}

	atNode, ok := sexp.FindNode(node, "at")
	if !ok {
		return nil, fmt.Errorf("missing required 'at' position")
	}
	at, rotation, err := sexp.GetPosition(atNode)
	if err != nil {
		return nil, err
	}
	layerNode, ok := sexp.FindNode(node, "layer")
	if !ok {
		return nil, fmt.Errorf("missing required 'layer' field")
	}
	layer, err := sexp.GetString(layerNode, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layer: %w", err)
	}

	t, err := NewText(TextKind(kind), value, at, Layer(layer))
	if err != nil {
		return nil, err
	}
	t.Rotation = rotation
	t.Hidden = sexp.HasSymbol(node, "hide")

	if effects, ok := sexp.FindNode(node, "effects"); ok {
		if font, ok := sexp.FindNode(effects, "font"); ok {
			if size, ok := sexp.FindNode(font, "size"); ok {
				hw, err := sexp.GetSize(size)
				if err != nil {
					return nil, fmt.Errorf("failed to parse font size: %w", err)
				}
				t.Size = geom.Sz(hw.H, hw.W)
			}
			if thickness, ok := sexp.FindNode(font, "thickness"); ok {
				if t.Thickness, err = sexp.GetFloat(thickness, 1); err != nil {
					return nil, fmt.Errorf("failed to parse font thickness: %w", err)
				}
			}
		}
		if sexp.HasSymbol(effects, "hide") {
			t.Hidden = true
		}
	}
	return t, nil
}

func parsePad(node kicadsexp.Sexp) (*Pad, error) {
	var o PadOptions

	// Pad number/name (second element after "pad")
	number, err := sexp.GetString(node, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad number: %w", err)
	}
	o.Number = number

	padType, err := sexp.GetString(node, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad type: %w", err)
	}
	o.Type = PadType(padType)

	shape, err := sexp.GetString(node, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad shape: %w", err)
	}
	o.Shape = PadShape(shape)

	atNode, ok := sexp.FindNode(node, "at")
	if !ok {
		return nil, fmt.Errorf("missing required 'at' position")
	}
	if o.At, o.Rotation, err = sexp.GetPosition(atNode); err != nil {
		return nil, fmt.Errorf("failed to parse pad position: %w", err)
	}

	sizeNode, ok := sexp.FindNode(node, "size")
	if !ok {
		return nil, fmt.Errorf("missing required 'size' field")
	}
	if o.Size, err = sexp.GetSize(sizeNode); err != nil {
		return nil, fmt.Errorf("failed to parse pad size: %w", err)
	}

	// Drill is a diameter, or "oval" followed by width and height
	if drillNode, ok := sexp.FindNode(node, "drill"); ok {
		if sexp.HasSymbol(drillNode, "oval") {
			w, err := sexp.GetFloat(drillNode, 2)
			if err != nil {
				return nil, fmt.Errorf("failed to parse drill width: %w", err)
			}
			h, err := sexp.GetFloat(drillNode, 3)
			if err != nil {
				return nil, fmt.Errorf("failed to parse drill height: %w", err)
			}
			o.Drill = OvalDrill(w, h)
		} else {
			d, err := sexp.GetFloat(drillNode, 1)
			if err != nil {
				return nil, fmt.Errorf("failed to parse drill: %w", err)
			}
			if d != 0 {
				o.Drill = RoundDrill(d)
			}
		}
	}

	if layersNode, ok := sexp.FindNode(node, "layers"); ok {
		for _, l := range sexp.GetStrings(layersNode) {
			o.Layers = append(o.Layers, Layer(l))
		}
	}

	if ratio, ok := sexp.FindNode(node, "roundrect_rratio"); ok {
		if o.RoundRectRatio, err = sexp.GetFloat(ratio, 1); err != nil {
			return nil, fmt.Errorf("failed to parse roundrect ratio: %w", err)
		}
	}
	if delta, ok := sexp.FindNode(node, "rect_delta"); ok {
		if o.TrapezoidDelta, err = sexp.GetSize(delta); err != nil {
			return nil, fmt.Errorf("failed to parse rect delta: %w", err)
		}
	}

	return NewPad(o)
}

func parseModel(node kicadsexp.Sexp) (*Model, error) {
	path, err := sexp.GetString(node, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model path: %w", err)
	}
	m := NewModel(path)
	fields := []struct {
		key string
		dst *geom.XYZ
	}{
		{"at", &m.At},
		{"offset", &m.At},
		{"scale", &m.Scale},
		{"rotate", &m.Rotate},
	}
	for _, f := range fields {
		if n, ok := sexp.FindNode(node, f.key); ok {
			if *f.dst, err = sexp.GetXYZ(n); err != nil {
				return nil, fmt.Errorf("failed to parse model %s: %w", f.key, err)
			}
		}
	}
	return m, nil
}
