package footprint

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/sexp/kicadsexp"
)

// FormatFloat renders v the way footprint files expect: fixed point with six
// decimals, then trailing zeros and a trailing decimal point removed.
// 1.50 becomes "1.5", 2.00 becomes "2" and negative zero becomes "0".
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// Encoder writes footprints in the .kicad_mod format.
type Encoder struct {
	w   io.Writer
	now func() time.Time
}

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// WithTimestamp fixes the (tedit ...) timestamp, making output reproducible.
func WithTimestamp(t time.Time) EncoderOption {
	return func(e *Encoder) {
		e.now = func() time.Time { return t }
	}
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer, opts ...EncoderOption) *Encoder {
	e := &Encoder{w: w, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode renders f and writes it. Nothing is written if any node fails to
// render.
func (e *Encoder) Encode(f *Footprint) error {
	tree, err := e.Build(f)
	if err != nil {
		return err
	}
	return kicadsexp.Fprint(e.w, tree)
}

// Marshal returns the rendered text of f.
func Marshal(f *Footprint, opts ...EncoderOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf, opts...).Encode(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders f and writes it to path. The file is replaced atomically,
// so a footprint that fails to render leaves no file behind.
func WriteFile(path string, f *Footprint, opts ...EncoderOption) error {
	data, err := Marshal(f, opts...)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	Logger().Info("footprint written", "name", f.Name, "path", path)
	return nil
}

// Build renders f into an S-expression tree without writing it.
func (e *Encoder) Build(f *Footprint) (*kicadsexp.List, error) {
	if f == nil {
		return nil, &ValidationError{Kind: "Footprint", Reason: "nil footprint"}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	root := kicadsexp.Node("module",
		kicadsexp.Atom(f.Name),
		kicadsexp.Node("layer", kicadsexp.Symbol(LayerFCu)),
		kicadsexp.Node("tedit", kicadsexp.Symbol(fmt.Sprintf("%X", uint32(e.now().Unix())))),
	)
	header := root.Len()
	root.Break(header)

	if f.Description != "" {
		root.Append(kicadsexp.Node("descr", kicadsexp.Quoted(f.Description)))
	}
	if tags := strings.Join(f.Tags, " "); strings.TrimSpace(tags) != "" {
		root.Append(kicadsexp.Node("tags", kicadsexp.Quoted(tags)))
	}
	if f.Attribute != AttrNormal {
		root.Append(kicadsexp.Node("attr", kicadsexp.Symbol(f.Attribute)))
	}

	err := f.Walk(func(n Node, offset geom.Point, path string) error {
		items, err := render(n, offset.Sub(f.Center))
		if err != nil {
			return &SerializationError{Footprint: f.Name, Path: path, Err: err}
		}
		root.Append(items...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if f.Model != nil {
		items, err := render(f.Model, geom.Point{})
		if err != nil {
			return nil, &SerializationError{Footprint: f.Name, Path: "Model", Err: err}
		}
		root.Append(items...)
	}

	Logger().Debug("footprint rendered", "name", f.Name, "elements", root.Len()-header)
	return root, nil
}

// renderer turns one node into S-expressions. The first invalid value is
// kept in err and later calls become no-ops for error purposes.
type renderer struct {
	shift geom.Point
	err   error
}

func render(n Node, shift geom.Point) ([]kicadsexp.Sexp, error) {
	r := &renderer{shift: shift}
	var items []kicadsexp.Sexp

	switch v := n.(type) {
	case *Line:
		items = append(items, r.line(v.Start, v.End, v.Layer, v.Width))
	case *Circle:
		if !(v.Radius > 0) {
			return nil, fmt.Errorf("circle radius %v must be positive", v.Radius)
		}
		items = append(items, kicadsexp.Node("fp_circle",
			r.xy("center", v.Center),
			r.xy("end", v.Center.Offset(v.Radius, 0)),
			r.layer(v.Layer),
			r.width(v.Width),
		))
	case *Arc:
		items = append(items, kicadsexp.Node("fp_arc",
			r.xy("start", v.Center),
			r.xy("end", v.Start),
			kicadsexp.Node("angle", r.num(v.Angle)),
			r.layer(v.Layer),
			r.width(v.Width),
		))
	case *PolygonLine:
		segs := v.Segments()
		if len(segs) == 0 {
			return nil, fmt.Errorf("polygon line needs at least 2 points, got %d", len(v.Points))
		}
		for _, s := range segs {
			items = append(items, r.line(s[0], s[1], v.Layer, v.Width))
		}
	case *RectLine:
		for _, l := range v.Lines() {
			items = append(items, r.line(l.Start, l.End, l.Layer, l.Width))
		}
	case *Text:
		if err := v.Validate(); err != nil {
			return nil, err
		}
		items = append(items, r.text(v))
	case *Pad:
		if err := v.Validate(); err != nil {
			return nil, err
		}
		items = append(items, r.pad(v))
	case *PadArray:
		pads, err := v.Pads()
		if err != nil {
			return nil, err
		}
		for _, p := range pads {
			items = append(items, r.pad(p))
		}
	case *Model:
		if v.Path == "" {
			return nil, errors.New("model path is empty")
		}
		items = append(items, kicadsexp.Node("model",
			kicadsexp.Atom(v.Path),
			kicadsexp.Node("at", r.xyz(v.At)),
			kicadsexp.Node("scale", r.xyz(v.Scale)),
			kicadsexp.Node("rotate", r.xyz(v.Rotate)),
		).Break(2))
	default:
		return nil, fmt.Errorf("unsupported node type %T", n)
	}

	if r.err != nil {
		return nil, r.err
	}
	return items, nil
}

func (r *renderer) num(v float64) kicadsexp.Sexp {
	if !finite(v) && r.err == nil {
		r.err = fmt.Errorf("cannot format non-finite value %v", v)
	}
	return kicadsexp.Symbol(FormatFloat(v))
}

// xy emits (tag x y) with the footprint shift applied.
func (r *renderer) xy(tag string, p geom.Point) *kicadsexp.List {
	p = p.Add(r.shift)
	return kicadsexp.Node(tag, r.num(p.X), r.num(p.Y))
}

// at emits (at x y [rotation]); rotation is normalized and omitted when zero.
func (r *renderer) at(p geom.Point, rotation float64) *kicadsexp.List {
	l := r.xy("at", p)
	if !finite(rotation) {
		r.num(rotation)
		return l
	}
	if rot := geom.NormalizeAngle(rotation); rot != 0 {
		l.Append(r.num(rot))
	}
	return l
}

func (r *renderer) xyz(v geom.XYZ) *kicadsexp.List {
	return kicadsexp.Node("xyz", r.num(v.X), r.num(v.Y), r.num(v.Z))
}

func (r *renderer) layer(l Layer) *kicadsexp.List {
	if !l.Known() && r.err == nil {
		r.err = fmt.Errorf("unknown layer %q", l)
	}
	return kicadsexp.Node("layer", kicadsexp.Atom(string(l)))
}

func (r *renderer) width(w float64) *kicadsexp.List {
	if w < 0 && r.err == nil {
		r.err = fmt.Errorf("negative line width %v", w)
	}
	return kicadsexp.Node("width", r.num(w))
}

func (r *renderer) line(start, end geom.Point, layer Layer, width float64) *kicadsexp.List {
	return kicadsexp.Node("fp_line",
		r.xy("start", start),
		r.xy("end", end),
		r.layer(layer),
		r.width(width),
	)
}

func (r *renderer) text(t *Text) *kicadsexp.List {
	l := kicadsexp.Node("fp_text",
		kicadsexp.Symbol(t.Kind),
		kicadsexp.Atom(t.Text),
		r.at(t.At, t.Rotation),
		r.layer(t.Layer),
	)
	if t.Hidden {
		l.Append(kicadsexp.Symbol("hide"))
	}
	// Font size is written height first.
	font := kicadsexp.Node("font",
		kicadsexp.Node("size", r.num(t.Size.H), r.num(t.Size.W)),
		kicadsexp.Node("thickness", r.num(t.Thickness)),
	)
	l.Break(l.Len())
	return l.Append(kicadsexp.Node("effects", font))
}

func (r *renderer) pad(p *Pad) *kicadsexp.List {
	l := kicadsexp.Node("pad",
		kicadsexp.Atom(p.Number),
		kicadsexp.Symbol(p.Type),
		kicadsexp.Symbol(p.Shape),
		r.at(p.At, p.Rotation),
		kicadsexp.Node("size", r.num(p.Size.W), r.num(p.Size.H)),
	)
	if p.Shape == ShapeTrapezoid {
		l.Append(kicadsexp.Node("rect_delta", r.num(p.TrapezoidDelta.W), r.num(p.TrapezoidDelta.H)))
	}
	if p.Drill.Oval {
		l.Append(kicadsexp.Node("drill", kicadsexp.Symbol("oval"), r.num(p.Drill.Size.W), r.num(p.Drill.Size.H)))
	} else {
		l.Append(kicadsexp.Node("drill", r.num(p.Drill.Size.W)))
	}

	layers := kicadsexp.Node("layers")
	for _, layer := range p.Layers {
		layers.Append(kicadsexp.Atom(string(layer)))
	}
	l.Append(layers)

	if p.Shape == ShapeRoundRect {
		l.Append(kicadsexp.Node("roundrect_rratio", r.num(p.RoundRectRatio)))
	}
	return l
}
