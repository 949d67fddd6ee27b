package generator

import (
	_ "embed"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/footprint"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/klc"
)

//go:embed solder_wire.yaml
var solderWireYAML []byte

// Wire describes a wire gauge for SolderWire.
type Wire struct {
	Area          float64 `yaml:"area"` // conductor cross section, mm²
	Diameter      float64 `yaml:"diameter"`
	OuterDiameter float64 `yaml:"outer_diameter"`
	Insulation    string  `yaml:"insulation"`
	Source        string  `yaml:"source"`
}

// bendRadius is the minimum bend radius assumed for strain relief.
func (w Wire) bendRadius() float64 { return w.OuterDiameter * 3 }

func (w Wire) validate() error {
	if !(w.Area > 0) {
		return &footprint.ConfigurationError{Field: "area", Value: w.Area, Reason: "must be positive"}
	}
	if !(w.Diameter > 0) || !(w.OuterDiameter > w.Diameter) {
		return &footprint.ConfigurationError{Field: "outer_diameter", Value: w.OuterDiameter, Reason: "must exceed a positive conductor diameter"}
	}
	return nil
}

// ParseWires decodes a YAML list of wire definitions.
func ParseWires(data []byte) ([]Wire, error) {
	var wires []Wire
	if err := yaml.Unmarshal(data, &wires); err != nil {
		return nil, fmt.Errorf("failed to parse wire definitions: %w", err)
	}
	for i, w := range wires {
		if err := w.validate(); err != nil {
			return nil, fmt.Errorf("wire %d: %w", i, err)
		}
	}
	return wires, nil
}

// relief is a strain relief style: the wire is fed through count
// non-plated holes before reaching the solder pad.
type relief struct {
	key         string
	name        string
	description string
	tag         string
	count       int
}

var reliefs = []relief{
	{key: "", count: 0},
	{key: "relieve", name: "_Relieve", description: " with feed through strain relieve", tag: "strain-relieve", count: 1},
	{key: "relieve2x", name: "_Relieve2x", description: " with double feed through strain relieve", tag: "double-strain-relieve", count: 2},
}

// SolderWire generates pads for soldering a wire directly to the board,
// optionally with feed-through strain relief holes.
type SolderWire struct {
	Wires []Wire
}

func init() {
	wires, err := ParseWires(solderWireYAML)
	if err != nil {
		panic(err)
	}
	Register(SolderWire{Wires: wires})
}

func (SolderWire) Name() string    { return "solder-wire" }
func (SolderWire) Library() string { return "Connector_Wire" }

// Variants are "<area>sqmm" optionally followed by "-relieve" or
// "-relieve2x".
func (s SolderWire) Variants() []string {
	var v []string
	for _, w := range s.Wires {
		for _, r := range reliefs {
			v = append(v, wireVariant(w, r))
		}
	}
	return v
}

func wireVariant(w Wire, r relief) string {
	k := fmt.Sprintf("%.2fsqmm", w.Area)
	if r.key != "" {
		k += "-" + r.key
	}
	return k
}

func (s SolderWire) Build(variant string, cfg *klc.Config) (*footprint.Footprint, error) {
	for _, w := range s.Wires {
		for _, r := range reliefs {
			if wireVariant(w, r) == variant {
				return buildSolderWire(w, r, cfg)
			}
		}
	}
	return nil, unknownVariant(s, variant)
}

func buildSolderWire(w Wire, r relief, cfg *klc.Config) (*footprint.Footprint, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("SolderWire-%.2fsqmm_1x01_D%.2fmm_OD%.2fmm%s", w.Area, w.Diameter, w.OuterDiameter, r.name)
	descr := fmt.Sprintf("Soldered wire connection%s, for %.2f square mm wire, %s insulation, "+
		"conductor diameter %.2fmm, outer diameter %.2fmm, size source %s, bend radius 3 times outer diameter",
		r.description, w.Area, w.Insulation, w.Diameter, w.OuterDiameter, w.Source)
	tags := []string{"connector", "wire", fmt.Sprintf("%.2fsqmm", w.Area)}
	if r.tag != "" {
		tags = append(tags, r.tag)
	}
	b := newBuilder(cfg, name, descr, tags...)
	b.attr(footprint.AttrVirtual)

	padDrill := w.Diameter + 0.2
	padSize := padDrill + 1
	npthDrill := w.OuterDiameter + 0.5
	pitch := w.bendRadius() * 2
	od := w.OuterDiameter / 2
	silkPadOff := cfg.SilkPadOffset()

	// Corner radius is a quarter of the pad but at most 0.25mm.
	b.pad(footprint.PadOptions{
		Number:         "1",
		Type:           footprint.PadTHT,
		Shape:          footprint.ShapeRoundRect,
		Size:           geom.Sz(padSize, padSize),
		Drill:          footprint.RoundDrill(padDrill),
		Layers:         footprint.LayersTHT,
		RoundRectRatio: math.Min(0.25, 0.25/padSize),
	})
	for i := 1; i <= r.count; i++ {
		b.pad(footprint.PadOptions{
			Type:   footprint.PadNPTH,
			Shape:  footprint.ShapeCircle,
			At:     geom.Pt(0, float64(i)*pitch),
			Size:   geom.Sz(npthDrill, npthDrill),
			Drill:  footprint.RoundDrill(npthDrill),
			Layers: footprint.LayersNPTH,
		})
	}

	// The wire runs on the top side to the first hole, then alternates
	// between bottom and top for every further hole.
	fabSide := func(i int) footprint.Layer {
		if i%2 == 0 {
			return footprint.LayerFFab
		}
		return footprint.LayerBFab
	}
	for i := 0; i <= r.count; i++ {
		b.add(footprint.NewCircle(geom.Pt(0, float64(i)*pitch), od, footprint.LayerFFab, cfg.FabLineWidth))
		if i > 0 && r.count > 1 {
			b.add(footprint.NewCircle(geom.Pt(0, float64(i)*pitch), od, footprint.LayerBFab, cfg.FabLineWidth))
		}
	}
	for i := 0; i < r.count; i++ {
		sy, ey := float64(i)*pitch, float64(i+1)*pitch
		layer := fabSide(i)
		b.add(
			footprint.NewLine(geom.Pt(-od, sy), geom.Pt(-od, ey), layer, cfg.FabLineWidth),
			footprint.NewLine(geom.Pt(od, sy), geom.Pt(od, ey), layer, cfg.FabLineWidth),
		)
	}

	// Silkscreen follows the wire and stops where it meets the clearance
	// circle around each relief hole.
	silkX := od + cfg.SilkFabOffset
	clearance := npthDrill/2 + silkPadOff
	silkY := 0.0
	if silkX < clearance {
		silkY = math.Sqrt(clearance*clearance - silkX*silkX)
	}
	silkSide := func(layer footprint.Layer, top, bottom float64) {
		b.add(
			footprint.NewLine(geom.Pt(silkX, top), geom.Pt(silkX, bottom), layer, cfg.SilkLineWidth),
			footprint.NewLine(geom.Pt(-silkX, top), geom.Pt(-silkX, bottom), layer, cfg.SilkLineWidth),
		)
	}
	if r.count > 0 {
		top := padSize/2 + silkPadOff
		if silkX > top {
			top = 0
		}
		silkSide(footprint.LayerFSilkS, top, pitch-silkY)
	}
	for i := 0; i < r.count-1; i++ {
		layer := footprint.LayerBSilkS
		if i%2 == 1 {
			layer = footprint.LayerFSilkS
		}
		silkSide(layer, float64(i+1)*pitch+silkY, float64(i+2)*pitch-silkY)
	}

	// Courtyards: one around the pad and the run to the first hole, then
	// one per further segment on the side the wire is on.
	crtydOff := cfg.CourtyardOffset.Connector
	crtydX := math.Max(padSize, npthDrill)/2 + crtydOff
	top := -math.Max(padSize, w.OuterDiameter)/2 - crtydOff
	bottom := -top
	mainBottom := bottom
	if r.count > 0 {
		bottom = pitch + npthDrill/2 + crtydOff
		mainBottom = float64(r.count)*pitch + npthDrill/2 + crtydOff
	}
	crtyd := func(layer footprint.Layer, top, bottom float64) {
		rl := footprint.NewRectLine(geom.Pt(-crtydX, top), geom.Pt(crtydX, bottom), layer, cfg.CourtyardLineWidth)
		rl.Grid = cfg.CourtyardGrid
		b.add(rl)
	}
	crtyd(footprint.LayerFCrtYd, top, bottom)
	if r.count > 0 {
		layer := footprint.LayerFCrtYd
		if r.count%2 == 1 {
			layer = footprint.LayerBCrtYd
		}
		hole := float64(r.count) * pitch
		crtyd(layer, hole-npthDrill/2-crtydOff, hole+npthDrill/2+crtydOff)
	}
	for i := 0; i < r.count-1; i++ {
		layer := footprint.LayerBCrtYd
		if i%2 == 1 {
			layer = footprint.LayerFCrtYd
		}
		crtyd(layer, float64(i+1)*pitch-npthDrill/2-crtydOff, float64(i+2)*pitch+npthDrill/2+crtydOff)
	}

	body := geom.NewRect(geom.Pt(-od, -od), geom.Pt(od, od+float64(r.count)*pitch))
	courtyard := geom.NewRect(geom.Pt(-crtydX, top), geom.Pt(crtydX, mainBottom)).RoundTo(cfg.CourtyardGrid)
	b.textFields(body, courtyard, true)

	b.model(SolderWire{}.Library())
	return b.done()
}
