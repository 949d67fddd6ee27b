package generator

import (
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/footprint"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/geom"
)

func TestJSTXH(t *testing.T) {
	tests := []struct {
		variant string
		name    string
		drill   float64
		last    geom.Point
	}{
		{"2", "JST_XH_B02B-XH-A_1x02_P2.50mm_Vertical", 1.0, geom.Pt(2.5, 0)},
		{"3", "JST_XH_B03B-XH-A_1x03_P2.50mm_Vertical", 0.9, geom.Pt(5, 0)},
		{"20", "JST_XH_B20B-XH-A_1x20_P2.50mm_Vertical", 0.9, geom.Pt(47.5, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			fp := mustBuild(t, JSTXH{}, tt.variant)
			if fp.Name != tt.name {
				t.Errorf("Name = %q, want %q", fp.Name, tt.name)
			}
			if fp.Attribute != footprint.AttrNormal {
				t.Errorf("Attribute = %q, want normal", fp.Attribute)
			}

			pads := mustPads(t, fp)
			first := padByNumber(t, pads, "1")
			if first.Shape != footprint.ShapeRect || !nearPt(first.At, geom.Pt(0, 0)) {
				t.Errorf("pad 1 = %s at %v, want rect at origin", first.Shape, first.At)
			}
			last := pads[len(pads)-1]
			if last.Shape != footprint.ShapeCircle || !nearPt(last.At, tt.last) {
				t.Errorf("last pad = %s at %v, want circle at %v", last.Shape, last.At, tt.last)
			}
			if last.Drill.Size.W != tt.drill {
				t.Errorf("drill = %v, want %v", last.Drill.Size.W, tt.drill)
			}

			want := "${KISYS3DMOD}/Connector_JST.3dshapes/" + tt.name + ".wrl"
			if fp.Model == nil || fp.Model.Path != want {
				t.Errorf("Model = %+v, want path %q", fp.Model, want)
			}
		})
	}
}

func TestJSTXHTextFields(t *testing.T) {
	fp := mustBuild(t, JSTXH{}, "2")

	refs := texts(fp, footprint.TextReference)
	if len(refs) != 1 || refs[0].Layer != footprint.LayerFSilkS {
		t.Fatalf("reference fields = %+v", refs)
	}
	// Courtyard top is the body top (-2.35) grown by 0.5; the text sits
	// half a text height plus 0.2 above it.
	if !near(refs[0].At.Y, -3.55) || !near(refs[0].At.X, 1.25) {
		t.Errorf("reference at %v, want (1.25, -3.55)", refs[0].At)
	}

	vals := texts(fp, footprint.TextValue)
	if len(vals) != 1 || vals[0].Text != fp.Name || vals[0].Layer != footprint.LayerFFab {
		t.Fatalf("value fields = %+v", vals)
	}
	if !near(vals[0].At.Y, 4.6) {
		t.Errorf("value y = %v, want 4.6", vals[0].At.Y)
	}

	users := texts(fp, footprint.TextUser)
	if len(users) != 1 || users[0].Text != "%R" || users[0].Rotation != 0 {
		t.Errorf("user fields = %+v", users)
	}
}

func TestHarwinGecko(t *testing.T) {
	tests := []struct {
		variant  string
		pins     int
		npth     int
		wantName string
	}{
		{"G125-MVX0605L1X", 3, 2, "Harwin_Gecko-G125-MVX0605L1X_2x03_P1.25mm_Vertical"},
		{"G125-MVX0605L0X", 3, 0, "Harwin_Gecko-G125-MVX0605L0X_2x03_P1.25mm_Vertical"},
		{"G125-MVX5005L0X", 25, 0, "Harwin_Gecko-G125-MVX5005L0X_2x25_P1.25mm_Vertical"},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			fp := mustBuild(t, HarwinGecko{}, tt.variant)
			if fp.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", fp.Name, tt.wantName)
			}

			pads := mustPads(t, fp)
			var numbered, holes int
			for _, p := range pads {
				if p.Type == footprint.PadNPTH {
					holes++
					if !p.Drill.Oval {
						t.Errorf("latch hole drill should be oval, got %+v", p.Drill)
					}
					continue
				}
				numbered++
			}
			if numbered != 2*tt.pins || holes != tt.npth {
				t.Errorf("got %d pins and %d holes, want %d and %d", numbered, holes, 2*tt.pins, tt.npth)
			}

			// Odd pins on y=0, even pins one row pitch up.
			if p := padByNumber(t, pads, "3"); !nearPt(p.At, geom.Pt(1.25, 0)) {
				t.Errorf("pad 3 at %v, want (1.25, 0)", p.At)
			}
			if p := padByNumber(t, pads, "2"); !nearPt(p.At, geom.Pt(0, -1.25)) {
				t.Errorf("pad 2 at %v, want (0, -1.25)", p.At)
			}
		})
	}
}

func TestLGA(t *testing.T) {
	fp := mustBuild(t, LGA{}, "lga-16-3x3")
	if fp.Name != "LGA-16_3x3mm_P0.5mm" {
		t.Errorf("Name = %q", fp.Name)
	}
	if fp.Attribute != footprint.AttrSMD {
		t.Errorf("Attribute = %q, want smd", fp.Attribute)
	}

	pads := mustPads(t, fp)
	if len(pads) != 16 {
		t.Fatalf("got %d pads, want 16", len(pads))
	}
	seen := map[string]bool{}
	for _, p := range pads {
		if seen[p.Number] {
			t.Errorf("duplicate pad number %s", p.Number)
		}
		seen[p.Number] = true
		if p.Type != footprint.PadSMD || !p.Drill.IsZero() {
			t.Errorf("pad %s should be an undrilled SMD pad", p.Number)
		}
	}

	// x = 3/2 - 0.35/2 + 0.2
	tests := []struct {
		number string
		at     geom.Point
	}{
		{"1", geom.Pt(-1.525, -1)},
		{"5", geom.Pt(-1.525, 1)},
		{"6", geom.Pt(-0.5, 1.525)},
		{"9", geom.Pt(1.525, 1)},
		{"14", geom.Pt(0.5, -1.525)},
		{"16", geom.Pt(-0.5, -1.525)},
	}
	for _, tt := range tests {
		if p := padByNumber(t, pads, tt.number); !nearPt(p.At, tt.at) {
			t.Errorf("pad %s at %v, want %v", tt.number, p.At, tt.at)
		}
	}
}

func TestHammond1551(t *testing.T) {
	fp := mustBuild(t, Hammond1551{}, "1551K")
	if fp.Name != "Hammond_1551K_80x40" {
		t.Errorf("Name = %q", fp.Name)
	}
	if fp.Attribute != footprint.AttrVirtual {
		t.Errorf("Attribute = %q, want virtual", fp.Attribute)
	}
	if fp.Model != nil {
		t.Errorf("Model = %+v, want none", fp.Model)
	}
	if !strings.HasSuffix(fp.Description, "/1551K.pdf") {
		t.Errorf("Description = %q", fp.Description)
	}

	pads := mustPads(t, fp)
	if len(pads) != 2 {
		t.Fatalf("got %d pads, want 2", len(pads))
	}
	// 74/2 - 17, 34/2 - 2.75
	if !nearPt(pads[0].At, geom.Pt(20, 14.25)) || !nearPt(pads[1].At, geom.Pt(-20, -14.25)) {
		t.Errorf("holes at %v and %v", pads[0].At, pads[1].At)
	}

	for _, kind := range []footprint.TextKind{footprint.TextReference, footprint.TextValue} {
		for _, txt := range texts(fp, kind) {
			if !txt.Hidden {
				t.Errorf("%s text should be hidden", kind)
			}
		}
	}

	// The two board outline halves meet through the corner arcs.
	var arcs []*footprint.Arc
	var halves []*footprint.PolygonLine
	for _, n := range fp.Children() {
		switch v := n.(type) {
		case *footprint.Arc:
			arcs = append(arcs, v)
		case *footprint.PolygonLine:
			halves = append(halves, v)
		}
	}
	if len(arcs) != 2 || len(halves) != 2 {
		t.Fatalf("got %d arcs and %d outline halves", len(arcs), len(halves))
	}
	for i := range arcs {
		pts := halves[i].Points
		if !nearPt(arcs[i].End(), pts[len(pts)-1]) {
			t.Errorf("arc %d ends at %v, outline ends at %v", i, arcs[i].End(), pts[len(pts)-1])
		}
		if !nearPt(arcs[i].Start, halves[1-i].Points[0]) {
			t.Errorf("arc %d starts at %v, other outline starts at %v", i, arcs[i].Start, halves[1-i].Points[0])
		}
	}
}

func TestSolderWire(t *testing.T) {
	fam, ok := Lookup("solder-wire")
	if !ok {
		t.Fatal("solder-wire not registered")
	}
	if got := len(fam.Variants()); got != 21 {
		t.Errorf("Variants() = %d, want 21", got)
	}

	tests := []struct {
		variant string
		name    string
		holes   int
	}{
		{"0.25sqmm", "SolderWire-0.25sqmm_1x01_D0.65mm_OD1.70mm", 0},
		{"0.25sqmm-relieve", "SolderWire-0.25sqmm_1x01_D0.65mm_OD1.70mm_Relieve", 1},
		{"0.25sqmm-relieve2x", "SolderWire-0.25sqmm_1x01_D0.65mm_OD1.70mm_Relieve2x", 2},
	}
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			fp := mustBuild(t, fam, tt.variant)
			if fp.Name != tt.name {
				t.Errorf("Name = %q, want %q", fp.Name, tt.name)
			}
			if fp.Attribute != footprint.AttrVirtual {
				t.Errorf("Attribute = %q, want virtual", fp.Attribute)
			}

			pads := mustPads(t, fp)
			if len(pads) != 1+tt.holes {
				t.Fatalf("got %d pads, want %d", len(pads), 1+tt.holes)
			}
			pad := padByNumber(t, pads, "1")
			if pad.Shape != footprint.ShapeRoundRect || !near(pad.Size.W, 1.85) || !near(pad.Drill.Size.W, 0.85) {
				t.Errorf("solder pad = %+v", pad.PadOptions)
			}
			// Corner radius is capped at 0.25mm.
			if r := pad.RoundRectRatio * pad.Size.W; !near(r, 0.25) {
				t.Errorf("corner radius = %v, want 0.25", r)
			}
			// Holes sit two bend radii (6 outer diameters) apart.
			for i, p := range pads[1:] {
				if p.Type != footprint.PadNPTH || !near(p.At.Y, float64(i+1)*10.2) || !near(p.Drill.Size.W, 2.2) {
					t.Errorf("hole %d = %+v", i, p.PadOptions)
				}
			}

			users := texts(fp, footprint.TextUser)
			if len(users) != 1 {
				t.Fatalf("got %d user texts", len(users))
			}
			if wantRot := map[bool]float64{true: 90, false: 0}[tt.holes > 0]; users[0].Rotation != wantRot {
				t.Errorf("%%R rotation = %v, want %v", users[0].Rotation, wantRot)
			}
		})
	}
}

func TestParseWires(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"valid", "- {area: 0.5, diameter: 0.9, outer_diameter: 2.1, insulation: PVC, source: x}", 1, false},
		{"empty", "", 0, false},
		{"not a list", "area: 1", 0, true},
		{"insulation thinner than conductor", "- {area: 0.5, diameter: 0.9, outer_diameter: 0.8}", 0, true},
		{"no area", "- {diameter: 0.9, outer_diameter: 2.1}", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wires, err := ParseWires([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Error("ParseWires() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWires() unexpected error: %v", err)
			}
			if len(wires) != tt.want {
				t.Errorf("ParseWires() = %d wires, want %d", len(wires), tt.want)
			}
		})
	}
}
