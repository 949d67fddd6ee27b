package footprint

import (
	"math"
	"testing"
	"time"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/geom"
)

var fixedTime = time.Unix(0x5B307E4C, 0)

func mustFootprint(t *testing.T, name string, nodes ...Node) *Footprint {
	t.Helper()
	fp, err := NewFootprint(name)
	if err != nil {
		t.Fatalf("NewFootprint() unexpected error: %v", err)
	}
	if err := fp.Append(nodes...); err != nil {
		t.Fatalf("Append() unexpected error: %v", err)
	}
	return fp
}

func mustPad(t *testing.T, o PadOptions) *Pad {
	t.Helper()
	p, err := NewPad(o)
	if err != nil {
		t.Fatalf("NewPad() unexpected error: %v", err)
	}
	return p
}

func mustText(t *testing.T, kind TextKind, text string, at geom.Point, layer Layer) *Text {
	t.Helper()
	txt, err := NewText(kind, text, at, layer)
	if err != nil {
		t.Fatalf("NewText() unexpected error: %v", err)
	}
	return txt
}

func mustMarshal(t *testing.T, fp *Footprint) string {
	t.Helper()
	data, err := Marshal(fp, WithTimestamp(fixedTime))
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	return string(data)
}

func smdPad(number string, at geom.Point) PadOptions {
	return PadOptions{
		Number: number,
		Type:   PadSMD,
		Shape:  ShapeRect,
		At:     at,
		Size:   geom.Sz(1, 0.5),
		Layers: LayersSMD,
	}
}

func thtPad() PadOptions {
	return PadOptions{
		Type:   PadTHT,
		Shape:  ShapeCircle,
		Size:   geom.Sz(1.7, 1.7),
		Drill:  RoundDrill(1),
		Layers: LayersTHT,
	}
}

func nan() float64 {
	return math.NaN()
}
