package footprint

import (
	"errors"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/geom"
)

func TestPadArrayLayout(t *testing.T) {
	center := geom.Pt(0, 0)

	tests := []struct {
		name        string
		array       PadArray
		wantNumbers []string
		wantAt      []geom.Point
	}{
		{
			name:        "five pads along x",
			array:       PadArray{Pincount: 5, Spacing: geom.Pt(2, 0), Initial: 1, Increment: 1},
			wantNumbers: []string{"1", "2", "3", "4", "5"},
			wantAt:      []geom.Point{geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(4, 0), geom.Pt(6, 0), geom.Pt(8, 0)},
		},
		{
			name:        "one row of an interleaved pair",
			array:       PadArray{Pincount: 3, Spacing: geom.Pt(1.25, 0), Initial: 1, Increment: 2},
			wantNumbers: []string{"1", "3", "5"},
			wantAt:      []geom.Point{geom.Pt(0, 0), geom.Pt(1.25, 0), geom.Pt(2.5, 0)},
		},
		{
			name:        "second row shifted by start",
			array:       PadArray{Pincount: 3, Spacing: geom.Pt(1.25, 0), Start: geom.Pt(0, -1.25), Initial: 2, Increment: 2},
			wantNumbers: []string{"2", "4", "6"},
			wantAt:      []geom.Point{geom.Pt(0, -1.25), geom.Pt(1.25, -1.25), geom.Pt(2.5, -1.25)},
		},
		{
			name:        "zero initial and increment default to one",
			array:       PadArray{Pincount: 3, Spacing: geom.Pt(0, 2.54)},
			wantNumbers: []string{"1", "2", "3"},
			wantAt:      []geom.Point{geom.Pt(0, 0), geom.Pt(0, 2.54), geom.Pt(0, 5.08)},
		},
		{
			name:        "centered with negative spacing",
			array:       PadArray{Pincount: 4, Spacing: geom.Pt(0, -2), Center: &center, Initial: 5},
			wantNumbers: []string{"5", "6", "7", "8"},
			wantAt:      []geom.Point{geom.Pt(0, 3), geom.Pt(0, 1), geom.Pt(0, -1), geom.Pt(0, -3)},
		},
		{
			name:        "diagonal spacing",
			array:       PadArray{Pincount: 2, Spacing: geom.Pt(1, 1), Start: geom.Pt(-1, -1)},
			wantNumbers: []string{"1", "2"},
			wantAt:      []geom.Point{geom.Pt(-1, -1), geom.Pt(0, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.array.Pad = thtPad()
			arr, err := NewPadArray(tt.array)
			if err != nil {
				t.Fatalf("NewPadArray() unexpected error: %v", err)
			}
			pads, err := arr.Pads()
			if err != nil {
				t.Fatalf("Pads() unexpected error: %v", err)
			}
			if len(pads) != len(tt.wantNumbers) {
				t.Fatalf("got %d pads, want %d", len(pads), len(tt.wantNumbers))
			}
			for i, p := range pads {
				if p.Number != tt.wantNumbers[i] {
					t.Errorf("pad %d number = %q, want %q", i, p.Number, tt.wantNumbers[i])
				}
				if !p.At.Equal(tt.wantAt[i]) {
					t.Errorf("pad %d at = %v, want %v", i, p.At, tt.wantAt[i])
				}
			}
		})
	}
}

func TestPadArrayFirstShape(t *testing.T) {
	arr, err := NewPadArray(PadArray{Pincount: 3, Spacing: geom.Pt(2.54, 0), Pad: thtPad(), FirstShape: ShapeRect})
	if err != nil {
		t.Fatalf("NewPadArray() unexpected error: %v", err)
	}
	pads, err := arr.Pads()
	if err != nil {
		t.Fatal(err)
	}
	want := []PadShape{ShapeRect, ShapeCircle, ShapeCircle}
	for i, p := range pads {
		if p.Shape != want[i] {
			t.Errorf("pad %d shape = %s, want %s", i, p.Shape, want[i])
		}
	}

	// Expanding again gives the same result; nothing is cached.
	again, _ := arr.Pads()
	if again[0].Shape != ShapeRect || again[1].Shape != ShapeCircle {
		t.Errorf("second expansion differs: %s %s", again[0].Shape, again[1].Shape)
	}
	if arr.Pad.Shape != ShapeCircle {
		t.Errorf("template shape changed to %s", arr.Pad.Shape)
	}
}

func TestPadArrayInvalid(t *testing.T) {
	tests := []struct {
		name     string
		array    PadArray
		wantConf bool
	}{
		{name: "zero pins", array: PadArray{Pincount: 0, Pad: thtPad()}, wantConf: true},
		{name: "negative pins", array: PadArray{Pincount: -3, Pad: thtPad()}, wantConf: true},
		{name: "bad template", array: PadArray{Pincount: 2, Pad: PadOptions{Type: PadTHT, Shape: "hexagon"}}},
		{name: "bad first shape", array: PadArray{Pincount: 2, Pad: thtPad(), FirstShape: "star"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPadArray(tt.array)
			if err == nil {
				t.Fatal("NewPadArray() expected error, got nil")
			}
			var ce *ConfigurationError
			var ve *ValidationError
			if tt.wantConf && !errors.As(err, &ce) {
				t.Errorf("error = %v, want ConfigurationError", err)
			}
			if !tt.wantConf && !errors.As(err, &ve) {
				t.Errorf("error = %v, want ValidationError", err)
			}
		})
	}

	// An array built as a literal is checked again on expansion.
	lit := &PadArray{Pincount: 0, Pad: thtPad()}
	if _, err := lit.Pads(); err == nil {
		t.Error("Pads() expected error for zero pincount")
	}
	var se *SerializationError
	_, err := Marshal(mustFootprint(t, "Empty", lit))
	if !errors.As(err, &se) || se.Path != "PadArray[0]" {
		t.Errorf("Marshal() error = %v, want SerializationError at PadArray[0]", err)
	}
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Errorf("Marshal() error = %v does not wrap ConfigurationError", err)
	}
}

func TestPadArraySerialized(t *testing.T) {
	arr, err := NewPadArray(PadArray{Pincount: 5, Spacing: geom.Pt(2, 0), Pad: thtPad(), FirstShape: ShapeRect})
	if err != nil {
		t.Fatal(err)
	}
	got := mustMarshal(t, mustFootprint(t, "Row", arr))

	if n := strings.Count(got, "(pad "); n != 5 {
		t.Errorf("got %d pads, want 5:\n%s", n, got)
	}
	for _, want := range []string{
		"(pad 1 thru_hole rect (at 0 0) (size 1.7 1.7) (drill 1) (layers *.Cu *.Mask))",
		"(pad 5 thru_hole circle (at 8 0) (size 1.7 1.7) (drill 1) (layers *.Cu *.Mask))",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in\n%s", want, got)
		}
	}
}

func TestFootprintPadsIncludesTranslations(t *testing.T) {
	arr, err := NewPadArray(PadArray{Pincount: 2, Spacing: geom.Pt(1, 0), Pad: thtPad()})
	if err != nil {
		t.Fatal(err)
	}
	tr, err := NewTranslation(10, 0, arr)
	if err != nil {
		t.Fatal(err)
	}
	fp := mustFootprint(t, "Pads", mustPad(t, smdPad("3", geom.Pt(0, 5))), tr)

	pads, err := fp.Pads()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]geom.Point{"3": geom.Pt(0, 5), "1": geom.Pt(10, 0), "2": geom.Pt(11, 0)}
	if len(pads) != len(want) {
		t.Fatalf("got %d pads, want %d", len(pads), len(want))
	}
	for _, p := range pads {
		if !p.At.Equal(want[p.Number]) {
			t.Errorf("pad %s at %v, want %v", p.Number, p.At, want[p.Number])
		}
	}
}
