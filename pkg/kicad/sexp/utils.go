// Package sexp provides navigation helpers over kicadsexp trees, shared by
// everything that reads KiCad files back into typed values.
package sexp

import (
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/geom"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/sexp/kicadsexp"
)

// S-expression navigation helpers

// FindNode searches for a child list with the given key (first symbol)
// Example: FindNode(sexp, "at") finds (at 100 50) in a list
func FindNode(s kicadsexp.Sexp, key string) (kicadsexp.Sexp, bool) {
	for _, item := range Items(s) {
		if name, err := GetNodeName(item); err == nil && !item.IsLeaf() && name == key {
			return item, true
		}
	}
	return nil, false
}

// FindAllNodes finds all child lists with the given key
func FindAllNodes(s kicadsexp.Sexp, key string) []kicadsexp.Sexp {
	var results []kicadsexp.Sexp
	for _, item := range Items(s) {
		if item.IsLeaf() {
			continue
		}
		if name, err := GetNodeName(item); err == nil && name == key {
			results = append(results, item)
		}
	}
	return results
}

// Items returns the elements of a list, or nil for atoms.
func Items(s kicadsexp.Sexp) []kicadsexp.Sexp {
	if l, ok := s.(*kicadsexp.List); ok {
		return l.Elements()
	}
	return nil
}

// GetListItems returns all items in a list (excluding the first symbol/key)
// Example: GetListItems((layers F.Cu F.Mask)) returns [F.Cu F.Mask]
func GetListItems(s kicadsexp.Sexp) []kicadsexp.Sexp {
	items := Items(s)
	if len(items) <= 1 {
		return nil
	}
	return items[1:]
}

// GetStrings returns the atom values following the key of a list, skipping
// nested lists.
func GetStrings(s kicadsexp.Sexp) []string {
	var out []string
	for _, item := range GetListItems(s) {
		if v, ok := kicadsexp.Value(item); ok {
			out = append(out, v)
		}
	}
	return out
}

// Typed value extraction helpers

// GetString extracts the text of an atom at the given index in a list.
// Bare and quoted atoms are both accepted.
// Index 0 is the key, 1 is first value, etc.
func GetString(s kicadsexp.Sexp, index int) (string, error) {
	if s.IsLeaf() {
		return "", fmt.Errorf("expected list, got leaf")
	}

	items := Items(s)
	if index < 0 || index >= len(items) {
		return "", fmt.Errorf("index %d out of bounds (length %d)", index, len(items))
	}

	if v, ok := kicadsexp.Value(items[index]); ok {
		return v, nil
	}

	return "", fmt.Errorf("expected atom at index %d, got %T", index, items[index])
}

// GetFloat extracts a float64 value at the given index
func GetFloat(s kicadsexp.Sexp, index int) (float64, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}

	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", str, err)
	}

	return val, nil
}

// GetInt extracts an int value at the given index
func GetInt(s kicadsexp.Sexp, index int) (int, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", str, err)
	}

	return val, nil
}

// Domain-specific extraction helpers

// GetPosition extracts a point and optional rotation from an (at X Y [angle]) node.
// Footprint files store millimeters and degrees, so no unit conversion is applied.
func GetPosition(s kicadsexp.Sexp) (geom.Point, float64, error) {
	key, err := GetNodeName(s)
	if err != nil {
		return geom.Point{}, 0, err
	}
	if key != "at" {
		return geom.Point{}, 0, fmt.Errorf("expected 'at', got %q", key)
	}

	p, err := GetPoint(s)
	if err != nil {
		return geom.Point{}, 0, err
	}

	// Angle is optional
	angle, err := GetFloat(s, 3)
	if err != nil {
		angle = 0
	}

	return p, angle, nil
}

// GetPoint extracts X,Y coordinates from (keyword X Y ...).
// Used for (start X Y), (end X Y), (center X Y), etc.
func GetPoint(s kicadsexp.Sexp) (geom.Point, error) {
	if s.IsLeaf() {
		return geom.Point{}, fmt.Errorf("expected position list")
	}

	x, err := GetFloat(s, 1)
	if err != nil {
		return geom.Point{}, fmt.Errorf("failed to parse X: %w", err)
	}

	y, err := GetFloat(s, 2)
	if err != nil {
		return geom.Point{}, fmt.Errorf("failed to parse Y: %w", err)
	}

	return geom.Pt(x, y), nil
}

// GetSize extracts a (size W H) node.
func GetSize(s kicadsexp.Sexp) (geom.Size, error) {
	p, err := GetPoint(s)
	if err != nil {
		return geom.Size{}, err
	}
	return geom.Sz(p.X, p.Y), nil
}

// GetXYZ extracts the vector from a wrapper such as (at (xyz X Y Z)).
func GetXYZ(s kicadsexp.Sexp) (geom.XYZ, error) {
	node, ok := FindNode(s, "xyz")
	if !ok {
		return geom.XYZ{}, fmt.Errorf("missing xyz")
	}
	var v [3]float64
	for i := range v {
		f, err := GetFloat(node, i+1)
		if err != nil {
			return geom.XYZ{}, fmt.Errorf("failed to parse xyz[%d]: %w", i, err)
		}
		v[i] = f
	}
	return geom.XYZ{X: v[0], Y: v[1], Z: v[2]}, nil
}

// HasSymbol checks if a list contains a specific bare symbol
func HasSymbol(s kicadsexp.Sexp, symbol string) bool {
	for _, item := range Items(s) {
		if sym, ok := item.(kicadsexp.Symbol); ok && string(sym) == symbol {
			return true
		}
	}
	return false
}

// GetNodeName returns the first symbol of a list (the node type/name)
func GetNodeName(s kicadsexp.Sexp) (string, error) {
	if s == nil {
		return "", fmt.Errorf("nil expression")
	}
	if s.IsLeaf() {
		if sym, ok := s.(kicadsexp.Symbol); ok {
			return string(sym), nil
		}
		return "", fmt.Errorf("expected symbol leaf")
	}

	if sym, ok := s.Head().(kicadsexp.Symbol); ok {
		return string(sym), nil
	}

	return "", fmt.Errorf("expected symbol at head of list")
}
