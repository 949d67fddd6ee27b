// Package klc holds the KiCad Library Convention parameters that generators
// use for line widths, clearances and courtyard sizing. Values can be
// overridden from a YAML file; anything not mentioned keeps its default.
package klc

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/footprint"
)

// CourtyardOffset is the courtyard clearance around the component body,
// by component class.
type CourtyardOffset struct {
	Default   float64 `yaml:"default"`
	Connector float64 `yaml:"connector"`
	BGA       float64 `yaml:"bga"`
}

// Config is a set of KLC parameters. All lengths are in millimeters.
type Config struct {
	SilkLineWidth      float64         `yaml:"silk_line_width"`
	SilkPadClearance   float64         `yaml:"silk_pad_clearance"`
	SilkFabOffset      float64         `yaml:"silk_fab_offset"`
	FabLineWidth       float64         `yaml:"fab_line_width"`
	EdgeCutsLineWidth  float64         `yaml:"edge_cuts_line_width"`
	CourtyardLineWidth float64         `yaml:"courtyard_line_width"`
	CourtyardGrid      float64         `yaml:"courtyard_grid"`
	CourtyardOffset    CourtyardOffset `yaml:"courtyard_offset"`
	TextSize           []float64       `yaml:"text_size"`
	TextThickness      float64         `yaml:"text_thickness"`
	ModelPrefix        string          `yaml:"3d_model_prefix"`
}

// Default returns the KLC v3 parameter set.
func Default() *Config {
	return &Config{
		SilkLineWidth:      0.12,
		SilkPadClearance:   0.2,
		SilkFabOffset:      0.11,
		FabLineWidth:       0.1,
		EdgeCutsLineWidth:  0.1,
		CourtyardLineWidth: 0.05,
		CourtyardGrid:      0.01,
		CourtyardOffset: CourtyardOffset{
			Default:   0.25,
			Connector: 0.5,
			BGA:       1,
		},
		TextSize:      []float64{footprint.DefaultTextSize, footprint.DefaultTextSize},
		TextThickness: footprint.DefaultTextThickness,
		ModelPrefix:   "${KISYS3DMOD}/",
	}
}

// Load reads a YAML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Read decodes YAML from r on top of the defaults and validates the result.
// Unknown keys are rejected so that typos do not silently fall back to
// defaults.
func Read(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that widths and the courtyard grid are positive and that
// offsets are not negative. Infinite and NaN values are rejected.
func (c *Config) Validate() error {
	positive := []struct {
		field string
		value float64
	}{
		{"silk_line_width", c.SilkLineWidth},
		{"fab_line_width", c.FabLineWidth},
		{"edge_cuts_line_width", c.EdgeCutsLineWidth},
		{"courtyard_line_width", c.CourtyardLineWidth},
		{"courtyard_grid", c.CourtyardGrid},
		{"text_thickness", c.TextThickness},
	}
	for _, p := range positive {
		if !finitePositive(p.value) {
			return &footprint.ConfigurationError{Field: p.field, Value: p.value, Reason: "must be positive"}
		}
	}

	nonNegative := []struct {
		field string
		value float64
	}{
		{"silk_pad_clearance", c.SilkPadClearance},
		{"silk_fab_offset", c.SilkFabOffset},
		{"courtyard_offset.default", c.CourtyardOffset.Default},
		{"courtyard_offset.connector", c.CourtyardOffset.Connector},
		{"courtyard_offset.bga", c.CourtyardOffset.BGA},
	}
	for _, p := range nonNegative {
		if !(p.value >= 0) || math.IsInf(p.value, 0) {
			return &footprint.ConfigurationError{Field: p.field, Value: p.value, Reason: "must not be negative"}
		}
	}

	if len(c.TextSize) != 2 || !finitePositive(c.TextSize[0]) || !finitePositive(c.TextSize[1]) {
		return &footprint.ConfigurationError{Field: "text_size", Value: c.TextSize, Reason: "must be two positive numbers"}
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// SilkPadOffset is the distance from a pad edge to the center of a silkscreen
// line that clears it.
func (c *Config) SilkPadOffset() float64 {
	return c.SilkPadClearance + c.SilkLineWidth/2
}

// ModelPath returns the 3D model path for a footprint in library lib.
func (c *Config) ModelPath(lib, name string) string {
	return fmt.Sprintf("%s%s.3dshapes/%s.wrl", c.ModelPrefix, lib, name)
}
