// Package config handles objvarray configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/objvarray/pkg/encoding"
	"github.com/Faultbox/objvarray/pkg/math"
	"github.com/Faultbox/objvarray/pkg/varray"
)

// Config validation errors.
var (
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrInvalidAxis     = errors.New("invalid axis scale")
	ErrInvalidEncoding = errors.New("invalid input encoding")
)

// Output formats.
const (
	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds all converter settings.
type Config struct {
	Build   BuildConfig   `yaml:"build"`
	Output  OutputConfig  `yaml:"output"`
	Input   InputConfig   `yaml:"input"`
	Logging LoggingConfig `yaml:"logging"`
}

// BuildConfig holds vertex array derivation settings.
type BuildConfig struct {
	VertexArray     bool      `yaml:"vertex_array"`     // Derive arrays at all
	Indexed         bool      `yaml:"indexed"`          // Deduplicate into an index buffer
	FlipV           bool      `yaml:"flip_v"`           // v = 1 - v
	AxisScale       []float64 `yaml:"axis_scale"`       // Per-axis multiplier (x, y, z)
	Color           bool      `yaml:"color"`            // Emit diffuse color per vertex
	HexColor        bool      `yaml:"hex_color"`        // Pack colors as 0xAARRGGBB
	StrictMaterials bool      `yaml:"strict_materials"` // Fail on unknown usemtl names
}

// OutputConfig holds serialization settings.
type OutputConfig struct {
	Format string `yaml:"format"` // raw, json or yaml
	Pretty bool   `yaml:"pretty"` // Indent JSON output
}

// InputConfig holds source decoding settings.
type InputConfig struct {
	Encoding string `yaml:"encoding"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			VertexArray: true,
			Indexed:     true,
			FlipV:       true,
			AxisScale:   []float64{1, 1, 1},
		},
		Output: OutputConfig{
			Format: FormatRaw,
		},
		Input: InputConfig{
			Encoding: "utf-8",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that YAML decoding cannot.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatRaw, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format)
	}

	if len(c.Build.AxisScale) != 3 {
		return fmt.Errorf("%w: expected 3 components, got %d", ErrInvalidAxis, len(c.Build.AxisScale))
	}
	for _, v := range c.Build.AxisScale {
		if v == 0 {
			return fmt.Errorf("%w: zero component in %v", ErrInvalidAxis, c.Build.AxisScale)
		}
	}

	if _, err := encoding.Lookup(c.Input.Encoding); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidEncoding, c.Input.Encoding)
	}
	return nil
}

// BuildOptions converts the build section into builder options.
// Call Validate first.
func (c *Config) BuildOptions() varray.Options {
	return varray.Options{
		Indexed:         c.Build.Indexed,
		FlipV:           c.Build.FlipV,
		Axis:            math.Vec3{X: c.Build.AxisScale[0], Y: c.Build.AxisScale[1], Z: c.Build.AxisScale[2]},
		Color:           c.Build.Color || c.Build.HexColor,
		HexColor:        c.Build.HexColor,
		StrictMaterials: c.Build.StrictMaterials,
	}
}
