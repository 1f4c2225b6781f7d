// Package export serializes derived vertex arrays and dumps parsed model
// contents for inspection.
package export

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/objvarray/pkg/varray"
)

// Record is the structured form of a builder's output. Optional keys are
// present only when the matching attribute is in use; Vertex is always
// present and is null when the mesh has no positions.
type Record struct {
	Vertex []float64  `json:"vertex" yaml:"vertex"`
	Normal *[]float64 `json:"normal,omitempty" yaml:"normal,omitempty"`
	UV     *[]float64 `json:"uv,omitempty" yaml:"uv,omitempty"`
	Color  any        `json:"color,omitempty" yaml:"color,omitempty"` // []float64 or []uint32
	Face   *[]uint32  `json:"face,omitempty" yaml:"face,omitempty"`
}

// NewRecord collects the builder's flattened arrays, building them first if
// needed.
func NewRecord(b *varray.Builder) Record {
	var rec Record

	if v, ok := b.Vertices(); ok {
		rec.Vertex = v
	}
	if n, ok := b.Normals(); ok {
		rec.Normal = &n
	}
	if uv, ok := b.UVs(); ok {
		rec.UV = &uv
	}
	if b.UseHexColor() {
		if c, ok := b.PackedColors(); ok {
			rec.Color = c
		}
	} else if c, ok := b.Colors(); ok {
		rec.Color = c
	}
	if f, ok := b.Faces(); ok {
		rec.Face = &f
	}
	return rec
}

// WriteJSON writes rec as a single JSON document followed by a newline.
func WriteJSON(w io.Writer, rec Record, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(rec)
}

// WriteYAML writes rec as a YAML document.
func WriteYAML(w io.Writer, rec Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return err
	}
	return enc.Close()
}
