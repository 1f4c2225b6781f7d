// MTL (material library) parser.
package formats

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Color is an RGBA color. Parsed colors always carry A = 1.0.
type Color struct {
	R, G, B, A float64
}

// Material holds the properties of one newmtl block. Nil pointers and empty
// texture paths mark properties the file never set.
type Material struct {
	Name string

	Ambient  *Color // Ka
	Diffuse  *Color // Kd
	Specular *Color // Ks
	Emission *Color // Ke

	Shininess      *float64 // Ns
	OpticalDensity *float64 // Ni
	Dissolve       *float64 // d
	Illum          *int     // illum

	AmbientTex           string // map_Ka
	DiffuseTex           string // map_Kd
	SpecularTex          string // map_Ks
	SpecularHighlightTex string // map_Ns
	DissolveTex          string // map_d
	MapBumpTex           string // map_bump
	BumpTex              string // bump
	DisplacementTex      string // disp
	DecalTex             string // decal
}

// TexturePaths returns the set texture slots in declaration order.
func (m *Material) TexturePaths() []string {
	var paths []string
	for _, p := range []string{
		m.AmbientTex,
		m.DiffuseTex,
		m.SpecularTex,
		m.SpecularHighlightTex,
		m.DissolveTex,
		m.MapBumpTex,
		m.BumpTex,
		m.DisplacementTex,
		m.DecalTex,
	} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// textureSlot maps a texture directive to its field.
func (m *Material) textureSlot(directive string) *string {
	switch directive {
	case "map_Ka":
		return &m.AmbientTex
	case "map_Kd":
		return &m.DiffuseTex
	case "map_Ks":
		return &m.SpecularTex
	case "map_Ns":
		return &m.SpecularHighlightTex
	case "map_d":
		return &m.DissolveTex
	case "map_bump":
		return &m.MapBumpTex
	case "bump":
		return &m.BumpTex
	case "disp":
		return &m.DisplacementTex
	case "decal":
		return &m.DecalTex
	}
	return nil
}

// colorSlot maps a color directive to its field.
func (m *Material) colorSlot(directive string) **Color {
	switch directive {
	case "Ka":
		return &m.Ambient
	case "Kd":
		return &m.Diffuse
	case "Ks":
		return &m.Specular
	case "Ke":
		return &m.Emission
	}
	return nil
}

// MaterialTable is an insertion-ordered set of materials keyed by name.
type MaterialTable struct {
	names     []string
	materials map[string]*Material

	Skipped []SkippedLine
}

// NewMaterialTable creates an empty table.
func NewMaterialTable() *MaterialTable {
	return &MaterialTable{materials: make(map[string]*Material)}
}

// Define creates (or resets in place) the material called name.
func (t *MaterialTable) Define(name string) *Material {
	m := &Material{Name: name}
	if _, exists := t.materials[name]; !exists {
		t.names = append(t.names, name)
	}
	t.materials[name] = m
	return m
}

// Lookup returns the named material.
func (t *MaterialTable) Lookup(name string) (*Material, bool) {
	m, ok := t.materials[name]
	return m, ok
}

// Names returns material names in definition order.
func (t *MaterialTable) Names() []string {
	return t.names
}

// Materials returns the materials in definition order.
func (t *MaterialTable) Materials() []*Material {
	out := make([]*Material, len(t.names))
	for i, name := range t.names {
		out[i] = t.materials[name]
	}
	return out
}

// Len returns the number of materials.
func (t *MaterialTable) Len() int {
	return len(t.names)
}

// Textures returns every texture path referenced by the table, without
// duplicates, in material order then slot order.
func (t *MaterialTable) Textures() []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range t.names {
		for _, p := range t.materials[name].TexturePaths() {
			if seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

func (t *MaterialTable) skip(line int, directive, format string, args ...interface{}) {
	t.Skipped = append(t.Skipped, SkippedLine{
		Line:      line,
		Directive: directive,
		Reason:    fmt.Sprintf(format, args...),
	})
}

// ParseMTL parses a material library from r. Malformed directives are
// dropped and listed in MaterialTable.Skipped; only read errors are returned.
func ParseMTL(r io.Reader) (*MaterialTable, error) {
	table := NewMaterialTable()

	var cur *Material
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), scannerBufferSize)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 || strings.HasPrefix(tokens[0], "#") {
			continue
		}

		directive := tokens[0]
		if directive == "newmtl" {
			if len(tokens) < 2 {
				table.skip(lineNum, directive, "missing material name")
				continue
			}
			cur = table.Define(tokens[1])
			continue
		}

		if !isMaterialDirective(directive) {
			continue
		}
		if cur == nil {
			table.skip(lineNum, directive, "property before newmtl")
			continue
		}

		switch directive {
		case "Ka", "Kd", "Ks", "Ke":
			// Missing components read as 0.
			vals := parseNumbers(tokens[1:], 3)
			*cur.colorSlot(directive) = &Color{R: vals[0], G: vals[1], B: vals[2], A: 1.0}
		case "Ns", "Ni", "d":
			v := parseNumbers(tokens[1:], 1)[0]
			switch directive {
			case "Ns":
				cur.Shininess = &v
			case "Ni":
				cur.OpticalDensity = &v
			case "d":
				cur.Dissolve = &v
			}
		case "illum":
			v := 0
			if len(tokens) > 1 {
				v = parseInteger(tokens[1])
			}
			cur.Illum = &v
		default:
			if len(tokens) < 2 {
				table.skip(lineNum, directive, "missing texture path")
				continue
			}
			*cur.textureSlot(directive) = tokens[1]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading materials: %w", err)
	}

	return table, nil
}

func isMaterialDirective(directive string) bool {
	switch directive {
	case "Ka", "Kd", "Ks", "Ke", "Ns", "Ni", "d", "illum",
		"map_Ka", "map_Kd", "map_Ks", "map_Ns", "map_d", "map_bump", "bump", "disp", "decal":
		return true
	}
	return false
}
