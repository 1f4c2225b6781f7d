// OBJ (Wavefront geometry) format parser.
package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/objvarray/pkg/math"
)

// DefaultMaterial is the group name used for faces declared before any usemtl.
const DefaultMaterial = "none"

// NoIndex marks an absent uv or normal component in a FaceVertexRef.
const NoIndex = -1

// Vertex is a position (x, y, z, w). W defaults to 1.0.
type Vertex = math.Vec4

// UV is a texture coordinate (u, v, w). W defaults to 0.0.
type UV = math.Vec3

// Normal is a vertex normal (x, y, z).
type Normal = math.Vec3

// ParamPoint is a parameter-space point with 1 to 3 components.
type ParamPoint []float64

// FaceVertexRef is one face corner. Indices are 0-based; VT and VN are
// NoIndex when the corner does not reference them.
type FaceVertexRef struct {
	V  int
	VT int
	VN int
}

// HasUV reports whether the corner references a texture coordinate.
func (r FaceVertexRef) HasUV() bool { return r.VT != NoIndex }

// HasNormal reports whether the corner references a normal.
func (r FaceVertexRef) HasNormal() bool { return r.VN != NoIndex }

// String returns the corner in OBJ notation (1-based).
func (r FaceVertexRef) String() string {
	switch {
	case r.HasUV() && r.HasNormal():
		return fmt.Sprintf("%d/%d/%d", r.V+1, r.VT+1, r.VN+1)
	case r.HasNormal():
		return fmt.Sprintf("%d//%d", r.V+1, r.VN+1)
	case r.HasUV():
		return fmt.Sprintf("%d/%d", r.V+1, r.VT+1)
	default:
		return strconv.Itoa(r.V + 1)
	}
}

// Face is a polygon with its material and smoothing state.
type Face struct {
	Material string
	Smooth   bool
	Refs     []FaceVertexRef
}

// FaceGroup holds the faces that use one material.
type FaceGroup struct {
	Material string
	Faces    []Face
}

// FaceGroups is an insertion-ordered mapping from material name to faces.
type FaceGroups struct {
	groups []*FaceGroup
	index  map[string]int
}

// NewFaceGroups creates an empty group list.
func NewFaceGroups() *FaceGroups {
	return &FaceGroups{index: make(map[string]int)}
}

// Ensure returns the group for material, creating it at the end if unseen.
func (g *FaceGroups) Ensure(material string) *FaceGroup {
	if i, ok := g.index[material]; ok {
		return g.groups[i]
	}
	grp := &FaceGroup{Material: material}
	g.index[material] = len(g.groups)
	g.groups = append(g.groups, grp)
	return grp
}

// Get returns the group for material.
func (g *FaceGroups) Get(material string) (*FaceGroup, bool) {
	i, ok := g.index[material]
	if !ok {
		return nil, false
	}
	return g.groups[i], true
}

// Groups returns the groups in insertion order.
func (g *FaceGroups) Groups() []*FaceGroup {
	return g.groups
}

// Names returns the material names in insertion order.
func (g *FaceGroups) Names() []string {
	names := make([]string, len(g.groups))
	for i, grp := range g.groups {
		names[i] = grp.Material
	}
	return names
}

// Len returns the number of groups.
func (g *FaceGroups) Len() int {
	return len(g.groups)
}

// FaceCount returns the number of faces across all groups.
func (g *FaceGroups) FaceCount() int {
	n := 0
	for _, grp := range g.groups {
		n += len(grp.Faces)
	}
	return n
}

// CornerCount returns the number of face corners across all groups.
func (g *FaceGroups) CornerCount() int {
	n := 0
	for _, grp := range g.groups {
		for _, f := range grp.Faces {
			n += len(f.Refs)
		}
	}
	return n
}

// prune drops groups that never received a face.
func (g *FaceGroups) prune() {
	kept := g.groups[:0]
	g.index = make(map[string]int, len(g.groups))
	for _, grp := range g.groups {
		if len(grp.Faces) == 0 {
			continue
		}
		g.index[grp.Material] = len(kept)
		kept = append(kept, grp)
	}
	g.groups = kept
}

// SkippedLine records a directive dropped as malformed.
type SkippedLine struct {
	Line      int
	Directive string
	Reason    string
}

// OBJ represents a parsed Wavefront geometry file.
type OBJ struct {
	MaterialLib string   // Last mtllib filename, "" if none
	Objects     []string // Names from "o" directives

	Vertices []Vertex
	UVs      []UV
	Normals  []Normal
	Params   []ParamPoint

	Groups *FaceGroups

	// Set once any face corner uses the attribute; never cleared.
	UseVertex bool
	UseUV     bool
	UseNormal bool

	Skipped []SkippedLine
}

// NewOBJ creates an empty geometry record.
func NewOBJ() *OBJ {
	return &OBJ{Groups: NewFaceGroups()}
}

func (o *OBJ) skip(line int, directive, format string, args ...interface{}) {
	o.Skipped = append(o.Skipped, SkippedLine{
		Line:      line,
		Directive: directive,
		Reason:    fmt.Sprintf(format, args...),
	})
}

// ParseOBJ parses OBJ geometry from r. Malformed directives are dropped and
// listed in OBJ.Skipped; only read errors are returned.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := NewOBJ()

	material := DefaultMaterial
	smooth := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), scannerBufferSize)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 || strings.HasPrefix(tokens[0], "#") {
			continue
		}

		switch tokens[0] {
		case "mtllib":
			if len(tokens) < 2 {
				obj.skip(lineNum, tokens[0], "missing filename")
				continue
			}
			obj.MaterialLib = tokens[1]
		case "o":
			if len(tokens) < 2 {
				obj.skip(lineNum, tokens[0], "missing object name")
				continue
			}
			obj.Objects = append(obj.Objects, tokens[1])
		case "v":
			if len(tokens) != 4 && len(tokens) != 5 {
				obj.skip(lineNum, tokens[0], "expected 3 or 4 values, got %d", len(tokens)-1)
				continue
			}
			vals := parseNumbers(tokens[1:], len(tokens)-1)
			v := Vertex{X: vals[0], Y: vals[1], Z: vals[2], W: 1.0}
			if len(vals) == 4 {
				v.W = vals[3]
			}
			obj.Vertices = append(obj.Vertices, v)
		case "vt":
			if len(tokens) != 3 && len(tokens) != 4 {
				obj.skip(lineNum, tokens[0], "expected 2 or 3 values, got %d", len(tokens)-1)
				continue
			}
			vals := parseNumbers(tokens[1:], len(tokens)-1)
			uv := UV{X: vals[0], Y: vals[1]}
			if len(vals) == 3 {
				uv.Z = vals[2]
			}
			obj.UVs = append(obj.UVs, uv)
		case "vn":
			// Always 3 components; missing ones read as 0 so later indices stay aligned.
			vals := parseNumbers(tokens[1:], 3)
			obj.Normals = append(obj.Normals, Normal{X: vals[0], Y: vals[1], Z: vals[2]})
		case "vp":
			if len(tokens) < 2 || len(tokens) > 4 {
				obj.skip(lineNum, tokens[0], "expected 1 to 3 values, got %d", len(tokens)-1)
				continue
			}
			vals := parseNumbers(tokens[1:], len(tokens)-1)
			obj.Params = append(obj.Params, ParamPoint(vals))
		case "usemtl":
			if len(tokens) < 2 {
				obj.skip(lineNum, tokens[0], "missing material name")
				continue
			}
			material = tokens[1]
			obj.Groups.Ensure(material)
		case "s":
			smooth = len(tokens) < 2 || tokens[1] != "off"
		case "f":
			refs := make([]FaceVertexRef, 0, len(tokens)-1)
			for _, tok := range tokens[1:] {
				ref, ok := parseFaceRef(tok)
				if !ok {
					obj.skip(lineNum, tokens[0], "unrecognized corner %q", tok)
					continue
				}
				obj.UseVertex = true
				if hasUVComponent(tok) {
					obj.UseUV = true
				}
				if hasNormalComponent(tok) {
					obj.UseNormal = true
				}
				refs = append(refs, ref)
			}
			if len(refs) == 0 {
				continue
			}
			grp := obj.Groups.Ensure(material)
			grp.Faces = append(grp.Faces, Face{
				Material: material,
				Smooth:   smooth,
				Refs:     refs,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading geometry: %w", err)
	}

	obj.Groups.prune()
	return obj, nil
}

// parseFaceRef matches one of v, v/vt, v//vn, v/vt/vn. Components are
// unsigned decimal integers; the result is shifted to 0-based.
func parseFaceRef(tok string) (FaceVertexRef, bool) {
	parts := strings.Split(tok, "/")
	ref := FaceVertexRef{V: NoIndex, VT: NoIndex, VN: NoIndex}

	var ok bool
	switch len(parts) {
	case 1:
		ref.V, ok = parseIndex(parts[0])
		return ref, ok
	case 2:
		if ref.V, ok = parseIndex(parts[0]); !ok {
			return ref, false
		}
		ref.VT, ok = parseIndex(parts[1])
		return ref, ok
	case 3:
		if ref.V, ok = parseIndex(parts[0]); !ok {
			return ref, false
		}
		if parts[1] != "" {
			if ref.VT, ok = parseIndex(parts[1]); !ok {
				return ref, false
			}
		}
		ref.VN, ok = parseIndex(parts[2])
		return ref, ok
	}
	return ref, false
}

// hasUVComponent reports whether a matched corner token carries a vt index.
func hasUVComponent(tok string) bool {
	parts := strings.Split(tok, "/")
	return len(parts) >= 2 && parts[1] != ""
}

// hasNormalComponent reports whether a matched corner token carries a vn index.
func hasNormalComponent(tok string) bool {
	return len(strings.Split(tok, "/")) == 3
}

// parseIndex converts a 1-based digit string into a 0-based index.
func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n - 1, true
}
