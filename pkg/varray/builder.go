// Package varray derives flattened, renderer-ready vertex arrays from parsed
// Wavefront geometry and materials.
package varray

import (
	"errors"
	"fmt"

	"github.com/Faultbox/objvarray/pkg/formats"
	"github.com/Faultbox/objvarray/pkg/math"
)

// Builder errors.
var (
	ErrNilGeometry     = errors.New("varray: nil geometry")
	ErrUnknownMaterial = errors.New("varray: face group references unknown material")
	ErrInvalidAxis     = errors.New("varray: axis multiplier component is zero")
)

// Options control how vertex arrays are derived.
type Options struct {
	Indexed bool      // Deduplicate corners into an indexed buffer
	FlipV   bool      // v = 1 - v
	Axis    math.Vec3 // Per-axis multiplier for positions and normals

	Color    bool // Emit the owning material's diffuse color per vertex
	HexColor bool // Pack colors into 0xAARRGGBB

	// Reject face groups whose material is missing from the table instead
	// of falling back to a black diffuse color.
	StrictMaterials bool
}

// DefaultOptions returns indexed output with V flip and no axis flip.
func DefaultOptions() Options {
	return Options{
		Indexed: true,
		FlipV:   true,
		Axis:    math.One,
	}
}

// Data is a derived vertex array set. Vertex, Normal, UV and Color are
// parallel; Face holds one index list per input face in indexed mode.
type Data struct {
	Vertex []math.Vec3
	Normal []math.Vec3
	UV     []math.Vec2
	Color  []math.Vec3
	Face   [][]uint32
}

// Len returns the number of entries in the parallel arrays.
func (d *Data) Len() int {
	return len(d.Vertex)
}

// Builder derives and caches Data for one geometry/material pair.
//
// A Builder is not safe for concurrent use: Build(true) and Rebuild replace
// the cached arrays that accessors hand out.
type Builder struct {
	geom *formats.OBJ
	mats *formats.MaterialTable
	opts Options

	data *Data

	unknown []string
}

// NewBuilder validates opts against the inputs and returns a Builder.
// A nil material table is treated as empty.
func NewBuilder(geom *formats.OBJ, mats *formats.MaterialTable, opts Options) (*Builder, error) {
	if geom == nil {
		return nil, ErrNilGeometry
	}
	if mats == nil {
		mats = formats.NewMaterialTable()
	}

	b := &Builder{geom: geom, mats: mats}
	if err := b.setOptions(opts); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Builder) setOptions(opts Options) error {
	if opts.Axis.X == 0 || opts.Axis.Y == 0 || opts.Axis.Z == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidAxis, opts.Axis)
	}

	var unknown []string
	for _, name := range b.geom.Groups.Names() {
		if _, ok := b.mats.Lookup(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if opts.StrictMaterials && len(unknown) > 0 {
		return fmt.Errorf("%w: %q", ErrUnknownMaterial, unknown)
	}

	b.opts = opts
	b.unknown = unknown
	return nil
}

// Options returns the options in effect.
func (b *Builder) Options() Options {
	return b.opts
}

// UnknownMaterials lists face group materials missing from the material
// table. Their faces resolve to a black diffuse color.
func (b *Builder) UnknownMaterials() []string {
	return b.unknown
}

// Geometry returns the source geometry.
func (b *Builder) Geometry() *formats.OBJ {
	return b.geom
}

// Materials returns the source material table.
func (b *Builder) Materials() *formats.MaterialTable {
	return b.mats
}

// Build returns the cached arrays, deriving them first if the cache is empty
// or force is set.
func (b *Builder) Build(force bool) *Data {
	if b.data == nil || force {
		if b.opts.Indexed {
			b.data = b.buildIndexed()
		} else {
			b.data = b.buildExpanded()
		}
	}
	return b.data
}

// Rebuild replaces the options and forces a rebuild.
func (b *Builder) Rebuild(opts Options) (*Data, error) {
	if err := b.setOptions(opts); err != nil {
		return nil, err
	}
	return b.Build(true), nil
}

// Data returns the cached arrays, building them if needed.
func (b *Builder) Data() *Data {
	return b.Build(false)
}

// corner is the resolved attribute tuple of one face corner.
type corner struct {
	pos    math.Vec3
	normal math.Vec3
	uv     math.Vec2
	color  math.Vec3
}

// resolve looks up the attributes of ref. Indices outside the parsed lists
// resolve to zero.
func (b *Builder) resolve(ref formats.FaceVertexRef, color math.Vec3) corner {
	var c corner

	if ref.V >= 0 && ref.V < len(b.geom.Vertices) {
		c.pos = b.geom.Vertices[ref.V].XYZ().Mul(b.opts.Axis)
	}
	if ref.VN >= 0 && ref.VN < len(b.geom.Normals) {
		c.normal = b.geom.Normals[ref.VN].Mul(b.opts.Axis)
	}
	if ref.VT >= 0 && ref.VT < len(b.geom.UVs) {
		c.uv = b.geom.UVs[ref.VT].XY()
		if b.opts.FlipV {
			c.uv = c.uv.FlipY()
		}
	}
	c.color = color
	return c
}

// groupColor returns the diffuse RGB of the named material, or black when the
// material or its Kd is missing. Color output disabled resolves to black too,
// so dedup compares position, normal and uv only.
func (b *Builder) groupColor(name string) math.Vec3 {
	if !b.opts.Color {
		return math.Vec3{}
	}
	m, ok := b.mats.Lookup(name)
	if !ok || m.Diffuse == nil {
		return math.Vec3{}
	}
	return math.Vec3{X: m.Diffuse.R, Y: m.Diffuse.G, Z: m.Diffuse.B}
}

func (b *Builder) buildExpanded() *Data {
	n := b.geom.Groups.CornerCount()
	data := &Data{
		Vertex: make([]math.Vec3, 0, n),
		Normal: make([]math.Vec3, 0, n),
		UV:     make([]math.Vec2, 0, n),
		Color:  make([]math.Vec3, 0, n),
	}

	for _, grp := range b.geom.Groups.Groups() {
		color := b.groupColor(grp.Material)
		for _, face := range grp.Faces {
			for _, ref := range face.Refs {
				c := b.resolve(ref, color)
				data.Vertex = append(data.Vertex, c.pos)
				data.Normal = append(data.Normal, c.normal)
				data.UV = append(data.UV, c.uv)
				data.Color = append(data.Color, c.color)
			}
		}
	}
	return data
}

// buildIndexed deduplicates corners. A corner reuses the first stored entry
// with the same position only when normal, uv and color at that entry also
// match; otherwise it becomes a new entry even if a later entry would match.
func (b *Builder) buildIndexed() *Data {
	data := &Data{
		Face: make([][]uint32, 0, b.geom.Groups.FaceCount()),
	}

	firstByPos := make(map[math.Vec3]uint32)
	var next uint32

	for _, grp := range b.geom.Groups.Groups() {
		color := b.groupColor(grp.Material)
		for _, face := range grp.Faces {
			indices := make([]uint32, 0, len(face.Refs))
			for _, ref := range face.Refs {
				c := b.resolve(ref, color)

				if idx, ok := firstByPos[c.pos]; ok &&
					data.Normal[idx] == c.normal &&
					data.UV[idx] == c.uv &&
					data.Color[idx] == c.color {
					indices = append(indices, idx)
					continue
				}

				data.Vertex = append(data.Vertex, c.pos)
				data.Normal = append(data.Normal, c.normal)
				data.UV = append(data.UV, c.uv)
				data.Color = append(data.Color, c.color)
				if _, seen := firstByPos[c.pos]; !seen {
					firstByPos[c.pos] = next
				}
				indices = append(indices, next)
				next++
			}
			data.Face = append(data.Face, indices)
		}
	}
	return data
}
