package varray

import "github.com/Faultbox/objvarray/pkg/math"

// UseVertex reports whether any face corner referenced a position.
func (b *Builder) UseVertex() bool { return b.geom.UseVertex }

// UseNormal reports whether any face corner referenced a normal.
func (b *Builder) UseNormal() bool { return b.geom.UseNormal }

// UseUV reports whether any face corner referenced a texture coordinate.
func (b *Builder) UseUV() bool { return b.geom.UseUV }

// UseColor reports whether a color channel is derived.
func (b *Builder) UseColor() bool { return b.opts.Color }

// UseHexColor reports whether the color channel is packed.
func (b *Builder) UseHexColor() bool { return b.opts.Color && b.opts.HexColor }

// UseIndex reports whether an index buffer is produced.
func (b *Builder) UseIndex() bool { return b.opts.Indexed }

// Vertices returns flattened x, y, z positions. ok is false when the mesh
// has no position attribute.
func (b *Builder) Vertices() (values []float64, ok bool) {
	if !b.UseVertex() {
		return nil, false
	}
	return flatten3(b.Data().Vertex), true
}

// Normals returns flattened x, y, z normals, or ok false when absent.
func (b *Builder) Normals() (values []float64, ok bool) {
	if !b.UseNormal() {
		return nil, false
	}
	return flatten3(b.Data().Normal), true
}

// UVs returns flattened u, v coordinates, or ok false when absent.
func (b *Builder) UVs() (values []float64, ok bool) {
	if !b.UseUV() {
		return nil, false
	}
	uvs := b.Data().UV
	out := make([]float64, 0, len(uvs)*2)
	for _, uv := range uvs {
		out = append(out, uv.X, uv.Y)
	}
	return out, true
}

// Colors returns flattened r, g, b colors, or ok false when color output is
// disabled.
func (b *Builder) Colors() (values []float64, ok bool) {
	if !b.UseColor() {
		return nil, false
	}
	return flatten3(b.Data().Color), true
}

// PackedColors returns one 0xAARRGGBB value per vertex, or ok false when
// color output is disabled.
func (b *Builder) PackedColors() (values []uint32, ok bool) {
	if !b.UseColor() {
		return nil, false
	}
	colors := b.Data().Color
	out := make([]uint32, len(colors))
	for i, c := range colors {
		out[i] = PackColor(c)
	}
	return out, true
}

// Faces returns the flattened index buffer, or ok false in expanded mode.
func (b *Builder) Faces() (values []uint32, ok bool) {
	if !b.UseIndex() {
		return nil, false
	}
	var out []uint32
	for _, f := range b.Data().Face {
		out = append(out, f...)
	}
	if out == nil {
		out = []uint32{}
	}
	return out, true
}

func flatten3(vs []math.Vec3) []float64 {
	out := make([]float64, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v.X, v.Y, v.Z)
	}
	return out
}
