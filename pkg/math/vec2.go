// Package math provides the small vector types used for mesh attributes.
package math

// Vec2 is a 2D vector, used for texture coordinates.
type Vec2 struct {
	X, Y float64
}

// FlipY returns the vector with Y mirrored around 0.5 (y' = 1 - y).
// Applying it twice returns the original value.
func (v Vec2) FlipY() Vec2 {
	return Vec2{v.X, 1.0 - v.Y}
}
