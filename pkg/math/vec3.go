package math

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// One is the identity multiplier for Mul.
var One = Vec3{1, 1, 1}

// Mul returns the component-wise product of v and other.
func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// XY returns the X and Y components as Vec2.
func (v Vec3) XY() Vec2 {
	return Vec2{v.X, v.Y}
}
