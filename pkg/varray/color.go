package varray

import "github.com/Faultbox/objvarray/pkg/math"

// PackColor packs an RGB color with full alpha into 0xAARRGGBB.
func PackColor(c math.Vec3) uint32 {
	return PackRGBA(c.X, c.Y, c.Z, 1.0)
}

// PackRGBA packs RGBA components in [0, 1] into 0xAARRGGBB. Each channel is
// scaled by 255, truncated toward zero and saturated to [0, 255].
func PackRGBA(r, g, b, a float64) uint32 {
	return channel(a)<<24 | channel(r)<<16 | channel(g)<<8 | channel(b)
}

func channel(v float64) uint32 {
	x := 255 * v
	switch {
	case x != x: // NaN
		return 0
	case x <= 0:
		return 0
	case x >= 255:
		return 255
	}
	return uint32(x)
}
