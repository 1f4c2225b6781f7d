package varray

import (
	"testing"

	"github.com/Faultbox/objvarray/pkg/math"
)

func TestPackColor(t *testing.T) {
	tests := []struct {
		name     string
		color    math.Vec3
		expected uint32
	}{
		{"red", math.Vec3{X: 1, Y: 0, Z: 0}, 0xFFFF0000},
		{"green", math.Vec3{X: 0, Y: 1, Z: 0}, 0xFF00FF00},
		{"blue", math.Vec3{X: 0, Y: 0, Z: 1}, 0xFF0000FF},
		{"black", math.Vec3{}, 0xFF000000},
		{"truncated", math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, 0xFF7F7F7F},
		{"saturated high", math.Vec3{X: 2, Y: 1.5, Z: 10}, 0xFFFFFFFF},
		{"saturated low", math.Vec3{X: -1, Y: -0.5, Z: 0}, 0xFF000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PackColor(tt.color); got != tt.expected {
				t.Errorf("expected %#08x, got %#08x", tt.expected, got)
			}
		})
	}
}

func TestPackRGBA_Alpha(t *testing.T) {
	if got := PackRGBA(1, 1, 1, 0.5); got != 0x7FFFFFFF {
		t.Errorf("expected 0x7fffffff, got %#08x", got)
	}
	if got := PackRGBA(0, 0, 0, 0); got != 0 {
		t.Errorf("expected 0, got %#08x", got)
	}
}
