package sim

import (
	"math"
	"testing"
)

// TestClampMag verifies the magnitude clamp preserves direction, hits the
// limit exactly when rescaling, and leaves zero and in-range vectors alone.
func TestClampMag(t *testing.T) {
	tests := []struct {
		name    string
		v       Vec2
		max     float32
		wantLen float32
	}{
		{"over limit", Vec2{3, 4}, 2, 2},
		{"under limit", Vec2{0.3, 0.4}, 2, 0.5},
		{"at limit", Vec2{0, 2}, 2, 2},
		{"zero vector", Vec2{0, 0}, 2, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := clampMag(tc.v, tc.max)
			if math.Abs(float64(got.Len()-tc.wantLen)) > 1e-6 {
				t.Errorf("clamped length = %g, want %g", got.Len(), tc.wantLen)
			}
			// Direction preserved (cross product zero, dot non-negative).
			if cross := tc.v.X*got.Y - tc.v.Y*got.X; math.Abs(float64(cross)) > 1e-5 {
				t.Errorf("direction changed: cross = %g", cross)
			}
			if dot := tc.v.X*got.X + tc.v.Y*got.Y; dot < 0 {
				t.Errorf("direction flipped: dot = %g", dot)
			}
		})
	}
}

// TestWrapHalf verifies wrapping is a no-op in bounds, wraps by exactly one
// extent at the boundary, and is idempotent.
func TestWrapHalf(t *testing.T) {
	const extent = 100

	tests := []struct {
		name string
		x    float32
		want float32
	}{
		{"in bounds", 25, 25},
		{"negative in bounds", -49.9, -49.9},
		{"at lower edge", -50, -50},
		{"at upper edge", 50, -50},
		{"past upper edge", 50.9, -49.1},
		{"past lower edge", -50.5, 49.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := wrapHalf(tc.x, extent)
			if math.Abs(float64(got-tc.want)) > 1e-5 {
				t.Errorf("wrapHalf(%g) = %g, want %g", tc.x, got, tc.want)
			}
			// Idempotent: wrapping an in-bounds coordinate is a no-op.
			if again := wrapHalf(got, extent); again != got {
				t.Errorf("wrapHalf not idempotent: %g -> %g", got, again)
			}
		})
	}
}

// TestToroidalDelta verifies the minimum-image delta takes the short way
// around the seam.
func TestToroidalDelta(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec2
		want Vec2
	}{
		{"plain", Vec2{0, 0}, Vec2{3, -4}, Vec2{3, -4}},
		{"across x seam", Vec2{-45, 0}, Vec2{45, 0}, Vec2{-10, 0}},
		{"across y seam", Vec2{0, 48}, Vec2{0, -47}, Vec2{0, 5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := toroidalDelta(tc.a, tc.b, 100, 100)
			if math.Abs(float64(got.X-tc.want.X)) > 1e-5 || math.Abs(float64(got.Y-tc.want.Y)) > 1e-5 {
				t.Errorf("toroidalDelta = %+v, want %+v", got, tc.want)
			}
		})
	}
}
