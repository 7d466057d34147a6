package sim

import "math"

// Vec2 is a 2D float32 vector. Particle positions and velocities are stored
// as flat []Vec2 buffers, slot i belonging to particle i.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// LenSq returns the squared magnitude.
func (v Vec2) LenSq() float32 { return v.X*v.X + v.Y*v.Y }

// Len returns the magnitude.
func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.LenSq())))
}

// clampMag rescales v to magnitude max if it exceeds it, preserving
// direction. A zero vector has no direction and is returned unchanged.
func clampMag(v Vec2, max float32) Vec2 {
	lenSq := v.LenSq()
	if lenSq <= max*max || lenSq == 0 {
		return v
	}
	return v.Scale(max / float32(math.Sqrt(float64(lenSq))))
}

// wrapHalf wraps a coordinate back into [-extent/2, extent/2) by one full
// extent. Applying it to an in-bounds coordinate is a no-op.
func wrapHalf(x, extent float32) float32 {
	half := extent / 2
	if x >= half {
		x -= extent
	} else if x < -half {
		x += extent
	}
	return x
}

// toroidalDelta returns the shortest delta from a to b on the torus.
func toroidalDelta(a, b Vec2, w, h float32) Vec2 {
	dx := b.X - a.X
	dy := b.Y - a.Y

	if dx > w/2 {
		dx -= w
	} else if dx < -w/2 {
		dx += w
	}
	if dy > h/2 {
		dy -= h
	} else if dy < -h/2 {
		dy += h
	}

	return Vec2{dx, dy}
}
