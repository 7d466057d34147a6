package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// SpawnOptions controls initial particle placement.
type SpawnOptions struct {
	Pattern          string  // uniform | disc | clusters
	DiscRadius       float32 // 0 = quarter of the smaller field extent
	ClusterScale     float64 // noise frequency for cluster placement
	ClusterThreshold float64 // noise value above which a spot is populated
	MaxSpeed         float32 // initial velocity components drawn from [-v, v]
	Seed             int64
}

// clusterAttempts bounds rejection sampling per particle; after this many
// misses the candidate is accepted so spawning always terminates.
const clusterAttempts = 64

// Spawn generates initial positions and velocities for p.ParticleCount
// particles.
func Spawn(p *Params, opt SpawnOptions) ([]Vec2, []Vec2, error) {
	rng := rand.New(rand.NewSource(opt.Seed))
	n := int(p.ParticleCount)

	var positions []Vec2
	switch opt.Pattern {
	case "uniform":
		positions = spawnUniform(rng, n, p.Width, p.Height)
	case "disc":
		radius := opt.DiscRadius
		if radius == 0 {
			radius = min(p.Width, p.Height) / 4
		}
		positions = spawnDisc(rng, n, radius)
	case "clusters":
		positions = spawnClusters(rng, n, p.Width, p.Height, opt.ClusterScale, opt.ClusterThreshold, opt.Seed)
	default:
		return nil, nil, fmt.Errorf("spawn: unknown pattern %q", opt.Pattern)
	}

	velocities := make([]Vec2, n)
	for i := range velocities {
		velocities[i] = Vec2{
			X: (rng.Float32()*2 - 1) * opt.MaxSpeed,
			Y: (rng.Float32()*2 - 1) * opt.MaxSpeed,
		}
	}

	return positions, velocities, nil
}

// spawnUniform places particles uniformly over the center quarter extents.
func spawnUniform(rng *rand.Rand, n int, w, h float32) []Vec2 {
	qw := w * 0.25
	qh := h * 0.25
	positions := make([]Vec2, n)
	for i := range positions {
		positions[i] = Vec2{
			X: (rng.Float32()*2 - 1) * qw,
			Y: (rng.Float32()*2 - 1) * qh,
		}
	}
	return positions
}

// spawnDisc places particles at a random angle and radius around the origin.
func spawnDisc(rng *rand.Rand, n int, maxRadius float32) []Vec2 {
	positions := make([]Vec2, n)
	for i := range positions {
		angle := (rng.Float64()*2 - 1) * math.Pi
		radius := rng.Float64() * float64(maxRadius)
		positions[i] = Vec2{
			X: float32(radius * math.Cos(angle)),
			Y: float32(radius * math.Sin(angle)),
		}
	}
	return positions
}

// spawnClusters rejection-samples field positions against a noise field so
// particles start in coherent patches.
func spawnClusters(rng *rand.Rand, n int, w, h float32, scale, threshold float64, seed int64) []Vec2 {
	noise := perlin.NewPerlin(2, 2, 3, seed)
	positions := make([]Vec2, n)
	for i := range positions {
		var x, y float32
		for attempt := 0; attempt < clusterAttempts; attempt++ {
			x = (rng.Float32() - 0.5) * w
			y = (rng.Float32() - 0.5) * h
			if noise.Noise2D(float64(x)*scale, float64(y)*scale) > threshold {
				break
			}
		}
		positions[i] = Vec2{X: x, Y: y}
	}
	return positions
}
