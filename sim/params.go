// Package sim implements the particle field simulation core: a double-buffered
// particle state advanced once per step by a data-parallel force integration
// kernel, with a uniform spatial bin grid for neighbor pruning and density
// aggregation.
package sim

import (
	"fmt"

	"github.com/pthm-cable/plasma/config"
)

// Params is the per-step parameter block. It is read-only to the kernel for
// the duration of a step and may be changed between steps (e.g. live-tuned
// from the viewer panel). A range of 0 means unlimited; a max of 0 means
// unclamped.
type Params struct {
	ParticleCount uint32
	Width         float32
	Height        float32

	Speed              float32
	AttractionStrength float32
	RepulsionStrength  float32
	AttractionRange    float32
	RepulsionRange     float32
	CenterStrength     float32
	ParticleRadius     float32
	CollisionResponse  float32
	Momentum           float32
	MaxAcceleration    float32
	MaxVelocity        float32

	NumBinsX uint32
	NumBinsY uint32
	BinSizeX float32
	BinSizeY float32
	NumBins  uint32
}

// ParamsFromConfig builds the flat parameter block from a loaded config.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		ParticleCount:      uint32(cfg.Field.ParticleCount),
		Width:              cfg.Derived.FieldW32,
		Height:             cfg.Derived.FieldH32,
		Speed:              float32(cfg.Integration.Speed),
		AttractionStrength: float32(cfg.Forces.AttractionStrength),
		RepulsionStrength:  float32(cfg.Forces.RepulsionStrength),
		AttractionRange:    float32(cfg.Forces.AttractionRange),
		RepulsionRange:     float32(cfg.Forces.RepulsionRange),
		CenterStrength:     float32(cfg.Forces.CenterStrength),
		ParticleRadius:     float32(cfg.Collision.ParticleRadius),
		CollisionResponse:  float32(cfg.Collision.CollisionResponse),
		Momentum:           float32(cfg.Integration.Momentum),
		MaxAcceleration:    float32(cfg.Integration.MaxAcceleration),
		MaxVelocity:        float32(cfg.Integration.MaxVelocity),
		NumBinsX:           uint32(cfg.Derived.NumBinsX),
		NumBinsY:           uint32(cfg.Derived.NumBinsY),
		BinSizeX:           float32(cfg.Bins.SizeX),
		BinSizeY:           float32(cfg.Bins.SizeY),
		NumBins:            uint32(cfg.Derived.NumBins),
	}
}

// Validate rejects parameter blocks the kernel cannot run with. A step that
// fails validation is aborted before any state is touched.
func (p *Params) Validate() error {
	if p.ParticleCount == 0 {
		return fmt.Errorf("params: particle_count must be positive")
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("params: field dimensions must be positive, got %gx%g", p.Width, p.Height)
	}
	if p.NumBinsX == 0 || p.NumBinsY == 0 {
		return fmt.Errorf("params: bin grid dimensions must be positive, got %dx%d", p.NumBinsX, p.NumBinsY)
	}
	if p.NumBins != p.NumBinsX*p.NumBinsY {
		return fmt.Errorf("params: num_bins %d does not match %dx%d grid", p.NumBins, p.NumBinsX, p.NumBinsY)
	}
	if p.BinSizeX <= 0 || p.BinSizeY <= 0 {
		return fmt.Errorf("params: bin size must be positive, got %gx%g", p.BinSizeX, p.BinSizeY)
	}
	if p.AttractionRange < 0 || p.RepulsionRange < 0 {
		return fmt.Errorf("params: force ranges must not be negative")
	}
	if p.ParticleRadius < 0 {
		return fmt.Errorf("params: particle_radius must not be negative, got %g", p.ParticleRadius)
	}
	if p.MaxAcceleration < 0 || p.MaxVelocity < 0 {
		return fmt.Errorf("params: clamp limits must not be negative")
	}
	return nil
}

// pairRange returns the neighbor radius the pairwise terms must cover, and
// whether any active term has unlimited range (which forces the full O(N²)
// scan for the step). Terms with zero strength never force a scan.
func (p *Params) pairRange() (r float32, unlimited bool) {
	if p.AttractionStrength != 0 {
		if p.AttractionRange == 0 {
			return 0, true
		}
		if p.AttractionRange > r {
			r = p.AttractionRange
		}
	}
	if p.RepulsionStrength != 0 {
		if p.RepulsionRange == 0 {
			return 0, true
		}
		if p.RepulsionRange > r {
			r = p.RepulsionRange
		}
	}
	if p.CollisionResponse != 0 {
		if d := 2 * p.ParticleRadius; d > r {
			r = d
		}
	}
	return r, false
}
