package sim

import (
	"math/rand"
	"testing"
)

func gridParams() Params {
	return Params{
		ParticleCount: 1,
		Width:         100,
		Height:        80,
		NumBinsX:      10,
		NumBinsY:      8,
		BinSizeX:      10,
		BinSizeY:      10,
		NumBins:       80,
	}
}

// TestBinningCompleteness verifies every particle lands in exactly one bin:
// the per-bin counts sum to N for any position set, including positions
// that missed a wrap and sit outside the nominal field.
func TestBinningCompleteness(t *testing.T) {
	p := gridParams()
	g := NewGrid(&p)

	rng := rand.New(rand.NewSource(7))
	const n = 500
	positions := make([]Vec2, n)
	for i := range positions {
		// Deliberately overshoot the field bounds on some particles.
		positions[i] = Vec2{
			X: (rng.Float32() - 0.5) * p.Width * 1.2,
			Y: (rng.Float32() - 0.5) * p.Height * 1.2,
		}
	}

	g.Rebuild(positions)

	counts := g.Counts(nil)
	if len(counts) != int(p.NumBins) {
		t.Fatalf("counts has %d bins, want %d", len(counts), p.NumBins)
	}

	var total float32
	for _, c := range counts {
		total += c
	}
	if int(total) != n {
		t.Errorf("bin counts sum to %d, want %d", int(total), n)
	}
}

// TestCellIndexClamp verifies boundary and out-of-range positions clamp
// into valid bins instead of indexing out of bounds.
func TestCellIndexClamp(t *testing.T) {
	p := gridParams()
	g := NewGrid(&p)

	tests := []struct {
		name string
		pos  Vec2
		want int
	}{
		{"origin", Vec2{0, 0}, 4*10 + 5},
		{"min corner", Vec2{-50, -40}, 0},
		{"below min", Vec2{-500, -400}, 0},
		{"max x boundary", Vec2{50, -40}, 9},
		{"beyond max", Vec2{500, 400}, 8*10 - 1},
		{"first cell interior", Vec2{-45, -35}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.CellIndex(tc.pos); got != tc.want {
				t.Errorf("CellIndex(%+v) = %d, want %d", tc.pos, got, tc.want)
			}
		})
	}
}

// TestGridRebuildIsStepLocal verifies a rebuild fully replaces the previous
// step's contents.
func TestGridRebuildIsStepLocal(t *testing.T) {
	p := gridParams()
	g := NewGrid(&p)

	g.Rebuild([]Vec2{{X: -45, Y: -35}, {X: -44, Y: -34}})
	g.Rebuild([]Vec2{{X: 45, Y: 35}})

	counts := g.Counts(nil)
	var total float32
	for _, c := range counts {
		total += c
	}
	if total != 1 {
		t.Errorf("counts sum to %g after rebuild, want 1", total)
	}
	if counts[0] != 0 {
		t.Errorf("stale particles left in bin 0: count %g", counts[0])
	}
}

// TestCountsDensity verifies the per-bin aggregate matches a known layout.
func TestCountsDensity(t *testing.T) {
	p := gridParams()
	g := NewGrid(&p)

	// Three particles in the origin bin, one in the min corner bin.
	g.Rebuild([]Vec2{
		{X: 1, Y: 1}, {X: 2, Y: 3}, {X: 4, Y: 2},
		{X: -49, Y: -39},
	})

	counts := g.Counts(nil)
	origin := g.CellIndex(Vec2{0, 0})
	if counts[origin] != 3 {
		t.Errorf("origin bin count = %g, want 3", counts[origin])
	}
	if counts[0] != 1 {
		t.Errorf("corner bin count = %g, want 1", counts[0])
	}
}
