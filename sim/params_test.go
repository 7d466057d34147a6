package sim

import "testing"

func validParams() Params {
	return Params{
		ParticleCount: 100,
		Width:         200,
		Height:        200,
		NumBinsX:      10,
		NumBinsY:      10,
		BinSizeX:      20,
		BinSizeY:      20,
		NumBins:       100,
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr bool
	}{
		{"valid", func(p *Params) {}, false},
		{"zero particles", func(p *Params) { p.ParticleCount = 0 }, true},
		{"zero width", func(p *Params) { p.Width = 0 }, true},
		{"negative height", func(p *Params) { p.Height = -1 }, true},
		{"zero bins x", func(p *Params) { p.NumBinsX = 0; p.NumBins = 0 }, true},
		{"bin count mismatch", func(p *Params) { p.NumBins = 99 }, true},
		{"zero bin size", func(p *Params) { p.BinSizeX = 0 }, true},
		{"negative range", func(p *Params) { p.AttractionRange = -1 }, true},
		{"negative radius", func(p *Params) { p.ParticleRadius = -0.5 }, true},
		{"negative clamp", func(p *Params) { p.MaxVelocity = -1 }, true},
		{"zero ranges are unlimited", func(p *Params) {
			p.AttractionStrength = 1
			p.AttractionRange = 0
		}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			tc.mutate(&p)
			err := p.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestPairRange(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*Params)
		wantR         float32
		wantUnlimited bool
	}{
		{"no active terms", func(p *Params) {}, 0, false},
		{"bounded attraction", func(p *Params) {
			p.AttractionStrength = 1
			p.AttractionRange = 40
		}, 40, false},
		{"widest term wins", func(p *Params) {
			p.AttractionStrength = 1
			p.AttractionRange = 40
			p.RepulsionStrength = 1
			p.RepulsionRange = 90
		}, 90, false},
		{"collision diameter counts", func(p *Params) {
			p.CollisionResponse = 0.1
			p.ParticleRadius = 60
		}, 120, false},
		{"unlimited active attraction", func(p *Params) {
			p.AttractionStrength = 1
			p.AttractionRange = 0
		}, 0, true},
		{"unlimited range with zero strength is inert", func(p *Params) {
			p.AttractionStrength = 0
			p.AttractionRange = 0
			p.RepulsionStrength = 2
			p.RepulsionRange = 25
		}, 25, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			tc.mutate(&p)
			r, unlimited := p.pairRange()
			if r != tc.wantR || unlimited != tc.wantUnlimited {
				t.Errorf("pairRange() = (%g, %v), want (%g, %v)", r, unlimited, tc.wantR, tc.wantUnlimited)
			}
		})
	}
}
