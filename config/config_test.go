package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Field.ParticleCount != 5000 {
		t.Errorf("particle_count = %d, want 5000", cfg.Field.ParticleCount)
	}
	if cfg.Integration.Momentum != 0.86 {
		t.Errorf("momentum = %v, want 0.86", cfg.Integration.Momentum)
	}
	if cfg.Forces.RepulsionRange != 120 {
		t.Errorf("repulsion_range = %v, want 120", cfg.Forces.RepulsionRange)
	}
	if cfg.Spawn.Pattern != "uniform" {
		t.Errorf("spawn pattern = %q, want uniform", cfg.Spawn.Pattern)
	}
}

func TestDerivedBins(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Field defaults to the 1080x1080 screen; 16-unit bins -> ceil(1080/16) = 68.
	if cfg.Derived.FieldW32 != 1080 || cfg.Derived.FieldH32 != 1080 {
		t.Errorf("field = %gx%g, want 1080x1080", cfg.Derived.FieldW32, cfg.Derived.FieldH32)
	}
	if cfg.Derived.NumBinsX != 68 || cfg.Derived.NumBinsY != 68 {
		t.Errorf("bins = %dx%d, want 68x68", cfg.Derived.NumBinsX, cfg.Derived.NumBinsY)
	}
	if cfg.Derived.NumBins != 68*68 {
		t.Errorf("num_bins = %d, want %d", cfg.Derived.NumBins, 68*68)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	overlay := []byte("field:\n  particle_count: 100\n  width: 200\n  height: 160\nbins:\n  size_x: 50.0\n  size_y: 50.0\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Field.ParticleCount != 100 {
		t.Errorf("particle_count = %d, want 100", cfg.Field.ParticleCount)
	}
	// Untouched fields keep their defaults.
	if cfg.Integration.Momentum != 0.86 {
		t.Errorf("momentum = %v, want default 0.86", cfg.Integration.Momentum)
	}
	if cfg.Derived.NumBinsX != 4 || cfg.Derived.NumBinsY != 4 {
		t.Errorf("bins = %dx%d, want 4x4", cfg.Derived.NumBinsX, cfg.Derived.NumBinsY)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
	}{
		{"zero bin size", "bins:\n  size_x: 0\n"},
		{"zero particles", "field:\n  particle_count: 0\n"},
		{"negative range", "forces:\n  attraction_range: -5\n"},
		{"negative radius", "collision:\n  particle_radius: -1\n"},
		{"unknown spawn pattern", "spawn:\n  pattern: spiral\n"},
		{"zero stats window", "telemetry:\n  stats_window: 0\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tc.overlay), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	if loaded.Field.ParticleCount != cfg.Field.ParticleCount {
		t.Errorf("round trip changed particle_count: %d != %d", loaded.Field.ParticleCount, cfg.Field.ParticleCount)
	}
	if loaded.Forces.CenterStrength != cfg.Forces.CenterStrength {
		t.Errorf("round trip changed center_strength: %v != %v", loaded.Forces.CenterStrength, cfg.Forces.CenterStrength)
	}
}
