// Package telemetry aggregates per-step simulation statistics over fixed
// windows and writes them to CSV for offline analysis.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/plasma/sim"
)

// WindowStats holds aggregated statistics for a step window.
type WindowStats struct {
	WindowStartTick int64 `csv:"-"`
	WindowEndTick   int64 `csv:"window_end"`

	// Particle speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Total kinetic energy proxy (unit mass): 0.5 * sum |v|²
	KineticEnergy float64 `csv:"kinetic_energy"`

	// Bin occupancy (sampled at window end)
	OccupiedBins int     `csv:"occupied_bins"`
	MaxBinCount  float64 `csv:"max_bin_count"`
	BinCountP90  float64 `csv:"bin_count_p90"`

	// Step timing averaged over the window
	StepMicros   float64 `csv:"step_us"`
	GridMicros   float64 `csv:"grid_us"`
	KernelMicros float64 `csv:"kernel_us"`
}

// ComputeSpeedStats returns mean, p10/p50/p90 and max of particle speeds.
func ComputeSpeedStats(velocities []sim.Vec2) (mean, p10, p50, p90, max float64) {
	if len(velocities) == 0 {
		return 0, 0, 0, 0, 0
	}

	speeds := make([]float64, len(velocities))
	for i, v := range velocities {
		speeds[i] = float64(v.Len())
	}
	sort.Float64s(speeds)

	mean = stat.Mean(speeds, nil)
	p10 = stat.Quantile(0.1, stat.Empirical, speeds, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, speeds, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, speeds, nil)
	max = speeds[len(speeds)-1]
	return mean, p10, p50, p90, max
}

// ComputeKineticEnergy returns the unit-mass kinetic energy 0.5 * sum |v|².
func ComputeKineticEnergy(velocities []sim.Vec2) float64 {
	var total float64
	for _, v := range velocities {
		total += float64(v.LenSq())
	}
	return 0.5 * total
}

// ComputeBinStats returns occupancy statistics from per-bin counts.
func ComputeBinStats(counts []float32) (occupied int, max, p90 float64) {
	if len(counts) == 0 {
		return 0, 0, 0
	}

	sorted := make([]float64, len(counts))
	for i, c := range counts {
		sorted[i] = float64(c)
		if c > 0 {
			occupied++
		}
	}
	sort.Float64s(sorted)

	max = sorted[len(sorted)-1]
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return occupied, max, p90
}

// Log emits the window stats via slog.
func (w WindowStats) Log() {
	slog.Info("window stats",
		"window_end", w.WindowEndTick,
		"speed_mean", w.SpeedMean,
		"speed_p90", w.SpeedP90,
		"kinetic_energy", w.KineticEnergy,
		"occupied_bins", w.OccupiedBins,
		"max_bin_count", w.MaxBinCount,
		"step_us", w.StepMicros,
	)
}
