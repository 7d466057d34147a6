package telemetry

import (
	"time"

	"github.com/pthm-cable/plasma/sim"
)

// Collector accumulates per-step timings and flushes a WindowStats record
// every windowSize steps.
type Collector struct {
	windowSize  int
	windowStart int64

	steps       int
	stepTotal   time.Duration
	gridTotal   time.Duration
	kernelTotal time.Duration

	counts []float32 // scratch for bin counts
}

// NewCollector creates a collector flushing every windowSize steps.
func NewCollector(windowSize int) *Collector {
	if windowSize <= 0 {
		windowSize = 1
	}
	return &Collector{windowSize: windowSize}
}

// RecordStep adds one step's timings to the current window.
func (c *Collector) RecordStep(total time.Duration, timing sim.StepTiming) {
	c.steps++
	c.stepTotal += total
	c.gridTotal += timing.Grid
	c.kernelTotal += timing.Kernel
}

// Ready reports whether the current window is full.
func (c *Collector) Ready() bool {
	return c.steps >= c.windowSize
}

// Flush samples the simulation state, builds the window record and resets
// the window. tick is the generation at the window end.
func (c *Collector) Flush(s *sim.Sim, tick int64) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStart,
		WindowEndTick:   tick,
	}

	stats.SpeedMean, stats.SpeedP10, stats.SpeedP50, stats.SpeedP90, stats.SpeedMax =
		ComputeSpeedStats(s.Velocities())
	stats.KineticEnergy = ComputeKineticEnergy(s.Velocities())

	c.counts = s.Grid().Counts(c.counts)
	stats.OccupiedBins, stats.MaxBinCount, stats.BinCountP90 = ComputeBinStats(c.counts)

	if c.steps > 0 {
		n := float64(c.steps)
		stats.StepMicros = float64(c.stepTotal.Microseconds()) / n
		stats.GridMicros = float64(c.gridTotal.Microseconds()) / n
		stats.KernelMicros = float64(c.kernelTotal.Microseconds()) / n
	}

	c.steps = 0
	c.stepTotal = 0
	c.gridTotal = 0
	c.kernelTotal = 0
	c.windowStart = tick

	return stats
}
