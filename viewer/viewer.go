// Package viewer renders the simulation with raylib and hosts the live
// parameter tuning panel. It is a pure consumer of the simulation's output
// buffers.
package viewer

import (
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plasma/sim"
	"github.com/pthm-cable/plasma/telemetry"
)

// Viewer owns the interactive loop state: the simulation, the live-tunable
// parameter block, and the overlay/panel toggles.
type Viewer struct {
	sim    *sim.Sim
	params sim.Params
	spawn  sim.SpawnOptions

	collector *telemetry.Collector
	output    *telemetry.OutputManager

	heat  *Heatmap
	panel *Panel

	screenW float32
	screenH float32
	scaleX  float32 // field units -> pixels
	scaleY  float32

	paused         bool
	showHeatmap    bool
	stepsPerUpdate int
}

// New creates a viewer around an existing simulation.
func New(s *sim.Sim, params sim.Params, spawn sim.SpawnOptions, screenW, screenH int, collector *telemetry.Collector, output *telemetry.OutputManager) *Viewer {
	v := &Viewer{
		sim:            s,
		params:         params,
		spawn:          spawn,
		collector:      collector,
		output:         output,
		screenW:        float32(screenW),
		screenH:        float32(screenH),
		scaleX:         float32(screenW) / params.Width,
		scaleY:         float32(screenH) / params.Height,
		heat:           NewHeatmap(0.15),
		panel:          NewPanel(),
		stepsPerUpdate: 1,
	}
	return v
}

// SetStepsPerUpdate sets how many simulation steps run per rendered frame,
// clamped to the same 1..10 range as the keyboard control.
func (v *Viewer) SetStepsPerUpdate(n int) {
	if n < 1 {
		n = 1
	} else if n > 10 {
		n = 10
	}
	v.stepsPerUpdate = n
}

// Update handles input and advances the simulation.
func (v *Viewer) Update() {
	v.handleInput()

	if v.paused {
		return
	}

	for i := 0; i < v.stepsPerUpdate; i++ {
		start := time.Now()
		if err := v.sim.Step(v.params); err != nil {
			slog.Error("step aborted", "error", err, "generation", v.sim.Generation())
			v.paused = true
			return
		}
		if v.collector != nil {
			v.collector.RecordStep(time.Since(start), v.sim.Timing())
			if v.collector.Ready() {
				stats := v.collector.Flush(v.sim, int64(v.sim.Generation()))
				if err := v.output.WriteTelemetry(stats); err != nil {
					slog.Error("failed to write telemetry", "error", err)
				}
			}
		}
	}

	if v.showHeatmap {
		v.heat.Blend(v.sim.Grid())
	}
}

// Draw renders the current generation.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	if v.showHeatmap {
		v.heat.Draw(int32(v.screenW), int32(v.screenH))
	}

	v.drawParticles()

	rl.DrawText(fmt.Sprintf("Gen: %d  N: %d", v.sim.Generation(), v.sim.N()), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Speed: %dx  [</>]", v.stepsPerUpdate), 10, 35, 20, rl.White)
	if v.paused {
		rl.DrawText("PAUSED", 10, 60, 20, rl.Yellow)
	}

	v.panel.Draw(&v.params)

	rl.EndDrawing()
}

// drawParticles renders every particle as a speed-tinted circle.
func (v *Viewer) drawParticles() {
	positions := v.sim.Positions()
	velocities := v.sim.Velocities()

	radius := v.params.ParticleRadius * v.scaleX
	if radius < 1 {
		radius = 1
	}

	maxVel := v.params.MaxVelocity
	if maxVel <= 0 {
		maxVel = 1
	}

	for i, pos := range positions {
		sx := (pos.X + v.params.Width/2) * v.scaleX
		sy := (pos.Y + v.params.Height/2) * v.scaleY

		// Cold slow particles, warm fast ones
		t := velocities[i].Len() / maxVel
		if t > 1 {
			t = 1
		}
		color := rl.Color{
			R: uint8(80 + 175*t),
			G: uint8(120 + 60*t),
			B: uint8(255 - 135*t),
			A: 255,
		}

		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, color)
	}
}

// Unload stops the simulation workers.
func (v *Viewer) Unload() {
	v.sim.Close()
}
