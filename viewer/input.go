package viewer

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plasma/sim"
)

// handleInput processes keyboard input.
func (v *Viewer) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && v.stepsPerUpdate > 1 {
		v.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && v.stepsPerUpdate < 10 {
		v.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyH) {
		v.showHeatmap = !v.showHeatmap
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		v.panel.Toggle()
	}

	if rl.IsKeyPressed(rl.KeyR) {
		v.respawn()
	}
}

// respawn rebuilds the particle state with a fresh seed, keeping the
// current parameters.
func (v *Viewer) respawn() {
	v.spawn.Seed = time.Now().UnixNano()

	positions, velocities, err := sim.Spawn(&v.params, v.spawn)
	if err != nil {
		slog.Error("respawn failed", "error", err)
		return
	}

	fresh, err := sim.New(v.params, positions, velocities)
	if err != nil {
		slog.Error("respawn failed", "error", err)
		return
	}

	v.sim.Close()
	v.sim = fresh
	slog.Info("respawned", "seed", v.spawn.Seed, "pattern", v.spawn.Pattern)
}
