package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plasma/config"
	"github.com/pthm-cable/plasma/sim"
	"github.com/pthm-cable/plasma/telemetry"
	"github.com/pthm-cable/plasma/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV telemetry and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N steps (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation steps per rendered frame")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	params := sim.ParamsFromConfig(cfg)
	spawnOpts := sim.SpawnOptions{
		Pattern:          cfg.Spawn.Pattern,
		DiscRadius:       float32(cfg.Spawn.DiscRadius),
		ClusterScale:     cfg.Spawn.ClusterScale,
		ClusterThreshold: cfg.Spawn.ClusterThreshold,
		MaxSpeed:         float32(cfg.Spawn.MaxSpeed),
		Seed:             rngSeed,
	}

	positions, velocities, err := sim.Spawn(&params, spawnOpts)
	if err != nil {
		slog.Error("failed to spawn particles", "error", err)
		os.Exit(1)
	}

	s, err := sim.New(params, positions, velocities)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer s.Close()

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	collector := telemetry.NewCollector(cfg.Telemetry.StatsWindow)

	if *headless {
		runHeadless(s, params, collector, output, *logStats, *maxTicks, rngSeed)
		return
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Plasma")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	v := viewer.New(s, params, spawnOpts, cfg.Screen.Width, cfg.Screen.Height, collector, output)
	v.SetStepsPerUpdate(*stepsPerUpdate)
	defer v.Unload()

	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()

		if *maxTicks > 0 && int(s.Generation()) >= *maxTicks {
			break
		}
	}
}

// runHeadless drives the simulation without graphics, for profiling runs
// and CSV experiments.
func runHeadless(s *sim.Sim, params sim.Params, collector *telemetry.Collector, output *telemetry.OutputManager, logStats bool, maxTicks int, seed int64) {
	slog.Info("starting headless simulation",
		"seed", seed,
		"particles", s.N(),
		"max_ticks", maxTicks,
	)

	for {
		start := time.Now()
		if err := s.Step(params); err != nil {
			slog.Error("step aborted", "error", err, "generation", s.Generation())
			os.Exit(1)
		}
		collector.RecordStep(time.Since(start), s.Timing())

		if collector.Ready() {
			stats := collector.Flush(s, int64(s.Generation()))
			if logStats {
				stats.Log()
			}
			if err := output.WriteTelemetry(stats); err != nil {
				slog.Error("failed to write telemetry", "error", err)
			}
		}

		if maxTicks > 0 && int(s.Generation()) >= maxTicks {
			slog.Info("max ticks reached", "generation", s.Generation())
			return
		}
	}
}
