package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pthm-cable/overrun/config"
	"github.com/pthm-cable/overrun/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	maxTurns := flag.Int("max-turns", 0, "Stop after N turns (0 = use config)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (empty = use config)")
	logTurns := flag.Bool("log-turns", false, "Log per-turn stats and bookmarks")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	level, err := cfg.Logging.SlogLevel()
	if err != nil {
		slog.Error("invalid log level", "error", err)
		os.Exit(1)
	}

	// Set up slog (JSON to stderr, stdout carries the result line)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	g, err := game.NewGame(game.Options{
		Config:      cfg,
		Seed:        *seed,
		OutputDir:   *outputDir,
		SnapshotDir: *snapshotDir,
		LogTurns:    *logTurns,
		MaxTurns:    *maxTurns,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}

	res, err := g.Run()
	if err != nil {
		slog.Error("game failed", "turn", res.Turns, "error", err)
		os.Exit(1)
	}
	fmt.Println(res)
}
