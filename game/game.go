// Package game runs the population-extinction loop: prey and predators take
// turns on the grid until no prey is left.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/exp/rand"

	"github.com/pthm-cable/overrun/components"
	"github.com/pthm-cable/overrun/config"
	"github.com/pthm-cable/overrun/grid"
	"github.com/pthm-cable/overrun/systems"
	"github.com/pthm-cable/overrun/telemetry"
)

// ErrGameOver is returned by Step once the game has finished.
var ErrGameOver = errors.New("game: no turns left")

// ErrUnbounded is returned by NewGame when prey are placed, nothing can ever
// convert them and no turn cap is set.
var ErrUnbounded = errors.New("game: prey can never be converted and max_turns is 0")

// Options configures a game.
type Options struct {
	Config      *config.Config // nil = config.Cfg()
	Seed        int64          // 0 = time-based
	OutputDir   string         // CSV and config output, empty = disabled
	SnapshotDir string         // snapshots on bookmarks, empty = disabled
	LogTurns    bool           // log per-turn stats and bookmarks at info level
	MaxTurns    int            // > 0 overrides game.max_turns

	// Directions overrides the seeded direction source.
	Directions grid.DirectionSource
}

// Result summarizes a finished (or stopped) game.
type Result struct {
	Turns       int  `csv:"turns"`
	Prey        int  `csv:"prey"`
	Predators   int  `csv:"predators"`
	Extinct     bool `csv:"extinct"`
	Conversions int  `csv:"conversions"`
}

// String returns the one-line report printed by the CLI.
func (r Result) String() string {
	if r.Extinct {
		return fmt.Sprintf("Game over! No prey left on turn %d!", r.Turns)
	}
	return fmt.Sprintf("Stopped after %d turns with %d prey left.", r.Turns, r.Prey)
}

// Game holds the complete game state.
type Game struct {
	cfg     *config.Config
	grid    *grid.Grid
	rng     *rand.Rand
	rngSeed int64

	// State
	turn      int
	prey      int // as returned by the latest prey pass
	predators int
	maxTurns  int

	// Telemetry
	collector        *telemetry.Collector
	lifetimeTracker  *telemetry.LifetimeTracker
	bookmarkDetector *telemetry.BookmarkDetector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	snapshotDir      string
	logTurns         bool
	lastStats        telemetry.TurnStats
}

// NewGame creates a grid from the configuration and places the initial
// prey and predators.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(uint64(seed)))

	dirs := opts.Directions
	if dirs == nil {
		dirs = grid.RandomDirectionsFrom(rng)
	}
	world, err := grid.New(cfg.Grid.Width, cfg.Grid.Height, dirs)
	if err != nil {
		return nil, err
	}

	maxTurns := cfg.Game.MaxTurns
	if opts.MaxTurns > 0 {
		maxTurns = opts.MaxTurns
	}

	g := &Game{
		cfg:              cfg,
		grid:             world,
		rng:              rng,
		rngSeed:          seed,
		maxTurns:         maxTurns,
		collector:        telemetry.NewCollector(),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		snapshotDir:      opts.SnapshotDir,
		logTurns:         opts.LogTurns,
	}

	recorders := grid.Recorders{g.collector, g.lifetimeTracker}
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		recorders = append(recorders, LogRecorder{})
	}
	world.SetRecorder(recorders)

	if err := g.placeInitial(); err != nil {
		return nil, err
	}
	if maxTurns == 0 && g.prey > 0 && (g.predators == 0 || cfg.Movement.PredatorPaces == 0) {
		return nil, fmt.Errorf("%w (%d prey, %d predators, predator_paces %d)",
			ErrUnbounded, g.prey, g.predators, cfg.Movement.PredatorPaces)
	}

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		g.outputManager.Close()
		return nil, err
	}

	slog.Info("game created",
		"seed", seed,
		"width", cfg.Grid.Width,
		"height", cfg.Grid.Height,
		"placement", cfg.Placement.Strategy,
		"prey", g.prey,
		"predators", g.predators,
		"max_turns", maxTurns,
	)
	return g, nil
}

// placeInitial runs the configured placement strategy for prey, then predators.
func (g *Game) placeInitial() error {
	placer, err := systems.NewPlacer(g.cfg.Placement, g.rng)
	if err != nil {
		return err
	}
	counts := [components.NumKinds]int{
		components.KindPrey:     g.cfg.Population.Prey,
		components.KindPredator: g.cfg.Population.Predators,
	}
	for _, k := range components.Kinds {
		if _, err := placer.Place(g.grid, k, counts[k]); err != nil {
			return fmt.Errorf("placing %s: %w", k, err)
		}
	}

	census := g.grid.Census()
	g.prey, g.predators = census.Prey, census.Predators
	return nil
}

// Done reports whether the game has finished: no prey left, or the turn cap reached.
func (g *Game) Done() bool {
	return g.prey == 0 || (g.maxTurns > 0 && g.turn >= g.maxTurns)
}

// Step runs one turn: every prey moves, then every predator.
func (g *Game) Step() (telemetry.TurnStats, error) {
	if g.Done() {
		return telemetry.TurnStats{}, ErrGameOver
	}

	g.turn++
	g.lifetimeTracker.SetTurn(g.turn)
	g.perfCollector.StartTurn()

	g.perfCollector.StartPhase(telemetry.PhasePreyTurn)
	prey, err := g.grid.ProcessTurn(components.KindPrey, g.cfg.Movement.PreyPaces)
	if err != nil {
		return telemetry.TurnStats{}, fmt.Errorf("turn %d: %w", g.turn, err)
	}

	g.perfCollector.StartPhase(telemetry.PhasePredatorTurn)
	predators, err := g.grid.ProcessTurn(components.KindPredator, g.cfg.Movement.PredatorPaces)
	if err != nil {
		return telemetry.TurnStats{}, fmt.Errorf("turn %d: %w", g.turn, err)
	}
	g.prey, g.predators = prey, predators

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	stats := g.flushTelemetry()
	g.perfCollector.EndTurn()

	return stats, nil
}

// Run steps until the game is done, then logs the summary and closes output files.
func (g *Game) Run() (Result, error) {
	for !g.Done() {
		if _, err := g.Step(); err != nil {
			g.Close()
			return g.Result(), err
		}
	}
	g.logSummary()
	return g.Result(), g.Close()
}

// Result reports the current outcome.
func (g *Game) Result() Result {
	return Result{
		Turns:       g.turn,
		Prey:        g.prey,
		Predators:   g.predators,
		Extinct:     g.prey == 0,
		Conversions: g.collector.TotalConversions(),
	}
}

// Close flushes and closes output files.
func (g *Game) Close() error {
	err := g.outputManager.Close()
	g.outputManager = nil
	return err
}

// Turn returns the number of turns played.
func (g *Game) Turn() int { return g.turn }

// Seed returns the seed the game was created with.
func (g *Game) Seed() int64 { return g.rngSeed }

// Grid exposes the grid for inspection.
func (g *Game) Grid() *grid.Grid { return g.grid }

// LastStats returns the stats of the latest turn.
func (g *Game) LastStats() telemetry.TurnStats { return g.lastStats }

func (g *Game) logSummary() {
	attrs := []any{
		"turns", g.turn,
		"prey", g.prey,
		"predators", g.predators,
		"conversions", g.collector.TotalConversions(),
		"perf", g.perfCollector.Stats(),
	}
	if key, stats, ok := g.lifetimeTracker.TopConverter(); ok {
		attrs = append(attrs,
			"top_converter", key.ID,
			"top_converter_conversions", stats.Conversions,
			"top_converter_born", stats.BirthTurn,
		)
	}
	slog.Info("game finished", attrs...)
}
