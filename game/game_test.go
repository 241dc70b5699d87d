package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/overrun/components"
	"github.com/pthm-cable/overrun/config"
	"github.com/pthm-cable/overrun/grid"
	"github.com/pthm-cable/overrun/telemetry"
)

func scriptedConfig(width, height, paces int, actors ...config.ScriptedActor) *config.Config {
	cfg := config.Default()
	cfg.Grid.Width, cfg.Grid.Height = width, height
	cfg.Movement.PreyPaces, cfg.Movement.PredatorPaces = paces, paces
	cfg.Placement.Strategy = config.PlacementScripted
	cfg.Placement.Actors = actors
	return cfg
}

func prey(col, row int) config.ScriptedActor {
	return config.ScriptedActor{Kind: components.KindPrey, Col: col, Row: row}
}

func predator(col, row int) config.ScriptedActor {
	return config.ScriptedActor{Kind: components.KindPredator, Col: col, Row: row}
}

// One prey in the corner, one predator diagonally next to it. The prey bumps
// north into the wall, the predator steps north-west onto it.
func newCornerGame(t *testing.T, opts Options) *Game {
	t.Helper()
	opts.Config = scriptedConfig(3, 3, 1, prey(0, 0), predator(1, 1))
	opts.Seed = 1
	opts.Directions = grid.NewDirectionSequence(components.North, components.NorthWest)
	g, err := NewGame(opts)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	return g
}

func TestStepConvertsThenEndsNextTurn(t *testing.T) {
	g := newCornerGame(t, Options{})

	stats, err := g.Step()
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	want := telemetry.TurnStats{
		Turn: 1, Prey: 0, Predators: 2,
		PreyCollisions: 1, PredatorMoves: 1, Conversions: 1,
		CollisionRate: 0.5,
	}
	if stats != want {
		t.Errorf("turn 1 stats = %+v, want %+v", stats, want)
	}
	// The prey pass ran before the conversion, so the game goes on.
	if g.Done() {
		t.Fatal("game should not end before the next prey pass")
	}

	if _, err := g.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if !g.Done() {
		t.Fatal("game should end once the prey pass counts zero")
	}
	if _, err := g.Step(); !errors.Is(err, ErrGameOver) {
		t.Errorf("Step after game over = %v, want ErrGameOver", err)
	}

	res := g.Result()
	if res != (Result{Turns: 2, Prey: 0, Predators: 2, Extinct: true, Conversions: 1}) {
		t.Errorf("Result() = %+v", res)
	}
	if got, want := res.String(), "Game over! No prey left on turn 2!"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRunThreeByThreeScenario(t *testing.T) {
	cfg := scriptedConfig(3, 3, 3,
		prey(0, 0), prey(1, 0), prey(1, 0),
		predator(0, 2), predator(2, 2),
	)

	for seed := int64(1); seed <= 10; seed++ {
		g, err := NewGame(Options{Config: cfg, Seed: seed})
		if err != nil {
			t.Fatalf("seed %d: NewGame failed: %v", seed, err)
		}
		res, err := g.Run()
		if err != nil {
			t.Fatalf("seed %d: Run failed: %v", seed, err)
		}
		if !res.Extinct || res.Turns < 1 {
			t.Errorf("seed %d: result = %+v, want extinction", seed, res)
		}
		if res.Conversions != 3 || res.Predators != 5 {
			t.Errorf("seed %d: %d conversions, %d predators; want 3 and 5", seed, res.Conversions, res.Predators)
		}
	}
}

func TestRunStopsAtMaxTurns(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Width, cfg.Grid.Height = 5, 5
	cfg.Population.Prey, cfg.Population.Predators = 4, 0

	g, err := NewGame(Options{Config: cfg, Seed: 3, MaxTurns: 5})
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	res, err := g.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Extinct || res.Turns != 5 || res.Prey != 4 {
		t.Errorf("Result() = %+v, want 5 turns with 4 prey", res)
	}
	if got, want := res.String(), "Stopped after 5 turns with 4 prey left."; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNoPreyMeansNoTurns(t *testing.T) {
	cfg := config.Default()
	cfg.Population.Prey = 0

	g, err := NewGame(Options{Config: cfg, Seed: 5})
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	res, err := g.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !res.Extinct || res.Turns != 0 {
		t.Errorf("Result() = %+v, want extinct on turn 0", res)
	}
}

func TestSameSeedSameGame(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Width, cfg.Grid.Height = 10, 10
	cfg.Population.Prey, cfg.Population.Predators = 20, 2

	run := func() (Result, string) {
		g, err := NewGame(Options{Config: cfg, Seed: 7, MaxTurns: 15})
		if err != nil {
			t.Fatalf("NewGame failed: %v", err)
		}
		res, err := g.Run()
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		return res, g.Grid().Render()
	}

	res1, grid1 := run()
	res2, grid2 := run()
	if res1 != res2 {
		t.Errorf("results differ: %+v vs %+v", res1, res2)
	}
	if grid1 != grid2 {
		t.Errorf("grids differ:\n%s\nvs\n%s", grid1, grid2)
	}
}

func TestNewGameRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Width = 0
	if _, err := NewGame(Options{Config: cfg}); err == nil {
		t.Error("expected error for zero-width grid")
	}
}

func TestOutputAndSnapshots(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	snapDir := filepath.Join(t.TempDir(), "snapshots")

	g := newCornerGame(t, Options{OutputDir: outDir, SnapshotDir: snapDir})
	if _, err := g.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, name := range []string{telemetry.TurnsFile, telemetry.BookmarksFile, telemetry.PerfFile, telemetry.ConfigFile} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing output file %s: %v", name, err)
		}
	}

	// Prey are gone by the end of turn 1.
	snap, err := telemetry.LoadSnapshot(filepath.Join(snapDir, "snapshot_1_extinction.json"))
	if err != nil {
		t.Fatalf("extinction snapshot: %v", err)
	}
	if prey, pred := snap.Census(); prey != 0 || pred != 2 {
		t.Errorf("snapshot census = %d prey %d predators, want 0 and 2", prey, pred)
	}
	if snap.RNGSeed != 1 || snap.Width != 3 || snap.Height != 3 {
		t.Errorf("snapshot header = %+v", snap)
	}
}

func TestSnapshotPlacementRestoresGrid(t *testing.T) {
	cfg := scriptedConfig(4, 3, 2, prey(0, 0), prey(3, 2), prey(3, 2), predator(1, 1))
	g, err := NewGame(Options{Config: cfg, Seed: 11})
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}

	path, err := telemetry.SaveSnapshot(g.Snapshot(nil), t.TempDir())
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	restoredCfg := config.Default()
	restoredCfg.Grid.Width, restoredCfg.Grid.Height = 4, 3
	restoredCfg.Placement.Strategy = config.PlacementSnapshot
	restoredCfg.Placement.Snapshot = path
	restored, err := NewGame(Options{Config: restoredCfg, Seed: 12})
	if err != nil {
		t.Fatalf("NewGame from snapshot failed: %v", err)
	}

	if got, want := restored.Grid().Render(), g.Grid().Render(); got != want {
		t.Errorf("restored grid:\n%s\nwant:\n%s", got, want)
	}
}

func TestNewGameRejectsUnboundedGame(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *config.Config)
		maxTurns int
		wantErr  bool
	}{
		{"no predators", func(c *config.Config) { c.Population.Predators = 0 }, 0, true},
		{"predators never move", func(c *config.Config) { c.Movement.PredatorPaces = 0 }, 0, true},
		{"no predators with cap", func(c *config.Config) { c.Population.Predators = 0 }, 5, false},
		{"no prey", func(c *config.Config) { c.Population.Prey, c.Population.Predators = 0, 0 }, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Grid.Width, cfg.Grid.Height = 5, 5
			cfg.Population.Prey, cfg.Population.Predators = 4, 1
			cfg.Game.MaxTurns = 0
			tt.mutate(cfg)

			_, err := NewGame(Options{Config: cfg, Seed: 9, MaxTurns: tt.maxTurns})
			if got := errors.Is(err, ErrUnbounded); got != tt.wantErr {
				t.Errorf("NewGame() error = %v, want ErrUnbounded: %v", err, tt.wantErr)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("NewGame() = %v, want nil", err)
			}
		})
	}
}
