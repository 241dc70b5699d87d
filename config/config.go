// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/overrun/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Population PopulationConfig `yaml:"population"`
	Movement   MovementConfig   `yaml:"movement"`
	Placement  PlacementConfig  `yaml:"placement"`
	Game       GameConfig       `yaml:"game"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Bookmarks  BookmarksConfig  `yaml:"bookmarks"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GridConfig holds world dimensions in tiles.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PopulationConfig holds initial population sizes.
type PopulationConfig struct {
	Prey      int `yaml:"prey"`
	Predators int `yaml:"predators"`
}

// MovementConfig holds paces (unit steps) per turn for each kind.
type MovementConfig struct {
	PreyPaces     int `yaml:"prey_paces"`
	PredatorPaces int `yaml:"predator_paces"`
}

// Paces returns the paces configured for kind k.
func (m MovementConfig) Paces(k components.Kind) int {
	if k == components.KindPredator {
		return m.PredatorPaces
	}
	return m.PreyPaces
}

// Placement strategy names.
const (
	PlacementUniform   = "uniform"
	PlacementClustered = "clustered"
	PlacementSnapshot  = "snapshot"
	PlacementScripted  = "scripted"
)

// PlacementConfig selects and parameterizes the initial placement strategy.
type PlacementConfig struct {
	Strategy string          `yaml:"strategy"`
	Clusters int             `yaml:"clusters"`      // clustered: number of cluster centres per kind
	Radius   int             `yaml:"radius"`        // clustered: max tile distance from a centre
	Snapshot string          `yaml:"snapshot_path"` // snapshot: JSON snapshot file to read
	Actors   []ScriptedActor `yaml:"actors"`        // scripted: explicit actor list
}

// ScriptedActor is one explicitly placed actor.
type ScriptedActor struct {
	Kind components.Kind `yaml:"kind"`
	Col  int             `yaml:"col"`
	Row  int             `yaml:"row"`
}

// GameConfig holds game loop parameters.
type GameConfig struct {
	MaxTurns int `yaml:"max_turns"` // 0 = run until prey extinction
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	PreyCrash     PreyCrashConfig     `yaml:"prey_crash"`
	PredatorSurge PredatorSurgeConfig `yaml:"predator_surge"`
}

// PreyCrashConfig triggers when prey drop sharply within one turn.
type PreyCrashConfig struct {
	DropPercent float64 `yaml:"drop_percent"`
	MinDrop     int     `yaml:"min_drop"`
}

// PredatorSurgeConfig triggers when predators grow well past their recent minimum.
type PredatorSurgeConfig struct {
	Multiplier float64 `yaml:"multiplier"`
	MinGain    int     `yaml:"min_gain"`
}

// LoggingConfig holds slog settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// SlogLevel converts the configured level name to a slog.Level.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return slog.LevelWarn, fmt.Errorf("logging level %q: %w", l.Level, err)
	}
	return level, nil
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for contract violations.
func (c *Config) Validate() error {
	var errs []error
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid: dimensions must be positive, got %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Population.Prey < 0 || c.Population.Predators < 0 {
		errs = append(errs, fmt.Errorf("population: counts must be non-negative"))
	}
	if c.Movement.PreyPaces < 0 || c.Movement.PredatorPaces < 0 {
		errs = append(errs, fmt.Errorf("movement: paces must be non-negative"))
	}
	if c.Game.MaxTurns < 0 {
		errs = append(errs, fmt.Errorf("game: max_turns must be non-negative"))
	}

	switch c.Placement.Strategy {
	case PlacementUniform:
	case PlacementClustered:
		if c.Placement.Clusters <= 0 || c.Placement.Radius < 0 {
			errs = append(errs, fmt.Errorf("placement: clustered needs clusters > 0 and radius >= 0"))
		}
	case PlacementSnapshot:
		if c.Placement.Snapshot == "" {
			errs = append(errs, fmt.Errorf("placement: snapshot strategy needs snapshot_path"))
		}
	case PlacementScripted:
		for i, a := range c.Placement.Actors {
			if a.Col < 0 || a.Col >= c.Grid.Width || a.Row < 0 || a.Row >= c.Grid.Height {
				errs = append(errs, fmt.Errorf("placement: scripted actor %d at (%d,%d) is off the grid", i, a.Col, a.Row))
			}
		}
	default:
		errs = append(errs, fmt.Errorf("placement: unknown strategy %q", c.Placement.Strategy))
	}

	if _, err := c.Logging.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy, safe to mutate independently (e.g. per batch run).
func (c *Config) Clone() *Config {
	out := *c
	out.Placement.Actors = append([]ScriptedActor(nil), c.Placement.Actors...)
	return &out
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
