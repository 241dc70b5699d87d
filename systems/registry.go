package systems

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/pthm-cable/overrun/config"
	"github.com/pthm-cable/overrun/telemetry"
)

// PlacerFactory builds a placer from its configuration.
type PlacerFactory func(cfg config.PlacementConfig, rng *rand.Rand) (Placer, error)

// StrategyInfo describes a placement strategy.
type StrategyInfo struct {
	Name        string // config value
	Description string
	New         PlacerFactory
}

// StrategyRegistry holds all known placement strategies by name.
type StrategyRegistry struct {
	byName map[string]StrategyInfo
}

// NewStrategyRegistry creates a registry with the built-in strategies.
func NewStrategyRegistry() *StrategyRegistry {
	reg := &StrategyRegistry{byName: make(map[string]StrategyInfo)}
	reg.registerDefaults()
	return reg
}

var defaultRegistry = NewStrategyRegistry()

// DefaultRegistry returns the shared registry of built-in strategies.
func DefaultRegistry() *StrategyRegistry {
	return defaultRegistry
}

func (r *StrategyRegistry) registerDefaults() {
	r.Register(StrategyInfo{
		Name:        config.PlacementUniform,
		Description: "each actor on a uniformly random tile",
		New: func(_ config.PlacementConfig, rng *rand.Rand) (Placer, error) {
			return NewUniformPlacer(rng), nil
		},
	})
	r.Register(StrategyInfo{
		Name:        config.PlacementClustered,
		Description: "actors scattered around random centres",
		New: func(cfg config.PlacementConfig, rng *rand.Rand) (Placer, error) {
			return NewClusteredPlacer(rng, cfg.Clusters, cfg.Radius), nil
		},
	})
	r.Register(StrategyInfo{
		Name:        config.PlacementScripted,
		Description: "explicit actor list from the config file",
		New: func(cfg config.PlacementConfig, _ *rand.Rand) (Placer, error) {
			return NewFixedPlacer(cfg.Actors), nil
		},
	})
	r.Register(StrategyInfo{
		Name:        config.PlacementSnapshot,
		Description: "actor kinds and tiles restored from a JSON snapshot",
		New: func(cfg config.PlacementConfig, _ *rand.Rand) (Placer, error) {
			snap, err := telemetry.LoadSnapshot(cfg.Snapshot)
			if err != nil {
				return nil, fmt.Errorf("snapshot placement: %w", err)
			}
			return NewSnapshotPlacer(snap), nil
		},
	})
}

// Register adds or replaces a strategy.
func (r *StrategyRegistry) Register(info StrategyInfo) {
	r.byName[info.Name] = info
}

// Get looks up a strategy by name.
func (r *StrategyRegistry) Get(name string) (StrategyInfo, bool) {
	info, ok := r.byName[name]
	return info, ok
}

// All returns every strategy sorted by name.
func (r *StrategyRegistry) All() []StrategyInfo {
	out := make([]StrategyInfo, 0, len(r.byName))
	for _, info := range r.byName {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
