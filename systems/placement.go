// Package systems provides the placement strategies that populate a grid
// before the first turn.
package systems

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/pthm-cable/overrun/components"
	"github.com/pthm-cable/overrun/config"
	"github.com/pthm-cable/overrun/grid"
	"github.com/pthm-cable/overrun/telemetry"
)

// Placer decides where new actors start. It places up to n actors of kind k
// and returns how many it placed.
type Placer interface {
	Place(g *grid.Grid, k components.Kind, n int) (int, error)
}

// UniformPlacer puts every actor on an independently drawn random tile.
type UniformPlacer struct {
	rng *rand.Rand
}

// NewUniformPlacer creates a uniform placer drawing from rng.
func NewUniformPlacer(rng *rand.Rand) *UniformPlacer {
	return &UniformPlacer{rng: rng}
}

// Place implements Placer.
func (p *UniformPlacer) Place(g *grid.Grid, k components.Kind, n int) (int, error) {
	for i := 0; i < n; i++ {
		pos := components.Position{Col: p.rng.Intn(g.Width()), Row: p.rng.Intn(g.Height())}
		if _, err := g.Place(k, pos); err != nil {
			return i, err
		}
	}
	return n, nil
}

// ClusteredPlacer scatters actors around a few random centres. Each kind
// gets its own centres.
type ClusteredPlacer struct {
	rng      *rand.Rand
	clusters int
	radius   int
}

// NewClusteredPlacer creates a clustered placer.
func NewClusteredPlacer(rng *rand.Rand, clusters, radius int) *ClusteredPlacer {
	if clusters < 1 {
		clusters = 1
	}
	if radius < 0 {
		radius = 0
	}
	return &ClusteredPlacer{rng: rng, clusters: clusters, radius: radius}
}

// Place implements Placer.
func (p *ClusteredPlacer) Place(g *grid.Grid, k components.Kind, n int) (int, error) {
	centres := make([]components.Position, p.clusters)
	for i := range centres {
		centres[i] = components.Position{Col: p.rng.Intn(g.Width()), Row: p.rng.Intn(g.Height())}
	}

	span := 2*p.radius + 1
	for i := 0; i < n; i++ {
		c := centres[p.rng.Intn(len(centres))]
		pos := components.Position{
			Col: clampInt(c.Col+p.rng.Intn(span)-p.radius, 0, g.Width()-1),
			Row: clampInt(c.Row+p.rng.Intn(span)-p.radius, 0, g.Height()-1),
		}
		if _, err := g.Place(k, pos); err != nil {
			return i, err
		}
	}
	return n, nil
}

// FixedPlacer places an explicit list of actors. The requested count is
// ignored: every listed actor of the requested kind is placed.
type FixedPlacer struct {
	actors []config.ScriptedActor
}

// NewFixedPlacer creates a placer over an explicit actor list.
func NewFixedPlacer(actors []config.ScriptedActor) *FixedPlacer {
	return &FixedPlacer{actors: actors}
}

// NewSnapshotPlacer creates a fixed placer from a saved snapshot, restoring
// each actor's kind and tile.
func NewSnapshotPlacer(snap *telemetry.Snapshot) *FixedPlacer {
	actors := make([]config.ScriptedActor, 0, len(snap.Actors))
	for _, a := range snap.Actors {
		actors = append(actors, config.ScriptedActor{Kind: a.Kind, Col: a.Col, Row: a.Row})
	}
	return NewFixedPlacer(actors)
}

// Place implements Placer.
func (p *FixedPlacer) Place(g *grid.Grid, k components.Kind, _ int) (int, error) {
	placed := 0
	for _, a := range p.actors {
		if a.Kind != k {
			continue
		}
		if _, err := g.Place(k, components.Position{Col: a.Col, Row: a.Row}); err != nil {
			return placed, err
		}
		placed++
	}
	return placed, nil
}

// NewPlacer builds the placer named by cfg.Strategy.
func NewPlacer(cfg config.PlacementConfig, rng *rand.Rand) (Placer, error) {
	info, ok := DefaultRegistry().Get(cfg.Strategy)
	if !ok {
		return nil, fmt.Errorf("unknown placement strategy %q", cfg.Strategy)
	}
	return info.New(cfg, rng)
}
