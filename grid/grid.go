// Package grid implements the tile world: actor storage, single-step movement,
// conversion on contact, and the per-turn processing pass.
package grid

import (
	"errors"
	"fmt"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/overrun/components"
	"github.com/pthm-cable/overrun/telemetry"
)

var (
	ErrInvalidDimensions = errors.New("grid: dimensions must be positive")
	ErrInvalidKind       = errors.New("grid: unknown actor kind")
	ErrInvalidPaces      = errors.New("grid: paces must be non-negative")
	ErrOutOfBounds       = errors.New("grid: position out of bounds")
)

// Recorder receives events as the grid mutates.
type Recorder interface {
	Record(ev telemetry.Event)
}

// Recorders fans an event out to several recorders. Nil entries are skipped.
type Recorders []Recorder

// Record implements Recorder.
func (rs Recorders) Record(ev telemetry.Event) {
	for _, r := range rs {
		if r != nil {
			r.Record(ev)
		}
	}
}

// ActorInfo is a read-only view of one actor.
type ActorInfo struct {
	Entity ecs.Entity
	Kind   components.Kind
	ID     uint32
	Acted  bool
	Pos    components.Position
}

// Census holds population counts.
type Census struct {
	Prey      int
	Predators int
}

// Count returns the count for kind k.
func (c Census) Count(k components.Kind) int {
	if k == components.KindPredator {
		return c.Predators
	}
	return c.Prey
}

// Total returns the number of actors of all kinds.
func (c Census) Total() int {
	return c.Prey + c.Predators
}

// Grid is a fixed-size 2D array of tiles. Each tile holds the entities of the
// actors standing on it, in insertion order. Actor state lives in an ECS world
// owned by the grid.
type Grid struct {
	width  int
	height int
	tiles  [][][]ecs.Entity // [row][col]

	world       *ecs.World
	actorMap    *ecs.Map2[components.Identity, components.TurnState]
	identityMap *ecs.Map[components.Identity]
	actorFilter *ecs.Filter2[components.Identity, components.TurnState]

	ids        components.IDSequence
	directions DirectionSource
	recorder   Recorder
}

// New creates an empty grid of the given size. Directions for every pace are
// drawn from dirs; a nil source is replaced by a time-seeded random one.
func New(width, height int, dirs DirectionSource) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	if dirs == nil {
		dirs = NewRandomDirections(uint64(time.Now().UnixNano()))
	}

	tiles := make([][][]ecs.Entity, height)
	for row := range tiles {
		tiles[row] = make([][]ecs.Entity, width)
	}

	world := ecs.NewWorld()

	return &Grid{
		width:       width,
		height:      height,
		tiles:       tiles,
		world:       world,
		actorMap:    ecs.NewMap2[components.Identity, components.TurnState](world),
		identityMap: ecs.NewMap[components.Identity](world),
		actorFilter: ecs.NewFilter2[components.Identity, components.TurnState](world),
		directions:  dirs,
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// SetRecorder installs the event recorder. Nil disables recording.
func (g *Grid) SetRecorder(r Recorder) {
	g.recorder = r
}

// SetDirections replaces the direction source.
func (g *Grid) SetDirections(dirs DirectionSource) {
	g.directions = dirs
}

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p components.Position) bool {
	return p.Col >= 0 && p.Col < g.width && p.Row >= 0 && p.Row < g.height
}

// Place creates a new actor of kind k and puts it on tile p.
func (g *Grid) Place(k components.Kind, p components.Position) (ecs.Entity, error) {
	if !k.Valid() {
		return ecs.Entity{}, fmt.Errorf("place: %w: %d", ErrInvalidKind, uint8(k))
	}
	if !g.InBounds(p) {
		return ecs.Entity{}, fmt.Errorf("place %s at %s on %dx%d grid: %w", k, p, g.width, g.height, ErrOutOfBounds)
	}
	e, id := g.spawn(k, p, false)
	g.record(telemetry.NewPlaceEvent(k, id, p))
	return e, nil
}

// spawn creates an actor entity and appends it to tile p.
func (g *Grid) spawn(k components.Kind, p components.Position, acted bool) (ecs.Entity, uint32) {
	ident := components.Identity{Kind: k, ID: g.ids.Next(k)}
	state := components.TurnState{Acted: acted}
	e := g.actorMap.NewEntity(&ident, &state)
	g.tiles[p.Row][p.Col] = append(g.tiles[p.Row][p.Col], e)
	return e, ident.ID
}

// Identity returns the kind and ID of an actor.
func (g *Grid) Identity(e ecs.Entity) components.Identity {
	return *g.identityMap.Get(e)
}

// Alive reports whether the actor still exists. Converted prey do not.
func (g *Grid) Alive(e ecs.Entity) bool {
	return g.world.Alive(e)
}

// Tile returns the occupants of tile p in insertion order.
func (g *Grid) Tile(p components.Position) []ActorInfo {
	if !g.InBounds(p) {
		return nil
	}
	tile := g.tiles[p.Row][p.Col]
	out := make([]ActorInfo, 0, len(tile))
	for _, e := range tile {
		out = append(out, g.info(e, p))
	}
	return out
}

// Actors lists every actor in row-major tile order.
func (g *Grid) Actors() []ActorInfo {
	var out []ActorInfo
	for row := range g.tiles {
		for col, tile := range g.tiles[row] {
			p := components.Position{Col: col, Row: row}
			for _, e := range tile {
				out = append(out, g.info(e, p))
			}
		}
	}
	return out
}

func (g *Grid) info(e ecs.Entity, p components.Position) ActorInfo {
	ident, state := g.actorMap.Get(e)
	return ActorInfo{
		Entity: e,
		Kind:   ident.Kind,
		ID:     ident.ID,
		Acted:  state.Acted,
		Pos:    p,
	}
}

// Census counts actors per kind by querying the ECS world.
func (g *Grid) Census() Census {
	var c Census
	query := g.actorFilter.Query()
	for query.Next() {
		ident, _ := query.Get()
		switch ident.Kind {
		case components.KindPrey:
			c.Prey++
		case components.KindPredator:
			c.Predators++
		}
	}
	return c
}

// NextID returns the ID the next actor of kind k will receive.
func (g *Grid) NextID(k components.Kind) uint32 {
	return g.ids.Peek(k)
}

func (g *Grid) record(ev telemetry.Event) {
	if g.recorder != nil {
		g.recorder.Record(ev)
	}
}
