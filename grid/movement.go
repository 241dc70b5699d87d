package grid

import (
	"fmt"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/overrun/components"
	"github.com/pthm-cable/overrun/telemetry"
)

// Step tries to move actor e one tile from `from` in direction dir.
//
// A destination off the grid is a boundary collision: nothing changes and
// moved is false. Otherwise e is removed from its tile and appended to the
// destination tile. Predators then convert every prey on the tile they end up
// on, whether or not they moved.
//
// e must be on tile `from`; Step panics otherwise.
func (g *Grid) Step(e ecs.Entity, from components.Position, dir components.Direction) (pos components.Position, moved bool) {
	if !g.InBounds(from) || !slices.Contains(g.tiles[from.Row][from.Col], e) {
		panic(fmt.Sprintf("grid: actor not on tile %s", from))
	}
	ident := g.Identity(e)
	dCol, dRow := dir.Offset()
	to := from.Add(dCol, dRow)

	pos = from
	if g.InBounds(to) {
		g.removeFromTile(from, e)
		g.tiles[to.Row][to.Col] = append(g.tiles[to.Row][to.Col], e)
		pos, moved = to, true
		g.record(telemetry.NewMoveEvent(ident.Kind, ident.ID, from, to, dir))
	} else {
		g.record(telemetry.NewCollisionEvent(ident.Kind, ident.ID, from, dir))
	}

	if ident.Kind == components.KindPredator {
		g.convert(ident.ID, pos)
	}
	return pos, moved
}

// convert turns every non-predator on tile p into a new predator. The new
// predators are marked as having acted so they sit out the current pass.
func (g *Grid) convert(predatorID uint32, p components.Position) int {
	var prey []ecs.Entity
	for _, e := range g.tiles[p.Row][p.Col] {
		if g.identityMap.Get(e).Kind != components.KindPredator {
			prey = append(prey, e)
		}
	}

	for _, e := range prey {
		preyID := g.identityMap.Get(e).ID
		g.removeFromTile(p, e)
		g.world.RemoveEntity(e)
		_, newID := g.spawn(components.KindPredator, p, true)
		g.record(telemetry.NewConversionEvent(predatorID, preyID, newID, p))
	}
	return len(prey)
}

// removeFromTile deletes e from tile p, keeping the order of the rest.
func (g *Grid) removeFromTile(p components.Position, e ecs.Entity) {
	tile := g.tiles[p.Row][p.Col]
	if i := slices.Index(tile, e); i >= 0 {
		g.tiles[p.Row][p.Col] = slices.Delete(tile, i, i+1)
	}
}
