package grid

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/overrun/components"
)

// ProcessTurn moves every actor of kind k for the given number of paces and
// returns how many actors of kind k exist afterwards.
//
// Tiles are visited row-major. The occupants of a tile are captured when the
// scan reaches it and handled in that order; actors that arrive later (movers
// from earlier tiles, fresh conversions) already carry the acted flag and are
// skipped wherever the scan meets them. Each eligible actor walks `paces`
// independent random unit steps from the scanned tile. A final pass clears
// the acted flag for kind k, so predators created this turn move next turn.
func (g *Grid) ProcessTurn(k components.Kind, paces int) (int, error) {
	if !k.Valid() {
		return 0, fmt.Errorf("process turn: %w: %d", ErrInvalidKind, uint8(k))
	}
	if paces < 0 {
		return 0, fmt.Errorf("process turn for %s: %w: got %d", k, ErrInvalidPaces, paces)
	}

	var occupants []ecs.Entity
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			start := components.Position{Col: col, Row: row}
			occupants = append(occupants[:0], g.tiles[row][col]...)

			for _, e := range occupants {
				// Converted prey are gone from the world.
				if !g.world.Alive(e) {
					continue
				}
				ident, state := g.actorMap.Get(e)
				if ident.Kind != k || state.Acted {
					continue
				}
				g.walk(e, start, paces)

				// Conversions during the walk may have moved component storage.
				_, state = g.actorMap.Get(e)
				state.Acted = true
			}
		}
	}

	return g.endTurn(k), nil
}

// walk performs `paces` single steps for e, each in a freshly drawn direction.
func (g *Grid) walk(e ecs.Entity, start components.Position, paces int) {
	pos := start
	for i := 0; i < paces; i++ {
		pos, _ = g.Step(e, pos, g.directions.Next())
	}
}

// endTurn clears the acted flag on every actor of kind k and counts them.
func (g *Grid) endTurn(k components.Kind) int {
	count := 0
	for row := range g.tiles {
		for _, tile := range g.tiles[row] {
			for _, e := range tile {
				ident, state := g.actorMap.Get(e)
				if ident.Kind != k {
					continue
				}
				state.Acted = false
				count++
			}
		}
	}
	return count
}
