package grid

import (
	"strings"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/overrun/components"
)

// Tile symbols used by Render. Each tile is drawn as exactly one symbol so
// rows keep the same width however crowded a tile gets.
const (
	SymbolEmpty    = '.'
	SymbolPrey     = 'o'
	SymbolPredator = 'X'
	SymbolMixed    = '*'
)

// Render returns one line per row, one symbol per tile.
func (g *Grid) Render() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for row := range g.tiles {
		for _, tile := range g.tiles[row] {
			sb.WriteByte(g.symbol(tile))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (g *Grid) String() string {
	return g.Render()
}

func (g *Grid) symbol(tile []ecs.Entity) byte {
	var prey, pred bool
	for _, e := range tile {
		if g.identityMap.Get(e).Kind == components.KindPredator {
			pred = true
		} else {
			prey = true
		}
	}
	switch {
	case prey && pred:
		return SymbolMixed
	case pred:
		return SymbolPredator
	case prey:
		return SymbolPrey
	}
	return SymbolEmpty
}
