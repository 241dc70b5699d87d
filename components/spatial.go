package components

import "fmt"

// Position is a tile coordinate on the grid.
type Position struct {
	Col int `json:"col" yaml:"col"`
	Row int `json:"row" yaml:"row"`
}

// Add returns p offset by (dCol, dRow).
func (p Position) Add(dCol, dRow int) Position {
	return Position{Col: p.Col + dCol, Row: p.Row + dRow}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}
