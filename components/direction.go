package components

import "fmt"

// Direction is one of the 8 compass directions an actor can step in.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// NumDirections is the number of compass directions.
const NumDirections = 8

// Directions lists all directions in clockwise order starting at North.
var Directions = [NumDirections]Direction{
	North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest,
}

var directionOffsets = [NumDirections][2]int{
	{0, -1},  // N
	{1, -1},  // NE
	{1, 0},   // E
	{1, 1},   // SE
	{0, 1},   // S
	{-1, 1},  // SW
	{-1, 0},  // W
	{-1, -1}, // NW
}

var directionCodes = [NumDirections]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

var directionNames = [NumDirections]string{
	"North", "North-East", "East", "South-East",
	"South", "South-West", "West", "North-West",
}

// Valid reports whether d is one of the 8 directions.
func (d Direction) Valid() bool {
	return d < NumDirections
}

// Offset returns the (dCol, dRow) unit step for d. Rows grow southwards.
func (d Direction) Offset() (dCol, dRow int) {
	o := directionOffsets[d]
	return o[0], o[1]
}

// String returns the short compass code, e.g. "NE".
func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
	return directionCodes[d]
}

// Name returns the long name, e.g. "North-East".
func (d Direction) Name() string {
	if !d.Valid() {
		return d.String()
	}
	return directionNames[d]
}

// ParseDirection converts a compass code such as "SW" into a Direction.
func ParseDirection(s string) (Direction, error) {
	for i, code := range directionCodes {
		if code == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}
