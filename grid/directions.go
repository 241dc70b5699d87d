package grid

import (
	"golang.org/x/exp/rand"

	"github.com/pthm-cable/overrun/components"
)

// DirectionSource supplies the direction for each pace. Every call is an
// independent draw.
type DirectionSource interface {
	Next() components.Direction
}

// RandomDirections draws directions uniformly over the 8 compass points.
type RandomDirections struct {
	rng *rand.Rand
}

// NewRandomDirections creates a seeded uniform direction source.
func NewRandomDirections(seed uint64) *RandomDirections {
	return &RandomDirections{rng: rand.New(rand.NewSource(seed))}
}

// RandomDirectionsFrom wraps an existing generator.
func RandomDirectionsFrom(rng *rand.Rand) *RandomDirections {
	return &RandomDirections{rng: rng}
}

// Next implements DirectionSource.
func (r *RandomDirections) Next() components.Direction {
	return components.Direction(r.rng.Intn(components.NumDirections))
}

// DirectionSequence replays a fixed list of directions, cycling when exhausted.
// Useful for reproducing exact scenarios.
type DirectionSequence struct {
	dirs  []components.Direction
	next  int
	draws int
}

// NewDirectionSequence creates a cycling source over dirs. dirs must not be empty.
func NewDirectionSequence(dirs ...components.Direction) *DirectionSequence {
	if len(dirs) == 0 {
		panic("grid: NewDirectionSequence needs at least one direction")
	}
	return &DirectionSequence{dirs: dirs}
}

// Next implements DirectionSource.
func (s *DirectionSequence) Next() components.Direction {
	d := s.dirs[s.next]
	s.next = (s.next + 1) % len(s.dirs)
	s.draws++
	return d
}

// Draws returns how many directions have been handed out.
func (s *DirectionSequence) Draws() int {
	return s.draws
}
