package telemetry

import "github.com/pthm-cable/overrun/components"

// Collector accumulates grid events within a turn and produces TurnStats.
// It satisfies the grid's Recorder interface.
type Collector struct {
	moves       [components.NumKinds]int
	collisions  [components.NumKinds]int
	conversions int

	totalConversions int
}

// NewCollector creates a new stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record counts one grid event.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventMove:
		if ev.Kind.Valid() {
			c.moves[ev.Kind]++
		}
	case EventCollision:
		if ev.Kind.Valid() {
			c.collisions[ev.Kind]++
		}
	case EventConversion:
		c.conversions++
		c.totalConversions++
	}
}

// Flush produces a TurnStats and resets counters for the next turn.
// The caller provides the turn number and the population counts at turn end.
func (c *Collector) Flush(turn, prey, predators int) TurnStats {
	stats := TurnStats{
		Turn:      turn,
		Prey:      prey,
		Predators: predators,

		PreyMoves:          c.moves[components.KindPrey],
		PredatorMoves:      c.moves[components.KindPredator],
		PreyCollisions:     c.collisions[components.KindPrey],
		PredatorCollisions: c.collisions[components.KindPredator],
		Conversions:        c.conversions,
	}
	if steps := stats.Steps(); steps > 0 {
		stats.CollisionRate = float64(stats.PreyCollisions+stats.PredatorCollisions) / float64(steps)
	}

	// Reset for next turn
	c.moves = [components.NumKinds]int{}
	c.collisions = [components.NumKinds]int{}
	c.conversions = 0

	return stats
}

// TotalConversions returns the number of conversions recorded since creation.
func (c *Collector) TotalConversions() int {
	return c.totalConversions
}
