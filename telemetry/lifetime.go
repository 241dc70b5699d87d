package telemetry

import "github.com/pthm-cable/overrun/components"

// ActorKey identifies an actor. IDs are only unique within a kind.
type ActorKey struct {
	Kind components.Kind
	ID   uint32
}

// LifetimeStats tracks per-actor statistics over its lifetime.
type LifetimeStats struct {
	BirthTurn  int
	Moves      int
	Collisions int

	// Predators only: prey converted by this actor
	Conversions int
}

// LifetimeTracker manages per-actor lifetime statistics. It satisfies the
// grid's Recorder interface; placements and conversions register actors.
type LifetimeTracker struct {
	stats map[ActorKey]*LifetimeStats
	turn  int

	retired int // prey removed by conversion
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[ActorKey]*LifetimeStats),
	}
}

// SetTurn sets the turn that newly registered actors are born in.
func (lt *LifetimeTracker) SetTurn(turn int) {
	lt.turn = turn
}

// Register creates lifetime stats for a new actor.
func (lt *LifetimeTracker) Register(key ActorKey, birthTurn int) {
	lt.stats[key] = &LifetimeStats{BirthTurn: birthTurn}
}

// Get returns the lifetime stats for an actor, or nil if not found.
func (lt *LifetimeTracker) Get(key ActorKey) *LifetimeStats {
	return lt.stats[key]
}

// Remove removes an actor's stats and returns them.
func (lt *LifetimeTracker) Remove(key ActorKey) *LifetimeStats {
	stats := lt.stats[key]
	delete(lt.stats, key)
	return stats
}

// Record updates lifetime stats from one grid event.
func (lt *LifetimeTracker) Record(ev Event) {
	switch ev.Type {
	case EventPlace:
		lt.Register(ActorKey{ev.Kind, ev.ActorID}, lt.turn)
	case EventMove:
		if s := lt.stats[ActorKey{ev.Kind, ev.ActorID}]; s != nil {
			s.Moves++
		}
	case EventCollision:
		if s := lt.stats[ActorKey{ev.Kind, ev.ActorID}]; s != nil {
			s.Collisions++
		}
	case EventConversion:
		if s := lt.stats[ActorKey{components.KindPredator, ev.ActorID}]; s != nil {
			s.Conversions++
		}
		if lt.Remove(ActorKey{components.KindPrey, ev.TargetID}) != nil {
			lt.retired++
		}
		lt.Register(ActorKey{components.KindPredator, ev.NewID}, lt.turn)
	}
}

// Count returns the number of tracked actors.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// Retired returns how many tracked prey were removed by conversion.
func (lt *LifetimeTracker) Retired() int {
	return lt.retired
}

// TopConverter returns the predator with the most conversions. Ties go to
// the lowest ID. ok is false when no predator has converted anything.
func (lt *LifetimeTracker) TopConverter() (key ActorKey, stats LifetimeStats, ok bool) {
	for k, s := range lt.stats {
		if k.Kind != components.KindPredator || s.Conversions == 0 {
			continue
		}
		if !ok || s.Conversions > stats.Conversions ||
			(s.Conversions == stats.Conversions && k.ID < key.ID) {
			key, stats, ok = k, *s, true
		}
	}
	return key, stats, ok
}
