// Package telemetry provides per-turn population tracking, bookmarking, and snapshots.
package telemetry

import "github.com/pthm-cable/overrun/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventMove EventType = iota
	EventCollision
	EventConversion
	EventPlace
)

func (t EventType) String() string {
	switch t {
	case EventMove:
		return "move"
	case EventCollision:
		return "collision"
	case EventConversion:
		return "conversion"
	case EventPlace:
		return "place"
	}
	return "unknown"
}

// Event represents a single telemetry event emitted by the grid.
type Event struct {
	Type    EventType
	Kind    components.Kind
	ActorID uint32

	From      components.Position
	To        components.Position
	Direction components.Direction

	// Conversion only
	TargetID uint32 // prey that was converted
	NewID    uint32 // predator created in its place
}

// NewMoveEvent creates a successful single-step move event.
func NewMoveEvent(kind components.Kind, id uint32, from, to components.Position, dir components.Direction) Event {
	return Event{
		Type:      EventMove,
		Kind:      kind,
		ActorID:   id,
		From:      from,
		To:        to,
		Direction: dir,
	}
}

// NewCollisionEvent creates a boundary-collision event. The actor stays at pos.
func NewCollisionEvent(kind components.Kind, id uint32, pos components.Position, dir components.Direction) Event {
	return Event{
		Type:      EventCollision,
		Kind:      kind,
		ActorID:   id,
		From:      pos,
		To:        pos,
		Direction: dir,
	}
}

// NewConversionEvent creates a conversion event: predatorID converted preyID into newID at pos.
func NewConversionEvent(predatorID, preyID, newID uint32, pos components.Position) Event {
	return Event{
		Type:     EventConversion,
		Kind:     components.KindPredator,
		ActorID:  predatorID,
		From:     pos,
		To:       pos,
		TargetID: preyID,
		NewID:    newID,
	}
}

// NewPlaceEvent creates an initial placement event.
func NewPlaceEvent(kind components.Kind, id uint32, pos components.Position) Event {
	return Event{
		Type:    EventPlace,
		Kind:    kind,
		ActorID: id,
		From:    pos,
		To:      pos,
	}
}
