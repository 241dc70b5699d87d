package components

// Identity bundles an actor's kind and its per-kind numeric ID.
// Both are fixed at creation.
type Identity struct {
	Kind Kind
	ID   uint32
}

// TurnState tracks whether an actor has already acted during the current
// turn pass for its kind.
type TurnState struct {
	Acted bool
}

// IDSequence hands out monotonically increasing IDs, one counter per kind.
// The zero value is ready to use; the first ID of each kind is 0.
type IDSequence struct {
	next [NumKinds]uint32
}

// Next returns the next ID for kind k.
func (s *IDSequence) Next(k Kind) uint32 {
	id := s.next[k]
	s.next[k]++
	return id
}

// Peek returns the ID the next call to Next(k) will hand out.
func (s *IDSequence) Peek(k Kind) uint32 {
	return s.next[k]
}
