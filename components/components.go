// Package components defines ECS components for the simulation.
package components

import (
	"fmt"
	"strings"
)

// Kind identifies which population an actor belongs to.
type Kind uint8

const (
	KindPrey Kind = iota
	KindPredator
)

// NumKinds is the size of the closed set of kinds.
const NumKinds = 2

// Kinds lists every kind in scan order.
var Kinds = [NumKinds]Kind{KindPrey, KindPredator}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k < NumKinds
}

func (k Kind) String() string {
	switch k {
	case KindPrey:
		return "prey"
	case KindPredator:
		return "predator"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind converts a name such as "prey" or "predator" into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prey", "human":
		return KindPrey, nil
	case "predator", "pred", "zombie":
		return KindPredator, nil
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

// MarshalText implements encoding.TextMarshaler (used by JSON and CSV output).
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML writes the kind by name.
func (k Kind) MarshalYAML() (interface{}, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid kind %d", uint8(k))
	}
	return k.String(), nil
}

// UnmarshalYAML reads the kind by name.
func (k *Kind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return k.UnmarshalText([]byte(s))
}

// MarshalCSV writes the kind by name in gocsv output.
func (k Kind) MarshalCSV() (string, error) {
	b, err := k.MarshalText()
	return string(b), err
}

// UnmarshalCSV reads the kind by name from gocsv input.
func (k *Kind) UnmarshalCSV(s string) error {
	return k.UnmarshalText([]byte(s))
}
