package systems

import (
	"reflect"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/pthm-cable/overrun/components"
	"github.com/pthm-cable/overrun/config"
	"github.com/pthm-cable/overrun/grid"
)

func newGrid(t *testing.T, width, height int) *grid.Grid {
	t.Helper()
	g, err := grid.New(width, height, grid.NewDirectionSequence(components.North))
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func positions(g *grid.Grid) []components.Position {
	var out []components.Position
	for _, a := range g.Actors() {
		out = append(out, a.Pos)
	}
	return out
}

func TestPlacersStayInBounds(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.PlacementConfig
		width  int
		height int
		n      int
	}{
		{"uniform", config.PlacementConfig{Strategy: config.PlacementUniform}, 7, 4, 50},
		{"clustered", config.PlacementConfig{Strategy: config.PlacementClustered, Clusters: 3, Radius: 2}, 10, 10, 50},
		{"clustered radius beyond grid", config.PlacementConfig{Strategy: config.PlacementClustered, Clusters: 2, Radius: 25}, 4, 3, 80},
		{"clustered single tile", config.PlacementConfig{Strategy: config.PlacementClustered, Clusters: 1, Radius: 5}, 1, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(t, tt.width, tt.height)
			p, err := NewPlacer(tt.cfg, rand.New(rand.NewSource(11)))
			if err != nil {
				t.Fatalf("NewPlacer failed: %v", err)
			}

			placed, err := p.Place(g, components.KindPrey, tt.n)
			if err != nil {
				t.Fatalf("Place failed: %v", err)
			}
			if placed != tt.n {
				t.Errorf("placed = %d, want %d", placed, tt.n)
			}
			if census := g.Census(); census.Prey != tt.n || census.Predators != 0 {
				t.Errorf("census = %+v, want %d prey", census, tt.n)
			}
			for _, pos := range positions(g) {
				if !g.InBounds(pos) {
					t.Errorf("actor placed off grid at %s", pos)
				}
			}
		})
	}
}

func TestClusteredPlacerSmallRadiusStaysNearCentres(t *testing.T) {
	g := newGrid(t, 30, 30)
	p := NewClusteredPlacer(rand.New(rand.NewSource(5)), 1, 0)
	if _, err := p.Place(g, components.KindPredator, 12); err != nil {
		t.Fatal(err)
	}
	if n := len(g.Tile(positions(g)[0])); n != 12 {
		t.Errorf("radius 0 with one cluster put %d of 12 actors on the centre tile", n)
	}
}

func TestUniformPlacerIsReproducible(t *testing.T) {
	place := func(seed uint64) []components.Position {
		g := newGrid(t, 12, 9)
		if _, err := NewUniformPlacer(rand.New(rand.NewSource(seed))).Place(g, components.KindPrey, 30); err != nil {
			t.Fatal(err)
		}
		return positions(g)
	}

	a, b := place(42), place(42)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed gave different placements:\n%v\n%v", a, b)
	}
	if c := place(43); reflect.DeepEqual(a, c) {
		t.Errorf("different seeds gave identical placements: %v", a)
	}
}

func TestFixedPlacerPlacesListedKind(t *testing.T) {
	actors := []config.ScriptedActor{
		{Kind: components.KindPrey, Col: 0, Row: 0},
		{Kind: components.KindPredator, Col: 2, Row: 2},
		{Kind: components.KindPrey, Col: 1, Row: 0},
		{Kind: components.KindPrey, Col: 1, Row: 0},
	}

	tests := []struct {
		kind      components.Kind
		requested int
		want      int
	}{
		{components.KindPrey, 0, 3},
		{components.KindPrey, 10, 3},
		{components.KindPredator, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			g := newGrid(t, 3, 3)
			placed, err := NewFixedPlacer(actors).Place(g, tt.kind, tt.requested)
			if err != nil {
				t.Fatalf("Place failed: %v", err)
			}
			if placed != tt.want {
				t.Errorf("placed = %d, want %d", placed, tt.want)
			}
			for _, a := range g.Actors() {
				if a.Kind != tt.kind {
					t.Errorf("placed %s at %s, want only %s", a.Kind, a.Pos, tt.kind)
				}
			}
		})
	}
}

func TestFixedPlacerOffGrid(t *testing.T) {
	g := newGrid(t, 2, 2)
	actors := []config.ScriptedActor{
		{Kind: components.KindPrey, Col: 0, Row: 0},
		{Kind: components.KindPrey, Col: 5, Row: 0},
	}
	placed, err := NewFixedPlacer(actors).Place(g, components.KindPrey, 0)
	if err == nil {
		t.Fatal("expected error for an actor off the grid")
	}
	if placed != 1 {
		t.Errorf("placed = %d before the error, want 1", placed)
	}
}

func TestNewPlacerUnknownStrategy(t *testing.T) {
	if _, err := NewPlacer(config.PlacementConfig{Strategy: "spiral"}, rand.New(rand.NewSource(1))); err == nil {
		t.Error("expected error for unknown strategy")
	}
	if _, ok := DefaultRegistry().Get("spiral"); ok {
		t.Error("registry should not know \"spiral\"")
	}
}

func TestRegistryListsBuiltins(t *testing.T) {
	var names []string
	for _, info := range DefaultRegistry().All() {
		names = append(names, info.Name)
	}
	want := []string{config.PlacementClustered, config.PlacementScripted, config.PlacementSnapshot, config.PlacementUniform}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("All() names = %v, want %v", names, want)
	}
}
