package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/overrun/components"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version: SnapshotVersion,
		RNGSeed: 42,
		Width:   3,
		Height:  3,
		Turn:    17,
		Actors: []ActorState{
			{ID: 0, Kind: components.KindPrey, Col: 0, Row: 0},
			{ID: 1, Kind: components.KindPrey, Col: 1, Row: 0},
			{ID: 4, Kind: components.KindPredator, Col: 2, Row: 2},
		},
		Bookmark: &Bookmark{Type: BookmarkPreyCrash, Turn: 17, Description: "test"},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "snapshot_17_prey_crash.json"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	// Kinds are stored by name.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"kind": "predator"`) {
		t.Errorf("snapshot should name kinds, got:\n%s", data)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.RNGSeed != 42 || loaded.Width != 3 || loaded.Height != 3 || loaded.Turn != 17 {
		t.Errorf("header = %+v", loaded)
	}
	if len(loaded.Actors) != len(snapshot.Actors) {
		t.Fatalf("actors = %d, want %d", len(loaded.Actors), len(snapshot.Actors))
	}
	for i := range snapshot.Actors {
		if loaded.Actors[i] != snapshot.Actors[i] {
			t.Errorf("actor %d = %+v, want %+v", i, loaded.Actors[i], snapshot.Actors[i])
		}
	}
	if loaded.Bookmark == nil || *loaded.Bookmark != *snapshot.Bookmark {
		t.Errorf("bookmark = %+v, want %+v", loaded.Bookmark, snapshot.Bookmark)
	}

	prey, pred := loaded.Census()
	if prey != 2 || pred != 1 {
		t.Errorf("Census() = %d prey %d predators, want 2 and 1", prey, pred)
	}
}

func TestSnapshotWithoutBookmark(t *testing.T) {
	path, err := SaveSnapshot(&Snapshot{Version: SnapshotVersion, Turn: 3}, t.TempDir())
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if filepath.Base(path) != "snapshot_3.json" {
		t.Errorf("file name = %s, want snapshot_3.json", filepath.Base(path))
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	data, err := json.Marshal(Snapshot{Version: SnapshotVersion + 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSnapshot(path); err == nil || !strings.Contains(err.Error(), "unsupported version") {
		t.Errorf("LoadSnapshot() error = %v, want unsupported version", err)
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
