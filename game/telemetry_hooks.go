package game

import (
	"log/slog"

	"github.com/pthm-cable/overrun/telemetry"
)

// flushTelemetry closes the turn's stats and handles output and bookmarks.
func (g *Game) flushTelemetry() telemetry.TurnStats {
	census := g.grid.Census()
	stats := g.collector.Flush(g.turn, census.Prey, census.Predators)
	g.lastStats = stats

	// Perf is reported once per collector window.
	perfDue := g.cfg.Telemetry.PerfCollectorWindow > 0 && g.turn%g.cfg.Telemetry.PerfCollectorWindow == 0

	if g.logTurns {
		stats.LogStats()
		if perfDue {
			g.perfCollector.Stats().LogStats()
		}
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTurn(stats); err != nil {
			slog.Error("failed to write turn stats", "error", err)
		}
		if perfDue {
			if err := g.outputManager.WritePerf(g.perfCollector.Stats(), g.turn); err != nil {
				slog.Error("failed to write perf", "error", err)
			}
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logTurns {
			bm.LogBookmark()
		}

		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}

		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}

	return stats
}

// saveSnapshot creates and saves a snapshot to disk.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	path, err := telemetry.SaveSnapshot(g.Snapshot(bookmark), g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "turn", g.turn)
}

// Snapshot builds a snapshot of the current grid state.
func (g *Game) Snapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snapshot := &telemetry.Snapshot{
		Version:  telemetry.SnapshotVersion,
		RNGSeed:  g.rngSeed,
		Width:    g.grid.Width(),
		Height:   g.grid.Height(),
		Turn:     g.turn,
		Bookmark: bookmark,
	}
	for _, a := range g.grid.Actors() {
		snapshot.Actors = append(snapshot.Actors, telemetry.ActorState{
			ID:   a.ID,
			Kind: a.Kind,
			Col:  a.Pos.Col,
			Row:  a.Pos.Row,
		})
	}
	return snapshot
}
