package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/overrun/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPreyCrash     BookmarkType = "prey_crash"
	BookmarkPredatorSurge BookmarkType = "predator_surge"
	BookmarkLastPrey      BookmarkType = "last_prey"
	BookmarkExtinction    BookmarkType = "extinction"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Turn        int          `csv:"turn" json:"turn"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"turn", b.Turn,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	thresholds config.BookmarksConfig

	// Rolling history (circular buffer)
	history     []TurnStats
	historySize int
	historyIdx  int
	historyFull bool

	// Only turns after surgeBase count towards the predator minimum.
	surgeBase    int
	lastPreySeen bool
	extinctSeen  bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, thresholds config.BookmarksConfig) *BookmarkDetector {
	if historySize < 2 {
		historySize = 2
	}
	return &BookmarkDetector{
		thresholds:  thresholds,
		history:     make([]TurnStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats TurnStats) []Bookmark {
	var bookmarks []Bookmark

	if prev, ok := bd.latest(); ok {
		if b := bd.checkPreyCrash(prev, stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkPredatorSurge(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}
	if b := bd.checkLastPrey(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkExtinction(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats TurnStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []TurnStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) latest() (TurnStats, bool) {
	if !bd.historyFull && bd.historyIdx == 0 {
		return TurnStats{}, false
	}
	idx := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	return bd.history[idx], true
}

func (bd *BookmarkDetector) checkPreyCrash(prev, stats TurnStats) *Bookmark {
	if prev.Prey == 0 {
		return nil
	}
	drop := prev.Prey - stats.Prey
	dropPercent := float64(drop) / float64(prev.Prey)
	if drop < bd.thresholds.PreyCrash.MinDrop || dropPercent < bd.thresholds.PreyCrash.DropPercent {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkPreyCrash,
		Turn:        stats.Turn,
		Description: fmt.Sprintf("Prey crashed %.0f%% in one turn, %d to %d", dropPercent*100, prev.Prey, stats.Prey),
	}
}

func (bd *BookmarkDetector) checkPredatorSurge(stats TurnStats) *Bookmark {
	minPred := -1
	for _, h := range bd.getHistory() {
		if h.Turn <= bd.surgeBase {
			continue
		}
		if minPred < 0 || h.Predators < minPred {
			minPred = h.Predators
		}
	}
	if minPred <= 0 {
		return nil
	}

	gain := stats.Predators - minPred
	if gain < bd.thresholds.PredatorSurge.MinGain ||
		float64(stats.Predators) < float64(minPred)*bd.thresholds.PredatorSurge.Multiplier {
		return nil
	}

	// Restart the minimum so one surge is reported once.
	bd.surgeBase = stats.Turn - 1
	return &Bookmark{
		Type:        BookmarkPredatorSurge,
		Turn:        stats.Turn,
		Description: fmt.Sprintf("Predators surged from %d to %d", minPred, stats.Predators),
	}
}

func (bd *BookmarkDetector) checkLastPrey(stats TurnStats) *Bookmark {
	if bd.lastPreySeen || stats.Prey != 1 {
		return nil
	}
	bd.lastPreySeen = true
	return &Bookmark{
		Type:        BookmarkLastPrey,
		Turn:        stats.Turn,
		Description: fmt.Sprintf("One prey left against %d predators", stats.Predators),
	}
}

func (bd *BookmarkDetector) checkExtinction(stats TurnStats) *Bookmark {
	if bd.extinctSeen || stats.Prey != 0 {
		return nil
	}
	bd.extinctSeen = true
	return &Bookmark{
		Type:        BookmarkExtinction,
		Turn:        stats.Turn,
		Description: fmt.Sprintf("No prey left on turn %d", stats.Turn),
	}
}
