package game

import (
	"log/slog"

	"github.com/pthm-cable/overrun/telemetry"
)

// LogRecorder traces every grid event at debug level.
type LogRecorder struct{}

// Record implements grid.Recorder.
func (LogRecorder) Record(ev telemetry.Event) {
	switch ev.Type {
	case telemetry.EventPlace:
		slog.Debug("placed",
			"kind", ev.Kind.String(),
			"id", ev.ActorID,
			"pos", ev.To.String(),
		)
	case telemetry.EventMove:
		slog.Debug("moved",
			"kind", ev.Kind.String(),
			"id", ev.ActorID,
			"direction", ev.Direction.Name(),
			"from", ev.From.String(),
			"to", ev.To.String(),
		)
	case telemetry.EventCollision:
		slog.Debug("bumped into wall",
			"kind", ev.Kind.String(),
			"id", ev.ActorID,
			"direction", ev.Direction.Name(),
			"pos", ev.From.String(),
		)
	case telemetry.EventConversion:
		slog.Debug("converted",
			"predator", ev.ActorID,
			"prey", ev.TargetID,
			"new_predator", ev.NewID,
			"pos", ev.To.String(),
		)
	}
}
