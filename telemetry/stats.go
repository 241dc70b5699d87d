package telemetry

import (
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TurnStats holds aggregated statistics for one turn.
type TurnStats struct {
	Turn int `csv:"turn"`

	// Population counts at turn end
	Prey      int `csv:"prey"`
	Predators int `csv:"predators"`

	// Events during the turn
	PreyMoves          int `csv:"prey_moves"`
	PredatorMoves      int `csv:"predator_moves"`
	PreyCollisions     int `csv:"prey_collisions"`
	PredatorCollisions int `csv:"predator_collisions"`
	Conversions        int `csv:"conversions"`

	// Share of steps that hit the boundary
	CollisionRate float64 `csv:"collision_rate"`
}

// Steps returns the number of single steps attempted during the turn.
func (s TurnStats) Steps() int {
	return s.PreyMoves + s.PredatorMoves + s.PreyCollisions + s.PredatorCollisions
}

// LogValue implements slog.LogValuer for structured logging.
func (s TurnStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("turn", s.Turn),
		slog.Int("prey", s.Prey),
		slog.Int("predators", s.Predators),
		slog.Int("prey_moves", s.PreyMoves),
		slog.Int("predator_moves", s.PredatorMoves),
		slog.Int("prey_collisions", s.PreyCollisions),
		slog.Int("predator_collisions", s.PredatorCollisions),
		slog.Int("conversions", s.Conversions),
		slog.Float64("collision_rate", s.CollisionRate),
	)
}

// LogStats logs the turn stats using slog.
func (s TurnStats) LogStats() {
	slog.Info("stats",
		"turn", s.Turn,
		"prey", s.Prey,
		"predators", s.Predators,
		"moves", s.PreyMoves+s.PredatorMoves,
		"collisions", s.PreyCollisions+s.PredatorCollisions,
		"conversions", s.Conversions,
		"collision_rate", s.CollisionRate,
	)
}

// Summary describes the distribution of a sample.
type Summary struct {
	N      int     `csv:"n"`
	Mean   float64 `csv:"mean"`
	StdDev float64 `csv:"std_dev"`
	Min    float64 `csv:"min"`
	P10    float64 `csv:"p10"`
	P50    float64 `csv:"p50"`
	P90    float64 `csv:"p90"`
	Max    float64 `csv:"max"`
}

// Summarize computes mean, sample standard deviation and empirical quantiles.
// An empty sample yields the zero Summary; a single value has zero spread.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	s := Summary{
		N:    n,
		Mean: stat.Mean(sorted, nil),
		Min:  floats.Min(sorted),
		Max:  floats.Max(sorted),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
	if n > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	if math.IsNaN(s.StdDev) {
		s.StdDev = 0
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("n", s.N),
		slog.Float64("mean", s.Mean),
		slog.Float64("std_dev", s.StdDev),
		slog.Float64("min", s.Min),
		slog.Float64("p10", s.P10),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
		slog.Float64("max", s.Max),
	)
}
