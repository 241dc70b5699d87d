package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Summary
	}{
		{"empty", nil, Summary{}},
		{"single value", []float64{7}, Summary{N: 1, Mean: 7, Min: 7, P10: 7, P50: 7, P90: 7, Max: 7}},
		{"unsorted odd", []float64{5, 1, 3, 2, 4}, Summary{N: 5, Mean: 3, StdDev: math.Sqrt(2.5), Min: 1, P10: 1, P50: 3, P90: 5, Max: 5}},
		{"ten values", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, Summary{N: 10, Mean: 5.5, StdDev: math.Sqrt(55.0 / 6), Min: 1, P10: 1, P50: 5, P90: 9, Max: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values)
			if got.N != tt.want.N {
				t.Fatalf("N = %d, want %d", got.N, tt.want.N)
			}
			checks := []struct {
				field     string
				got, want float64
			}{
				{"mean", got.Mean, tt.want.Mean},
				{"std_dev", got.StdDev, tt.want.StdDev},
				{"min", got.Min, tt.want.Min},
				{"p10", got.P10, tt.want.P10},
				{"p50", got.P50, tt.want.P50},
				{"p90", got.P90, tt.want.P90},
				{"max", got.Max, tt.want.Max},
			}
			for _, c := range checks {
				if math.Abs(c.got-c.want) > 1e-9 {
					t.Errorf("%s = %v, want %v", c.field, c.got, c.want)
				}
			}
		})
	}
}

func TestSummarizeLeavesInputUnsorted(t *testing.T) {
	values := []float64{3, 1, 2}
	Summarize(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered to %v", values)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector()
	c.Record(Event{Type: EventMove, Kind: 0})
	c.Record(Event{Type: EventMove, Kind: 0})
	c.Record(Event{Type: EventCollision, Kind: 0})
	c.Record(Event{Type: EventMove, Kind: 1})
	c.Record(NewConversionEvent(0, 4, 3, pos(1, 1)))
	c.Record(Event{Type: EventPlace, Kind: 1})

	stats := c.Flush(7, 10, 4)
	want := TurnStats{
		Turn: 7, Prey: 10, Predators: 4,
		PreyMoves: 2, PredatorMoves: 1, PreyCollisions: 1, Conversions: 1,
		CollisionRate: 0.25,
	}
	if stats != want {
		t.Errorf("Flush() = %+v, want %+v", stats, want)
	}

	// Counters reset, totals do not.
	if next := c.Flush(8, 10, 4); next.Steps() != 0 || next.Conversions != 0 {
		t.Errorf("second Flush() = %+v, want empty counters", next)
	}
	if c.TotalConversions() != 1 {
		t.Errorf("TotalConversions() = %d, want 1", c.TotalConversions())
	}
}
