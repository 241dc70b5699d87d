package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/overrun/config"
	"github.com/pthm-cable/overrun/game"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestParamVectorRoundClamps(t *testing.T) {
	pv := NewParamVector()
	got := pv.Round([]float64{0.2, 2.6, 99})
	want := []float64{1, 3, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Round()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestApplyAndExtract(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()
	pv.ApplyToConfig(cfg, []float64{7.4, 2, 0})

	if cfg.Population.Predators != 7 || cfg.Movement.PredatorPaces != 2 || cfg.Movement.PreyPaces != 0 {
		t.Errorf("applied config = %+v %+v", cfg.Population, cfg.Movement)
	}
	got := pv.ExtractFromConfig(cfg)
	if got[0] != 7 || got[1] != 2 || got[2] != 0 {
		t.Errorf("ExtractFromConfig() = %v", got)
	}
}

func TestComputeFitness(t *testing.T) {
	fe := NewFitnessEvaluator(NewParamVector(), 100, 1000, nil, 1, config.Default())
	records := []game.RunRecord{
		{Result: game.Result{Turns: 80, Extinct: true}},
		{Result: game.Result{Turns: 140, Extinct: true}},
	}
	if got := fe.computeFitness(records); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("computeFitness() = %v, want 0.1", got)
	}
	if got := fe.computeFitness(nil); !math.IsInf(got, 1) {
		t.Errorf("computeFitness(nil) = %v, want +Inf", got)
	}
}
