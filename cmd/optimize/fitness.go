package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/overrun/config"
	"github.com/pthm-cable/overrun/game"
	"github.com/pthm-cable/overrun/telemetry"
)

// FitnessEvaluator runs headless games and scores how close the mean
// extinction turn lands to the target.
type FitnessEvaluator struct {
	params     *ParamVector
	target     float64
	maxTurns   int
	seeds      []int64
	workers    int
	baseConfig *config.Config

	mu          sync.Mutex
	lastSummary telemetry.Summary
	lastCapped  int
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, target float64, maxTurns int, seeds []int64, workers int, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		target:     target,
		maxTurns:   maxTurns,
		seeds:      seeds,
		workers:    workers,
		baseConfig: baseCfg,
	}
}

// LastSummary returns the extinction-turn summary of the most recent
// evaluation and how many of its runs hit the turn cap.
func (fe *FitnessEvaluator) LastSummary() (telemetry.Summary, int) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSummary, fe.lastCapped
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	records, err := game.RunSeeds(cfg, fe.seeds, fe.maxTurns, fe.workers)
	if err != nil {
		return math.Inf(1)
	}

	summary, capped := game.ExtinctionTurns(records)
	fe.mu.Lock()
	fe.lastSummary, fe.lastCapped = summary, capped
	fe.mu.Unlock()

	return fe.computeFitness(records)
}

// computeFitness is the relative distance between the mean game length and
// the target. Capped games count with the number of turns they were allowed,
// so configurations where prey survive are penalized without being undefined.
func (fe *FitnessEvaluator) computeFitness(records []game.RunRecord) float64 {
	if len(records) == 0 {
		return math.Inf(1)
	}
	var sum float64
	for _, r := range records {
		sum += float64(r.Turns)
	}
	mean := sum / float64(len(records))
	return math.Abs(mean-fe.target) / fe.target
}
