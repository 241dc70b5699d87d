package game

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/pthm-cable/overrun/config"
	"github.com/pthm-cable/overrun/telemetry"
)

// RunRecord is the outcome of one seeded run in a batch.
type RunRecord struct {
	Seed int64 `csv:"seed"`
	Result
	TopConverterConversions int `csv:"top_converter_conversions"`
}

// RunSeeds plays one headless game per seed, spread over up to workers
// goroutines (0 = GOMAXPROCS). Each game gets its own copy of cfg. Records
// come back in seed order; failed runs are reported together in the error.
func RunSeeds(cfg *config.Config, seeds []int64, maxTurns, workers int) ([]RunRecord, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	records := make([]RunRecord, len(seeds))
	errs := make([]error, len(seeds))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				records[idx], errs[idx] = runOne(cfg.Clone(), seeds[idx], maxTurns)
			}
		}()
	}
	for idx := range seeds {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return records, errors.Join(errs...)
}

func runOne(cfg *config.Config, seed int64, maxTurns int) (RunRecord, error) {
	g, err := NewGame(Options{Config: cfg, Seed: seed, MaxTurns: maxTurns})
	if err != nil {
		return RunRecord{Seed: seed}, fmt.Errorf("seed %d: %w", seed, err)
	}
	res, err := g.Run()
	rec := RunRecord{Seed: seed, Result: res}
	if _, stats, ok := g.lifetimeTracker.TopConverter(); ok {
		rec.TopConverterConversions = stats.Conversions
	}
	if err != nil {
		return rec, fmt.Errorf("seed %d: %w", seed, err)
	}
	return rec, nil
}

// ExtinctionTurns summarizes the extinction turn over the runs that reached
// extinction. The second return value counts runs stopped by the turn cap.
func ExtinctionTurns(records []RunRecord) (telemetry.Summary, int) {
	turns := make([]float64, 0, len(records))
	capped := 0
	for _, r := range records {
		if !r.Extinct {
			capped++
			continue
		}
		turns = append(turns, float64(r.Turns))
	}
	return telemetry.Summarize(turns), capped
}
