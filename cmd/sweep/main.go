// Package main runs many seeded games in parallel and summarizes how long the
// prey last.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/overrun/config"
	"github.com/pthm-cable/overrun/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	runs := flag.Int("runs", 100, "Number of games to play")
	baseSeed := flag.Int64("seed", 1, "Seed of the first game; game i uses seed+i")
	maxTurns := flag.Int("max-turns", 0, "Stop each game after N turns (0 = use config)")
	workers := flag.Int("workers", 0, "Parallel games (0 = GOMAXPROCS)")
	outputDir := flag.String("output", "", "Output directory for runs.csv (empty = no file)")
	flag.Parse()

	if *runs < 1 {
		log.Fatal("--runs must be at least 1")
	}
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	seeds := make([]int64, *runs)
	for i := range seeds {
		seeds[i] = *baseSeed + int64(i)
	}

	start := time.Now()
	records, err := game.RunSeeds(config.Cfg(), seeds, *maxTurns, *workers)
	if err != nil {
		log.Fatalf("sweep failed: %v", err)
	}
	elapsed := time.Since(start)

	if *outputDir != "" {
		path, err := writeRuns(*outputDir, records)
		if err != nil {
			log.Fatalf("failed to write runs: %v", err)
		}
		fmt.Printf("Runs saved to: %s\n", path)
	}

	summary, capped := game.ExtinctionTurns(records)
	fmt.Printf("%d games in %s, %d hit the turn cap\n", len(records), elapsed.Round(time.Millisecond), capped)
	if summary.N > 0 {
		fmt.Printf("Extinction turn: mean=%.1f std=%.1f min=%.0f p10=%.0f p50=%.0f p90=%.0f max=%.0f\n",
			summary.Mean, summary.StdDev, summary.Min, summary.P10, summary.P50, summary.P90, summary.Max)
	}
}

func writeRuns(dir string, records []game.RunRecord) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, "runs.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating runs.csv: %w", err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&records, f); err != nil {
		return "", fmt.Errorf("writing runs.csv: %w", err)
	}
	return path, nil
}
