package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/KilimcininKorOglu/hierbit/internal/bench"
	"github.com/KilimcininKorOglu/hierbit/internal/config"
	"github.com/KilimcininKorOglu/hierbit/internal/logging"
)

// benchCmd handles the bench command.
func benchCmd(args []string) int {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	width := fs.Int("width", config.DefaultWidth, "Bitmap width in bytes, must be even")
	fanout := fs.Int("fanout", config.DefaultFanout, "Versions per reference group")
	inserts := fs.Int("inserts", 20, "Number of versions to insert")
	flips := fs.Int("flips", 1, "Bits flipped between successive versions")
	insertWorkers := fs.Int("insert-workers", 0, "Goroutines used for the insert phase, 0 = number of CPUs")
	queryWorkers := fs.Int("query-workers", 0, "Goroutines used for the lookup-verification phase, 0 = number of CPUs")
	seed := fs.Int64("seed", 1, "Random seed for bitmap generation")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error")
	help := fs.Bool("h", false, "Show help message")
	helpLong := fs.Bool("help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *help || *helpLong {
		printBenchUsage(os.Stdout)
		return 0
	}

	cfg := config.Config{Width: *width, Fanout: *fanout}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	log := logging.New(logging.Config{Level: *logLevel, Format: "text", Output: "stderr"})

	result, err := bench.Run(bench.WorkloadConfig{
		Config:        cfg,
		Inserts:       *inserts,
		FlipsPerStep:  *flips,
		InsertWorkers: *insertWorkers,
		QueryWorkers:  *queryWorkers,
		Seed:          *seed,
		Log:           log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Benchmark failed: %v\n", err)
		return 1
	}

	fmt.Printf("insert:  %d versions in %s (%.2f/s)\n",
		*inserts, result.InsertDuration, float64(*inserts)/result.InsertDuration.Seconds())
	fmt.Printf("lookup:  %d hits, %d misses in %s\n", result.QueryHits, result.QueryMisses, result.QueryDuration)

	if result.QueryMisses > 0 {
		fmt.Fprintln(os.Stderr, "benchmark reported lookup misses: this indicates a correctness defect")
		return 1
	}
	return 0
}
