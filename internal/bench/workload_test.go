package bench

import (
	"testing"

	"github.com/KilimcininKorOglu/hierbit/internal/config"
)

func TestRunInsertAndLookupAgree(t *testing.T) {
	cfg := WorkloadConfig{
		Config:        config.Config{Width: 32, Fanout: 4},
		Inserts:       40,
		FlipsPerStep:  1,
		InsertWorkers: 4,
		QueryWorkers:  4,
		Seed:          7,
	}

	result, err := Run(cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.QueryMisses != 0 {
		t.Fatalf("expected no lookup misses, got %d (hits=%d)", result.QueryMisses, result.QueryHits)
	}
	if result.QueryHits != cfg.Inserts {
		t.Fatalf("expected %d hits, got %d", cfg.Inserts, result.QueryHits)
	}
}

func TestRunSingleWorkerHasNoMisses(t *testing.T) {
	cfg := WorkloadConfig{
		Config:        config.Config{Width: 16, Fanout: 3},
		Inserts:       10,
		FlipsPerStep:  1,
		InsertWorkers: 1,
		QueryWorkers:  1,
		Seed:          1,
	}

	result, err := Run(cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.QueryMisses != 0 {
		t.Fatalf("expected no misses with single worker, got %d", result.QueryMisses)
	}
}
