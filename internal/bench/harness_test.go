package bench

import (
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
)

func TestParallelForStableVisitsEveryIndexOnce(t *testing.T) {
	const n = 500
	var seen [n]int32

	_, err := ParallelForStable(0, n, 8, func(i, _ int) error {
		atomic.AddInt32(&seen[i], 1)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, v := range seen {
		if v != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, v)
		}
	}
}

func TestParallelForStableSingleWorker(t *testing.T) {
	var total int64
	_, err := ParallelForStable(0, 100, 1, func(i, workerID int) error {
		if workerID != 0 {
			t.Fatalf("expected workerID 0 in single-worker mode, got %d", workerID)
		}
		atomic.AddInt64(&total, int64(i))
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != (100*99)/2 {
		t.Fatalf("expected sum %d, got %d", (100*99)/2, total)
	}
}

func TestParallelForStablePropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	_, err := ParallelForStable(0, 50, 4, func(i, _ int) error {
		if i == 10 {
			return wantErr
		}
		return nil
	})
	if err == nil {
		t.Fatal("expected an error to be propagated")
	}
	if errors.Cause(err) != wantErr {
		t.Fatalf("expected underlying cause to be wantErr, got %v", err)
	}
}

func TestParallelForStableEmptyRange(t *testing.T) {
	called := false
	_, err := ParallelForStable(5, 5, 4, func(i, _ int) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatal("expected fn never called for an empty range")
	}
}
