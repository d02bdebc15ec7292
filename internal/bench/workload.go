package bench

import (
	"sync"
	"time"

	"github.com/KilimcininKorOglu/hierbit/internal/bitmap"
	"github.com/KilimcininKorOglu/hierbit/internal/chain"
	"github.com/KilimcininKorOglu/hierbit/internal/config"
	"github.com/KilimcininKorOglu/hierbit/internal/logging"
	"github.com/KilimcininKorOglu/hierbit/internal/oracle"
	"github.com/KilimcininKorOglu/hierbit/internal/source"
)

// WorkloadConfig parameterizes an insert/lookup benchmark run. It
// mirrors the constants the original benchmark driver hardcoded
// (max_insert, haimin_distence, a query thread count) as configurable
// fields instead.
type WorkloadConfig struct {
	Config config.Config

	// Inserts is the total number of versions to insert, spread across
	// InsertWorkers goroutines claiming CSNs from a shared counter.
	Inserts int

	// FlipsPerStep is the number of bits source.Generator flips between
	// successive versions (the original's haimin_distence).
	FlipsPerStep int

	InsertWorkers int
	QueryWorkers  int

	Seed int64

	// Log receives a line at the start and end of each phase. Nil
	// disables logging.
	Log logging.Logger
}

// WorkloadResult reports timings and outcome counts from a Run.
type WorkloadResult struct {
	InsertDuration time.Duration
	QueryDuration  time.Duration
	QueryHits      int
	QueryMisses    int
}

// Run drives WorkloadConfig.Inserts sequential versions — generated
// up front, since each depends on the last — through a
// barrier-synchronized insert phase, then a barrier-synchronized
// lookup phase verifying every inserted CSN decodes back to what was
// submitted. A lookup that reports not-found or disagrees with what was
// inserted is counted in QueryMisses, which would indicate a chain
// correctness defect; Run returns an error only when building the
// controller, generating versions, an insert, or a Lookup call fails.
func Run(cfg WorkloadConfig) (WorkloadResult, error) {
	log := cfg.Log
	if log == nil {
		log = logging.NewNop()
	}
	log = log.WithComponent(logging.ComponentBench)
	runID := logging.GenerateRunID(logging.ComponentBench)
	log = log.WithRunID(runID)

	controller, err := chain.NewController(cfg.Config)
	if err != nil {
		return WorkloadResult{}, err
	}
	controller.SetLogger(log)
	tracker := oracle.New()
	gen := source.New(cfg.Config, cfg.Seed)

	versions := make([]bitmap.Bitmap, cfg.Inserts)
	cur := gen.Seed()
	for i := 0; i < cfg.Inserts; i++ {
		next, err := gen.Flip(cur, cfg.FlipsPerStep)
		if err != nil {
			return WorkloadResult{}, err
		}
		versions[i] = next
		cur = next
	}

	// bitmapByCSN indexes the submitted bitmaps by the CSN they were
	// actually assigned, not by the work-claim index: ParallelForStable
	// hands out indices to workers in no particular order, but Reserve
	// must see CSNs strictly increasing, so CSN assignment and Reserve
	// are serialized together under reserveMu. Finalize — the expensive
	// part — still runs unlocked, which is the whole point of the
	// two-stage design.
	bitmapByCSN := make([]bitmap.Bitmap, cfg.Inserts+1)
	var reserveMu sync.Mutex

	log.Info("insert phase starting", logging.FieldInserts, cfg.Inserts, logging.FieldInsertWorkers, cfg.InsertWorkers)
	insertDuration, err := ParallelForStable(0, cfg.Inserts, cfg.InsertWorkers, func(i, _ int) error {
		reserveMu.Lock()
		csn := tracker.Advance()
		bitmapByCSN[csn] = versions[i]
		g, n, err := controller.Reserve(csn, versions[i])
		reserveMu.Unlock()
		if err != nil {
			return err
		}
		return controller.Finalize(g, n, versions[i])
	})
	if err != nil {
		return WorkloadResult{}, err
	}
	log.Info("insert phase finished", logging.FieldDurationMS, insertDuration.Milliseconds())

	var statsMu sync.Mutex
	var hits, misses int64
	log.Info("lookup phase starting", logging.FieldQueryWorkers, cfg.QueryWorkers)
	queryDuration, err := ParallelForStable(1, cfg.Inserts+1, cfg.QueryWorkers, func(csn, _ int) error {
		out := make([]byte, cfg.Config.Width)
		found, err := controller.Lookup(int64(csn), out)
		if err != nil {
			return err
		}
		statsMu.Lock()
		if found && bitmap.Bitmap(out).Equal(bitmapByCSN[csn]) {
			hits++
		} else {
			misses++
		}
		statsMu.Unlock()
		return nil
	})
	if err != nil {
		return WorkloadResult{}, err
	}
	log.Info("lookup phase finished",
		logging.FieldDurationMS, queryDuration.Milliseconds(),
		logging.FieldHits, hits,
		logging.FieldMisses, misses,
	)

	return WorkloadResult{
		InsertDuration: insertDuration,
		QueryDuration:  queryDuration,
		QueryHits:      int(hits),
		QueryMisses:    int(misses),
	}, nil
}
