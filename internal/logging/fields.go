package logging

// Component identifies which of hierbit's collaborators emitted a log
// line: the version-chain controller, the background reclaimer, the
// benchmark harness, the synthetic bitmap generator, the active-CSN
// oracle, or the serve command's insert loop. WithComponent tags every
// line a collaborator emits with one of these, the same way
// internal/metrics groups its counters by subsystem rather than
// leaving callers to spell a "component" field out by hand and risk
// two call sites disagreeing on "insert-loop" vs "insert_loop".
type Component string

// The fixed set of components hierbit logs under. Unlike the stringly
// typed WithFields pairs, these are a closed vocabulary: every
// background collaborator that holds a Logger picks one of these, not
// an ad hoc string.
const (
	ComponentChain  Component = "chain"
	ComponentGC     Component = "gc"
	ComponentBench  Component = "bench"
	ComponentSource Component = "source"
	ComponentOracle Component = "oracle"
	ComponentServe  Component = "serve"
)

// Field name constants for the key-value pairs hierbit's collaborators
// actually emit (see internal/gc/reclaimer.go, internal/bench/workload.go,
// internal/chain/controller.go, cmd/hierbit/serve.go). Centralizing the
// spelling here is what lets a log-parsing consumer rely on
// groups_reclaimed meaning the same thing whether it came from a
// background reclaim cycle or a reclaimer.Collect call made directly
// from a test.
const (
	FieldComponent        = "component"
	FieldRunID            = "run_id"
	FieldCSN              = "csn"
	FieldError            = "error"
	FieldGroupsOpened     = "groups_opened"
	FieldGroupsReclaimed  = "groups_reclaimed"
	FieldOldestVisibleCSN = "oldest_visible_csn"
	FieldDurationMS       = "duration_ms"
	FieldInserts          = "inserts"
	FieldInsertWorkers    = "insert_workers"
	FieldQueryWorkers     = "query_workers"
	FieldHits             = "hits"
	FieldMisses           = "misses"
	FieldAddress          = "address"
	FieldSignal           = "signal"
)
