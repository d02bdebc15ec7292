package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the counters and histograms the controller reports
// against (including from Controller.Reclaim, which the group reclaimer
// drives), plus the active-reader gauge the serve command's insert loop
// sets.
type Metrics struct {
	InsertsTotal    prometheus.Counter
	FinalizesTotal  prometheus.Counter
	LookupsTotal    prometheus.Counter
	LookupMissTotal prometheus.Counter
	MergesTotal     prometheus.Counter
	GroupsOpenTotal prometheus.Counter
	GroupsReclaimed prometheus.Counter
	CacheHitsTotal  prometheus.Counter
	ActiveReaders   prometheus.Gauge
	EncodeDuration  prometheus.Histogram
	LookupDuration  prometheus.Histogram
	ReclaimDuration prometheus.Histogram
}

// New registers and returns a Metrics bound to reg. Passing a fresh
// *prometheus.Registry per Controller instance avoids the
// duplicate-registration panic that package-global promauto variables
// would hit if more than one Controller were created in a process,
// e.g. across benchmark trials in the same test binary.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		InsertsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "hierbit_inserts_total",
			Help: "Total number of inserts accepted by Reserve.",
		}),
		FinalizesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "hierbit_finalizes_total",
			Help: "Total number of Stage 2 finalize calls completed.",
		}),
		LookupsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "hierbit_lookups_total",
			Help: "Total number of lookups attempted.",
		}),
		LookupMissTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "hierbit_lookup_miss_total",
			Help: "Total number of lookups that found no matching version.",
		}),
		MergesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "hierbit_merges_total",
			Help: "Total number of sparse delta merges performed during finalize.",
		}),
		GroupsOpenTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "hierbit_groups_opened_total",
			Help: "Total number of reference groups opened.",
		}),
		GroupsReclaimed: f.NewCounter(prometheus.CounterOpts{
			Name: "hierbit_groups_reclaimed_total",
			Help: "Total number of reference groups dropped by the reclaimer.",
		}),
		CacheHitsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "hierbit_cache_hits_total",
			Help: "Total number of lookups served from the decode cache.",
		}),
		ActiveReaders: f.NewGauge(prometheus.GaugeOpts{
			Name: "hierbit_active_readers",
			Help: "Current number of outstanding reader tokens.",
		}),
		EncodeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "hierbit_encode_duration_seconds",
			Help:    "Duration of Stage 2 delta encoding.",
			Buckets: prometheus.DefBuckets,
		}),
		LookupDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "hierbit_lookup_duration_seconds",
			Help:    "Duration of chain lookups.",
			Buckets: prometheus.DefBuckets,
		}),
		ReclaimDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "hierbit_reclaim_duration_seconds",
			Help:    "Duration of reclaim cycles.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
