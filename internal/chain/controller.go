package chain

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/hierbit/internal/bitmap"
	"github.com/KilimcininKorOglu/hierbit/internal/config"
	"github.com/KilimcininKorOglu/hierbit/internal/logging"
	"github.com/KilimcininKorOglu/hierbit/internal/metrics"
)

// Controller errors.
var (
	// ErrNilHandle is returned by Finalize when called with a nil group
	// or node handle from something other than a Reserve that opened a
	// new group (which legitimately returns nil, nil per spec.md §6).
	ErrNilHandle = errors.New("chain: finalize called with mismatched nil handles")
)

// Controller is the version-chain controller: a linked list of
// reference groups with entry points for two-stage insertion and
// lock-free snapshot reads (spec.md §3, "Controller").
type Controller struct {
	cfg config.Config

	head atomic.Pointer[Group]

	// headCountMu and headLinkMu are independent locks held for O(1)
	// time only (spec.md §5): one guards the slot-reservation counter,
	// the other guards publishing a new group as head. A writer that
	// only reserves a slot in the current head group never needs
	// headLinkMu.
	headCountMu sync.Mutex
	headCount   int

	headLinkMu sync.Mutex

	metrics *metrics.Metrics
	cache   *decodeCache
	log     logging.Logger
}

// ErrChecksumMismatch is returned by Lookup when a decoded bitmap's
// xxhash64 digest disagrees with the one recorded at finalize time.
var ErrChecksumMismatch = errors.New("chain: decoded bitmap failed checksum verification")

// NewController creates an empty controller for the given
// configuration. The first Reserve call always opens the first
// reference group, since headCount starts equal to cfg.Fanout.
func NewController(cfg config.Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{cfg: cfg, cache: newDecodeCache(defaultCacheSize), log: logging.NewNop()}
	c.headCount = cfg.Fanout
	return c, nil
}

// SetMetrics attaches m so subsequent operations report to it. Passing
// nil disables reporting; the zero-value Controller has no metrics.
func (c *Controller) SetMetrics(m *metrics.Metrics) {
	c.metrics = m
}

// SetLogger attaches l so group-open events are logged, tagged with
// ComponentChain. Passing nil disables logging; the zero-value
// Controller logs nowhere. Reserve is the only hot-path call that
// opens a new group, and it happens at most once every cfg.Fanout
// inserts, so logging it carries none of the per-insert overhead the
// core's lock-free read path and O(1) locks are built to avoid.
func (c *Controller) SetLogger(l logging.Logger) {
	if l == nil {
		l = logging.NewNop()
	}
	c.log = l.WithComponent(logging.ComponentChain)
}

// Config returns the controller's configuration.
func (c *Controller) Config() config.Config {
	return c.cfg
}

// Head returns the newest reference group, or nil if nothing has been
// inserted yet.
func (c *Controller) Head() *Group {
	return c.head.Load()
}

// Reserve is Stage 1 of insert (spec.md §4.3). It reserves a slot in
// the current head group under headCountMu; if the head group is full,
// it instead opens and links a new group with full as its reference
// bitmap, finalized directly with no Stage 2 needed — Reserve then
// returns (nil, nil), matching the "null, null" case in spec.md §6.
// Otherwise it returns the head group and a freshly prepended
// placeholder node that the caller must pass to Finalize.
func (c *Controller) Reserve(csn int64, full bitmap.Bitmap) (*Group, *Node, error) {
	if err := bitmap.CheckWidth(full, c.cfg); err != nil {
		return nil, nil, errors.Wrap(err, "reserve")
	}

	createNew := false
	var head *Group

	c.headCountMu.Lock()
	if c.headCount == c.cfg.Fanout {
		c.headCount = 1
		createNew = true
	} else {
		c.headCount++
		head = c.head.Load()
	}
	c.headCountMu.Unlock()

	if createNew {
		g := newGroup(c.cfg, csn, full)

		c.headLinkMu.Lock()
		g.setNext(c.head.Load())
		c.head.Store(g)
		c.headLinkMu.Unlock()

		if c.metrics != nil {
			c.metrics.GroupsOpenTotal.Inc()
			c.metrics.InsertsTotal.Inc()
		}
		c.log.Debug("group opened", logging.FieldCSN, csn)
		return nil, nil, nil
	}

	node := head.PrependPlaceholder(csn)
	if c.metrics != nil {
		c.metrics.InsertsTotal.Inc()
	}
	return head, node, nil
}

// Finalize is Stage 2 of insert (spec.md §4.3). It re-encodes full
// against the group's reference bitmap outside any lock, then
// publishes the result under the group's lock, where the merge pass
// runs. Finalize is a no-op when group and node are both nil, which is
// exactly the signal Reserve gives when it already opened (and fully
// populated) a new group.
func (c *Controller) Finalize(group *Group, node *Node, full bitmap.Bitmap) error {
	if group == nil && node == nil {
		return nil
	}
	if group == nil || node == nil {
		return ErrNilHandle
	}
	if err := bitmap.CheckWidth(full, c.cfg); err != nil {
		return errors.Wrap(err, "finalize")
	}

	start := time.Now()
	delta, err := bitmap.Encode(full, group.Reference(), c.cfg)
	if c.metrics != nil {
		c.metrics.EncodeDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return errors.Wrap(err, "finalize: encode")
	}

	merges := group.Finalize(node, delta, full, c.cache.evict)
	if c.metrics != nil {
		c.metrics.FinalizesTotal.Inc()
		c.metrics.MergesTotal.Add(float64(merges))
	}
	return nil
}

// Lookup reconstructs the bitmap committed at csn into out, which must
// have length cfg.Width, and reports whether it was found (spec.md
// §4.4). Lookup takes no locks: a read racing an in-progress finalize
// may observe a placeholder and report not-found even though the
// version exists — per spec.md §4.4 this is the documented best-effort
// contract, and callers that need "must-find" semantics retry after a
// short backoff.
func (c *Controller) Lookup(csn int64, out []byte) (found bool, err error) {
	if err := bitmap.CheckWidth(out, c.cfg); err != nil {
		return false, errors.Wrap(err, "lookup")
	}

	if c.metrics != nil {
		start := time.Now()
		c.metrics.LookupsTotal.Inc()
		defer func() {
			c.metrics.LookupDuration.Observe(time.Since(start).Seconds())
			if !found {
				c.metrics.LookupMissTotal.Inc()
			}
		}()
	}

	for g := c.head.Load(); g != nil; g = g.Next() {
		lo, hi := g.CSNRange()
		if csn < lo {
			continue
		}
		if csn > hi {
			return false, nil
		}

		for n := g.First(); n != nil; n = n.Next() {
			if n.CSN != csn {
				continue
			}
			d, checksum, ok := n.Snapshot()
			if !ok {
				return false, nil
			}

			if cached, ok := c.cache.get(csn, checksum); ok {
				copy(out, cached)
				if c.metrics != nil {
					c.metrics.CacheHitsTotal.Inc()
				}
				return true, nil
			}

			decoded, err := bitmap.Decode(g.Reference(), d, c.cfg)
			if err != nil {
				return false, errors.Wrap(err, "lookup: decode")
			}
			if xxhash.Sum64(decoded) != checksum {
				return false, ErrChecksumMismatch
			}
			copy(out, decoded)
			c.cache.put(csn, checksum, append([]byte(nil), decoded...))
			return true, nil
		}
		return false, nil
	}

	return false, nil
}

// Reclaim trims whole reference groups from the tail of the chain
// whose entire csn_range lies below oldestVisible, and reports how
// many groups were dropped. Because groups are linked newest-first and
// csn ranges strictly decrease walking toward the tail, the first
// group found entirely below oldestVisible means every older group is
// too, so Reclaim cuts the chain there rather than visiting each one.
//
// Reclaim never touches the head group, even if its csn_range lies
// entirely below oldestVisible: the head is the only group Reserve ever
// writes into, so unlinking it would race a concurrent Reserve publishing
// a placeholder or opening the next head (spec.md §4.6, invariant 7).
// The walk therefore always starts at the head's Next, and the tail cut
// lands on the oldest group still linked behind it at worst.
//
// Reclaim never removes individual nodes from within a group still in
// use: group.go's merge-pass walk already requires every prior node in
// a live group, so reclaiming at anything finer than group granularity
// would require rewriting live delta chains under load. That is the
// deliberate scope Reclaim settles on.
func (c *Controller) Reclaim(oldestVisible int64) int {
	if c.metrics != nil {
		start := time.Now()
		defer func() { c.metrics.ReclaimDuration.Observe(time.Since(start).Seconds()) }()
	}

	c.headLinkMu.Lock()
	defer c.headLinkMu.Unlock()

	head := c.head.Load()
	if head == nil {
		return 0
	}

	prev := head
	for g := head.Next(); g != nil; g = g.Next() {
		_, hi := g.CSNRange()
		if hi >= oldestVisible {
			prev = g
			continue
		}

		prev.setNext(nil)

		reclaimed := 0
		for cur := g; cur != nil; cur = cur.Next() {
			reclaimed++
		}
		if c.metrics != nil {
			c.metrics.GroupsReclaimed.Add(float64(reclaimed))
		}
		return reclaimed
	}

	return 0
}
