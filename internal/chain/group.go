package chain

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/hierbit/internal/bitmap"
	"github.com/KilimcininKorOglu/hierbit/internal/config"
)

// Group is a reference bitmap plus the newest-first linked chain of
// version nodes that encode their differences against it (spec.md §3,
// "ReferenceGroup").
type Group struct {
	cfg       config.Config
	reference bitmap.Bitmap // immutable after construction (invariant 2)

	// mu serializes writers operating on this group: prepending a
	// placeholder, and finalizing a node (which also performs the
	// merge pass over the chain). Readers never take mu (spec.md §5).
	mu    sync.Mutex
	first atomic.Pointer[Node]
	count int

	csnLo atomic.Int64
	csnHi atomic.Int64

	next atomic.Pointer[Group]
}

// newGroup opens a group at csn with a single finalized node holding
// the empty ("zero") sparse delta, so the group's reference bitmap
// equals the bitmap submitted at the opening CSN (spec.md §3, §4.3:
// "Allocate a new group G' ... whose chain contains a single finalized
// node with a sparse zero-length delta at that CSN").
func newGroup(cfg config.Config, csn int64, full bitmap.Bitmap) *Group {
	g := &Group{
		cfg:       cfg,
		reference: full.Clone(),
		count:     1,
	}
	g.csnLo.Store(csn)
	g.csnHi.Store(csn)
	zero := bitmap.Delta{Form: bitmap.Sparse}
	g.first.Store(newFinalized(csn, zero, full))
	return g
}

// Reference returns the group's immutable reference bitmap. Callers
// must not mutate the returned slice.
func (g *Group) Reference() bitmap.Bitmap {
	return g.reference
}

// CSNRange returns the group's current (lo, hi) range. Safe to call
// without holding any lock (spec.md §5): lo and hi are published with
// atomic stores.
func (g *Group) CSNRange() (lo, hi int64) {
	return g.csnLo.Load(), g.csnHi.Load()
}

// First returns the newest node in the chain, or nil if the group is
// somehow empty (which cannot happen after newGroup).
func (g *Group) First() *Node {
	return g.first.Load()
}

// Next returns the next-older group, or nil at the tail.
func (g *Group) Next() *Group {
	return g.next.Load()
}

func (g *Group) setNext(next *Group) {
	g.next.Store(next)
}

// Count returns the number of finalized versions in the group.
func (g *Group) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.count
}

// PrependPlaceholder creates a node with no delta, links it as the new
// head of the chain, and returns it. Does not bump count (spec.md §4.2).
func (g *Group) PrependPlaceholder(csn int64) *Node {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := newPlaceholder(csn)
	n.setNext(g.first.Load())
	g.first.Store(n)
	return n
}

// Finalize sets node's delta, increments count, walks the chain to
// perform the merge pass (spec.md §4.3), and advances csn_range.hi. It
// is the only place bitmap.Merge is called, so a merge attempted on a
// dense delta — which spec.md §4.1 calls undefined and "must not be
// attempted" — is a programming error in the walk logic itself, not a
// recoverable condition: Finalize panics rather than returning it as an
// error.
//
// onMerge, if non-nil, is called with the CSN of every node the merge
// pass republishes — a node whose decodable value just changed,
// invalidating anything a caller cached under its old state. It runs
// under g.mu, so implementations must not call back into the group.
func (g *Group) Finalize(node *Node, delta bitmap.Delta, full bitmap.Bitmap, onMerge func(csn int64)) (merges int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	node.finalize(delta, full)
	g.count++

	var start *Node
	trailingCSN := int64(-1)

	for cur := g.first.Load(); cur != nil && cur != node; cur = cur.Next() {
		d := cur.Delta()
		if d == nil || d.Form != bitmap.Sparse {
			// A placeholder or a dense node is a merge barrier: dense
			// deltas are self-sufficient snapshots, not XOR-against-
			// reference, so they cannot absorb a union the way a
			// sparse delta can (spec.md §4.3).
			start = nil
			trailingCSN = -1
			continue
		}
		start = cur
		trailingCSN = cur.CSN
	}

	// A dense delta is never unioned into anything: like a dense node in
	// the walk, it takes no part in merging.
	if start != nil && delta.Form == bitmap.Sparse {
		for cur := start; cur != nil && cur != node; cur = cur.Next() {
			d := cur.Delta()
			merged, err := bitmap.Merge(*d, delta)
			if err != nil {
				panic(errors.Wrap(err, "chain: merge invariant violated"))
			}
			decoded, err := bitmap.Decode(g.reference, merged, g.cfg)
			if err != nil {
				panic(errors.Wrap(err, "chain: decode after merge"))
			}
			cur.republish(merged, decoded)
			if onMerge != nil {
				onMerge(cur.CSN)
			}
			merges++
		}
	}

	if trailingCSN == -1 {
		trailingCSN = node.CSN
	}
	if hi := g.csnHi.Load(); trailingCSN > hi {
		g.csnHi.Store(trailingCSN)
	}

	return merges
}
