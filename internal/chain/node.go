package chain

import (
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"github.com/KilimcininKorOglu/hierbit/internal/bitmap"
)

// nodeState bundles a node's delta with the checksum of the bitmap it
// currently reconstructs to. The pair is always published together: a
// reader that observes one via Node.state.Load also observes the other,
// so a checksum can never be compared against a delta computed at a
// different moment (spec.md §5).
type nodeState struct {
	delta    bitmap.Delta
	checksum uint64
}

// Node is one version within a ReferenceGroup's chain (spec.md §3,
// "VersionNode"). A Node whose Delta returns nil is a placeholder: it
// has reserved a position in the chain, linked in reservation order, but
// its delta has not been computed yet.
//
// next and state are published with release semantics on write (via
// atomic.Pointer.Store) and observed with acquire semantics on read
// (via atomic.Pointer.Load), per spec.md §5 — this is what lets Lookup
// walk the chain without ever taking the group's lock: once a reader
// observes a non-nil state, it also observes the delta's interior
// slices and the checksum taken for it. A finalized node's state can be
// replaced again later, by the merge pass absorbing a newer sibling's
// delta, but it is always replaced wholesale — never mutated in place —
// so concurrent readers only ever see one complete state or the next,
// never a partial union.
type Node struct {
	// CSN is assigned once, before the node is published into a chain,
	// and never changes afterward.
	CSN int64

	next  atomic.Pointer[Node]
	state atomic.Pointer[nodeState]
}

// newPlaceholder creates an unfinalized node for the given CSN.
func newPlaceholder(csn int64) *Node {
	return &Node{CSN: csn}
}

// newFinalized creates a node whose delta is already known, checksummed
// against full. Used for the first node of a newly opened group, which
// needs no Stage 2: it IS the reference (spec.md §4.3).
func newFinalized(csn int64, d bitmap.Delta, full bitmap.Bitmap) *Node {
	n := &Node{CSN: csn}
	n.state.Store(&nodeState{delta: d, checksum: xxhash.Sum64(full)})
	return n
}

// Next returns the next-older node in the chain, or nil at the tail.
func (n *Node) Next() *Node {
	return n.next.Load()
}

func (n *Node) setNext(next *Node) {
	n.next.Store(next)
}

// Delta returns the node's delta, or nil if the node is still a
// placeholder.
func (n *Node) Delta() *bitmap.Delta {
	s := n.state.Load()
	if s == nil {
		return nil
	}
	return &s.delta
}

// finalize publishes d as this node's delta along with the checksum of
// the full bitmap it reconstructs to. Callers must hold the owning
// group's lock (spec.md §4.2).
func (n *Node) finalize(d bitmap.Delta, full bitmap.Bitmap) {
	n.state.Store(&nodeState{delta: d, checksum: xxhash.Sum64(full)})
}

// republish atomically replaces an already-finalized node's delta with
// merged, restamping the checksum against decoded — the bitmap merged
// currently reconstructs to. Used by the merge pass, which absorbs a
// newer sibling's delta into every sparse node it walks over (spec.md
// §4.3); callers must hold the owning group's lock.
func (n *Node) republish(merged bitmap.Delta, decoded []byte) {
	n.state.Store(&nodeState{delta: merged, checksum: xxhash.Sum64(decoded)})
}

// IsPlaceholder reports whether the node has not yet been finalized.
func (n *Node) IsPlaceholder() bool {
	return n.state.Load() == nil
}

// Checksum returns the xxhash64 digest of the bitmap this node
// currently reconstructs to. Zero for a node that is still a
// placeholder.
func (n *Node) Checksum() uint64 {
	s := n.state.Load()
	if s == nil {
		return 0
	}
	return s.checksum
}

// Snapshot loads delta and checksum from a single state pointer read, so
// a caller never pairs a delta from one republish with the checksum from
// another. Calling Delta and Checksum separately does not give this
// guarantee: a republish landing between the two loads would pair a
// pre-merge delta with a post-merge checksum (or vice versa), and every
// consumer of a Node's state outside the owning group's lock — Lookup
// and the decode cache alike — needs the pair to come from one moment.
// ok is false when the node is still a placeholder.
func (n *Node) Snapshot() (delta bitmap.Delta, checksum uint64, ok bool) {
	s := n.state.Load()
	if s == nil {
		return bitmap.Delta{}, 0, false
	}
	return s.delta, s.checksum, true
}
