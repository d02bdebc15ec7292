package oracle

import (
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring"
	"github.com/pkg/errors"
)

// ErrTokenAlreadyDone is returned by ReaderToken.Done when called more
// than once on the same token.
var ErrTokenAlreadyDone = errors.New("oracle: reader token already done")

// Tracker hands out read tokens pinned to the commit sequence number
// current when Begin was called, and reports the oldest CSN still
// pinned by a live token. It mirrors the teacher's TxManager active-set
// bookkeeping (a guarded map plus a monotonic counter) for reader
// snapshots instead of writer transactions, but keeps the set of
// distinct pinned CSNs in a Roaring bitmap rather than a plain map: the
// active set is exactly the kind of sparse, churny set of small
// integers Roaring is built for, and Minimum() turns OldestVisible —
// called on every reclaim cycle — into an O(1) lookup over the
// bitmap's first container instead of a scan over every distinct
// pinned CSN. The refcount map stays alongside it because more than
// one reader token can pin the same CSN; the bitmap only needs to know
// whether a CSN's count is still above zero.
type Tracker struct {
	current atomic.Int64

	mu       sync.Mutex
	refcount map[int64]int
	active   *roaring.Bitmap
}

// New creates a tracker whose current CSN starts at zero.
func New() *Tracker {
	return &Tracker{
		refcount: make(map[int64]int),
		active:   roaring.New(),
	}
}

// Current returns the tracker's current CSN.
func (t *Tracker) Current() int64 {
	return t.current.Load()
}

// Advance moves the current CSN forward by one and returns the new
// value. Callers assign the returned value as the CSN of the version
// they are about to insert.
func (t *Tracker) Advance() int64 {
	return t.current.Add(1)
}

// ReaderToken pins the CSN that was current when it was issued,
// preventing the group reclaimer from discarding versions still
// needed by that reader.
type ReaderToken struct {
	tracker *Tracker
	csn     int64
	done    atomic.Bool
}

// CSN returns the commit sequence number this token pins.
func (tok *ReaderToken) CSN() int64 {
	return tok.csn
}

// Done releases the token, allowing the reclaimer to advance past its
// CSN once no other token pins it. Calling Done more than once
// returns ErrTokenAlreadyDone.
func (tok *ReaderToken) Done() error {
	if !tok.done.CompareAndSwap(false, true) {
		return ErrTokenAlreadyDone
	}

	t := tok.tracker

	t.mu.Lock()
	defer t.mu.Unlock()

	t.refcount[tok.csn]--
	if t.refcount[tok.csn] <= 0 {
		delete(t.refcount, tok.csn)
		t.active.Remove(uint32(tok.csn))
	}
	return nil
}

// Begin pins the tracker's current CSN and returns a token the reader
// must Done when its snapshot is no longer in use.
func (t *Tracker) Begin() *ReaderToken {
	csn := t.Current()

	t.mu.Lock()
	t.refcount[csn]++
	t.active.Add(uint32(csn))
	t.mu.Unlock()

	return &ReaderToken{tracker: t, csn: csn}
}

// OldestVisible returns the smallest CSN pinned by any live reader
// token. ok is false when no reader token is currently outstanding,
// meaning every version is reclaimable — there is no CSN to fall back
// to, since "current" keeps advancing as writers insert and a caller
// that wants a concrete threshold in that case should use Current()
// itself rather than have OldestVisible silently pick it.
func (t *Tracker) OldestVisible() (csn int64, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active.IsEmpty() {
		return 0, false
	}
	return int64(t.active.Minimum()), true
}

// ActiveReaders returns the number of outstanding reader tokens.
func (t *Tracker) ActiveReaders() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := 0
	for _, n := range t.refcount {
		total += n
	}
	return total
}
