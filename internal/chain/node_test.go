package chain

import (
	"testing"

	"github.com/KilimcininKorOglu/hierbit/internal/bitmap"
)

func TestNodePlaceholderHasNoDelta(t *testing.T) {
	n := newPlaceholder(5)
	if !n.IsPlaceholder() {
		t.Fatal("expected new placeholder to report IsPlaceholder")
	}
	if n.Delta() != nil {
		t.Fatal("expected placeholder delta to be nil")
	}
}

func TestNodeFinalizePublishesDelta(t *testing.T) {
	n := newPlaceholder(5)
	d := bitmap.Delta{Form: bitmap.Sparse, Positions: []uint16{1, 2}}
	full := bitmap.Bitmap{0x01, 0x02}
	n.finalize(d, full)

	if n.IsPlaceholder() {
		t.Fatal("expected finalized node to report !IsPlaceholder")
	}
	got := n.Delta()
	if got == nil || got.Form != bitmap.Sparse || len(got.Positions) != 2 {
		t.Fatalf("unexpected delta after finalize: %+v", got)
	}
	if n.Checksum() == 0 {
		t.Fatal("expected a non-zero checksum after finalize")
	}
}

func TestNodeRepublishReplacesDeltaAndChecksum(t *testing.T) {
	n := newPlaceholder(5)
	full := bitmap.Bitmap{0x01, 0x02}
	n.finalize(bitmap.Delta{Form: bitmap.Sparse, Positions: []uint16{1}}, full)
	before := n.Checksum()

	merged := bitmap.Delta{Form: bitmap.Sparse, Positions: []uint16{1, 9}}
	decoded := []byte{0x01, 0x03}
	n.republish(merged, decoded)

	if got := n.Delta(); len(got.Positions) != 2 {
		t.Fatalf("expected republished delta with 2 positions, got %+v", got)
	}
	if n.Checksum() == before {
		t.Fatal("expected republish to change the checksum along with the delta")
	}
}

func TestNodeSnapshotMatchesDeltaAndChecksum(t *testing.T) {
	n := newPlaceholder(5)

	if _, _, ok := n.Snapshot(); ok {
		t.Fatal("expected placeholder snapshot to report !ok")
	}

	full := bitmap.Bitmap{0x01, 0x02}
	n.finalize(bitmap.Delta{Form: bitmap.Sparse, Positions: []uint16{1}}, full)

	d, checksum, ok := n.Snapshot()
	if !ok {
		t.Fatal("expected finalized snapshot to report ok")
	}
	if !equalUint16(d.Positions, []uint16{1}) {
		t.Fatalf("unexpected snapshot delta: %+v", d)
	}
	if checksum != n.Checksum() {
		t.Fatalf("expected snapshot checksum %d to match Checksum() %d", checksum, n.Checksum())
	}
}

func TestNodeChainLinks(t *testing.T) {
	older := newPlaceholder(1)
	newer := newPlaceholder(2)
	newer.setNext(older)

	if newer.Next() != older {
		t.Fatal("expected newer.Next() to return older")
	}
	if older.Next() != nil {
		t.Fatal("expected older.Next() to be nil at chain tail")
	}
}
