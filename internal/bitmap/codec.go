package bitmap

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/hierbit/internal/config"
)

// Codec errors.
var (
	// ErrDenseMerge is returned when Merge is asked to merge a dense
	// delta. Dense deltas store a full bitmap, not a XOR-against-
	// reference, so "union of positions" is meaningless for them
	// (spec.md §4.1): this is an invariant violation, not a recoverable
	// condition, but Merge still returns it so callers can assert loudly
	// instead of silently corrupting the chain.
	ErrDenseMerge = errors.New("bitmap: cannot merge a dense delta")
)

// Encode counts the bits that differ between original and reference and
// returns a Delta, choosing the sparse representation (the differing
// bit positions) or the dense one (original itself, verbatim) per the
// density threshold in cfg (spec.md §4.1). original and reference must
// both have length cfg.Width.
func Encode(original, reference []byte, cfg config.Config) (Delta, error) {
	if err := CheckWidth(original, cfg); err != nil {
		return Delta{}, errors.Wrap(err, "encode: original")
	}
	if err := CheckWidth(reference, cfg); err != nil {
		return Delta{}, errors.Wrap(err, "encode: reference")
	}

	k := 0
	for i := range original {
		k += bits.OnesCount8(original[i] ^ reference[i])
	}

	// Tie-break: k == threshold is treated as dense (spec.md §4.1).
	if k >= cfg.DenseThreshold() {
		return encodeDense(original, cfg), nil
	}
	return encodeSparse(original, reference, k), nil
}

// encodeDense packs original as DenseWords() little-endian byte pairs.
func encodeDense(original []byte, cfg config.Config) Delta {
	words := make([]uint16, cfg.DenseWords())
	for i := range words {
		words[i] = uint16(original[2*i]) | uint16(original[2*i+1])<<8
	}
	return Delta{Form: Dense, Words: words}
}

// encodeSparse lists the positions of bits that differ between original
// and reference, MSB-first within each byte, in ascending order.
func encodeSparse(original, reference []byte, k int) Delta {
	positions := make([]uint16, 0, k)
	for i := range original {
		x := original[i] ^ reference[i]
		if x == 0 {
			continue
		}
		for j := 0; j < 8; j++ {
			if x&(1<<(7-j)) != 0 {
				positions = append(positions, uint16(i*8+j))
			}
		}
	}
	return Delta{Form: Sparse, Positions: positions}
}

// Decode reconstructs the original bitmap from reference and a Delta
// (spec.md §4.1). reference must have length cfg.Width; the returned
// slice is freshly allocated.
func Decode(reference []byte, d Delta, cfg config.Config) ([]byte, error) {
	if err := CheckWidth(reference, cfg); err != nil {
		return nil, errors.Wrap(err, "decode: reference")
	}

	out := make([]byte, len(reference))
	copy(out, reference)

	switch d.Form {
	case Dense:
		if len(d.Words) != cfg.DenseWords() {
			return nil, errors.Errorf("decode: dense delta has %d words, want %d", len(d.Words), cfg.DenseWords())
		}
		for i, w := range d.Words {
			out[2*i] = byte(w & 0xFF)
			out[2*i+1] = byte(w >> 8)
		}
	case Sparse:
		width := cfg.Width
		for _, p := range d.Positions {
			pos := int(p)
			byteIndex := pos / 8
			bitIndex := pos % 8
			if byteIndex < 0 || byteIndex >= width {
				return nil, errors.Errorf("decode: position %d out of range for width %d", pos, width)
			}
			out[byteIndex] ^= 1 << (7 - bitIndex)
		}
	default:
		return nil, errors.Errorf("decode: unknown delta form %v", d.Form)
	}

	return out, nil
}

// Merge returns a new Delta whose positions are the union of older's
// and newer's, so that older continues to decode correctly once
// newer's changes are considered to lie "between" older and the
// group's reference (spec.md §4.1, §4.3). Both deltas must be sparse;
// merging a dense delta is an invariant violation the core must never
// attempt, so Merge returns ErrDenseMerge instead of silently doing the
// wrong thing.
//
// Merge is pure rather than mutating older in place: the chain publishes
// the result through an atomic store, so a concurrent reader of the
// original delta never observes a half-finished union (spec.md §5).
//
// Merge is idempotent: merging the same newer delta into older twice
// produces the same result as merging it once, because union is
// idempotent.
func Merge(older, newer Delta) (Delta, error) {
	if older.Form != Sparse || newer.Form != Sparse {
		return Delta{}, ErrDenseMerge
	}
	return Delta{Form: Sparse, Positions: unionSorted(older.Positions, newer.Positions)}, nil
}

// unionSorted merges two strictly ascending slices into one strictly
// ascending slice, collapsing duplicates.
func unionSorted(a, b []uint16) []uint16 {
	out := make([]uint16, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
