package bitmap

import (
	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/hierbit/internal/config"
)

// ErrWrongWidth is returned whenever a bitmap's length does not match
// the configured width.
var ErrWrongWidth = errors.New("bitmap: length does not match configured width")

// Bitmap is an opaque, fixed-width sequence of bytes. Equality is
// byte-wise (spec.md §3).
type Bitmap []byte

// New allocates a zero-filled bitmap of the configured width.
func New(cfg config.Config) Bitmap {
	return make(Bitmap, cfg.Width)
}

// Clone returns an independent copy of b.
func (b Bitmap) Clone() Bitmap {
	out := make(Bitmap, len(b))
	copy(out, b)
	return out
}

// Equal reports whether two bitmaps hold identical bytes.
func (b Bitmap) Equal(other Bitmap) bool {
	if len(b) != len(other) {
		return false
	}
	for i := range b {
		if b[i] != other[i] {
			return false
		}
	}
	return true
}

// CheckWidth validates that b has exactly cfg.Width bytes.
func CheckWidth(b []byte, cfg config.Config) error {
	if len(b) != cfg.Width {
		return errors.Wrapf(ErrWrongWidth, "got %d bytes, want %d", len(b), cfg.Width)
	}
	return nil
}
