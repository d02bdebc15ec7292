package source

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/hierbit/internal/bitmap"
	"github.com/KilimcininKorOglu/hierbit/internal/config"
)

// maxTries bounds how many random (byte, bit) picks Flip attempts
// before giving up on finding one that actually changes the bitmap.
const maxTries = 200

// ErrFlipFailed is returned by Flip when it could not find num
// distinct bits to set within maxTries attempts per bit — this
// normally only happens when num approaches the bitmap's total bit
// width.
var ErrFlipFailed = errors.New("source: could not find a bit to flip")

// Generator produces successive bitmap versions by setting a given
// number of randomly chosen bits on each call, the way adjacent CSNs
// differ by FlipsPerStep bits in an append-only workload.
type Generator struct {
	cfg config.Config
	rng *rand.Rand
}

// New creates a Generator for the given configuration, seeded
// deterministically so benchmark runs are reproducible.
func New(cfg config.Config, seed int64) *Generator {
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

// Seed creates a bitmap of all zero bits, the starting point for the
// first CSN a benchmark run inserts.
func (g *Generator) Seed() bitmap.Bitmap {
	return bitmap.New(g.cfg)
}

// Flip returns a clone of prev with num previously-unset bits now set.
// It never clears bits: each successive version is a superset of the
// last, matching an append-only workload where fields only gain flags
// over time.
func (g *Generator) Flip(prev bitmap.Bitmap, num int) (bitmap.Bitmap, error) {
	out := prev.Clone()
	width := len(out) * 8

	for i := 0; i < num; i++ {
		found := false
		for try := 0; try < maxTries; try++ {
			pos := g.rng.Intn(width)
			byteIdx := pos / 8
			mask := byte(1) << uint(7-(pos%8))
			if out[byteIdx]&mask == 0 {
				out[byteIdx] |= mask
				found = true
				break
			}
		}
		if !found {
			return nil, ErrFlipFailed
		}
	}

	return out, nil
}
