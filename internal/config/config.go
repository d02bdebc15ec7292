package config

import "github.com/pkg/errors"

// DefaultWidth is the reference bitmap width in bytes (B in spec.md).
const DefaultWidth = 7500

// DefaultFanout is the maximum number of versions per reference group
// (G in spec.md).
const DefaultFanout = 9

// Config errors.
var (
	// ErrInvalidWidth is returned when a Config's Width is not positive
	// or is not even (the dense form packs bytes into 16-bit words, so an
	// odd width cannot be represented).
	ErrInvalidWidth = errors.New("config: width must be a positive even number of bytes")

	// ErrInvalidFanout is returned when a Config's Fanout is not positive.
	ErrInvalidFanout = errors.New("config: fanout must be positive")
)

// Config carries the two process-wide knobs the core depends on: the
// bitmap width and the group fanout. Every reference group, version
// node, and delta in a single Controller shares one Config.
type Config struct {
	// Width is B: the number of bytes in every Bitmap.
	Width int

	// Fanout is G: the maximum number of versions a single reference
	// group may hold before a new group is opened.
	Fanout int
}

// Default returns the reference-implementation configuration:
// Width=7500, Fanout=9.
func Default() Config {
	return Config{Width: DefaultWidth, Fanout: DefaultFanout}
}

// DenseThreshold returns the minimum number of differing bits (inclusive)
// at which the codec chooses the dense encoding over the sparse one:
// B/16, per spec.md §4.1.
func (c Config) DenseThreshold() int {
	return c.Width / 16
}

// DenseWords returns the number of 16-bit words a dense delta occupies:
// B/2, per spec.md §4.1.
func (c Config) DenseWords() int {
	return c.Width / 2
}

// Validate checks that the configuration can be used by the codec and
// the chain package: Width must be positive and even, Fanout must be
// positive.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Width%2 != 0 {
		return ErrInvalidWidth
	}
	if c.Fanout <= 0 {
		return ErrInvalidFanout
	}
	return nil
}
