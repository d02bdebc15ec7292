// Package source generates synthetic bitmap versions for the
// benchmark harness, simulating the small incremental edits that
// produce sparse deltas in practice. It is grounded on the original
// benchmark driver's RandomSet: repeatedly pick a random byte and bit
// within it, and flip it only if that actually changes the bit.
package source
