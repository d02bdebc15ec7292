package logging

import (
	"crypto/rand"
	"encoding/hex"
	"sync/atomic"
	"time"
)

// runIDCounter disambiguates two runs generated within the same second.
var runIDCounter uint64

// GenerateRunID generates an identifier for tagging every log line a
// single run of component produces, so they can be correlated after
// the fact — including when several collaborators interleave their
// output on the same stream, since component prefixes the result. The
// format is component-timestamp-counter-random (e.g.
// "gc-688888c0-0001-a1b2c3d4"): a reader can tell a reclaim cycle's
// lines from a benchmark run's without parsing past the first field.
func GenerateRunID(component Component) string {
	ts := time.Now().Unix()
	counter := atomic.AddUint64(&runIDCounter, 1)

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		// Fallback to counter-only if random fails
		return formatRunID(component, ts, counter, "0000")
	}

	return formatRunID(component, ts, counter, hex.EncodeToString(randomBytes))
}

// formatRunID formats the run ID components.
func formatRunID(component Component, ts int64, counter uint64, random string) string {
	return string(component) + "-" + hex.EncodeToString([]byte{
		byte(ts >> 24), byte(ts >> 16), byte(ts >> 8), byte(ts),
	}) + "-" + formatCounter(counter) + "-" + random
}

// formatCounter formats the counter as a 2-byte hex string.
func formatCounter(counter uint64) string {
	return hex.EncodeToString([]byte{
		byte(counter >> 8), byte(counter),
	})
}
