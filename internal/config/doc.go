// Package config holds the process-wide parameters of the hierarchical
// differential bitmap version store: the bitmap width in bytes (B) and
// the maximum number of versions per reference group (G).
//
// spec.md treats B and G as compile-time constants fixed at build time.
// This package keeps that contract for production use (DefaultWidth and
// DefaultFanout match the reference implementation: 7500 and 9) while
// still letting tests and the benchmark harness build a Config with
// other values, since recompiling per test case would be impractical.
package config
