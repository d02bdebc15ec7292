// Package metrics exposes Prometheus counters and histograms for the
// insert, finalize, lookup, and reclaim operations, in the style of
// the promauto-based instrumentation shown in the retrieved delta
// history worker. Unlike that file's package-global promauto
// variables, Metrics here binds to a caller-supplied registry so a
// benchmark process can create several independent instances without
// a duplicate-registration panic.
package metrics
