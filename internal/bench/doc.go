// Package bench runs a barrier-synchronized worker pool over the
// chain controller, grounded on the original benchmark driver's
// ParallelForStable: every worker goroutine is released at the same
// instant so elapsed-time measurements aren't skewed by staggered
// goroutine startup, and each worker claims indices from a shared
// atomic counter until the range is exhausted.
package bench
