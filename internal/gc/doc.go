// Package gc runs a background reclaimer over a chain.Controller,
// periodically trimming reference groups that have fallen entirely
// below the oldest CSN any reader still pins (per an oracle.Tracker).
// It is structured like the teacher's mvcc.GarbageCollector: a ticker
// loop, CAS-guarded Start/Stop, a running stats snapshot, and an
// exported Collect that runs one cycle on demand (as the tests do).
package gc
