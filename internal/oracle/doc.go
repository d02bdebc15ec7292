// Package oracle tracks which commit sequence numbers are currently
// visible to an in-flight reader, so that a group reclaimer (package
// gc) knows which versions are safe to discard. It plays the role the
// teacher's transaction manager plays for transaction IDs, but for
// reader snapshots instead of writers: Begin hands out a token at the
// current CSN, and OldestVisible reports the smallest CSN any live
// token still references, or ok=false if no token is outstanding.
package oracle
