// Package chain implements the hierarchical differential version chain:
// the version node, reference group, and version-chain controller from
// spec.md §3–§4. A Controller links ReferenceGroups newest-first; each
// group owns an immutable reference Bitmap and a newest-first chain of
// Nodes whose Deltas encode their difference against it.
//
// Writers insert through a two-stage protocol (Reserve, then Finalize)
// so that the expensive part — computing a delta — happens outside any
// lock. Readers (Lookup) take no locks at all: chain links and deltas
// are published with release semantics and observed with acquire
// semantics via sync/atomic, so a reader that sees a node's delta also
// sees its contents.
package chain
