package chain

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultCacheSize bounds the number of decoded full bitmaps kept
// per-controller. Lookup's chain walk plus Decode cost is linear in
// how many sparse deltas have merged past a version since its group
// opened (spec.md §4.3's whole point is to keep that short), so this
// is a bounded-memory speedup for repeatedly-read historical CSNs, not
// a correctness requirement.
const defaultCacheSize = 1024

// decodeCache memoizes Lookup's decoded result by csn, tagged with the
// node checksum it was decoded from. A node's decodable value is stable
// only until the merge pass next walks over it (spec.md §4.3 republishes
// a new delta — and a new checksum — in place of the old one), and a
// populating Lookup reads a node's state, decodes it, and stores the
// result as three separate steps with no lock held across them. A merge
// pass can republish and evict the csn in the gap between the populating
// reader's read and its store, and that store would then resurrect a
// stale entry no later evict call will ever see again. Tagging each
// entry with the checksum it was decoded from closes that hole without
// needing a lock: get compares the stored checksum against the node's
// *current* one and reports a miss on any mismatch, so a stale store is
// merely wasted work, never a wrong answer. Controller.Finalize still
// calls evict for every csn the merge pass republishes, as a hygiene
// optimization that frees the stale slot immediately rather than leaving
// it for the next get to reject.
type decodeCache struct {
	c *lru.Cache[int64, cacheEntry]
}

type cacheEntry struct {
	checksum uint64
	full     []byte
}

func newDecodeCache(size int) *decodeCache {
	c, err := lru.New[int64, cacheEntry](size)
	if err != nil {
		// Only returns an error for size <= 0, which never happens for
		// the constant above.
		panic(err)
	}
	return &decodeCache{c: c}
}

// get reports a hit only if csn is cached under exactly checksum — the
// node's checksum at the moment of the call. Any mismatch, including one
// left behind by a reader racing a since-completed merge, is a miss.
func (d *decodeCache) get(csn int64, checksum uint64) ([]byte, bool) {
	entry, ok := d.c.Get(csn)
	if !ok || entry.checksum != checksum {
		return nil, false
	}
	return entry.full, true
}

func (d *decodeCache) put(csn int64, checksum uint64, full []byte) {
	d.c.Add(csn, cacheEntry{checksum: checksum, full: full})
}

func (d *decodeCache) evict(csn int64) {
	d.c.Remove(csn)
}
