package phpdate

import (
	"sync"
	"sync/atomic"

	"github.com/IvanBrykalov/phpdate/calendar"
	"github.com/IvanBrykalov/phpdate/internal/util"
	"github.com/IvanBrykalov/phpdate/metrics"
)

// entry is one remembered result. Entries are written whole under the ring
// lock, so readers never see a torn record.
type entry struct {
	format string
	millis int64
	view   calendar.View
	out    string
}

// ring is a fixed-capacity result buffer overwritten round-robin.
type ring struct {
	// ---- guarded by mu ----
	mu    sync.RWMutex
	slots []entry
	next  int

	// ---- hot counters (separate cache lines to avoid false sharing) ----
	_      util.CacheLinePad
	hits   util.Counter
	misses util.Counter
}

func (r *ring) get(format string, ms int64, v calendar.View) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.slots {
		e := &r.slots[i]
		if e.millis == ms && e.view == v && e.format == format {
			r.hits.Add(1)
			return e.out, true
		}
	}
	r.misses.Add(1)
	return "", false
}

// put stores e in the oldest slot and reports whether a live entry was
// overwritten.
func (r *ring) put(e entry, capacity int) (overwrote bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.slots) < capacity {
		r.slots = append(r.slots, e)
		r.next = len(r.slots) % capacity
		return false
	}
	r.slots[r.next] = e
	r.next = (r.next + 1) % capacity
	return true
}

// results shards the ring cache by key hash; a given key always lands in
// the same ring.
type results struct {
	rings    []*ring
	capacity int
	size     atomic.Int64
	rec      metrics.Recorder
}

func newResults(capacity, shards int, rec metrics.Recorder) *results {
	n := util.ShardCount(shards)
	rs := make([]*ring, n)
	for i := range rs {
		rs[i] = &ring{slots: make([]entry, 0, capacity)}
	}
	return &results{rings: rs, capacity: capacity, rec: rec}
}

func (c *results) ring(format string, ms int64, v calendar.View) *ring {
	h := util.KeyHash(format, ms, v == calendar.UTC)
	return c.rings[util.ShardIndex(h, len(c.rings))]
}

func (c *results) get(format string, ms int64, v calendar.View) (string, bool) {
	out, ok := c.ring(format, ms, v).get(format, ms, v)
	if ok {
		c.rec.Hit(metrics.Results)
	} else {
		c.rec.Miss(metrics.Results)
	}
	return out, ok
}

func (c *results) put(format string, ms int64, v calendar.View, out string) {
	e := entry{format: format, millis: ms, view: v, out: out}
	if c.ring(format, ms, v).put(e, c.capacity) {
		c.rec.Evict(metrics.Results, 1)
		return
	}
	c.rec.Size(metrics.Results, int(c.size.Add(1)))
}

// counts sums the per-ring counters.
func (c *results) counts() (hits, misses uint64) {
	for _, r := range c.rings {
		hits += r.hits.Load()
		misses += r.misses.Load()
	}
	return hits, misses
}
