package plan

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/IvanBrykalov/phpdate/metrics"
)

// Cache memoizes compiled plans per exact specifier string for its whole
// lifetime. It never evicts: specifiers are expected to come from a small,
// caller-controlled set, and callers that build specifiers from unbounded
// input own the resulting growth.
//
// Concurrent first requests for the same specifier are coalesced so each
// specifier is compiled once.
type Cache struct {
	plans sync.Map // string -> *Plan
	n     atomic.Int64
	sf    singleflight.Group
	rec   metrics.Recorder
}

// NewCache returns an empty cache reporting to rec (nil => metrics.Noop).
func NewCache(rec metrics.Recorder) *Cache {
	return &Cache{rec: metrics.OrNoop(rec)}
}

var shared = NewCache(nil)

// Shared returns the process-wide cache used by formatters that are not
// given their own.
func Shared() *Cache { return shared }

// Get returns the plan for spec, compiling it on first use, and reports the
// hit or miss to the cache's recorder.
func (c *Cache) Get(spec string) *Plan {
	p, hit := c.Lookup(spec)
	if hit {
		c.rec.Hit(metrics.Plans)
	} else {
		c.rec.Miss(metrics.Plans)
	}
	return p
}

// Lookup is Get without hit/miss reporting; hit is false when the call
// compiled spec or waited on a concurrent compile. Callers that keep their
// own recorder report through it.
func (c *Cache) Lookup(spec string) (p *Plan, hit bool) {
	if v, ok := c.plans.Load(spec); ok {
		return v.(*Plan), true
	}

	v, _, _ := c.sf.Do(spec, func() (any, error) {
		if p, ok := c.plans.Load(spec); ok {
			return p, nil
		}
		p := compile(spec, c.Get)
		c.plans.Store(spec, p)
		c.rec.Size(metrics.Plans, int(c.n.Add(1)))
		return p, nil
	})
	return v.(*Plan), false
}

// Len returns the number of compiled specifiers.
func (c *Cache) Len() int { return int(c.n.Load()) }
