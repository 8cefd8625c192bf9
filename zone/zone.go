// Package zone resolves the timezone fields of a formatted instant (offset,
// DST flag, abbreviation, name) and caches the results in coarse time
// buckets, so the location lookup runs at most once per bucket.
package zone

import (
	"sync"
	"time"

	"github.com/IvanBrykalov/phpdate/calendar"
	"github.com/IvanBrykalov/phpdate/metrics"
	"github.com/IvanBrykalov/phpdate/policy"
	"github.com/IvanBrykalov/phpdate/policy/flush"
)

// Info is the resolved timezone state of one instant. Values handed out by
// a Resolver are shared and must not be modified.
type Info struct {
	// Offset is the UTC offset in seconds, positive east of Greenwich.
	Offset int
	// Sign is '+' for offsets >= 0 and '-' otherwise.
	Sign byte
	// Hours and Minutes split the absolute offset.
	Hours, Minutes int
	DST            bool
	Abbrev         string
	Name           string
}

var utcInfo = Info{Sign: '+', Abbrev: "GMT", Name: "UTC"}

// UTCInfo returns the constant record used for the UTC view.
func UTCInfo() *Info { return &utcInfo }

const (
	// DefaultCapacity is the bucket table size when Options.Capacity <= 0.
	DefaultCapacity = 100
	// DefaultWindow is the bucket width when Options.Window <= 0.
	DefaultWindow = 15 * time.Minute
)

// Options configures a Resolver. Zero values are safe:
//   - Capacity <= 0 => DefaultCapacity
//   - Window <= 0   => DefaultWindow
//   - nil Policy    => flush-all
//   - nil Metrics   => metrics.Noop
type Options struct {
	Capacity int
	Window   time.Duration
	Policy   policy.Policy
	Metrics  metrics.Recorder
}

// Resolver maps instants of one location to Info records.
// All methods are safe for concurrent use.
type Resolver struct {
	loc    *time.Location
	window int64 // bucket width in ms
	known  bool
	cls    class

	// ---- guarded by mu ----
	mu      sync.RWMutex
	buckets map[int64]*Info
	cap     int

	pol policy.Policy
	rec metrics.Recorder
}

// New builds a resolver for loc (nil means time.Local) and classifies the
// location once against the static table.
func New(loc *time.Location, opt Options) *Resolver {
	if loc == nil {
		loc = time.Local
	}
	if opt.Capacity <= 0 {
		opt.Capacity = DefaultCapacity
	}
	window := opt.Window.Milliseconds()
	if window <= 0 {
		window = DefaultWindow.Milliseconds()
	}
	if opt.Policy == nil {
		opt.Policy = flush.New()
	}

	winter := offsetMinutes(time.UnixMilli(winterRefMillis).In(loc))
	summer := offsetMinutes(time.UnixMilli(summerRefMillis).In(loc))
	std, dst := min(winter, summer), max(winter, summer)
	cls, known := classes[[2]int{std, dst}]

	return &Resolver{
		loc:     loc,
		window:  window,
		known:   known,
		cls:     cls,
		buckets: make(map[int64]*Info, opt.Capacity),
		cap:     opt.Capacity,
		pol:     opt.Policy,
		rec:     metrics.OrNoop(opt.Metrics),
	}
}

// Location returns the location the resolver classifies.
func (r *Resolver) Location() *time.Location { return r.loc }

// Resolve returns the zone state of f. The UTC view never touches the
// table. When cache is false a miss is computed but not stored.
func (r *Resolver) Resolve(f *calendar.Fields, cache bool) *Info {
	if f.View() == calendar.UTC {
		return &utcInfo
	}

	b := bucketOf(f.UnixMilli(), r.window)
	r.mu.RLock()
	info, ok := r.buckets[b]
	r.mu.RUnlock()
	if ok {
		r.rec.Hit(metrics.Zones)
		return info
	}
	r.rec.Miss(metrics.Zones)

	info = r.compute(f.Time().In(r.loc))
	if cache {
		r.store(b, info)
	}
	return info
}

// Len returns the number of resident buckets.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.buckets)
}

func (r *Resolver) compute(t time.Time) *Info {
	abbrev, offset := t.Zone()
	abs := offset
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		abs = -offset
	}
	abs /= 60
	info := &Info{
		Offset:  offset,
		Sign:    sign,
		Hours:   abs / 60,
		Minutes: abs % 60,
		DST:     t.IsDST(),
		Abbrev:  abbrev,
		Name:    Unknown,
	}
	if r.known {
		info.Name = r.cls.name
		info.Abbrev = r.cls.std
		if info.DST {
			info.Abbrev = r.cls.dst
		}
	}
	return info
}

func (r *Resolver) store(b int64, info *Info) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.buckets[b]; ok {
		return
	}
	if len(r.buckets) >= r.cap {
		if n := r.pol.MakeRoom(tableHooks{r}); n > 0 {
			r.rec.Evict(metrics.Zones, n)
		}
	}
	r.buckets[b] = info
	r.rec.Size(metrics.Zones, len(r.buckets))
}

func bucketOf(ms, window int64) int64 {
	b := ms / window
	if ms%window < 0 {
		b--
	}
	return b
}

func offsetMinutes(t time.Time) int {
	_, off := t.Zone()
	return off / 60
}

// -------------------- policy hooks --------------------

// tableHooks adapts the bucket map to policy.Hooks; mu is held by store.
type tableHooks struct{ r *Resolver }

func (h tableHooks) Len() int { return len(h.r.buckets) }
func (h tableHooks) Range(fn func(int64) bool) {
	for b := range h.r.buckets {
		if !fn(b) {
			return
		}
	}
}
func (h tableHooks) Remove(b int64) { delete(h.r.buckets, b) }
func (h tableHooks) Clear()         { clear(h.r.buckets) }
