package phpdate

import (
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/IvanBrykalov/phpdate/calendar"
	"github.com/IvanBrykalov/phpdate/metrics"
	"github.com/IvanBrykalov/phpdate/plan"
	"github.com/IvanBrykalov/phpdate/zone"
)

// Formatter renders format specifiers for one location.
// All methods are safe for concurrent use by multiple goroutines.
type Formatter struct {
	loc     *time.Location
	plans   *plan.Cache
	zones   *zone.Resolver
	results *results
	rec     metrics.Recorder

	clock clockwork.Clock
	tick  time.Duration
	now   atomic.Pointer[time.Time] // current-time snapshot, nil when stale

	cacheResults atomic.Bool
	cacheNow     atomic.Bool
	cacheZone    atomic.Bool
}

// Stats is a snapshot of a formatter's cache counters.
type Stats struct {
	Hits   uint64 // result ring hits
	Misses uint64 // result ring misses
	Plans  int    // compiled specifiers in the plan cache
	Zones  int    // resident zone buckets
}

// New constructs a Formatter with the provided Options.
func New(opt Options) *Formatter {
	if opt.Location == nil {
		opt.Location = time.Local
	}
	if opt.ResultCapacity <= 0 {
		opt.ResultCapacity = DefaultResultCapacity
	}
	if opt.NowTick <= 0 {
		opt.NowTick = DefaultNowTick
	}
	if opt.Clock == nil {
		opt.Clock = clockwork.NewRealClock()
	}
	if opt.Plans == nil {
		opt.Plans = plan.Shared()
	}
	rec := metrics.OrNoop(opt.Metrics)

	f := &Formatter{
		loc:   opt.Location,
		plans: opt.Plans,
		zones: zone.New(opt.Location, zone.Options{
			Capacity: opt.ZoneCapacity,
			Window:   opt.ZoneWindow,
			Policy:   opt.ZonePolicy,
			Metrics:  rec,
		}),
		results: newResults(opt.ResultCapacity, opt.ResultShards, rec),
		rec:     rec,
		clock:   opt.Clock,
		tick:    opt.NowTick,
	}
	s := DefaultSettings()
	if opt.Settings != nil {
		s = *opt.Settings
	}
	f.Configure(s)
	return f
}

// Configure replaces the formatter's settings. The change applies to every
// later call on f, from any goroutine.
func (f *Formatter) Configure(s Settings) {
	f.cacheResults.Store(s.CacheResults)
	f.cacheNow.Store(s.CacheCurrentDate)
	f.cacheZone.Store(s.CacheTimezone)
	if !s.CacheCurrentDate {
		f.now.Store(nil)
	}
}

// Settings returns the current settings.
func (f *Formatter) Settings() Settings {
	return Settings{
		CacheResults:     f.cacheResults.Load(),
		CacheCurrentDate: f.cacheNow.Load(),
		CacheTimezone:    f.cacheZone.Load(),
	}
}

// Location returns the timezone of the local view.
func (f *Formatter) Location() *time.Location { return f.loc }

// Format renders t in the formatter's location.
func (f *Formatter) Format(spec string, t time.Time) string {
	return f.format(spec, t, calendar.Local)
}

// FormatUTC renders t in UTC; zone fields report GMT with a zero offset.
func (f *Formatter) FormatUTC(spec string, t time.Time) string {
	return f.format(spec, t, calendar.UTC)
}

// FormatMillis renders an epoch-milliseconds timestamp in the formatter's location.
func (f *Formatter) FormatMillis(spec string, ms int64) string {
	return f.format(spec, time.UnixMilli(ms), calendar.Local)
}

// FormatMillisUTC renders an epoch-milliseconds timestamp in UTC.
func (f *Formatter) FormatMillisUTC(spec string, ms int64) string {
	return f.format(spec, time.UnixMilli(ms), calendar.UTC)
}

// Now renders the current time in the formatter's location.
func (f *Formatter) Now(spec string) string {
	return f.format(spec, f.current(), calendar.Local)
}

// NowUTC renders the current time in UTC.
func (f *Formatter) NowUTC(spec string) string {
	return f.format(spec, f.current(), calendar.UTC)
}

// Plan returns the compiled plan for spec. Hits and misses are reported to
// Options.Metrics whichever plan cache the formatter uses.
func (f *Formatter) Plan(spec string) *plan.Plan {
	p, hit := f.plans.Lookup(spec)
	if hit {
		f.rec.Hit(metrics.Plans)
	} else {
		f.rec.Miss(metrics.Plans)
		f.rec.Size(metrics.Plans, f.plans.Len())
	}
	return p
}

// Execute runs p against t under view v, bypassing the result ring.
func (f *Formatter) Execute(p *plan.Plan, t time.Time, v calendar.View) string {
	s := plan.NewState(calendar.New(t, v, f.loc), f.zones, f.cacheZone.Load())
	return p.Format(s)
}

// Stats returns a snapshot of the cache counters.
func (f *Formatter) Stats() Stats {
	hits, misses := f.results.counts()
	return Stats{Hits: hits, Misses: misses, Plans: f.plans.Len(), Zones: f.zones.Len()}
}

func (f *Formatter) format(spec string, t time.Time, v calendar.View) string {
	ms := t.UnixMilli()
	cache := f.cacheResults.Load()
	if cache {
		if out, ok := f.results.get(spec, ms, v); ok {
			return out
		}
	}

	out := f.Execute(f.Plan(spec), time.UnixMilli(ms), v)
	if cache {
		f.results.put(spec, ms, v, out)
	}
	return out
}

// current returns the shared clock snapshot, taking a new one when the last
// has been dropped. The snapshot is dropped tick after it was taken, so it
// can be up to tick stale.
func (f *Formatter) current() time.Time {
	if !f.cacheNow.Load() {
		return f.clock.Now()
	}
	if p := f.now.Load(); p != nil {
		return *p
	}

	t := f.clock.Now()
	snap := &t
	if f.now.CompareAndSwap(nil, snap) {
		f.clock.AfterFunc(f.tick, func() { f.now.CompareAndSwap(snap, nil) })
		return t
	}
	if p := f.now.Load(); p != nil {
		return *p
	}
	return t
}
