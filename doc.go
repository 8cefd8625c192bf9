// Package phpdate formats instants with PHP date()-compatible format
// specifiers, in the local timezone (Format) or in UTC (FormatUTC).
//
// Design
//
//   - Plans: a specifier is compiled once into a plan of literal and field
//     actions (package plan) and memoized per exact specifier string for the
//     life of the process. The c (ISO-8601) and r (RFC-2822) fields expand
//     through the same plan cache.
//
//   - Results: a small ring of recent (format, epoch millis, view) results
//     short-circuits repeated calls for the same timestamp, which is the
//     dominant pattern when many log lines are stamped within one
//     millisecond. The ring is overwritten round-robin, not LRU. Rings are
//     sharded by key hash so concurrent callers rarely share a lock; the
//     total capacity is ResultShards x ResultCapacity (by default about
//     2*GOMAXPROCS rings of 10 slots). Use ResultShards: 1 for one ring.
//
//   - Zones: offset, DST flag, abbreviation and name of the local view are
//     resolved per 15-minute bucket (package zone). Abbreviations and names
//     come from a small static table of offset pairs; anything else is
//     reported with the name "???".
//
//   - Current time: Now and NowUTC share one snapshot of the clock that is
//     dropped after Options.NowTick (1ms by default). Pass an explicit
//     instant when sub-millisecond freshness matters.
//
//   - Precision: instants are handled at millisecond resolution. The u
//     field is always a multiple of 1000.
//
// Basic usage
//
//	s := phpdate.Format("Y-m-d H:i:s", time.Now())
//	g := phpdate.FormatUTC(phpdate.ISO8601, time.Now()) // 2015-06-30T04:00:00+00:00
//	n := phpdate.Now("D, d M Y")                         // shares the clock snapshot
//
// Dedicated formatters
//
//	f := phpdate.New(phpdate.Options{
//	    Location: loc,
//	    Metrics:  prom.New(nil, "phpdate", "app", nil),
//	})
//	s := f.FormatMillis("c", 1435636800000)
//
// Settings
//
// Result caching, the current-time snapshot and the zone bucket cache can
// be toggled with Configure. Settings belong to a formatter, not to a call:
// the package-level Configure changes every later package-level call from
// every goroutine.
//
// All caches are safe for concurrent use. The plan cache never evicts, so
// specifiers must come from a bounded set; building specifiers from
// unbounded input grows it without limit.
package phpdate
