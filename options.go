package phpdate

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/IvanBrykalov/phpdate/metrics"
	"github.com/IvanBrykalov/phpdate/plan"
	"github.com/IvanBrykalov/phpdate/policy"
)

// Specifiers of the c and r fields.
const (
	ISO8601 = plan.ISO8601
	RFC2822 = plan.RFC2822
)

const (
	// DefaultResultCapacity is the number of slots per result ring.
	DefaultResultCapacity = 10
	// DefaultNowTick is how long a current-time snapshot is reused.
	DefaultNowTick = time.Millisecond
)

// Settings are the runtime toggles of a Formatter.
type Settings struct {
	// CacheResults enables the recent-results ring.
	CacheResults bool
	// CacheCurrentDate lets Now/NowUTC reuse one clock reading for NowTick.
	CacheCurrentDate bool
	// CacheTimezone stores resolved zone buckets.
	CacheTimezone bool
}

// DefaultSettings enables every cache.
func DefaultSettings() Settings {
	return Settings{CacheResults: true, CacheCurrentDate: true, CacheTimezone: true}
}

// Options configures a Formatter. Zero values are safe; defaults are
// applied in New():
//   - nil Location         => time.Local
//   - ResultCapacity <= 0  => DefaultResultCapacity
//   - ResultShards <= 0    => auto (≈ 2*GOMAXPROCS), rounded to a power of two
//   - ZoneCapacity <= 0    => zone.DefaultCapacity
//   - ZoneWindow <= 0      => zone.DefaultWindow
//   - nil ZonePolicy       => flush-all
//   - NowTick <= 0         => DefaultNowTick
//   - nil Clock            => real clock
//   - nil Metrics          => metrics.Noop
//   - nil Plans            => plan.Shared()
//   - nil Settings         => DefaultSettings()
type Options struct {
	// Location is the timezone of the local view.
	Location *time.Location

	// ResultCapacity is the slot count of each result ring. Lookups scan a
	// ring linearly, so keep it small.
	ResultCapacity int
	// ResultShards is the number of independent rings. The result cache
	// holds up to ResultShards x ResultCapacity entries in total; set it
	// to 1 for a single ring of ResultCapacity slots.
	ResultShards int

	ZoneCapacity int
	ZoneWindow   time.Duration
	ZonePolicy   policy.Policy

	NowTick time.Duration
	// Clock is the source of Now/NowUTC; tests plug a fake clock here.
	Clock clockwork.Clock

	Metrics metrics.Recorder

	// Plans lets several formatters share compiled plans. Plan hits and
	// misses are reported to Metrics either way.
	Plans *plan.Cache

	Settings *Settings
}
