package phpdate

import (
	"sync/atomic"
	"time"
)

var std atomic.Pointer[Formatter]

func init() { std.Store(New(Options{})) }

// Default returns the formatter behind the package-level functions.
func Default() *Formatter { return std.Load() }

// SetDefault replaces the formatter behind the package-level functions.
func SetDefault(f *Formatter) {
	if f != nil {
		std.Store(f)
	}
}

// Configure changes the settings of the default formatter. This is a
// process-wide effect, not a per-call option.
func Configure(s Settings) { Default().Configure(s) }

// Format renders t in the local timezone.
func Format(spec string, t time.Time) string { return Default().Format(spec, t) }

// FormatUTC renders t in UTC.
func FormatUTC(spec string, t time.Time) string { return Default().FormatUTC(spec, t) }

// FormatMillis renders an epoch-milliseconds timestamp in the local timezone.
func FormatMillis(spec string, ms int64) string { return Default().FormatMillis(spec, ms) }

// FormatMillisUTC renders an epoch-milliseconds timestamp in UTC.
func FormatMillisUTC(spec string, ms int64) string { return Default().FormatMillisUTC(spec, ms) }

// Now renders the current time in the local timezone.
func Now(spec string) string { return Default().Now(spec) }

// NowUTC renders the current time in UTC.
func NowUTC(spec string) string { return Default().NowUTC(spec) }
