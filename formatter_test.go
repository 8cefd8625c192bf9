package phpdate

import (
	"strings"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/jonboulle/clockwork"

	"github.com/IvanBrykalov/phpdate/calendar"
	"github.com/IvanBrykalov/phpdate/metrics"
	"github.com/IvanBrykalov/phpdate/plan"
)

const ts1980 = 315682496123 // 1980-01-02 12:34:56.123 EST

func newYork(t testing.TB) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func eastern(t testing.TB) *Formatter {
	t.Helper()
	return New(Options{Location: newYork(t)})
}

func TestFormatUTC_Padding(t *testing.T) {
	t.Parallel()

	f := New(Options{})
	year5 := time.Date(5, time.June, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		spec string
		t    time.Time
		want string
	}{
		{"u", time.UnixMilli(1), "001000"},
		{"B", time.UnixMilli(1), "041"},
		{"m", time.UnixMilli(1), "01"},
		{"Y", year5, "0005"},
		{"Y-m-d", time.UnixMilli(86400000 / 2), "1970-01-01"},
	}
	for _, c := range cases {
		if got := f.FormatUTC(c.spec, c.t); got != c.want {
			t.Errorf("FormatUTC(%q) = %q, want %q", c.spec, got, c.want)
		}
	}
}

func TestFormatUTC_ISOWeekBoundaries(t *testing.T) {
	t.Parallel()

	f := New(Options{})
	if got := f.FormatUTC("W o", time.Date(1988, 1, 2, 12, 0, 0, 0, time.UTC)); got != "53 1987" {
		t.Errorf("1988-01-02: got %q", got)
	}
	if got := f.FormatUTC("W o", time.Date(2001, 12, 31, 12, 0, 0, 0, time.UTC)); got != "01 2002" {
		t.Errorf("2001-12-31: got %q", got)
	}
}

func TestFormat_Eastern(t *testing.T) {
	t.Parallel()

	f := eastern(t)
	cases := []struct {
		spec string
		ms   int64
		want string
	}{
		{"Y-m-d H:i:s.u", ts1980, "1980-01-02 12:34:56.123000"},
		{"c", ts1980, "1980-01-02T12:34:56-05:00"},
		{"r", ts1980, "Wed, 02 Jan 1980 12:34:56 -0500"},
		{"e I O P T Z", ts1980, "US/Eastern 0 -0500 -05:00 EST -18000"},
		{"e I O P T Z", 1435636800000, "US/Eastern 1 -0400 -04:00 EDT -14400"},
		{"Y-m-d H:i:s", 1194147428000, "2007-11-03 23:37:08"}, // before fall back
		{"Y-m-d H:i:s", 514953117000, "1986-04-26 21:31:57"},  // before spring forward
	}
	for _, c := range cases {
		if got := f.FormatMillis(c.spec, c.ms); got != c.want {
			t.Errorf("FormatMillis(%q, %d) = %q, want %q", c.spec, c.ms, got, c.want)
		}
	}

	if got := f.FormatMillisUTC("Y-m-d H:i:s", 1194147428000); got != "2007-11-04 03:37:08" {
		t.Errorf("utc fall back: got %q", got)
	}
	if got := f.FormatMillisUTC("Y-m-d H:i:s", 514953117000); got != "1986-04-27 02:31:57" {
		t.Errorf("utc spring forward: got %q", got)
	}
}

// Local time jumps an hour across the 2015 spring-forward edge while UTC
// advances by one second.
func TestFormat_SpringForward(t *testing.T) {
	t.Parallel()

	f := eastern(t)
	edge := time.Date(2015, time.March, 8, 7, 0, 0, 0, time.UTC)
	before, after := edge.Add(-time.Second), edge

	if got := f.Format("H:i:s T", before); got != "01:59:59 EST" {
		t.Errorf("local before: got %q", got)
	}
	if got := f.Format("H:i:s T", after); got != "03:00:00 EDT" {
		t.Errorf("local after: got %q", got)
	}
	if got := f.FormatUTC("H:i:s T", before); got != "06:59:59 GMT" {
		t.Errorf("utc before: got %q", got)
	}
	if got := f.FormatUTC("H:i:s T", after); got != "07:00:00 GMT" {
		t.Errorf("utc after: got %q", got)
	}
}

func TestFormatUTC_IndependentOfLocation(t *testing.T) {
	t.Parallel()

	a := New(Options{Location: newYork(t)})
	b := New(Options{Location: time.FixedZone("X", 9*3600)})
	for _, ms := range []int64{0, 1, ts1980, 1435636800000, -86400000} {
		for _, spec := range []string{"c", "r", "e I O P T Z", "Y-m-d H:i:s B u U"} {
			if x, y := a.FormatMillisUTC(spec, ms), b.FormatMillisUTC(spec, ms); x != y {
				t.Errorf("%q at %d: %q != %q", spec, ms, x, y)
			}
		}
	}
}

func TestFormat_EscapedLiteral(t *testing.T) {
	t.Parallel()

	f := eastern(t)
	got := f.FormatMillis(`Y-m-d\TH:i:sP`, ts1980)
	if got != "1980-01-02T12:34:56-05:00" {
		t.Fatalf("got %q", got)
	}
	if strings.Contains(got, "EST") {
		t.Fatal(`\T must not expand to the zone abbreviation`)
	}
}

func TestFormat_LiteralsPassThrough(t *testing.T) {
	t.Parallel()

	f := New(Options{})
	cases := map[string]string{
		"-: ,./":        "-: ,./",
		"Y年m月d日":        "1980年01月02日",
		"[H] ⏱ {i}":     "[17] ⏱ {34}",
		"":              "",
		"xXbCqQ":        "xXbCqQ",
		`\d\a\y: d`:     "day: 02",
		"H:i:s.u → ok?": "17:34:56.123000 → 1980k?",
	}
	for spec, want := range cases {
		if got := f.FormatMillisUTC(spec, ts1980); got != want {
			t.Errorf("%q: got %q, want %q", spec, got, want)
		}
	}
}

func TestFormat_FullDateTimeExpansions(t *testing.T) {
	t.Parallel()

	f := eastern(t)
	for _, ms := range []int64{ts1980, 1435636800000, 0} {
		if f.FormatMillis("c", ms) != f.FormatMillis(ISO8601, ms) {
			t.Errorf("c differs from %q at %d", ISO8601, ms)
		}
		if f.FormatMillis("r", ms) != f.FormatMillis(RFC2822, ms) {
			t.Errorf("r differs from %q at %d", RFC2822, ms)
		}
		if f.FormatMillisUTC("c r", ms) != f.FormatMillisUTC(ISO8601+" "+RFC2822, ms) {
			t.Errorf("utc c r differs at %d", ms)
		}
	}
}

func TestFormat_IdempotentThroughRing(t *testing.T) {
	t.Parallel()

	f := New(Options{Location: newYork(t), Plans: plan.NewCache(nil)})
	first := f.FormatMillis("c T", ts1980)
	second := f.FormatMillis("c T", ts1980)
	if first != second {
		t.Fatalf("cached result differs: %q vs %q", first, second)
	}
	st := f.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Fatalf("want 1 hit and 1 miss, got %+v", st)
	}
	if st.Plans != 2 || st.Zones != 1 {
		t.Fatalf("c T compiles two plans and resolves one bucket, got %+v", st)
	}

	// same millis, other view: distinct key
	if utc := f.FormatMillisUTC("c T", ts1980); utc == first {
		t.Fatalf("utc view must not reuse the local result: %q", utc)
	}
}

func TestResults_TotalCapacity(t *testing.T) {
	t.Parallel()

	f := New(Options{ResultShards: 3, ResultCapacity: 2})
	if n := len(f.results.rings); n != 4 {
		t.Fatalf("shard count rounds up to a power of two, got %d", n)
	}
	for ms := int64(0); ms < 64; ms++ {
		f.FormatMillisUTC("U", ms)
	}
	resident := 0
	for _, r := range f.results.rings {
		if cap(r.slots) != 2 || len(r.slots) > 2 {
			t.Fatalf("ring holds %d of %d slots", len(r.slots), cap(r.slots))
		}
		resident += len(r.slots)
	}
	if resident > 4*2 {
		t.Fatalf("total capacity is shards x capacity, got %d entries", resident)
	}
}

// A single ring of two slots is overwritten round-robin.
func TestResults_RoundRobin(t *testing.T) {
	t.Parallel()

	f := New(Options{ResultShards: 1, ResultCapacity: 2})
	f.FormatMillisUTC("Y", 1) // miss
	f.FormatMillisUTC("Y", 2) // miss
	f.FormatMillisUTC("Y", 1) // hit
	f.FormatMillisUTC("Y", 3) // miss, overwrites the entry for 1
	f.FormatMillisUTC("Y", 1) // miss again

	if st := f.Stats(); st.Hits != 1 || st.Misses != 4 {
		t.Fatalf("want 1 hit / 4 misses, got %+v", st)
	}
}

func TestConfigure_DisablesCaches(t *testing.T) {
	t.Parallel()

	f := New(Options{Location: newYork(t)})
	f.Configure(Settings{})
	if s := f.Settings(); s != (Settings{}) {
		t.Fatalf("settings not applied: %+v", s)
	}

	a := f.FormatMillis("Y-m-d T", ts1980)
	b := f.FormatMillis("Y-m-d T", ts1980)
	if a != b || a != "1980-01-02 EST" {
		t.Fatalf("got %q and %q", a, b)
	}
	if st := f.Stats(); st.Hits != 0 || st.Misses != 0 || st.Zones != 0 {
		t.Fatalf("disabled caches must stay untouched, got %+v", st)
	}

	f.Configure(DefaultSettings())
	f.FormatMillis("Y-m-d T", ts1980)
	if st := f.Stats(); st.Misses != 1 || st.Zones != 1 {
		t.Fatalf("re-enabled caches must be used, got %+v", st)
	}
}

func TestOptions_InitialSettings(t *testing.T) {
	t.Parallel()

	s := Settings{CacheTimezone: true}
	f := New(Options{Settings: &s})
	if got := f.Settings(); got != s {
		t.Fatalf("got %+v, want %+v", got, s)
	}
	if New(Options{}).Settings() != DefaultSettings() {
		t.Fatal("nil Settings must mean DefaultSettings")
	}
}

func TestNow_SnapshotReusedUntilTick(t *testing.T) {
	t.Parallel()

	clk := clockwork.NewFakeClockAt(time.Date(2015, time.June, 30, 4, 0, 0, 0, time.UTC))
	f := New(Options{Location: time.UTC, Clock: clk, NowTick: time.Hour})

	if got := f.NowUTC("H:i:s"); got != "04:00:00" {
		t.Fatalf("got %q", got)
	}
	clk.Advance(time.Second)
	if got := f.NowUTC("H:i:s"); got != "04:00:00" {
		t.Fatalf("snapshot must be reused within the tick, got %q", got)
	}
	if got := f.Now("H:i:s"); got != "04:00:00" {
		t.Fatalf("local view shares the snapshot, got %q", got)
	}

	clk.Advance(time.Hour)
	deadline := time.Now().Add(2 * time.Second)
	for f.NowUTC("H:i:s") != "05:00:01" {
		if time.Now().After(deadline) {
			t.Fatal("snapshot was not dropped after the tick")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestNow_SnapshotDisabled(t *testing.T) {
	t.Parallel()

	clk := clockwork.NewFakeClockAt(time.Date(2015, time.June, 30, 4, 0, 0, 0, time.UTC))
	f := New(Options{Location: time.UTC, Clock: clk, NowTick: time.Hour})
	f.NowUTC("H:i:s")

	s := DefaultSettings()
	s.CacheCurrentDate = false
	f.Configure(s)
	clk.Advance(time.Second)
	if got := f.NowUTC("H:i:s"); got != "04:00:01" {
		t.Fatalf("every call must read the clock, got %q", got)
	}
}

func TestExecute_BypassesRing(t *testing.T) {
	t.Parallel()

	f := eastern(t)
	p := f.Plan("D, d M Y")
	at := time.UnixMilli(ts1980)
	if got := f.Execute(p, at, calendar.Local); got != "Wed, 02 Jan 1980" {
		t.Fatalf("got %q", got)
	}
	if st := f.Stats(); st.Hits+st.Misses != 0 {
		t.Fatalf("Execute must not touch the ring, got %+v", st)
	}
	if p != f.Plan("D, d M Y") {
		t.Fatal("plans must be memoized")
	}
}

type recorder struct {
	mu     sync.Mutex
	hits   map[metrics.Kind]int
	misses map[metrics.Kind]int
	evicts map[metrics.Kind]int
}

func newRecorder() *recorder {
	return &recorder{hits: map[metrics.Kind]int{}, misses: map[metrics.Kind]int{}, evicts: map[metrics.Kind]int{}}
}

func (r *recorder) Hit(k metrics.Kind)          { r.mu.Lock(); r.hits[k]++; r.mu.Unlock() }
func (r *recorder) Miss(k metrics.Kind)         { r.mu.Lock(); r.misses[k]++; r.mu.Unlock() }
func (r *recorder) Evict(k metrics.Kind, n int) { r.mu.Lock(); r.evicts[k] += n; r.mu.Unlock() }
func (r *recorder) Size(metrics.Kind, int)      {}

func TestMetrics_Signals(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	f := New(Options{
		Location:       newYork(t),
		ResultShards:   1,
		ResultCapacity: 1,
		Metrics:        rec,
		Plans:          plan.NewCache(nil),
	})
	f.FormatMillis("T", 0)
	f.FormatMillis("T", 0)
	f.FormatMillis("T", 1)

	if rec.hits[metrics.Results] != 1 || rec.misses[metrics.Results] != 2 {
		t.Fatalf("results: hits=%d misses=%d", rec.hits[metrics.Results], rec.misses[metrics.Results])
	}
	if rec.evicts[metrics.Results] != 1 {
		t.Fatalf("the second store overwrites the only slot, evicts=%d", rec.evicts[metrics.Results])
	}
	if rec.misses[metrics.Zones] != 1 || rec.hits[metrics.Zones] != 1 {
		t.Fatalf("zones: hits=%d misses=%d", rec.hits[metrics.Zones], rec.misses[metrics.Zones])
	}
	// plans are looked up on ring misses only, and reported to Options.Metrics
	// even though the plan cache has no recorder of its own
	if rec.misses[metrics.Plans] != 1 || rec.hits[metrics.Plans] != 1 {
		t.Fatalf("plans: hits=%d misses=%d", rec.hits[metrics.Plans], rec.misses[metrics.Plans])
	}
}

func TestPackageLevel(t *testing.T) {
	// not parallel: swaps the default formatter
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	SetDefault(New(Options{Location: newYork(t)}))
	if got := FormatMillis("c", ts1980); got != "1980-01-02T12:34:56-05:00" {
		t.Fatalf("FormatMillis: got %q", got)
	}
	if got := FormatMillisUTC("c", ts1980); got != "1980-01-02T17:34:56+00:00" {
		t.Fatalf("FormatMillisUTC: got %q", got)
	}
	at := time.UnixMilli(ts1980)
	if Format("r", at) != FormatMillis("r", ts1980) || FormatUTC("r", at) != FormatMillisUTC("r", ts1980) {
		t.Fatal("time.Time and millis entry points must agree")
	}
	if got := Now("Y"); len(got) != 4 || got[:2] != "20" {
		t.Fatalf("Now: got %q", got)
	}
	if got := NowUTC("Y-m-d"); len(got) != len("2015-01-01") {
		t.Fatalf("NowUTC: got %q", got)
	}

	Configure(Settings{})
	if Default().Settings() != (Settings{}) {
		t.Fatal("Configure must reach the default formatter")
	}
	SetDefault(nil)
	if Default() == nil {
		t.Fatal("SetDefault(nil) must be ignored")
	}
}
