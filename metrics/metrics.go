// Package metrics defines the observability hooks the formatter's caches
// report to. A Noop recorder is used by default; metrics/prom exports the
// same signals to Prometheus.
package metrics

// Kind names one of the formatter's caches.
type Kind int

const (
	// Results is the recent-results ring.
	Results Kind = iota
	// Zones is the timezone bucket table.
	Zones
	// Plans is the compiled format plan cache.
	Plans
)

func (k Kind) String() string {
	switch k {
	case Zones:
		return "zones"
	case Plans:
		return "plans"
	default:
		return "results"
	}
}

// Recorder receives cache-level signals. Implementations must be safe for
// concurrent use; hooks may fire under cache locks, so keep them cheap.
type Recorder interface {
	Hit(k Kind)
	Miss(k Kind)
	// Evict reports n entries dropped or overwritten.
	Evict(k Kind, n int)
	Size(k Kind, entries int)
}

// Noop discards every signal.
type Noop struct{}

func (Noop) Hit(Kind)        {}
func (Noop) Miss(Kind)       {}
func (Noop) Evict(Kind, int) {}
func (Noop) Size(Kind, int)  {}

var _ Recorder = Noop{}

// OrNoop returns r, or Noop when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return Noop{}
	}
	return r
}
