// Package prom exports formatter cache signals to Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/IvanBrykalov/phpdate/metrics"
)

// Adapter implements metrics.Recorder and exports Prometheus counters/gauges
// labelled by cache ("results", "zones", "plans").
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits    *prometheus.CounterVec
	misses  *prometheus.CounterVec
	evicts  *prometheus.CounterVec
	sizeEnt *prometheus.GaugeVec
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	counter := func(name, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		}, []string{"cache"})
	}
	a := &Adapter{
		hits:   counter("hits_total", "Cache hits"),
		misses: counter("misses_total", "Cache misses"),
		evicts: counter("evictions_total", "Entries flushed or overwritten"),
		sizeEnt: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_entries",
			Help:        "Number of resident entries",
			ConstLabels: constLabels,
		}, []string{"cache"}),
	}
	reg.MustRegister(a.hits, a.misses, a.evicts, a.sizeEnt)
	return a
}

// Hit increments the hit counter of k.
func (a *Adapter) Hit(k metrics.Kind) { a.hits.WithLabelValues(k.String()).Inc() }

// Miss increments the miss counter of k.
func (a *Adapter) Miss(k metrics.Kind) { a.misses.WithLabelValues(k.String()).Inc() }

// Evict adds n to the eviction counter of k.
func (a *Adapter) Evict(k metrics.Kind, n int) {
	a.evicts.WithLabelValues(k.String()).Add(float64(n))
}

// Size updates the resident entry gauge of k.
func (a *Adapter) Size(k metrics.Kind, entries int) {
	a.sizeEnt.WithLabelValues(k.String()).Set(float64(entries))
}

// Compile-time check: ensure Adapter implements metrics.Recorder.
var _ metrics.Recorder = (*Adapter)(nil)
