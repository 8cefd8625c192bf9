// Command bench runs a synthetic formatting workload against phpdate or a
// strftime engine and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	jehiah "github.com/jehiah/go-strftime"
	lestrrat "github.com/lestrrat-go/strftime"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/IvanBrykalov/phpdate"
	pmet "github.com/IvanBrykalov/phpdate/metrics/prom"
	"github.com/IvanBrykalov/phpdate/policy/random"
)

// config is the validated flag set.
type config struct {
	engine   string
	format   string
	strftime string
	utc      bool
	policy   string

	workers  int
	duration time.Duration
	distinct int
	seed     int64

	pprofAddr   string
	metricsAddr string
}

func parseFlags() (config, error) {
	var c config
	flag.StringVar(&c.engine, "engine", "phpdate", "formatter: phpdate | lestrrat | jehiah")
	flag.StringVar(&c.format, "format", phpdate.RFC2822, "PHP date() specifier (phpdate engine)")
	flag.StringVar(&c.strftime, "strftime", "%a, %d %b %Y %H:%M:%S %z", "strftime pattern (strftime engines)")
	flag.BoolVar(&c.utc, "utc", false, "format in UTC instead of the local timezone")
	flag.StringVar(&c.policy, "zone-policy", "flush", "zone bucket eviction: flush | random")

	flag.IntVar(&c.workers, "workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
	flag.DurationVar(&c.duration, "duration", 10*time.Second, "benchmark duration")
	flag.IntVar(&c.distinct, "distinct", 16, "distinct timestamps per worker (small = hot result rings)")
	flag.Int64Var(&c.seed, "seed", time.Now().UnixNano(), "random seed")

	flag.StringVar(&c.pprofAddr, "pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
	flag.StringVar(&c.metricsAddr, "http", ":8080", "serve Prometheus metrics at addr; empty = disabled")
	flag.Parse()

	switch c.engine {
	case "phpdate", "lestrrat", "jehiah":
	default:
		return c, errors.Errorf("unknown engine %q (use phpdate, lestrrat or jehiah)", c.engine)
	}
	switch c.policy {
	case "flush", "random":
	default:
		return c, errors.Errorf("unknown zone policy %q (use flush or random)", c.policy)
	}
	if c.workers <= 0 {
		c.workers = 1
	}
	if c.distinct <= 0 {
		return c, errors.Errorf("distinct must be positive, got %d", c.distinct)
	}
	if c.duration <= 0 {
		return c, errors.Errorf("duration must be positive, got %v", c.duration)
	}
	return c, nil
}

// formatFunc renders one epoch-millisecond timestamp.
type formatFunc func(ms int64) string

func newEngine(c config) (formatFunc, *phpdate.Formatter, error) {
	loc := time.Local
	if c.utc {
		loc = time.UTC
	}
	switch c.engine {
	case "lestrrat":
		p, err := lestrrat.New(c.strftime)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "compile strftime pattern %q", c.strftime)
		}
		return func(ms int64) string { return p.FormatString(time.UnixMilli(ms).In(loc)) }, nil, nil
	case "jehiah":
		return func(ms int64) string { return jehiah.Format(c.strftime, time.UnixMilli(ms).In(loc)) }, nil, nil
	}

	opt := phpdate.Options{Location: loc}
	if c.metricsAddr != "" {
		opt.Metrics = pmet.New(nil, "phpdate", "bench", nil)
	}
	if c.policy == "random" {
		opt.ZonePolicy = random.New()
	}
	f := phpdate.New(opt)
	if c.utc {
		return func(ms int64) string { return f.FormatMillisUTC(c.format, ms) }, f, nil
	}
	return func(ms int64) string { return f.FormatMillis(c.format, ms) }, f, nil
}

func serve(name, addr string) {
	log.WithFields(log.Fields{"addr": addr}).Infof("%s: serving", name)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.WithFields(log.Fields{"addr": addr, "err": err}).Errorf("%s: server stopped", name)
	}
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)

	c, err := parseFlags()
	if err != nil {
		log.WithFields(log.Fields{"err": err}).Fatal("invalid flags")
	}

	// ---- pprof server (on DefaultServeMux) ----
	if c.pprofAddr != "" {
		go serve("pprof", c.pprofAddr)
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	if c.metricsAddr != "" {
		http.Handle("/metrics", promhttp.Handler())
		go serve("metrics", c.metricsAddr)
	}

	format, f, err := newEngine(c)
	if err != nil {
		log.WithFields(log.Fields{"engine": c.engine, "err": err}).Fatal("build engine")
	}

	// ---- Load generation ----
	var total, bytes uint64
	ctx, cancel := context.WithTimeout(context.Background(), c.duration)
	defer cancel()

	base := time.Now().UnixMilli()
	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(c.workers)
	for w := 0; w < c.workers; w++ {
		go func(id int) {
			defer wg.Done()

			// rand.Rand is not goroutine-safe: one per worker.
			r := rand.New(rand.NewSource(c.seed + int64(id)*9973))
			stamps := make([]int64, c.distinct)
			for i := range stamps {
				stamps[i] = base - r.Int63n(365*24*3600*1000)
			}

			var n, sz uint64
			for i := 0; ; i++ {
				if i%1024 == 0 {
					select {
					case <-ctx.Done():
						atomic.AddUint64(&total, n)
						atomic.AddUint64(&bytes, sz)
						return
					default:
					}
				}
				sz += uint64(len(format(stamps[r.Intn(len(stamps))])))
				n++
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	ops := atomic.LoadUint64(&total)
	fields := log.Fields{
		"engine":   c.engine,
		"workers":  c.workers,
		"distinct": c.distinct,
		"utc":      c.utc,
		"seed":     c.seed,
		"elapsed":  elapsed.Round(time.Millisecond),
		"ops":      ops,
		"ops_s":    int64(float64(ops) / elapsed.Seconds()),
		"bytes":    atomic.LoadUint64(&bytes),
	}
	if f != nil {
		st := f.Stats()
		hitRate := 0.0
		if st.Hits+st.Misses > 0 {
			hitRate = float64(st.Hits) / float64(st.Hits+st.Misses) * 100
		}
		fields["hits"] = st.Hits
		fields["misses"] = st.Misses
		fields["hit_rate"] = hitRate
		fields["plans"] = st.Plans
		fields["zones"] = st.Zones
	}
	log.WithFields(fields).Info("done")
}
