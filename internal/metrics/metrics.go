// Package metrics provides the concrete Prometheus collectors that
// satisfy stringcache.Recorder and geocache.Recorder, plus counters
// for the time-series store and the connection/command layer. Nothing
// outside this package imports prometheus/client_golang directly —
// the caches depend only on the small Recorder interface each declares
// itself, and the command and connection layers call *Registry methods.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns every collector registered against a private
// prometheus.Registry, and exposes the small per-subsystem Recorder
// views that stringcache and geocache depend on.
type Registry struct {
	reg *prometheus.Registry

	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheEvictions prometheus.Counter

	geoSets prometheus.Counter
	geoHits prometheus.Counter
	geoMiss prometheus.Counter

	tsAppends prometheus.Counter

	commandsTotal  *prometheus.CounterVec
	commandLatency *prometheus.HistogramVec

	connectionsActive prometheus.Gauge
	authFailures      prometheus.Counter
}

// New builds and registers every collector.
func New() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "memify", Subsystem: "stringcache", Name: "hits_total",
			Help: "Successful string cache lookups.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "memify", Subsystem: "stringcache", Name: "misses_total",
			Help: "String cache lookups that found nothing or an expired entry.",
		}),
		cacheEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "memify", Subsystem: "stringcache", Name: "evictions_total",
			Help: "Entries evicted by LRU pressure.",
		}),
		geoSets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "memify", Subsystem: "geocache", Name: "sets_total",
			Help: "Geo points written.",
		}),
		geoHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "memify", Subsystem: "geocache", Name: "hits_total",
			Help: "Geo point lookups that found an entry.",
		}),
		geoMiss: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "memify", Subsystem: "geocache", Name: "misses_total",
			Help: "Geo point lookups that found nothing.",
		}),
		tsAppends: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "memify", Subsystem: "timeseries", Name: "appends_total",
			Help: "Points appended across all series.",
		}),
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "memify", Subsystem: "command", Name: "total",
			Help: "Commands dispatched, by verb and outcome.",
		}, []string{"verb", "outcome"}),
		commandLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "memify", Subsystem: "command", Name: "duration_seconds",
			Help:    "Command handler latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"verb"}),
		connectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "memify", Subsystem: "connection", Name: "active",
			Help: "Currently open client connections.",
		}),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "memify", Subsystem: "connection", Name: "auth_failures_total",
			Help: "Handshakes rejected for a bad or stale signature.",
		}),
	}

	reg.MustRegister(
		r.cacheHits, r.cacheMisses, r.cacheEvictions,
		r.geoSets, r.geoHits, r.geoMiss,
		r.tsAppends,
		r.commandsTotal, r.commandLatency,
		r.connectionsActive, r.authFailures,
	)

	return r
}

// Handler serves the registry in the Prometheus exposition format,
// meant to be mounted at /metrics on the port config.MetricsPort
// names.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// StringCache adapts Registry to stringcache.Recorder.
func (r *Registry) StringCache() *stringCacheRecorder { return &stringCacheRecorder{r} }

type stringCacheRecorder struct{ r *Registry }

func (s *stringCacheRecorder) CacheHit()      { s.r.cacheHits.Inc() }
func (s *stringCacheRecorder) CacheMiss()     { s.r.cacheMisses.Inc() }
func (s *stringCacheRecorder) CacheEviction() { s.r.cacheEvictions.Inc() }

// GeoCache adapts Registry to geocache.Recorder.
func (r *Registry) GeoCache() *geoCacheRecorder { return &geoCacheRecorder{r} }

type geoCacheRecorder struct{ r *Registry }

func (g *geoCacheRecorder) GeoSet() { g.r.geoSets.Inc() }
func (g *geoCacheRecorder) GeoGet(hit bool) {
	if hit {
		g.r.geoHits.Inc()
		return
	}
	g.r.geoMiss.Inc()
}

// TimeSeriesAppend records one timeseries.Store.AddTimePoint call.
func (r *Registry) TimeSeriesAppend() { r.tsAppends.Inc() }

// CommandObserved records one dispatched command's verb, outcome
// ("ok" or "error"), and handler latency in seconds.
func (r *Registry) CommandObserved(verb, outcome string, seconds float64) {
	r.commandsTotal.WithLabelValues(verb, outcome).Inc()
	r.commandLatency.WithLabelValues(verb).Observe(seconds)
}

// ConnectionOpened/ConnectionClosed track the active gauge.
func (r *Registry) ConnectionOpened() { r.connectionsActive.Inc() }
func (r *Registry) ConnectionClosed() { r.connectionsActive.Dec() }

// AuthFailure records one rejected handshake signature.
func (r *Registry) AuthFailure() { r.authFailures.Inc() }
