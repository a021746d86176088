package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/serroba/url-registry/internal/shortener"
	"github.com/serroba/url-registry/internal/store"
)

const namespace = "url_registry"

// Metrics owns a private Prometheus registry so tests and multiple
// containers never collide on collector registration.
type Metrics struct {
	registry *prometheus.Registry

	created    prometheus.Counter
	reused     prometheus.Counter
	expired    prometheus.Counter
	collisions prometheus.Counter
	resolves   *prometheus.CounterVec

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
}

// New creates and registers every collector.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_created_total",
			Help:      "Entries inserted under a new code.",
		}),
		reused: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_reused_total",
			Help:      "Shorten calls answered with an existing live entry.",
		}),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_expired_total",
			Help:      "Entries removed by a sweep.",
		}),
		collisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "code_collisions_total",
			Help:      "Generated codes rejected because they were taken or reserved.",
		}),
		resolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolves_total",
			Help:      "Resolve calls by result.",
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distributions.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Current number of in-flight HTTP requests.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.created,
		m.reused,
		m.expired,
		m.collisions,
		m.resolves,
		m.requests,
		m.duration,
		m.inflight,
	)

	return m
}

// Registry exposes the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the exposition format for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// WatchEntries publishes the result of count as the stored entries gauge.
// It must be called at most once.
func (m *Metrics) WatchEntries(count func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "entries",
		Help:      "Entries currently stored, including expired ones not yet swept.",
	}, func() float64 {
		return float64(count())
	}))
}

func (m *Metrics) EntryCreated(shortener.Entry) {
	m.created.Inc()
}

func (m *Metrics) EntryReused(shortener.Entry) {
	m.reused.Inc()
}

func (m *Metrics) EntriesExpired(entries []shortener.Entry) {
	m.expired.Add(float64(len(entries)))
}

func (m *Metrics) CodeCollision(shortener.Code) {
	m.collisions.Inc()
}

// RequestStarted marks a request as in flight. The returned func records
// its completion.
func (m *Metrics) RequestStarted() func(method, route string, status int) {
	start := time.Now()

	m.inflight.Inc()

	return func(method, route string, status int) {
		m.inflight.Dec()
		m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// InstrumentRegistry counts resolve hits and misses on the way through.
func (m *Metrics) InstrumentRegistry(next shortener.Registry) shortener.Registry {
	return &instrumentedRegistry{Registry: next, resolves: m.resolves}
}

type instrumentedRegistry struct {
	shortener.Registry

	resolves *prometheus.CounterVec
}

func (r *instrumentedRegistry) Resolve(ctx context.Context, code shortener.Code) (string, error) {
	url, err := r.Registry.Resolve(ctx, code)

	switch {
	case err == nil:
		r.resolves.WithLabelValues("hit").Inc()
	case errors.Is(err, shortener.ErrNotFound):
		r.resolves.WithLabelValues("miss").Inc()
	default:
		r.resolves.WithLabelValues("error").Inc()
	}

	return url, err
}

var _ store.Listener = (*Metrics)(nil)
