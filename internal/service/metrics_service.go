package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// Placement origins used as metric labels.
const (
	PlacementOriginManual = "manual"
	PlacementOriginAuto   = "auto"
)

const metricNamespace = "timetable"

// tally mirrors a subset of the Prometheus state as plain atomics so the
// operations endpoint can serve a JSON snapshot without scraping.
type tally struct {
	cacheHits    uint64
	cacheMisses  uint64
	requests     uint64
	requestNanos uint64
	dbQueries    uint64
	dbQueryNanos uint64
	placed       uint64
	conflicts    uint64
	autoRuns     uint64
}

// MetricsService owns the Prometheus registry for the API. All collectors
// live under the "timetable" namespace.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheWrite      prometheus.Observer
	cacheHitRatio   prometheus.Gauge
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	dbQueryDuration *prometheus.HistogramVec
	sessionsPlaced  *prometheus.CounterVec
	conflictsTotal  *prometheus.CounterVec
	autoRunDuration prometheus.Observer

	tally tally
}

// NewMetricsService builds the registry and registers every collector.
func NewMetricsService() *MetricsService {
	m := &MetricsService{registry: prometheus.NewRegistry()}

	m.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route template",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	m.requestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests served",
	}, []string{"method", "path", "status"})

	cacheRead := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricNamespace,
		Name:      "cache_read_seconds",
		Help:      "Redis lookup latency for the week view",
		Buckets:   prometheus.DefBuckets,
	})
	m.cacheLatency = cacheRead

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricNamespace,
		Name:      "cache_write_seconds",
		Help:      "Redis store latency for the week view",
		Buckets:   prometheus.DefBuckets,
	})
	m.cacheWrite = cacheWrite

	m.cacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricNamespace,
		Name:      "cache_hit_ratio",
		Help:      "Hits over total lookups since start",
	})

	m.cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "cache_hits_total",
		Help:      "Cache lookups answered from Redis",
	})

	m.cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "cache_misses_total",
		Help:      "Cache lookups that fell through to Postgres",
	})

	m.dbQueryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricNamespace,
		Name:      "db_query_duration_seconds",
		Help:      "Query latency by logical query name",
		Buckets:   prometheus.DefBuckets,
	}, []string{"query"})

	m.sessionsPlaced = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "sessions_placed_total",
		Help:      "Sessions committed to the timetable, by placement origin",
	}, []string{"origin"})

	m.conflictsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      "placement_conflicts_total",
		Help:      "Rejected placements, by conflict dimension",
	}, []string{"dimension"})

	autoRun := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricNamespace,
		Name:      "auto_schedule_duration_seconds",
		Help:      "Wall time of full auto-scheduling runs",
		Buckets:   prometheus.DefBuckets,
	})
	m.autoRunDuration = autoRun

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricNamespace,
		Name:      "goroutines",
		Help:      "Live goroutines in the API process",
	}, func() float64 { return float64(runtime.NumGoroutine()) })

	m.registry.MustRegister(
		m.requestDuration, m.requestTotal,
		cacheRead, cacheWrite,
		m.cacheHitRatio, m.cacheHits, m.cacheMisses,
		m.dbQueryDuration, m.sessionsPlaced, m.conflictsTotal,
		autoRun, goroutines,
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// Handler serves the scrape endpoint. A nil service answers 503 so the
// route can be registered unconditionally.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, code).Inc()
	atomic.AddUint64(&m.tally.requests, 1)
	atomic.AddUint64(&m.tally.requestNanos, uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records one cache lookup and refreshes the hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.tally.cacheHits, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.tally.cacheMisses, 1)
	}
	hits := atomic.LoadUint64(&m.tally.cacheHits)
	if total := hits + atomic.LoadUint64(&m.tally.cacheMisses); total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite records one cache store.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveDBQuery records one database query under a logical name.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
	atomic.AddUint64(&m.tally.dbQueries, 1)
	atomic.AddUint64(&m.tally.dbQueryNanos, uint64(duration.Nanoseconds()))
}

// RecordSessionsPlaced counts committed timetable sessions.
func (m *MetricsService) RecordSessionsPlaced(origin string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.sessionsPlaced.WithLabelValues(origin).Add(float64(count))
	atomic.AddUint64(&m.tally.placed, uint64(count))
}

// RecordPlacementConflict counts a rejected placement.
func (m *MetricsService) RecordPlacementConflict(dimension string) {
	if m == nil {
		return
	}
	m.conflictsTotal.WithLabelValues(dimension).Inc()
	atomic.AddUint64(&m.tally.conflicts, 1)
}

// ObserveAutoScheduleRun records a full auto-scheduling pass.
func (m *MetricsService) ObserveAutoScheduleRun(duration time.Duration) {
	if m == nil {
		return
	}
	m.autoRunDuration.Observe(duration.Seconds())
	atomic.AddUint64(&m.tally.autoRuns, 1)
}

// Snapshot aggregates the tallies for the operations endpoint.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}

	hits := atomic.LoadUint64(&m.tally.cacheHits)
	misses := atomic.LoadUint64(&m.tally.cacheMisses)
	requests := atomic.LoadUint64(&m.tally.requests)
	dbQueries := atomic.LoadUint64(&m.tally.dbQueries)

	snap := models.SystemMetrics{
		CacheHits:          hits,
		CacheMisses:        misses,
		RequestsTotal:      requests,
		DBQueryCount:       dbQueries,
		SessionsPlaced:     atomic.LoadUint64(&m.tally.placed),
		PlacementConflicts: atomic.LoadUint64(&m.tally.conflicts),
		AutoScheduleRuns:   atomic.LoadUint64(&m.tally.autoRuns),
		Goroutines:         runtime.NumGoroutine(),
		GeneratedAt:        time.Now().UTC(),
	}
	if total := hits + misses; total > 0 {
		snap.CacheHitRatio = float64(hits) / float64(total)
	}
	if requests > 0 {
		nanos := atomic.LoadUint64(&m.tally.requestNanos)
		snap.AverageRequestDurationMs = float64(nanos) / float64(requests) / float64(time.Millisecond)
	}
	if dbQueries > 0 {
		nanos := atomic.LoadUint64(&m.tally.dbQueryNanos)
		snap.AverageDBQueryDurationMs = float64(nanos) / float64(dbQueries) / float64(time.Millisecond)
	}
	return snap
}
