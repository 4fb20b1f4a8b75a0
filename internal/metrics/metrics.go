package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// Metrics agrupa os coletores da API num registry próprio (sem estado global).
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	businessErrors    *prometheus.CounterVec
	appointments      *prometheus.CounterVec
	cashMovements     *prometheus.CounterVec
	cashClosings      *prometheus.CounterVec
	calendarCacheHits prometheus.Counter
	calendarCacheMiss prometheus.Counter
	archiveUploads    *prometheus.CounterVec
}

func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),

		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		businessErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "business_errors_total",
			Help:      "Domain errors returned to clients, by code.",
		}, []string{"code"}),

		appointments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_total",
			Help:      "Appointment mutations by operation.",
		}, []string{"operation"}),

		cashMovements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cash_movements_total",
			Help:      "Cash movements recorded, by type.",
		}, []string{"type"}),

		cashClosings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cash_sessions_closed_total",
			Help:      "Closed cash sessions by discrepancy level.",
		}, []string{"level"}),

		calendarCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calendar_cache_hits_total",
			Help:      "Calendar month lookups served from cache.",
		}),

		calendarCacheMiss: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calendar_cache_misses_total",
			Help:      "Calendar month lookups that hit the store.",
		}),

		archiveUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archive_uploads_total",
			Help:      "Closed cash session reports archived, by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.businessErrors,
		m.appointments,
		m.cashMovements,
		m.cashClosings,
		m.calendarCacheHits,
		m.calendarCacheMiss,
		m.archiveUploads,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware mede toda requisição pela rota registrada (não pelo path cru,
// para não explodir a cardinalidade com ids).
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.httpRequests.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Inc()
		m.httpDuration.
			WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())

		if code := c.GetString(httperr.ContextErrorCode); code != "" {
			m.BusinessError(code)
		}
	}
}

// Os métodos abaixo aceitam receptor nil: sem métricas, viram no-op.

func (m *Metrics) BusinessError(code string) {
	if m == nil {
		return
	}
	m.businessErrors.WithLabelValues(code).Inc()
}

func (m *Metrics) Appointment(operation string) {
	if m == nil {
		return
	}
	m.appointments.WithLabelValues(operation).Inc()
}

func (m *Metrics) CashMovement(movementType string) {
	if m == nil {
		return
	}
	m.cashMovements.WithLabelValues(movementType).Inc()
}

func (m *Metrics) CashClosed(level string) {
	if m == nil {
		return
	}
	m.cashClosings.WithLabelValues(level).Inc()
}

func (m *Metrics) CalendarCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.calendarCacheHits.Inc()
	} else {
		m.calendarCacheMiss.Inc()
	}
}

func (m *Metrics) Archive(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.archiveUploads.WithLabelValues("ok").Inc()
	} else {
		m.archiveUploads.WithLabelValues("error").Inc()
	}
}
