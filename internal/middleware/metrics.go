package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	leadsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_created_total",
			Help: "Total number of leads captured",
		},
	)

	leadsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_deleted_total",
			Help: "Total number of leads deleted",
		},
	)

	duplicatesRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_duplicates_rejected_total",
			Help: "Total number of submissions rejected as duplicate phone numbers",
		},
	)

	csvExports = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_csv_exports_total",
			Help: "Total number of CSV exports served",
		},
	)
)

// Metrics records a counter and latency histogram per request. The path
// label is the echo route pattern rather than the raw URL, so /api/leads/123
// and /api/leads/456 land in the same series.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			status := strconv.Itoa(c.Response().Status)

			httpRequestsTotal.WithLabelValues(c.Request().Method, path, status).Inc()
			httpRequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

func RecordLeadCreated() {
	leadsCreated.Inc()
}

func RecordLeadDeleted() {
	leadsDeleted.Inc()
}

func RecordDuplicateRejected() {
	duplicatesRejected.Inc()
}

func RecordCSVExport() {
	csvExports.Inc()
}
