package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	vendorRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fairshoppe",
			Subsystem: "vendor",
			Name:      "requests_total",
			Help:      "Calls to external vendor APIs by outcome.",
		},
		[]string{"vendor", "operation", "outcome"},
	)

	vendorDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fairshoppe",
			Subsystem: "vendor",
			Name:      "request_duration_seconds",
			Help:      "Latency of external vendor API calls.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
		[]string{"vendor", "operation"},
	)

	profileAppendConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fairshoppe",
			Subsystem: "profile",
			Name:      "append_conflicts_total",
			Help:      "List writes rejected because another writer changed the list first.",
		},
		[]string{"category"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fairshoppe",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	Registry.MustRegister(vendorRequests, vendorDuration, profileAppendConflicts, httpRequests)
}

// ObserveVendor records one vendor call. outcome is "ok", "error" or "http_<status>".
func ObserveVendor(vendor, operation, outcome string, started time.Time) {
	vendorRequests.WithLabelValues(vendor, operation, outcome).Inc()
	vendorDuration.WithLabelValues(vendor, operation).Observe(time.Since(started).Seconds())
}

func ProfileAppendConflict(category string) {
	profileAppendConflicts.WithLabelValues(category).Inc()
}

// Middleware counts requests by route template so ids do not explode cardinality.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			httpRequests.WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(status)).Inc()
			return err
		}
	}
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
