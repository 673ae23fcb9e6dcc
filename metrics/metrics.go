package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "property_api_requests_total",
			Help: "Total number of HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "property_api_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	PropertiesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "property_api_properties_created_total",
			Help: "Total number of properties created through the API.",
		},
	)

	PropertiesDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "property_api_properties_deleted_total",
			Help: "Total number of properties deleted through the API.",
		},
	)

	// PropertiesListed wird vom Stats-Cronjob gesetzt.
	PropertiesListed = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "property_api_properties_listed",
			Help: "Number of properties currently stored.",
		},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal, RequestDuration, PropertiesCreated, PropertiesDeleted, PropertiesListed)
}

// Middleware zählt Requests pro Route-Template (nicht pro konkreter URL),
// damit IDs die Label-Kardinalität nicht sprengen.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
