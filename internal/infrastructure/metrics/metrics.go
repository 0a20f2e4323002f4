package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bitebook_http_requests_total",
			Help: "Total HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bitebook_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	recipesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bitebook_recipes_created_total",
		Help: "Total recipes created.",
	})
	likesToggledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bitebook_likes_toggled_total",
		Help: "Total like toggles across recipes and comments.",
	})
)

// RequestMetrics records a counter and latency histogram per request. The
// route template is used instead of the raw path to keep cardinality down.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordRecipeCreated increments the recipe creation counter.
func RecordRecipeCreated() {
	recipesCreatedTotal.Inc()
}

// RecordLikeToggled increments the like toggle counter.
func RecordLikeToggled() {
	likesToggledTotal.Inc()
}
