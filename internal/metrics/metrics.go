package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tapcare_register_total",
			Help: "Total number of registration attempts",
		},
	)

	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tapcare_login_total",
			Help: "Total number of login attempts",
		},
	)

	AlertCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tapcare_alerts_total",
			Help: "Total number of emergency alerts received",
		},
	)

	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tapcare_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tapcare_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)
)

func init() {
	prometheus.MustRegister(RegisterCounter)
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(AlertCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(RequestDuration)
}

// Handler returns the HTTP handler serving the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records a counter increment and a duration observation for
// every request.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		labels := prometheus.Labels{
			"endpoint": endpoint,
			"method":   method,
			"status":   status,
		}
		RequestDuration.With(labels).Observe(time.Since(start).Seconds())
		HTTPRequestCounter.With(labels).Inc()
	}
}
