package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"method", "endpoint"},
	)

	UsersRegistered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "game_users_registered_total",
			Help: "Participants registered",
		},
	)

	ScoresSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "game_scores_submitted_total",
			Help: "Score submissions accepted (created or overwritten)",
		},
	)

	StepSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_step_submissions_total",
			Help: "Step form submissions by pattern and outcome",
		},
		[]string{"pattern", "outcome"},
	)

	CompletionSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "game_completion_seconds",
			Help:    "Elapsed time of completed sessions",
			Buckets: []float64{60, 120, 180, 300, 420, 600, 900},
		},
	)
)

var registerOnce sync.Once

// Init registers every collector with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			UsersRegistered,
			ScoresSubmitted,
			StepSubmissions,
			CompletionSeconds,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
