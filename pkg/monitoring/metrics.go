package monitoring

import (
	"strconv"
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
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	SessionsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_sessions_started_total",
			Help: "Exam sessions started, by mode",
		},
		[]string{"mode"},
	)

	SessionsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_sessions_completed_total",
			Help: "Exam sessions completed, by mode and how they ended",
		},
		[]string{"mode", "reason"}, // reason: target_reached, bank_exhausted, abandoned
	)

	AnswersRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_answers_recorded_total",
			Help: "Answers appended to the response ledger, by correctness",
		},
		[]string{"correct"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(SessionsStarted)
	prometheus.MustRegister(SessionsCompleted)
	prometheus.MustRegister(AnswersRecorded)
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
