package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teamlink_http_requests_total",
			Help: "Total number of HTTP requests processed by the service.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "teamlink_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	connectionOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teamlink_connection_ops_total",
			Help: "Total number of connection ledger operations by outcome.",
		},
		[]string{"op", "outcome"},
	)
	messagesSentTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "teamlink_messages_sent_total",
			Help: "Total number of messages durably appended.",
		},
	)
	fixtureFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teamlink_fixture_fallback_total",
			Help: "Times a collection fell back to fixture data for the session.",
		},
		[]string{"collection"},
	)
	openChatWindows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "teamlink_open_chat_windows",
			Help: "Number of chat windows currently open.",
		},
	)
	amqpPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "teamlink_amqp_publish_errors_total",
			Help: "Total number of AMQP publish errors.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		connectionOpsTotal,
		messagesSentTotal,
		fixtureFallbackTotal,
		openChatWindows,
		amqpPublishErrorsTotal,
	)
}

func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func IncConnectionOp(op, outcome string) {
	connectionOpsTotal.WithLabelValues(op, outcome).Inc()
}

func IncMessageSent() {
	messagesSentTotal.Inc()
}

func IncFixtureFallback(collection string) {
	fixtureFallbackTotal.WithLabelValues(collection).Inc()
}

func SetOpenChatWindows(n int) {
	openChatWindows.Set(float64(n))
}

func IncAMQPPublishError() {
	amqpPublishErrorsTotal.Inc()
}
