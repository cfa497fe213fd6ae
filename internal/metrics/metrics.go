package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	WsSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "chat_ws_sessions",
		Help: "Current number of active websocket sessions",
	})
	MessagesSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chat_messages_sent_total",
		Help: "Total number of chat messages persisted",
	})
	MessagesPushedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chat_messages_pushed_total",
		Help: "Total number of realtime message pushes delivered to sessions",
	})
	QuotaRejectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chat_quota_rejections_total",
		Help: "Total number of sends rejected by the daily quota",
	})
	InterestsSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "interests_sent_total",
		Help: "Total number of interests created",
	})
	HttpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
	HttpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

func init() {
	prometheus.MustRegister(WsSessions, MessagesSentTotal, MessagesPushedTotal,
		QuotaRejectionsTotal, InterestsSentTotal, HttpRequestsTotal, HttpRequestDuration)
}

// GinMiddleware records basic request metrics for Prometheus scraping.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		labels := prometheus.Labels{"method": c.Request.Method, "path": path, "status": status}
		HttpRequestsTotal.With(labels).Inc()
		HttpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	}
}
