// Package metrics holds the Prometheus collectors of the portal.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "familyhub",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "familyhub",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	RealtimeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "familyhub",
		Name:      "realtime_events_total",
		Help:      "Row change notifications received, by table and type.",
	}, []string{"table", "type"})

	WebsocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "familyhub",
		Name:      "websocket_clients",
		Help:      "Open websocket connections.",
	})

	FormSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "familyhub",
		Name:      "form_submissions_total",
		Help:      "Form submissions by form and outcome.",
	}, []string{"form", "outcome"})
)

// Middleware records request count and latency per matched route
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// RecordForm counts one form submission
func RecordForm(form string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	FormSubmissions.WithLabelValues(form, outcome).Inc()
}
