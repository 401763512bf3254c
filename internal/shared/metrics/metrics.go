package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	WebhooksReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webhooks_received_total",
		Help: "Total webhook payloads received",
	})

	ProcessingCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "processing_completed_total",
		Help: "Total submissions processed to artifacts",
	})

	ProcessingFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "processing_failed_total",
		Help: "Total submissions that failed processing",
	})

	ProcessingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "processing_duration_seconds",
		Help:    "Duration of the score-chart-report pipeline",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})

	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_emails_total",
		Help: "Total report emails attempted, by outcome",
	}, []string{"outcome"})
)

// Handler exposes the Prometheus registry on a gin route.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
