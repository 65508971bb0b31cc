package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Webhook Metrics
	WebhookEventsTotal *prometheus.CounterVec
	SignatureFailures  prometheus.Counter
	MessagesProcessed  *prometheus.CounterVec
	MediaFetchFailures prometheus.Counter
	ReplySendFailures  prometheus.Counter

	// AI Metrics
	AIRequestsTotal   *prometheus.CounterVec
	AIRequestDuration prometheus.Histogram
	ToolExecutions    *prometheus.CounterVec

	// Database Metrics
	DBConnectionsInUse prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aichatbot_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aichatbot_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "aichatbot_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),

		WebhookEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aichatbot_webhook_events_total",
				Help: "Total number of webhook events by kind",
			},
			[]string{"kind"},
		),
		SignatureFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "aichatbot_webhook_signature_failures_total",
				Help: "Total number of rejected webhook signatures",
			},
		),
		MessagesProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aichatbot_messages_processed_total",
				Help: "Total number of messages run through the pipeline",
			},
			[]string{"type", "status"},
		),
		MediaFetchFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "aichatbot_media_fetch_failures_total",
				Help: "Total number of failed media downloads",
			},
		),
		ReplySendFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "aichatbot_reply_send_failures_total",
				Help: "Total number of failed outbound sends",
			},
		),

		AIRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aichatbot_ai_requests_total",
				Help: "Total number of chat-completion requests",
			},
			[]string{"status"},
		),
		AIRequestDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "aichatbot_ai_request_duration_seconds",
				Help:    "Duration of chat-completion round trips in seconds",
				Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		ToolExecutions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aichatbot_tool_executions_total",
				Help: "Total number of AI tool executions",
			},
			[]string{"tool", "status"},
		),

		DBConnectionsInUse: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "aichatbot_db_connections_in_use",
				Help: "Number of database connections currently in use",
			},
		),
		DBConnectionsIdle: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "aichatbot_db_connections_idle",
				Help: "Number of idle database connections",
			},
		),
	}
}

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
}

func (m *Metrics) RecordWebhookEvent(kind string) {
	m.WebhookEventsTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordMessageProcessed(messageType, status string) {
	m.MessagesProcessed.WithLabelValues(messageType, status).Inc()
}

func (m *Metrics) RecordAIRequest(status string, duration time.Duration) {
	m.AIRequestsTotal.WithLabelValues(status).Inc()
	m.AIRequestDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordToolExecution(tool, status string) {
	m.ToolExecutions.WithLabelValues(tool, status).Inc()
}
