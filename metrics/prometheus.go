package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Parser Metrics
	messagesParsedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fix_messages_parsed_total",
			Help: "Total number of complete FIX messages parsed, by message type",
		},
		[]string{"msg_type", "begin_string"},
	)

	parseErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fix_parse_errors_total",
			Help: "Total number of parse errors by taxonomy category",
		},
		[]string{"error_kind"},
	)

	parseLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fix_parse_latency_microseconds",
			Help:    "Time spent parsing a single complete message, in microseconds",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		},
		[]string{"msg_type"},
	)

	bytesParsedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fix_bytes_parsed_total",
			Help: "Total raw bytes fed into the parser",
		},
	)

	// Session Metrics
	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fix_active_sessions",
			Help: "Current number of logged-on FIX sessions",
		},
	)

	sequenceGapsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fix_sequence_gaps_total",
			Help: "Total number of sequence gaps detected by session",
		},
		[]string{"session_id"},
	)

	duplicatesDetectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fix_duplicates_detected_total",
			Help: "Total number of duplicate (PossDupFlag) messages detected",
		},
		[]string{"session_id"},
	)

	resendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fix_resend_requests_total",
			Help: "Total number of ResendRequest messages issued",
		},
		[]string{"session_id"},
	)

	heartbeatLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fix_heartbeat_round_trip_milliseconds",
			Help:    "Round-trip latency between TestRequest and the matching Heartbeat",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"session_id"},
	)

	// Rejects
	sessionRejectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fix_session_rejects_total",
			Help: "Total number of Reject(35=3) messages generated, by reason",
		},
		[]string{"session_id", "reason"},
	)

	// Storage Metrics
	storeWriteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fix_store_write_duration_milliseconds",
			Help:    "Message/sequence store write duration in milliseconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 25, 50, 100, 250},
		},
		[]string{"operation"},
	)

	storeConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fix_store_connections_active",
			Help: "Number of active persistent store connections",
		},
	)

	// Runtime Metrics
	memoryUsageBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fix_memory_usage_bytes",
			Help: "Current memory usage in bytes",
		},
	)

	goroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fix_goroutines_count",
			Help: "Current number of goroutines",
		},
	)

	// API Metrics
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fix_api_requests_total",
			Help: "Total admin API requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fix_api_request_duration_milliseconds",
			Help:    "Admin API request duration in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"endpoint", "method"},
	)
)

// Collector handles metrics exposure over HTTP.
type Collector struct {
	registry *prometheus.Registry
	mu       sync.RWMutex
}

// NewCollector returns a Collector bound to the default Prometheus registry.
func NewCollector() *Collector {
	return &Collector{
		registry: prometheus.DefaultRegisterer.(*prometheus.Registry),
	}
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.Handler()
}

// RecordMessageParsed records a successfully parsed complete message.
func RecordMessageParsed(msgType, beginString string, latencyMicros float64) {
	messagesParsedTotal.WithLabelValues(msgType, beginString).Inc()
	parseLatency.WithLabelValues(msgType).Observe(latencyMicros)
}

// RecordParseError records a parse failure by taxonomy category
// (e.g. "missing_required_tag", "checksum_failure", "unknown_message_type").
func RecordParseError(errorKind string) {
	parseErrorsTotal.WithLabelValues(errorKind).Inc()
}

// RecordBytesParsed adds n to the running total of bytes fed to the parser.
func RecordBytesParsed(n int) {
	bytesParsedTotal.Add(float64(n))
}

// SetActiveSessions sets the current logged-on session count.
func SetActiveSessions(count int) {
	activeSessions.Set(float64(count))
}

// RecordSequenceGap records a detected sequence gap for a session.
func RecordSequenceGap(sessionID string) {
	sequenceGapsTotal.WithLabelValues(sessionID).Inc()
}

// RecordDuplicate records a detected duplicate (PossDupFlag) message.
func RecordDuplicate(sessionID string) {
	duplicatesDetectedTotal.WithLabelValues(sessionID).Inc()
}

// RecordResendRequest records an issued ResendRequest.
func RecordResendRequest(sessionID string) {
	resendRequestsTotal.WithLabelValues(sessionID).Inc()
}

// RecordHeartbeatLatency records TestRequest -> Heartbeat round trip time.
func RecordHeartbeatLatency(sessionID string, latencyMs float64) {
	heartbeatLatency.WithLabelValues(sessionID).Observe(latencyMs)
}

// RecordSessionReject records a generated session-level Reject.
func RecordSessionReject(sessionID, reason string) {
	sessionRejectsTotal.WithLabelValues(sessionID, reason).Inc()
}

// RecordStoreWrite records a message/sequence store write duration.
func RecordStoreWrite(operation string, durationMs float64) {
	storeWriteDuration.WithLabelValues(operation).Observe(durationMs)
}

// SetStoreConnections sets the active store connection gauge.
func SetStoreConnections(count int) {
	storeConnectionsActive.Set(float64(count))
}

// SetMemoryUsage sets the memory usage gauge.
func SetMemoryUsage(bytes uint64) {
	memoryUsageBytes.Set(float64(bytes))
}

// SetGoroutineCount sets the goroutine count gauge.
func SetGoroutineCount(count int) {
	goroutineCount.Set(float64(count))
}

// RecordAPIRequest records an admin API request.
func RecordAPIRequest(endpoint, method, status string, durationMs float64) {
	apiRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
	apiRequestDuration.WithLabelValues(endpoint, method).Observe(durationMs)
}

// APIRequestMiddleware wraps HTTP handlers to record request metrics.
func APIRequestMiddleware(endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(wrapped, r)

		duration := float64(time.Since(start).Milliseconds())
		RecordAPIRequest(endpoint, r.Method, http.StatusText(wrapped.statusCode), duration)
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
