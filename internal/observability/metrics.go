package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prtdcd",
			Subsystem: "decoder",
			Name:      "frames_total",
			Help:      "Frames seen by the decoder, by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
	parseFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prtdcd",
			Subsystem: "decoder",
			Name:      "parse_failures_total",
			Help:      "Lines rejected by the frame parser.",
		},
		[]string{"reason"},
	)
	rotorOffset = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "prtdcd",
			Subsystem: "decoder",
			Name:      "rotor_offset",
			Help:      "Current normalized rotor offset.",
		},
	)
	payloadSymbols = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "prtdcd",
			Subsystem: "decoder",
			Name:      "payload_symbols",
			Help:      "Symbols assembled into the payload so far.",
		},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prtdcd",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests to the metrics server.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "prtdcd",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Metrics server request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(framesTotal, parseFailures, rotorOffset, payloadSymbols, httpRequests, httpDuration)
	})
}

func RecordFrameApplied(kind string, offset, payloadLen int) {
	RegisterMetrics()
	framesTotal.WithLabelValues(kind, "applied").Inc()
	rotorOffset.Set(float64(offset))
	payloadSymbols.Set(float64(payloadLen))
}

func RecordFrameSkipped(reason string) {
	RegisterMetrics()
	framesTotal.WithLabelValues("invalid", "skipped").Inc()
	parseFailures.WithLabelValues(reason).Inc()
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}
