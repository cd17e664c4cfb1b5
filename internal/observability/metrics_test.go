package observability

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danmuck/prtdcd/internal/logging"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	before := testutil.ToFloat64(framesTotal.WithLabelValues("load", "applied"))
	RecordFrameApplied("load", 3, 7)
	if got := testutil.ToFloat64(framesTotal.WithLabelValues("load", "applied")); got != before+1 {
		t.Fatalf("frames_total not incremented: %v -> %v", before, got)
	}
	if got := testutil.ToFloat64(rotorOffset); got != 3 {
		t.Fatalf("rotor_offset: %v", got)
	}
	if got := testutil.ToFloat64(payloadSymbols); got != 7 {
		t.Fatalf("payload_symbols: %v", got)
	}

	skipped := testutil.ToFloat64(parseFailures.WithLabelValues("unknown_kind"))
	RecordFrameSkipped("unknown_kind")
	if got := testutil.ToFloat64(parseFailures.WithLabelValues("unknown_kind")); got != skipped+1 {
		t.Fatalf("parse_failures_total not incremented")
	}

	RecordHTTPRequest("GET", "/health", 200, 12*time.Millisecond)
}

func TestMetricsServerRoutes(t *testing.T) {
	srv := NewMetricsServer("127.0.0.1:0", zerolog.Nop())
	RecordFrameApplied("map", 2, 0)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("health: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "prtdcd_decoder_frames_total") {
		t.Fatalf("metrics body missing decoder counters")
	}
}

func TestMetricsServerStartShutdown(t *testing.T) {
	srv := NewMetricsServer("127.0.0.1:0", zerolog.Nop())
	if err := srv.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	resp, err := http.Get("http://" + srv.Addr + "/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestInitLoggerToTagsApp(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLoggerTo("prtdcd-test", &buf, logging.Config{Level: zerolog.InfoLevel, NoColor: true})
	logger.Info().Msg("hello")
	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "app=prtdcd-test") {
		t.Fatalf("unexpected log output: %q", out)
	}
	if IsTerminal(&buf) {
		t.Fatalf("buffer is not a terminal")
	}
}
