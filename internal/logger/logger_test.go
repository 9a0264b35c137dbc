package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogger_WritesJSONWithServiceAndTrace(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo, "eclesiar-analyzer", func(ctx context.Context) string { return "abc123" })

	log.Info(context.Background(), "snapshot collected", "currencies", 42)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "snapshot collected" {
		t.Errorf("msg = %v", rec["msg"])
	}
	if rec["service"] != "eclesiar-analyzer" {
		t.Errorf("service = %v", rec["service"])
	}
	if rec["trace_id"] != "abc123" {
		t.Errorf("trace_id = %v", rec["trace_id"])
	}
	if rec["currencies"] != float64(42) {
		t.Errorf("currencies = %v", rec["currencies"])
	}
	if file, _ := rec["file"].(string); !strings.HasPrefix(file, "logger/logger_test.go:") {
		t.Errorf("file = %q, want the calling test file", file)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn, "svc", nil)

	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}

	log.Error(context.Background(), "visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("error record missing: %q", buf.String())
	}
	if strings.Contains(buf.String(), "trace_id") {
		t.Error("trace_id should be absent without an active span")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"bogus":   LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
