package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestWithRunID_And_RunIDFromContext(t *testing.T) {
	ctx := context.Background()
	runID := "run-12345"

	// Initially empty
	if got := RunIDFromContext(ctx); got != "" {
		t.Errorf("RunIDFromContext() on empty ctx = %v, want empty", got)
	}

	// After setting
	ctx = WithRunID(ctx, runID)
	if got := RunIDFromContext(ctx); got != runID {
		t.Errorf("RunIDFromContext() = %v, want %v", got, runID)
	}
}

func TestFromContext_AttachesRunID(t *testing.T) {
	var buf bytes.Buffer
	base := NewWriter(&buf, slog.LevelInfo)

	ctx := WithRunID(context.Background(), "run-67890")
	FromContext(ctx, base).Info("hello")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if record["run_id"] != "run-67890" {
		t.Errorf("expected run_id run-67890, got %v", record["run_id"])
	}
}

func TestFromContext_WithoutRunID(t *testing.T) {
	base := New(false)
	if got := FromContext(context.Background(), base); got != base {
		t.Error("FromContext() without run ID should return the base logger")
	}
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, slog.LevelDebug)
	log.Debug("probe")
	if buf.Len() == 0 {
		t.Error("expected debug record to be emitted")
	}
}
