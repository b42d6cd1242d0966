package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" info ", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		got := ParseLevel(tt.input)
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "json", slog.LevelInfo)

	logger.Info("attempt assessed", "attempt_id", "a-1")

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("expected valid JSON output, got error: %v\noutput: %s", err, buf.String())
	}
	if m["msg"] != "attempt assessed" {
		t.Errorf("msg = %v, want 'attempt assessed'", m["msg"])
	}
	if m["attempt_id"] != "a-1" {
		t.Errorf("attempt_id = %v, want a-1", m["attempt_id"])
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "text", slog.LevelInfo)

	logger.Info("retrieved", "k", 3)

	out := buf.String()
	if !strings.Contains(out, "msg=retrieved") {
		t.Errorf("expected text output containing msg, got: %s", out)
	}
	if !strings.Contains(out, "k=3") {
		t.Errorf("expected text output containing k=3, got: %s", out)
	}
}

func TestNewLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "text", slog.LevelWarn)

	logger.Info("hidden")
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got: %s", buf.String())
	}

	logger.Warn("shown")
	if !strings.Contains(buf.String(), "msg=shown") {
		t.Errorf("expected warn output, got: %s", buf.String())
	}
}
