package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidLevelAndFormat(t *testing.T) {
	if !ValidLevel("Warning") || ValidLevel("verbose") {
		t.Error("ValidLevel returned unexpected results")
	}
	if !ValidFormat("JSON") || !ValidFormat("pretty") || ValidFormat("xml") {
		t.Error("ValidFormat returned unexpected results")
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("surface computed", "rows", 301)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "surface computed" {
		t.Errorf("msg: got %v", record["msg"])
	}
	if record["rows"] != float64(301) {
		t.Errorf("rows: got %v", record["rows"])
	}
}

func TestNew_PrettyAndText(t *testing.T) {
	for _, format := range []string{"pretty", "text", ""} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&buf, "debug", format)
			logger.Debug("peaks extracted", "count", 2)

			out := buf.String()
			if !strings.Contains(out, "peaks extracted") || !strings.Contains(out, "count") {
				t.Errorf("unexpected output: %q", out)
			}
		})
	}
}

func TestLogToolHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug", "json")

	LogToolComplete(logger, "template_match", 15*time.Millisecond, "rows", 10)
	LogToolError(logger, "template_match", time.Millisecond, errors.New("boom"))

	out := buf.String()
	for _, want := range []string{`"tool":"template_match"`, `"duration_ms":15`, `"rows":10`, `"error":"boom"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %q", want, out)
		}
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("Discard logger should not be enabled")
	}
}
