package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"log/slog"
)

func TestModuleAddsContextAttribute(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	l := NewWithHandler(h).Module("storage")

	l.Info("slot written", "key", 7)

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode log line: %v", err)
	}
	if decoded["module"] != "storage" {
		t.Fatalf("expected module=storage attribute, got %v", decoded["module"])
	}
	if decoded["key"] != float64(7) {
		t.Fatalf("expected key=7 attribute, got %v", decoded["key"])
	}
}

func TestFormatterHandlerRendersTextFormat(t *testing.T) {
	var buf bytes.Buffer
	h := &formatterHandler{level: slog.LevelInfo, formatter: &TextFormatter{}, out: &buf}
	l := NewWithHandler(h)

	l.Info("dispatch complete", "cycle", 3)

	line := buf.String()
	if !strings.Contains(line, "INFO") || !strings.Contains(line, "dispatch complete") {
		t.Fatalf("unexpected text log line: %q", line)
	}
	if !strings.Contains(line, "cycle=3") {
		t.Fatalf("expected cycle=3 field in line: %q", line)
	}
}

func TestFormatterHandlerBelowLevelIsSuppressed(t *testing.T) {
	var buf bytes.Buffer
	h := &formatterHandler{level: slog.LevelWarn, formatter: &JSONFormatter{}, out: &buf}
	l := NewWithHandler(h)

	l.Info("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below configured level, got %q", buf.String())
	}

	l.Warn("should appear")
	if buf.Len() == 0 {
		t.Fatalf("expected output at or above configured level")
	}
}

func TestJSONFormatterProducesValidJSON(t *testing.T) {
	f := &JSONFormatter{}
	out := f.Format(LogEntry{Message: "hi", Level: ERROR, Fields: map[string]any{"a": 1}})

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("JSONFormatter output is not valid JSON: %v", err)
	}
	if decoded["level"] != "ERROR" {
		t.Fatalf("expected level=ERROR, got %v", decoded["level"])
	}
}
