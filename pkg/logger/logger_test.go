package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestWriterLoggerFormatsObject(t *testing.T) {
	var buf bytes.Buffer
	l := writerLogger{w: &buf, now: fixedClock}

	l.Info("config loaded", map[string]any{"path": "/etc/config.json"})

	got := buf.String()
	want := `2025-03-01T12:00:00Z INFO  config loaded obj={"path":"/etc/config.json"}` + "\n"
	if got != want {
		t.Fatalf("unexpected log line:\n got: %q\nwant: %q", got, want)
	}
}

func TestWriterLoggerWithoutObject(t *testing.T) {
	var buf bytes.Buffer
	l := writerLogger{w: &buf, now: fixedClock}

	l.Debug("turn sent", nil)

	if !strings.HasSuffix(buf.String(), "DEBUG turn sent\n") {
		t.Fatalf("unexpected log line: %q", buf.String())
	}
}

func TestWriterLoggerUnmarshalableObject(t *testing.T) {
	var buf bytes.Buffer
	l := writerLogger{w: &buf, now: fixedClock}

	l.Warn("odd", map[string]any{"fn": func() {}})

	if !strings.Contains(buf.String(), "WARN  odd obj=") {
		t.Fatalf("expected fallback formatting, got %q", buf.String())
	}
}

func TestDebugRespectsEnabledFlag(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf)

	Debug(false, l, "hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output when disabled, got %q", buf.String())
	}

	Debug(true, l, "shown", nil)
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected debug output, got %q", buf.String())
	}
}

func TestHelpersTolerateNilLogger(t *testing.T) {
	Debug(true, nil, "x", nil)
	Info(nil, "x", nil)
	Warn(nil, "x", nil)
	Error(nil, "x", nil)
}

func TestWithMergesFields(t *testing.T) {
	var buf bytes.Buffer
	l := With(writerLogger{w: &buf, now: fixedClock}, map[string]any{"session_id": "abc"})

	l.Info("turn", map[string]any{"messages": 2})

	if !strings.Contains(buf.String(), `obj={"messages":2,"session_id":"abc"}`) {
		t.Fatalf("expected merged fields, got %q", buf.String())
	}
}

func TestWithNestsNonMapObjects(t *testing.T) {
	var buf bytes.Buffer
	l := With(writerLogger{w: &buf, now: fixedClock}, map[string]any{"session_id": "abc"})

	l.Error("failed", "boom")

	if !strings.Contains(buf.String(), `"obj":"boom"`) {
		t.Fatalf("expected nested object, got %q", buf.String())
	}
}

func TestNewFileLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claude-cli.log")
	l, closer := NewFileLogger(path)

	l.Info("hello", nil)
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "INFO  hello") {
		t.Fatalf("unexpected log file contents: %q", string(data))
	}
}
