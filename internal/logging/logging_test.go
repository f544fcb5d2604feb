package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		"info":    log.InfoLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		"":        log.WarnLevel,
		"error":   log.ErrorLevel,
		"bogus":   log.WarnLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "warn", Format: "logfmt"})
	logger.Debug("todo created", "index", 1)
	if buf.Len() != 0 {
		t.Fatalf("debug line written at warn level: %q", buf.String())
	}
	logger.Error("failed to save todos", "path", "/tmp/todos.json")
	out := buf.String()
	if !strings.Contains(out, "failed to save todos") || !strings.Contains(out, "path=/tmp/todos.json") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNewPipedDefaultsToLogfmt(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "info"})
	logger.Info("todos saved", "count", 2)
	if !strings.Contains(buf.String(), "count=2") {
		t.Fatalf("output %q is not logfmt", buf.String())
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "info", Format: "json", Terminal: true})
	logger.Info("todos saved", "count", 2)
	if !strings.Contains(buf.String(), `"count":2`) {
		t.Fatalf("output %q is not json", buf.String())
	}
}
