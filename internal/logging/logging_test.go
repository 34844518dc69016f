package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_WritesMessages(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info().Int("pr", 42).Msg("No significant changes.")

	out := buf.String()
	if !strings.Contains(out, "No significant changes.") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "pr=42") {
		t.Errorf("output missing field: %q", out)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestNew_DefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug().Msg("debug")
	if buf.Len() != 0 {
		t.Errorf("debug should be filtered by default, got %q", buf.String())
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "chatty"); err == nil {
		t.Error("New() expected error for invalid level, got nil")
	}
}
