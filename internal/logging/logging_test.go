package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn)
	l.SetOutput(&buf)

	l.Debug("debug line")
	l.Info("info line")
	l.Warn("warn line")
	l.Error("error line")

	out := buf.String()
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Errorf("below-threshold lines written: %q", out)
	}
	if !strings.Contains(out, "warn line") || !strings.Contains(out, "error line") {
		t.Errorf("expected warn and error lines: %q", out)
	}
}

func TestNamedLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo)
	l.SetOutput(&buf)

	l.Named("client").Info("fetching %s", "499")

	out := buf.String()
	if !strings.Contains(out, "[INFO] client: fetching 499") {
		t.Errorf("unexpected line: %q", out)
	}
}

func TestNamedSharesSettings(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo)
	child := l.Named("decoder")
	l.SetOutput(&buf)
	l.SetLevel(LevelError)

	child.Info("should be filtered")
	child.Error("should appear")

	out := buf.String()
	if strings.Contains(out, "should be filtered") {
		t.Errorf("child ignored parent level: %q", out)
	}
	if !strings.Contains(out, "decoder: should appear") {
		t.Errorf("child missing output: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"ERROR", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic and must not emit.
	l := Discard()
	l.Error("nothing")
}
