package logging

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

// captureOutput redirects log output to a buffer for the duration of the test
// and restores the previous level afterwards.
func captureOutput(t *testing.T, level LogLevel) *bytes.Buffer {
	t.Helper()
	prev := GetLevel()
	var buf bytes.Buffer
	SetOutput(&buf)
	flags := log.Flags()
	log.SetFlags(0)
	SetLevel(level)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		log.SetFlags(flags)
		SetLevel(prev)
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected LogLevel
		ok       bool
	}{
		{name: "debug", input: "debug", expected: LevelDebug, ok: true},
		{name: "info", input: "info", expected: LevelInfo, ok: true},
		{name: "warn", input: "warn", expected: LevelWarn, ok: true},
		{name: "warning alias", input: "warning", expected: LevelWarn, ok: true},
		{name: "error", input: "error", expected: LevelError, ok: true},
		{name: "case insensitive", input: "DEBUG", expected: LevelDebug, ok: true},
		{name: "surrounding space", input: "  info ", expected: LevelInfo, ok: true},
		{name: "empty", input: "", expected: LevelInfo, ok: false},
		{name: "unknown", input: "verbose", expected: LevelInfo, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLevel(tt.input)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("ParseLevel(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestLogLevelConstants(t *testing.T) {
	levels := []LogLevel{LevelDebug, LevelInfo, LevelWarn, LevelError}
	for i := 0; i < len(levels)-1; i++ {
		if levels[i] >= levels[i+1] {
			t.Errorf("Log levels should be in ascending order: %v >= %v", levels[i], levels[i+1])
		}
	}
}

func TestSetLevelFiltersMessages(t *testing.T) {
	buf := captureOutput(t, LevelWarn)

	Debug("hidden debug")
	Info("hidden info")
	Warn("shown %s", "warning")
	Error("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below WARN should be filtered, got:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] shown warning") {
		t.Errorf("expected warning line, got:\n%s", out)
	}
	if !strings.Contains(out, "[ERROR] shown error") {
		t.Errorf("expected error line, got:\n%s", out)
	}
	if IsDebugEnabled() {
		t.Error("IsDebugEnabled should be false at WARN level")
	}
}

func TestEvent(t *testing.T) {
	buf := captureOutput(t, LevelDebug)

	Event(LevelDebug, "field matched", Fields{
		"token": "s03",
		"field": "Slide",
		"file":  "s03 z01.tif",
	})

	got := strings.TrimSpace(buf.String())
	want := `[DEBUG] field matched field=Slide file="s03 z01.tif" token=s03`
	if got != want {
		t.Errorf("Event output = %q, want %q", got, want)
	}
}

func TestEventBelowLevelIsDropped(t *testing.T) {
	buf := captureOutput(t, LevelInfo)

	Event(LevelDebug, "noise", Fields{"k": "v"})

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestFormatFields(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   string
	}{
		{name: "nil", fields: nil, want: ""},
		{name: "sorted keys", fields: Fields{"b": 2, "a": 1}, want: " a=1 b=2"},
		{name: "empty value quoted", fields: Fields{"v": ""}, want: ` v=""`},
		{name: "equals quoted", fields: Fields{"v": "a=b"}, want: ` v="a=b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFields(tt.fields); got != tt.want {
				t.Errorf("FormatFields() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LogLevel(99), "unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := tt.level.String()
			if got != tt.expected {
				t.Errorf("LogLevel.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}
