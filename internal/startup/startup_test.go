package startup

import (
	"bytes"
	"strings"
	"testing"

	"micrometa/internal/config"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	if info.Version == "" {
		t.Error("Expected Version to be set")
	}
	if info.OS == "" || info.Arch == "" {
		t.Error("Expected OS and Arch to be set")
	}
	if info.GoVersion != GoVersion {
		t.Errorf("Expected GoVersion=%s, got %s", GoVersion, info.GoVersion)
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)

	out := buf.String()
	if !strings.Contains(out, "micrometa") {
		t.Error("banner should name the tool")
	}
	if !strings.Contains(out, Version) {
		t.Errorf("banner should include version %q", Version)
	}
}

func TestWarningsDefaultObjectiveOrder(t *testing.T) {
	warnings := Warnings(config.DefaultConfig())

	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "60X") || !strings.Contains(warnings[0], "160X") {
		t.Errorf("warning should name the shadowing pair: %s", warnings[0])
	}
}

func TestWarningsUndecodableSuffix(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Extraction.Objective = []string{"160X", "60X"}
	cfg.Extraction.FileType = ".czi"

	if got := Warnings(cfg); len(got) != 0 {
		t.Errorf("no warning expected without image loading, got %v", got)
	}

	cfg.Images.Load = true
	got := Warnings(cfg)
	if len(got) != 1 || !strings.Contains(got[0], ".czi") {
		t.Errorf("expected one decoder warning, got %v", got)
	}
}

func TestEnabledString(t *testing.T) {
	if enabledString(true) != "ENABLED" || enabledString(false) != "DISABLED" {
		t.Error("unexpected enabledString output")
	}
}

func TestLogFunctionsDoNotPanic(_ *testing.T) {
	LogConfig(config.DefaultConfig())
	LogRunFinished(RunSummary{RunID: "r", Rows: 1, Columns: 2, Features: 1})
	LogMetricsWritten("/tmp/x.prom")
}
