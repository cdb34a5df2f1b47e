package startup

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"time"

	"micrometa/internal/config"
	"micrometa/internal/imageio"
	"micrometa/internal/logging"
	"micrometa/internal/memory"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
	GoVersion string
	OS        string
	Arch      string
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

const rule = "------------------------------------------------------------"

func section(title string) {
	logging.Info("")
	logging.Info(rule)
	logging.Info("%s", title)
	logging.Info(rule)
}

// PrintBanner writes the name and build information to w.
func PrintBanner(w io.Writer) {
	info := GetBuildInfo()
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "  micrometa - microscopy filename metadata")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  Version:    %s\n", info.Version)
	fmt.Fprintf(w, "  Commit:     %s\n", info.Commit)
	fmt.Fprintf(w, "  Build Time: %s\n", info.BuildTime)
	fmt.Fprintf(w, "  Go:         %s %s/%s\n", info.GoVersion, info.OS, info.Arch)
}

// LogSystemInfo logs CPU and memory limits at DEBUG.
func LogSystemInfo(mem memory.ConfigResult) {
	if !logging.IsDebugEnabled() {
		return
	}
	logging.Debug("System: %s %s/%s, CPUs %d, GOMAXPROCS %d",
		runtime.Version(), runtime.GOOS, runtime.GOARCH, runtime.NumCPU(), runtime.GOMAXPROCS(0))
	if mem.Configured {
		logging.Debug("Memory limit: %s (source %s)", memory.FormatBytes(mem.GoMemLimit), mem.Source)
	}
}

// Warnings returns configuration problems that do not stop a run: vocabulary
// entries shadowed by earlier ones, and image loading requested for a suffix
// with no decoder.
func Warnings(cfg *config.Config) []string {
	var out []string
	for _, h := range cfg.Extraction.Hazards() {
		out = append(out, h.String())
	}
	if cfg.Images.Load && !imageio.Decodable(cfg.Extraction.FileType) {
		out = append(out, fmt.Sprintf("images: no decoder for %q files, supported: %v",
			cfg.Extraction.FileType, imageio.Suffixes()))
	}
	return out
}

// LogConfig logs the effective configuration and its warnings.
func LogConfig(cfg *config.Config) {
	section("RUN CONFIGURATION")

	root := cfg.RootPath
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	e := cfg.Extraction
	logging.Info("  Root:            %s", root)
	logging.Info("  File type:       %s", e.FileType)
	logging.Info("  Slide max:       %d", e.SlideMax)
	logging.Info("  Z-stack max:     %d", e.ZStackMax)
	logging.Info("  Channel max:     %d", e.ChannelMax)
	logging.Info("  Species:         %v", e.Species)
	logging.Info("  Labeling:        %v", e.Labeling)
	logging.Info("  Objective:       %v", e.Objective)
	logging.Info("  Unseen policy:   %s", cfg.Encoding.UnseenPolicy)
	logging.Info("  Drop columns:    %v", cfg.Encoding.DropColumns)
	logging.Info("  Images:          %s", enabledString(cfg.Images.Load))
	logging.Info("  LOG_LEVEL:       %s", logging.GetLevel())

	warnings := Warnings(cfg)
	if len(warnings) == 0 {
		logging.Info("  [OK] Configuration has no order-dependent vocabulary")
		return
	}
	for _, w := range warnings {
		logging.Warn("  %s", w)
	}
}

// RunSummary describes a finished run.
type RunSummary struct {
	RunID    string
	Rows     int
	Columns  int
	Features int
	Duration time.Duration
}

// LogRunFinished logs the result of a run.
func LogRunFinished(s RunSummary) {
	section("RUN FINISHED")
	logging.Info("  Run ID:          %s", s.RunID)
	logging.Info("  Rows:            %d", s.Rows)
	logging.Info("  Columns:         %d (%d indicator features)", s.Columns, s.Features)
	logging.Info("  Duration:        %v", s.Duration)
	logging.Info("  [OK] Done")
}

// LogMetricsWritten logs the textfile export.
func LogMetricsWritten(path string) {
	logging.Info("  [OK] Metrics written to %s", path)
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}
