// Package startup holds build information and the run-time banners micrometa
// logs around a run.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//
//	go build -ldflags "-X micrometa/internal/startup.Version=1.2.0 \
//	    -X micrometa/internal/startup.Commit=$(git rev-parse --short HEAD)"
//
// # Lifecycle Logging
//
//   - [LogConfig]: effective configuration and [Warnings]
//   - [LogSystemInfo]: CPU and memory limits (debug level)
//   - [LogRunFinished]: rows, columns and duration of a run
//   - [LogMetricsWritten]: textfile export location
//
// All output goes through the logging package (stderr), so stdout stays
// clean for the rendered table.
package startup
