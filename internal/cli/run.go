package cli

import (
	"time"

	"micrometa/internal/config"
	"micrometa/internal/dataset"
	"micrometa/internal/filesystem"
	"micrometa/internal/logging"
	"micrometa/internal/memory"
	"micrometa/internal/metrics"
	"micrometa/internal/pipeline"
	"micrometa/internal/startup"

	"github.com/spf13/cobra"
)

// session is the shared setup of every pipeline command.
type session struct {
	cfg   *config.Config
	built *pipeline.Built
	start time.Time
}

func newSession(cmd *cobra.Command) (*session, error) {
	start := time.Now()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	mem := memory.ConfigureFromEnv()
	filesystem.SetObserver(metrics.NewFilesystemObserver())
	metrics.InitializeMetrics(dataset.CategoricalColumns())
	info := startup.GetBuildInfo()
	metrics.SetAppInfo(info.Version, info.Commit, info.GoVersion)

	startup.LogSystemInfo(mem)
	startup.LogConfig(cfg)

	built, err := pipeline.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, built: built, start: start}, nil
}

// finish writes the metrics textfile when one is configured. A failed export
// is logged but does not fail the run.
func (s *session) finish() {
	if s.cfg.MetricsFile == "" {
		return
	}
	if err := metrics.WriteTextfile(s.cfg.MetricsFile); err != nil {
		logging.Warn("Failed to write metrics to %s: %v", s.cfg.MetricsFile, err)
		return
	}
	startup.LogMetricsWritten(s.cfg.MetricsFile)
}

func (s *session) summary(out *dataset.Table) startup.RunSummary {
	features := 0
	if v := s.built.Encoder.Vocabulary(); v != nil {
		features = v.Width()
	}
	return startup.RunSummary{
		RunID:    s.built.RunID(),
		Rows:     out.Len(),
		Columns:  out.Width(),
		Features: features,
		Duration: time.Since(s.start),
	}
}
