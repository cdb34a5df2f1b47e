package cli

import (
	"micrometa/internal/config"
	"micrometa/internal/logging"

	"github.com/spf13/cobra"
)

func addCommonFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("config", "micrometa.yaml", "Path to config file (defaults are used if it does not exist)")
	f.String("root", "", "Directory to scan (overrides config and MICROMETA_ROOT)")
	f.String("file-type", "", "Filename suffix to select, e.g. .tif")
	f.Bool("load-images", false, "Decode each file into an Image column")
	f.Bool("skip-hidden", false, "Skip files and directories starting with '.'")
	f.Int("workers", 0, "Image loader workers (0 = from GOMAXPROCS or IMAGE_WORKERS)")
	f.String("unseen", "", "Unseen category policy: error, zero or drop")
	f.String("format", "", "Output format: auto, table or csv")
	f.String("metrics-file", "", "Write Prometheus metrics to this file after the run")
	f.String("log-level", "", "Log level: debug, info, warn or error")
}

// loadConfig layers flags that were set explicitly over the file and
// environment configuration, then validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flags.Changed("root") {
		cfg.RootPath, _ = flags.GetString("root")
	}
	if flags.Changed("file-type") {
		cfg.Extraction.FileType, _ = flags.GetString("file-type")
	}
	if flags.Changed("load-images") {
		cfg.Images.Load, _ = flags.GetBool("load-images")
	}
	if flags.Changed("skip-hidden") {
		cfg.SkipHidden, _ = flags.GetBool("skip-hidden")
	}
	if flags.Changed("workers") {
		cfg.Images.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("unseen") {
		cfg.Encoding.UnseenPolicy, _ = flags.GetString("unseen")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile, _ = flags.GetString("metrics-file")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Validate has already rejected unknown names.
	if level, ok := logging.ParseLevel(cfg.LogLevel); ok {
		logging.SetLevel(level)
	}
	return cfg, nil
}
