// Package config holds the run configuration for micrometa: the filename
// matching rules, image materialization, encoding and output settings.
//
// Configuration is layered: DefaultConfig, then an optional YAML file, then
// environment variables, then command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"micrometa/internal/logging"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation and parse failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Unseen-category policies accepted by EncodingConfig.UnseenPolicy.
const (
	UnseenError = "error"
	UnseenZero  = "zero"
	UnseenDrop  = "drop"
)

// Output formats accepted by OutputConfig.Format.
const (
	FormatAuto  = "auto"
	FormatTable = "table"
	FormatCSV   = "csv"
)

// ExtractionConfig describes how metadata is decoded from filenames. The
// numeric maxima are inclusive: a ChannelMax of 3 searches ch00 through ch03.
type ExtractionConfig struct {
	// FileType is the filename suffix selected during discovery.
	FileType string `yaml:"file_type"`

	SlideMax   int `yaml:"slide_max"`
	ZStackMax  int `yaml:"zstack_max"`
	ChannelMax int `yaml:"channel_max"`

	// Vocabulary lists are searched in order; the first substring match wins.
	Species  []string `yaml:"species"`
	Labeling []string `yaml:"labeling"`
	// Objective entries are matched case-insensitively.
	Objective []string `yaml:"objective"`
}

// ImageConfig controls optional raster materialization.
type ImageConfig struct {
	Load bool `yaml:"load"`
	// Workers is the loader pool size (0 = derived from GOMAXPROCS).
	Workers      int `yaml:"workers"`
	MaxDimension int `yaml:"max_dimension"`
	MaxPixels    int `yaml:"max_pixels"`
	// SkipUnreadable leaves the image cell empty instead of failing the run.
	SkipUnreadable bool `yaml:"skip_unreadable"`
}

// EncodingConfig controls the column dropper and the categorical encoder.
type EncodingConfig struct {
	UnseenPolicy string   `yaml:"unseen_policy"`
	DropColumns  []string `yaml:"drop_columns"`
}

// OutputConfig controls how the CLI renders the final table.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// Config is the complete run configuration.
type Config struct {
	RootPath   string `yaml:"root_path"`
	SkipHidden bool   `yaml:"skip_hidden"`
	// LogLevel overrides LOG_LEVEL when set.
	LogLevel    string `yaml:"log_level"`
	MetricsFile string `yaml:"metrics_file"`

	Extraction ExtractionConfig `yaml:"extraction"`
	Images     ImageConfig      `yaml:"images"`
	Encoding   EncodingConfig   `yaml:"encoding"`
	Output     OutputConfig     `yaml:"output"`
}

// DefaultExtractionConfig returns the rule set for the Leica scan naming
// convention: up to 11 slides, 10 Z-planes and 3 channels.
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		FileType:   ".tif",
		SlideMax:   11,
		ZStackMax:  10,
		ChannelMax: 3,
		Species:    []string{"Msmeg"},
		Labeling:   []string{"DMN"},
		Objective:  []string{"60X", "160X"},
	}
}

// DefaultConfig returns a Config with default values for every section.
func DefaultConfig() *Config {
	return &Config{
		RootPath:   ".",
		Extraction: DefaultExtractionConfig(),
		Images: ImageConfig{
			MaxDimension: 4096,
			MaxPixels:    20_000_000,
		},
		Encoding: EncodingConfig{
			UnseenPolicy: UnseenError,
			DropColumns:  []string{"Filename"},
		},
		Output: OutputConfig{Format: FormatAuto},
	}
}

// Load builds a Config from defaults, the YAML file at path (if any) and the
// environment. A missing file yields defaults; a malformed one is an error.
// The result is not validated, so callers can layer further overrides first
// and then call Validate.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			logging.Debug("Config file %s not found, using defaults", path)
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("%w: failed to parse config file %s: %v", ErrInvalidConfig, path, err)
			}
		}
	}

	ApplyEnv(cfg)
	return cfg, nil
}

// ApplyEnv overrides cfg from MICROMETA_* environment variables.
func ApplyEnv(cfg *Config) {
	cfg.RootPath = getEnv("MICROMETA_ROOT", cfg.RootPath)
	cfg.Extraction.FileType = getEnv("MICROMETA_FILE_TYPE", cfg.Extraction.FileType)
	cfg.Images.Load = getEnvBool("MICROMETA_LOAD_IMAGES", cfg.Images.Load)
	cfg.Encoding.UnseenPolicy = getEnv("MICROMETA_UNSEEN_POLICY", cfg.Encoding.UnseenPolicy)
	cfg.MetricsFile = getEnv("MICROMETA_METRICS_FILE", cfg.MetricsFile)
}

// Validate checks cfg for values that would make a run meaningless.
func (c *Config) Validate() error {
	var problems []string

	e := c.Extraction
	if e.FileType == "" {
		problems = append(problems, "extraction.file_type must not be empty")
	}
	for name, limit := range map[string]int{
		"slide_max": e.SlideMax, "zstack_max": e.ZStackMax, "channel_max": e.ChannelMax,
	} {
		if limit < 0 {
			problems = append(problems, fmt.Sprintf("extraction.%s must be >= 0, got %d", name, limit))
		}
	}
	for name, terms := range map[string][]string{
		"species": e.Species, "labeling": e.Labeling, "objective": e.Objective,
	} {
		for i, term := range terms {
			if term == "" {
				problems = append(problems, fmt.Sprintf("extraction.%s[%d] is empty and would match every file", name, i))
			}
		}
	}

	switch c.Encoding.UnseenPolicy {
	case UnseenError, UnseenZero, UnseenDrop:
	default:
		problems = append(problems, fmt.Sprintf("encoding.unseen_policy %q must be one of error, zero, drop", c.Encoding.UnseenPolicy))
	}

	switch c.Output.Format {
	case FormatAuto, FormatTable, FormatCSV:
	default:
		problems = append(problems, fmt.Sprintf("output.format %q must be one of auto, table, csv", c.Output.Format))
	}

	if c.Images.Workers < 0 {
		problems = append(problems, "images.workers must be >= 0")
	}
	if c.Images.Load && (c.Images.MaxDimension <= 0 || c.Images.MaxPixels <= 0) {
		problems = append(problems, "images.max_dimension and images.max_pixels must be positive when images are loaded")
	}

	if c.LogLevel != "" {
		if _, ok := logging.ParseLevel(c.LogLevel); !ok {
			problems = append(problems, fmt.Sprintf("log_level %q is not a known level", c.LogLevel))
		}
	}

	if len(problems) > 0 {
		// Map iteration above is unordered; keep messages stable.
		sort.Strings(problems)
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
