package pipeline

import (
	"fmt"

	"micrometa/internal/config"
	"micrometa/internal/discovery"
	"micrometa/internal/encoder"
	"micrometa/internal/extract"
	"micrometa/internal/imageio"
	"micrometa/internal/memory"
	"micrometa/internal/metrics"
	"micrometa/internal/workers"
)

// maxImageWorkers caps the pool however many CPUs are visible.
const maxImageWorkers = 32

// Built holds a configured pipeline and handles to its stages.
type Built struct {
	*Pipeline
	Source  *FileSource
	Dropper *DropColumns
	Encoder *encoder.Encoder
}

// FromConfig builds the standard pipeline: FileSource, DropColumns and the
// categorical Encoder, wired to log and metrics observers.
func FromConfig(cfg *config.Config) (*Built, error) {
	policy, err := encoder.ParseUnseenPolicy(cfg.Encoding.UnseenPolicy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}

	ex := extract.New(cfg.Extraction, extract.WithObserver(
		extract.MultiObserver(extract.LogObserver{}, metrics.NewExtractionObserver()),
	))

	opts := discovery.DefaultOptions()
	opts.SkipHidden = cfg.SkipHidden

	src := &FileSource{
		Root:      cfg.RootPath,
		Suffix:    cfg.Extraction.FileType,
		Discovery: opts,
		Extractor: ex,
		Memory:    memory.DefaultConfig(),
	}
	if cfg.Images.Load {
		ic := imageio.DefaultConfig()
		ic.Workers = workers.Resolve(cfg.Images.Workers, maxImageWorkers)
		ic.MaxDimension = cfg.Images.MaxDimension
		ic.MaxPixels = cfg.Images.MaxPixels
		ic.SkipUnreadable = cfg.Images.SkipUnreadable
		ic.Retry = opts.Retry
		src.Images = &ic
	}

	drop := NewDropColumns(cfg.Encoding.DropColumns...)
	enc := encoder.New(encoder.WithPolicy(policy))

	return &Built{
		Pipeline: New(src, drop, enc),
		Source:   src,
		Dropper:  drop,
		Encoder:  enc,
	}, nil
}
