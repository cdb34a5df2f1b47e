package pipeline

import (
	"context"
	"fmt"
	"time"

	"micrometa/internal/dataset"
	"micrometa/internal/discovery"
	"micrometa/internal/extract"
	"micrometa/internal/imageio"
	"micrometa/internal/logging"
	"micrometa/internal/memory"
	"micrometa/internal/metrics"
)

// FileSource discovers files under a root, extracts their metadata and
// assembles the pre-encoding table, optionally with decoded images.
type FileSource struct {
	Root      string
	Suffix    string
	Discovery discovery.Options
	Extractor *extract.Extractor

	// Images is nil when no image column is wanted.
	Images *imageio.Config
	Memory memory.Config
}

// Name implements Source.
func (s *FileSource) Name() string { return "source" }

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) (*dataset.Table, error) {
	refs, err := discovery.Discover(s.Root, s.Suffix, s.Discovery)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		logging.Warn("No %s files found under %s", s.Suffix, s.Root)
	}

	start := time.Now()
	records, err := s.Extractor.ExtractAll(refs)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	metrics.StageDuration.WithLabelValues("extract").Observe(time.Since(start).Seconds())

	if s.Images != nil {
		if err := s.loadImages(ctx, records); err != nil {
			return nil, fmt.Errorf("images: %w", err)
		}
	}

	start = time.Now()
	table, err := dataset.Assemble(records, s.Images != nil)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	metrics.StageDuration.WithLabelValues("assemble").Observe(time.Since(start).Seconds())
	return table, nil
}

func (s *FileSource) loadImages(ctx context.Context, records []dataset.Record) error {
	mon := memory.NewMonitor(s.Memory)
	mon.Start()
	defer mon.Stop()

	paths := make([]string, len(records))
	for i, r := range records {
		paths[i] = r.Path
	}

	images, err := imageio.NewLoader(*s.Images, imageio.WithMonitor(mon)).LoadAll(ctx, paths)
	if err != nil {
		return err
	}
	if len(images) != len(records) {
		return fmt.Errorf("%w: %d images for %d files", dataset.ErrAlignment, len(images), len(records))
	}
	for i := range records {
		records[i].Image = images[i]
	}
	return nil
}
