package imageio

import (
	"context"
	"errors"
	"image"
	"io"
	"math"
	"path/filepath"
	"time"

	"micrometa/internal/filesystem"
	"micrometa/internal/logging"
	"micrometa/internal/memory"
	"micrometa/internal/metrics"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxDimension is the largest width or height kept as decoded.
	DefaultMaxDimension = 4096

	// DefaultMaxPixels caps width*height. 20MP is ~80MB as NRGBA.
	DefaultMaxPixels = 20_000_000
)

var errMonitorStopped = errors.New("memory monitor stopped")

// Config controls decoding and parallelism. Zero limits mean unlimited.
type Config struct {
	Workers        int
	MaxDimension   int
	MaxPixels      int
	SkipUnreadable bool
	Retry          filesystem.RetryConfig
}

// DefaultConfig returns the default limits with one worker.
func DefaultConfig() Config {
	return Config{
		Workers:      1,
		MaxDimension: DefaultMaxDimension,
		MaxPixels:    DefaultMaxPixels,
		Retry:        filesystem.DefaultRetryConfig(),
	}
}

// Loader decodes image files into memory.
type Loader struct {
	cfg     Config
	monitor *memory.Monitor
}

// Option configures a Loader.
type Option func(*Loader)

// WithMonitor makes LoadAll wait while the monitor reports memory pressure.
func WithMonitor(m *memory.Monitor) Option {
	return func(l *Loader) { l.monitor = m }
}

// NewLoader creates a loader. Workers below one are treated as one.
func NewLoader(cfg Config, opts ...Option) *Loader {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	l := &Loader{cfg: cfg}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Workers returns the pool size used by LoadAll.
func (l *Loader) Workers() int { return l.cfg.Workers }

// Load opens and decodes path, applying EXIF orientation and downscaling
// images over the configured limits.
func (l *Loader) Load(path string) (image.Image, error) {
	start := time.Now()
	format := formatOf(path)

	img, decoded, err := l.load(path)
	if decoded != "" {
		format = decoded
	}
	if err != nil {
		metrics.ImageLoadsTotal.WithLabelValues(format, "error").Inc()
		return nil, err
	}

	metrics.ImageLoadsTotal.WithLabelValues(format, "success").Inc()
	metrics.ImageLoadDuration.Observe(time.Since(start).Seconds())
	return img, nil
}

func (l *Loader) load(path string) (image.Image, string, error) {
	file, err := filesystem.OpenWithRetry(path, l.cfg.Retry)
	if err != nil {
		return nil, "", &ResourceError{Path: path, Op: "open", Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("failed to close image file %s: %v", path, err)
		}
	}()

	// Read the header first so the format is known even if decoding fails.
	header, format, err := image.DecodeConfig(file)
	if err != nil {
		return nil, "", &ResourceError{Path: path, Op: "decode", Err: err}
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, format, &ResourceError{Path: path, Op: "open", Err: err}
	}

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return nil, format, &ResourceError{Path: path, Op: "decode", Err: err}
	}
	logging.Debug("Decoded %s (%s %dx%d)", path, format, header.Width, header.Height)

	b := img.Bounds()
	w, h, shrink := ConstrainedSize(b.Dx(), b.Dy(), l.cfg.MaxDimension, l.cfg.MaxPixels)
	if !shrink {
		return img, format, nil
	}

	logging.Info("Constraining large image %s from %dx%d to %dx%d", path, b.Dx(), b.Dy(), w, h)
	metrics.ImagesConstrainedTotal.Inc()
	return imaging.Resize(img, w, h, imaging.Lanczos), format, nil
}

// ConstrainedSize fits width x height inside maxDimension on each side and
// maxPixels in total, keeping the aspect ratio. It reports false when the
// image already fits. A zero limit is ignored.
func ConstrainedSize(width, height, maxDimension, maxPixels int) (int, int, bool) {
	overDim := maxDimension > 0 && (width > maxDimension || height > maxDimension)
	overPix := maxPixels > 0 && width*height > maxPixels
	if !overDim && !overPix {
		return width, height, false
	}

	w, h := width, height
	if overDim {
		if w > h {
			w, h = maxDimension, h*maxDimension/w
		} else {
			w, h = w*maxDimension/h, maxDimension
		}
	}

	if maxPixels > 0 && w*h > maxPixels {
		scale := float64(maxPixels) / float64(w*h)
		// Area scales with the square of each side.
		side := math.Sqrt(scale)
		w = int(float64(w) * side)
		h = int(float64(h) * side)
	}

	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h, true
}

// LoadAll decodes paths on a bounded pool and returns images aligned with
// paths. The first failure cancels the rest and is returned, unless
// SkipUnreadable is set, in which case the failed entry is nil.
func (l *Loader) LoadAll(ctx context.Context, paths []string) ([]image.Image, error) {
	start := time.Now()
	images := make([]image.Image, len(paths))
	metrics.ImageLoaderWorkers.Set(float64(l.cfg.Workers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.cfg.Workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if l.monitor != nil && !l.monitor.WaitIfPaused(ctx) {
				if err := ctx.Err(); err != nil {
					return err
				}
				return errMonitorStopped
			}

			img, err := l.Load(path)
			if err != nil {
				if l.cfg.SkipUnreadable {
					logging.Warn("Skipping unreadable image: %v", err)
					metrics.ImageLoadsTotal.WithLabelValues(formatOf(path), "skipped").Inc()
					return nil
				}
				return err
			}
			images[i] = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics.StageDuration.WithLabelValues("images").Observe(time.Since(start).Seconds())
	logging.Info("Loaded %d images with %d workers in %v", len(paths), l.cfg.Workers, time.Since(start))
	return images, nil
}

func formatOf(path string) string {
	if f, ok := FormatForSuffix(filepath.Ext(path)); ok {
		return f
	}
	return FormatUnknown
}
