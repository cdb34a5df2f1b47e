// Package discovery enumerates the image files under a scan root.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"micrometa/internal/dataset"
	"micrometa/internal/filesystem"
	"micrometa/internal/logging"
	"micrometa/internal/metrics"
)

// ErrConfiguration is matched by every ConfigError.
var ErrConfiguration = errors.New("configuration error")

// ConfigError reports a root that cannot be walked.
type ConfigError struct {
	Root   string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("root %s: %s: %v", e.Root, e.Reason, e.Err)
	}
	return fmt.Sprintf("root %s: %s", e.Root, e.Reason)
}

// Is makes errors.Is(err, ErrConfiguration) true.
func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }

func (e *ConfigError) Unwrap() error { return e.Err }

// Options configures a walk.
type Options struct {
	// SkipHidden skips files and directories starting with "."
	SkipHidden bool
	Retry      filesystem.RetryConfig
}

// DefaultOptions includes hidden entries and retries stale NFS handles.
func DefaultOptions() Options {
	return Options{Retry: filesystem.DefaultRetryConfig()}
}

// Discover walks root recursively and returns every regular file whose name
// ends with suffix, in lexical walk order. No match yields an empty slice.
// A missing root, or a root that is not a directory, is a ConfigError.
//
// A root that is a symlink is followed; returned paths stay under root as
// given. Symlinks below the root are accepted only when they point at a
// regular file, and linked directories are not descended into.
func Discover(root, suffix string, opts Options) ([]dataset.FileRef, error) {
	start := time.Now()

	info, err := filesystem.StatWithRetry(root, opts.Retry)
	if err != nil {
		return nil, &ConfigError{Root: root, Reason: "cannot stat", Err: err}
	}
	if !info.IsDir() {
		return nil, &ConfigError{Root: root, Reason: "not a directory"}
	}

	// WalkDir does not follow a symlinked root.
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, &ConfigError{Root: root, Reason: "cannot resolve", Err: err}
	}

	refs := []dataset.FileRef{}
	skipped := 0

	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		isRoot := path == walkRoot
		path = underRoot(root, walkRoot, path)
		if err != nil {
			logging.Warn("Error accessing path %s: %v", path, err)
			metrics.DiscoveryErrors.Inc()
			// Continue walking; an unreadable subtree only loses its own files.
			if d != nil && d.IsDir() && !isRoot {
				return filepath.SkipDir
			}
			return nil
		}

		if !isRoot && opts.SkipHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		if !isFileLike(path, d, opts.Retry) || !strings.HasSuffix(d.Name(), suffix) {
			skipped++
			return nil
		}

		refs = append(refs, dataset.FileRef{Name: d.Name(), Path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	metrics.DiscoveryFilesTotal.Add(float64(len(refs)))
	metrics.DiscoverySkippedTotal.Add(float64(skipped))
	metrics.StageDuration.WithLabelValues("discover").Observe(time.Since(start).Seconds())

	logging.Info("Discovered %d %s files under %s in %v (%d other files skipped)",
		len(refs), suffix, root, time.Since(start), skipped)
	return refs, nil
}

// isFileLike accepts regular files and symlinks to regular files. Pipes,
// sockets, devices and linked directories are never images.
func isFileLike(path string, d fs.DirEntry, retry filesystem.RetryConfig) bool {
	t := d.Type()
	if t.IsRegular() {
		return true
	}
	if t&fs.ModeSymlink == 0 {
		return false
	}
	info, err := filesystem.StatWithRetry(path, retry)
	if err != nil {
		logging.Debug("Skipping dangling symlink %s: %v", path, err)
		return false
	}
	return info.Mode().IsRegular()
}

// underRoot maps a path produced by walking the resolved root back under the
// root the caller passed in.
func underRoot(root, walkRoot, path string) string {
	if root == walkRoot {
		return path
	}
	rel, err := filepath.Rel(walkRoot, path)
	if err != nil {
		return path
	}
	return filepath.Join(root, rel)
}
