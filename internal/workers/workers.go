package workers

import (
	"os"
	"runtime"
	"strconv"
)

// EnvOverride names the environment variable that pins the image worker count.
const EnvOverride = "IMAGE_WORKERS"

// imageMultiplier reflects that decoding is CPU-heavy but waits on reads,
// which matters on NFS-backed acquisition shares.
const imageMultiplier = 1.5

// Count returns multiplier workers per available CPU, at least one and at
// most limit (0 = no limit). Available CPUs come from GOMAXPROCS, which
// follows container CPU limits. A positive IMAGE_WORKERS value overrides the
// computed count but is still capped by limit.
func Count(multiplier float64, limit int) int {
	if override := os.Getenv(EnvOverride); override != "" {
		if n, err := strconv.Atoi(override); err == nil && n > 0 {
			return capAt(n, limit)
		}
	}

	n := int(float64(runtime.GOMAXPROCS(0)) * multiplier)
	if n < 1 {
		n = 1
	}
	return capAt(n, limit)
}

// ForImages returns the worker count for image loading.
func ForImages(limit int) int {
	return Count(imageMultiplier, limit)
}

// Resolve returns configured when it is positive, otherwise ForImages(limit).
// An explicit --workers flag or config value beats the environment.
func Resolve(configured, limit int) int {
	if configured > 0 {
		return capAt(configured, limit)
	}
	return ForImages(limit)
}

func capAt(n, limit int) int {
	if limit > 0 && n > limit {
		return limit
	}
	return n
}
