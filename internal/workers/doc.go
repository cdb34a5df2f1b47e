/*
Package workers sizes the image loader's worker pool.

Inside a container runtime.NumCPU reports the host's CPUs, while GOMAXPROCS
follows the cgroup CPU limit (Go 1.19+). Counts here are derived from
GOMAXPROCS so a 2-core pod on a 64-core node decodes with a handful of
goroutines rather than a hundred.

	n := workers.ForImages(32)          // 1.5 per CPU, at most 32
	n := workers.Resolve(cfg.Workers, 32) // explicit value wins when > 0

# Environment Variable Override

IMAGE_WORKERS pins the count regardless of CPU detection:

	IMAGE_WORKERS=4 micrometa extract --load-images

Non-numeric or non-positive values are ignored. The limit still applies.
*/
package workers
