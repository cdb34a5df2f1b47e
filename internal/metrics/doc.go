// Package metrics provides Prometheus instrumentation for micrometa runs.
//
// All metrics are prefixed with "micrometa_" and registered on the default
// registry through promauto. A run is a batch job with no scrape endpoint, so
// the CLI exports the registry with WriteTextfile when --metrics-file is set,
// in the format node_exporter's textfile collector reads.
//
// # Metric Categories
//
// ## Pipeline Metrics
//   - PipelineRunsTotal: Counter of runs by status
//   - StageDuration: Histogram of stage duration by stage name
//   - PipelineRowsOutput: Gauge of rows in the last output table
//
// ## Discovery Metrics
//   - DiscoveryFilesTotal: Counter of files matching the suffix
//   - DiscoverySkippedTotal: Counter of files with another suffix
//   - DiscoveryErrors: Counter of unreadable paths
//
// ## Extraction Metrics
//   - ExtractionDecisionsTotal: Counter of field decisions by field and outcome
//
// ## Encoder Metrics
//   - EncoderVocabularySize: Gauge of learned categories per column
//   - EncoderFeatureWidth: Gauge of one-hot columns produced
//   - EncoderUnseenTotal: Counter of unseen categories by column and policy
//
// ## Image Metrics
//   - ImageLoadsTotal: Counter of loads by format and status
//   - ImageLoadDuration: Histogram of decode duration
//   - ImagesConstrainedTotal: Counter of downscaled images
//   - ImageLoaderWorkers: Gauge of loader parallelism
//
// ## Memory Metrics
//   - MemoryUsageRatio, MemoryPaused, MemoryGCPauses
//
// ## Filesystem Metrics
//   - FilesystemRetry*: retry attempts, successes, failures and durations
//     for stale NFS handles, by operation
//
// # Observers
//
// NewFilesystemObserver and NewExtractionObserver adapt these metrics to the
// observer interfaces of the filesystem and extract packages, which cannot
// import this package without a cycle.
//
// # Usage
//
//	metrics.InitializeMetrics(columns)
//	defer metrics.WriteTextfile("/var/lib/node_exporter/micrometa.prom")
package metrics
