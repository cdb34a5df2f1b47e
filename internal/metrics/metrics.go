package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics
var (
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "micrometa_pipeline_runs_total",
			Help: "Total number of pipeline runs by outcome",
		},
		[]string{"status"}, // "success", "failure"
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "micrometa_stage_duration_seconds",
			Help:    "Duration of each pipeline stage in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		},
		[]string{"stage"},
	)

	PipelineRowsOutput = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "micrometa_pipeline_rows_output",
			Help: "Number of rows in the last pipeline output",
		},
	)
)

// Discovery metrics
var (
	DiscoveryFilesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "micrometa_discovery_files_total",
			Help: "Total number of files matching the configured suffix",
		},
	)

	DiscoverySkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "micrometa_discovery_skipped_total",
			Help: "Total number of files skipped because of their suffix or type",
		},
	)

	DiscoveryErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "micrometa_discovery_errors_total",
			Help: "Total number of paths that could not be read during discovery",
		},
	)
)

// Extraction metrics
var (
	ExtractionDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "micrometa_extraction_decisions_total",
			Help: "Total number of field decisions by field and rule outcome",
		},
		[]string{"field", "outcome"}, // outcome: "numeric", "overlay", "vocabulary", "none"
	)
)

// Encoder metrics
var (
	EncoderVocabularySize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "micrometa_encoder_vocabulary_size",
			Help: "Number of distinct categories learned per column",
		},
		[]string{"column"},
	)

	EncoderFeatureWidth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "micrometa_encoder_feature_width",
			Help: "Total number of one-hot indicator columns",
		},
	)

	EncoderUnseenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "micrometa_encoder_unseen_total",
			Help: "Total number of unseen categories met at transform time",
		},
		[]string{"column", "policy"},
	)
)

// Image loading metrics
var (
	ImageLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "micrometa_image_loads_total",
			Help: "Total number of image loads by format and status",
		},
		[]string{"format", "status"}, // status: "success", "error", "skipped"
	)

	ImageLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "micrometa_image_load_duration_seconds",
			Help:    "Image open and decode duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	ImagesConstrainedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "micrometa_images_constrained_total",
			Help: "Total number of images downscaled to fit the dimension or pixel limits",
		},
	)

	ImageLoaderWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "micrometa_image_loader_workers",
			Help: "Number of parallel image loader workers",
		},
	)
)

// Memory metrics
var (
	MemoryUsageRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "micrometa_memory_usage_ratio",
			Help: "Heap allocation as a fraction of the configured memory limit",
		},
	)

	MemoryPaused = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "micrometa_memory_paused",
			Help: "Whether image loading is paused for memory pressure (1 = paused)",
		},
	)

	MemoryGCPauses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "micrometa_memory_gc_pauses_total",
			Help: "Total number of times loading paused and forced a GC",
		},
	)
)

// Filesystem retry metrics
var (
	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "micrometa_filesystem_retry_attempts_total",
			Help: "Total number of retries after a stale NFS file handle",
		},
		[]string{"operation"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "micrometa_filesystem_retry_success_total",
			Help: "Total number of operations that succeeded after retrying",
		},
		[]string{"operation"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "micrometa_filesystem_retry_failures_total",
			Help: "Total number of operations that failed after exhausting retries",
		},
		[]string{"operation"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "micrometa_filesystem_stale_errors_total",
			Help: "Total number of ESTALE errors observed",
		},
		[]string{"operation"},
	)

	FilesystemRetryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "micrometa_filesystem_retry_duration_seconds",
			Help:    "Total duration of filesystem operations including retries",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"operation"},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "micrometa_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, for node_exporter's textfile collector. Batch runs have no
// scrape endpoint, so this is how their metrics leave the process.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
