package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every series is present in the exported metrics even when it stayed at zero.
// Call this once at startup.
func InitializeMetrics(fields []string) {
	for _, status := range []string{"success", "failure"} {
		PipelineRunsTotal.WithLabelValues(status)
	}

	for _, stage := range []string{"discover", "extract", "images", "assemble", "drop", "encode"} {
		StageDuration.WithLabelValues(stage)
	}

	for _, field := range fields {
		for _, outcome := range []string{"numeric", "overlay", "vocabulary", "none"} {
			ExtractionDecisionsTotal.WithLabelValues(field, outcome)
		}
	}

	for _, format := range []string{"tiff", "png", "jpeg", "gif", "bmp", "webp", "unknown"} {
		for _, status := range []string{"success", "error", "skipped"} {
			ImageLoadsTotal.WithLabelValues(format, status)
		}
	}

	for _, op := range []string{"stat", "open"} {
		FilesystemRetryAttempts.WithLabelValues(op)
		FilesystemRetrySuccess.WithLabelValues(op)
		FilesystemRetryFailures.WithLabelValues(op)
		FilesystemStaleErrors.WithLabelValues(op)
		FilesystemRetryDuration.WithLabelValues(op)
	}
}
