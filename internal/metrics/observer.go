package metrics

import (
	"micrometa/internal/extract"
	"micrometa/internal/filesystem"
)

// filesystemObserver implements filesystem.Observer using the Prometheus
// metrics declared in this package.
type filesystemObserver struct{}

// NewFilesystemObserver creates an observer that records filesystem retry
// metrics into the counters and histograms declared in metrics.go.
func NewFilesystemObserver() filesystem.Observer {
	return &filesystemObserver{}
}

func (o *filesystemObserver) ObserveRetryAttempt(op string) {
	FilesystemRetryAttempts.WithLabelValues(op).Inc()
}

func (o *filesystemObserver) ObserveRetrySuccess(op string) {
	FilesystemRetrySuccess.WithLabelValues(op).Inc()
}

func (o *filesystemObserver) ObserveRetryFailure(op string) {
	FilesystemRetryFailures.WithLabelValues(op).Inc()
}

func (o *filesystemObserver) ObserveRetryDuration(op string, durationSeconds float64) {
	FilesystemRetryDuration.WithLabelValues(op).Observe(durationSeconds)
}

func (o *filesystemObserver) ObserveStaleError(op string) {
	FilesystemStaleErrors.WithLabelValues(op).Inc()
}

// extractionObserver counts extraction decisions by field and outcome.
type extractionObserver struct{}

// NewExtractionObserver returns an extract.Observer backed by
// ExtractionDecisionsTotal.
func NewExtractionObserver() extract.Observer {
	return extractionObserver{}
}

func (extractionObserver) ObserveDecision(_ string, d extract.Decision) {
	ExtractionDecisionsTotal.WithLabelValues(d.Field.Column(), d.Kind).Inc()
}
