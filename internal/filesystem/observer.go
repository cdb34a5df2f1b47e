package filesystem

// Observer records filesystem retry metrics. The implementation lives in the
// metrics package to break the import cycle between filesystem and metrics.
type Observer interface {
	// op is the retried operation: "stat" or "open".
	ObserveRetryAttempt(op string)
	ObserveRetrySuccess(op string)
	ObserveRetryFailure(op string)
	ObserveRetryDuration(op string, durationSeconds float64)
	ObserveStaleError(op string)
}

// defaultObserver is the package-level observer set at startup.
// If nil, metric recording is silently skipped (safe for tests).
var defaultObserver Observer

// SetObserver sets the package-level metrics observer.
func SetObserver(o Observer) {
	defaultObserver = o
}

// nopObserver discards everything.
type nopObserver struct{}

func (nopObserver) ObserveRetryAttempt(string)           {}
func (nopObserver) ObserveRetrySuccess(string)           {}
func (nopObserver) ObserveRetryFailure(string)           {}
func (nopObserver) ObserveRetryDuration(string, float64) {}
func (nopObserver) ObserveStaleError(string)             {}

func observe() Observer {
	if defaultObserver == nil {
		return nopObserver{}
	}
	return defaultObserver
}
