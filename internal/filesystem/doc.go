/*
Package filesystem provides filesystem operations with automatic retry logic
for NFS stale file handle errors.

Microscope acquisition PCs usually export scan folders over a network share,
and a folder that is rewritten while it is being walked yields ESTALE
(errno 116) on stat or open. StatWithRetry and OpenWithRetry retry only that
error, with exponential backoff capped at RetryConfig.MaxBackoff; every other
error is returned immediately.

	info, err := filesystem.StatWithRetry(root, filesystem.DefaultRetryConfig())

Retry activity is reported to the Observer installed with SetObserver. The
metrics package provides the Prometheus-backed implementation.
*/
package filesystem
