// Package logging provides a simple leveled logging interface for micrometa.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information, including every extraction decision
//   - INFO: General operational messages
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The log level is configured via the LOG_LEVEL environment variable or
// SetLevel. Structured events are written with Event as sorted key=value
// pairs after the message.
package logging
