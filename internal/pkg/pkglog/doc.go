// Package pkglog configures the process-wide slog logger.
//
// Records are JSON on stdout with "ts", "severity" and "file" keys, a
// "service" attribute, and the request correlation ID when the context has one.
// The minimum level can be changed at runtime with SetLevel.
package pkglog
