// Package pkgrouter wraps HTTP routing and common middleware used by the API.
//
// It provides a small router abstraction over httprouter plus shared concerns
// like JSON encoding, error mapping, logging, recovery, API key
// authentication, Prometheus metrics, and correlation ID propagation.
package pkgrouter
