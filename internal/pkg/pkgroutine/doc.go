// Package pkgroutine contains helpers for running goroutines safely.
//
// The Manager type limits concurrency, collects returned errors, and logs
// panics so that background work (the HTTP listener, for one) does not crash
// the process silently.
package pkgroutine
