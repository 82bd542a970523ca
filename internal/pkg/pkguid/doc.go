// Package pkguid provides helpers for generating unique identifiers.
//
// String IDs (UUIDv7) tag requests with correlation IDs; numeric
// Snowflake-style IDs identify upload batches.
package pkguid
