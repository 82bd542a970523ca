// Package pkgerror defines the structured error used between the usecase
// layer and the HTTP edge.
//
// An Error carries a client-facing message, a Type and a Code. The router maps
// the Code to an HTTP status and writes {"message", "code"}; the wrapped cause
// is only logged.
package pkgerror
