package pkgerror

import (
	"log/slog"
	"net/http"
)

// Type classifies errors into high-level buckets used by the application.
type Type int

const (
	TypeServer     Type = iota // A dependency or the process itself failed.
	TypeBusiness               // The dataset is not in a state that allows the operation.
	TypeValidation             // The request itself is wrong.
)

//nolint:gochecknoglobals // lookup table
var typeNames = map[Type]string{
	TypeServer:     "ERROR_TYPE_SERVER",
	TypeBusiness:   "ERROR_TYPE_BUSINESS",
	TypeValidation: "ERROR_TYPE_VALIDATION",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "ERROR_TYPE_UNKNOWN"
}

// Code is the stable identifier written to clients as "code".
type Code int

const (
	CodeInternal           Code = iota // Internal or unspecified error.
	CodeInvalidFormat                  // Request body could not be decoded.
	CodeInvalidInput                   // Upload or query parameters are invalid.
	CodeNotFound                       // No route matches the path.
	CodeMethodNotAllowed               // The route exists for other methods only.
	CodeUnauthorized                   // Missing or wrong API key.
	CodeFailedPrecondition             // The dataset is empty or has no numeric column.
	CodeUnsupportedMedia               // Analysis request is not JSON.
	CodeTooLarge                       // Upload exceeds the configured limit.
	CodeUpstream                       // The analysis service failed.
)

type codeInfo struct {
	name   string
	status int
}

//nolint:gochecknoglobals // lookup table
var codes = map[Code]codeInfo{
	CodeInternal:           {"ERROR_CODE_INTERNAL", http.StatusInternalServerError},
	CodeInvalidFormat:      {"ERROR_CODE_INVALID_FORMAT", http.StatusBadRequest},
	CodeInvalidInput:       {"ERROR_CODE_INVALID_INPUT", http.StatusBadRequest},
	CodeNotFound:           {"ERROR_CODE_NOT_FOUND", http.StatusNotFound},
	CodeMethodNotAllowed:   {"ERROR_CODE_METHOD_NOT_ALLOWED", http.StatusMethodNotAllowed},
	CodeUnauthorized:       {"ERROR_CODE_UNAUTHORIZED", http.StatusUnauthorized},
	CodeFailedPrecondition: {"ERROR_CODE_FAILED_PRECONDITION", http.StatusBadRequest},
	CodeUnsupportedMedia:   {"ERROR_CODE_UNSUPPORTED_MEDIA", http.StatusUnsupportedMediaType},
	CodeTooLarge:           {"ERROR_CODE_TOO_LARGE", http.StatusRequestEntityTooLarge},
	CodeUpstream:           {"ERROR_CODE_UPSTREAM", http.StatusInternalServerError},
}

func (c Code) info() codeInfo {
	if info, ok := codes[c]; ok {
		return info
	}
	return codes[CodeInternal]
}

func (c Code) String() string {
	return c.info().name
}

// Status is the HTTP status the code is answered with. Unknown codes are 500.
func (c Code) Status() int {
	return c.info().status
}

// Error is a structured error used across the application.
//
// Msg is what the client sees. The wrapped cause is only logged.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	if e.msg != "" {
		return e.msg
	}
	return e.errType.String()
}

// LogValue renders every field so a single log attribute carries the whole error.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", e.errType.String()),
		slog.String("code", e.code.String()),
		slog.String("message", e.msg),
	}
	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}
	return slog.GroupValue(attrs...)
}

func (e *Error) Msg() string {
	return e.msg
}

func (e *Error) Type() Type {
	return e.errType
}

func (e *Error) Code() Code {
	return e.code
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) StatusCode() int {
	return e.code.Status()
}

func build(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer wraps an unexpected failure. Clients only see "Internal server error".
func NewServer(err error) error {
	return build(err, "Internal server error", TypeServer, CodeInternal)
}

// NewUpstream wraps a failed call to the analysis service.
// The user-facing message never carries the upstream body.
func NewUpstream(err error, msg string) error {
	return build(err, msg, TypeServer, CodeUpstream)
}

// NewBusiness reports that the stored dataset cannot serve the request.
func NewBusiness(msg string, code Code) error {
	return build(nil, msg, TypeBusiness, code)
}

// NewInvalidFormat reports a request body that could not be decoded.
func NewInvalidFormat() error {
	return build(nil, "invalid request body", TypeValidation, CodeInvalidFormat)
}

// NewValidation creates a validation error with an explicit message and code.
func NewValidation(msg string, code Code) error {
	return build(nil, msg, TypeValidation, code)
}
