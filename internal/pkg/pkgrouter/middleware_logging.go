package pkgrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

const maxLoggedBodyBytes = 4 << 10

//nolint:gochecknoglobals // lookup table
var maskedHeaders = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"x-api-key":     {},
}

func maskHeaders(headers http.Header) http.Header {
	result := headers.Clone()
	for key := range result {
		if _, found := maskedHeaders[strings.ToLower(key)]; found {
			result.Set(key, "***")
		}
	}
	return result
}

type logFieldsKey struct{}

type logFields struct {
	attrs []slog.Attr
}

// LogAttrs adds attributes to the "response sent" entry of the request ctx
// belongs to. Handlers use it to summarize what they did (an upload ID, a
// match count) instead of having the response body logged. Outside the
// logging middleware it does nothing.
func LogAttrs(ctx context.Context, attrs ...slog.Attr) {
	if fields, ok := ctx.Value(logFieldsKey{}).(*logFields); ok {
		fields.attrs = append(fields.attrs, attrs...)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
	body   *bytes.Buffer
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	if w.body != nil {
		if remaining := maxLoggedBodyBytes - w.body.Len(); remaining > 0 {
			w.body.Write(p[:min(len(p), remaining)])
		}
	}

	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func (w *statusRecorder) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

type replayBody struct {
	io.Reader
	io.Closer
}

type routePathKey struct{}

// withRoutePath stores the registered path pattern so middleware can label
// requests by route rather than by raw URL.
func withRoutePath(path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), routePathKey{}, path)))
	})
}

func matchedRoutePath(r *http.Request) string {
	if pattern, ok := r.Context().Value(routePathKey{}).(string); ok && pattern != "" {
		return pattern
	}
	return r.URL.Path
}

// describeRequestBody turns the buffered prefix of a request body into a log
// value. CSV uploads are never logged, JSON is logged decoded and anything
// else as text when it is valid UTF-8.
func describeRequestBody(contentType string, prefix []byte, truncated bool) any {
	if len(prefix) == 0 {
		return nil
	}

	mediaType, _, _ := mime.ParseMediaType(contentType)
	if strings.HasPrefix(mediaType, "multipart/") {
		return fmt.Sprintf("<multipart body omitted, %d bytes read>", len(prefix))
	}

	if !truncated && mediaType == "application/json" {
		var decoded any
		if err := json.Unmarshal(prefix, &decoded); err == nil {
			return decoded
		}
	}

	if !utf8.Valid(prefix) {
		return "<binary body omitted>"
	}
	if truncated {
		return string(prefix) + "...(truncated)"
	}
	return string(prefix)
}

// describeErrorBody decodes the {"message","code"} body of a failed response.
func describeErrorBody(body []byte) any {
	var decoded errorResponse
	if err := json.Unmarshal(body, &decoded); err == nil && decoded.Message != "" {
		return decoded
	}
	if utf8.Valid(body) {
		return string(body)
	}
	return "<binary body omitted>"
}

func middlewareLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := matchedRoutePath(r)
		start := time.Now()

		// Only the logged prefix is buffered; the rest still streams to the handler.
		var prefix []byte
		truncated := false
		if r.Body != nil {
			//nolint:errcheck // best effort for logging only
			prefix, _ = io.ReadAll(io.LimitReader(r.Body, maxLoggedBodyBytes+1))
			r.Body = replayBody{
				Reader: io.MultiReader(bytes.NewReader(prefix), r.Body),
				Closer: r.Body,
			}
			if len(prefix) > maxLoggedBodyBytes {
				prefix, truncated = prefix[:maxLoggedBodyBytes], true
			}
		}

		slog.InfoContext(
			r.Context(),
			"request received",
			"method", r.Method,
			"route", route,
			"query", r.URL.RawQuery,
			"headers", maskHeaders(r.Header),
			"body", describeRequestBody(r.Header.Get("Content-Type"), prefix, truncated),
		)

		fields := &logFields{}
		rec := &statusRecorder{ResponseWriter: w, body: &bytes.Buffer{}}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), logFieldsKey{}, fields)))

		status := rec.statusCode()
		args := []any{
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", rec.bytes,
			"latency_ms", time.Since(start).Milliseconds(),
		}
		for _, attr := range fields.attrs {
			args = append(args, attr)
		}
		if status >= http.StatusBadRequest {
			args = append(args, "body", describeErrorBody(rec.body.Bytes()))
		}

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(r.Context(), level, "response sent", args...)
	})
}
