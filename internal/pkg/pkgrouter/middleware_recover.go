package pkgrouter

import (
	"bytes"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/shandysiswandi/gocsv/internal/pkg/pkgerror"
)

func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}

			//nolint:err113,errorlint // this must compare directly
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			slog.ErrorContext(r.Context(), "panic on the server",
				"because", rvr,
				"method", r.Method,
				"path", r.URL.Path,
				"stack", internalFrames(debug.Stack()),
			)

			writeError(w, "Internal server error", pkgerror.CodeInternal)
		}()

		next.ServeHTTP(w, r)
	})
}

// internalFrames keeps the "internal/...go:line" locations of a goroutine
// stack dump, dropping runtime and library frames.
func internalFrames(stack []byte) []string {
	frames := make([]string, 0)
	for _, line := range bytes.Split(stack, []byte("\n")) {
		line = bytes.TrimSpace(line)
		idx := bytes.Index(line, []byte("/internal/"))
		if idx == -1 || !bytes.Contains(line, []byte(".go:")) {
			continue
		}

		loc := line[idx+1:]
		if end := bytes.IndexByte(loc, ' '); end != -1 {
			loc = loc[:end]
		}
		frames = append(frames, string(loc))
	}
	return frames
}
