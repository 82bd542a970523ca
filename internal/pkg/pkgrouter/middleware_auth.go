package pkgrouter

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/gocsv/internal/pkg/pkgerror"
)

// HeaderAPIKey is the default header carrying the shared secret.
const HeaderAPIKey = "X-API-Key"

// MiddlewareAPIKey rejects requests whose header does not carry key.
//
// Missing and wrong keys get the same 401 body, and the check runs before the
// wrapped handler reads anything from the request.
func MiddlewareAPIKey(header, key string) Middleware {
	if header == "" {
		header = HeaderAPIKey
	}
	expected := []byte(key)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := []byte(r.Header.Get(header))
			if len(expected) == 0 || subtle.ConstantTimeCompare(provided, expected) != 1 {
				slog.WarnContext(r.Context(), "auth: rejected request",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				writeError(w, "Unauthorized", pkgerror.CodeUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
