package pkgrouter

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/gocsv/internal/pkg/pkglog"
)

// Generator produces correlation IDs for requests that arrive without one.
type Generator interface {
	Generate() string
}

const (
	// HeaderCorrelationID is read from requests, echoed on responses and
	// forwarded to the analysis service.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is accepted when HeaderCorrelationID is absent.
	HeaderRequestID = "X-Request-ID"

	maxCorrelationIDLen = 128
)

// clientCorrelationID returns the first usable ID the client sent. After
// trimming, an ID must be 1 to 128 bytes of visible ASCII so it can be
// forwarded upstream as a header value unchanged.
func clientCorrelationID(h http.Header) (string, bool) {
	for _, name := range []string{HeaderCorrelationID, HeaderRequestID} {
		v := strings.TrimSpace(h.Get(name))
		if v != "" && len(v) <= maxCorrelationIDLen && visibleASCII(v) {
			return v, true
		}
	}
	return "", false
}

func visibleASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '!' || s[i] > '~' {
			return false
		}
	}
	return true
}

func middlewareCorrelationID(gen Generator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid, ok := clientCorrelationID(r.Header)
			if !ok && gen != nil {
				cid = gen.Generate()
			}
			if cid == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(HeaderCorrelationID, cid)
			next.ServeHTTP(w, r.WithContext(pkglog.WithCorrelationID(r.Context(), cid)))
		})
	}
}
