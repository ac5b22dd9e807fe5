package http

import (
	"net/http"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
)

// withMaxBytes limits the request body size. Reading past the limit fails,
// which the JSON decoding in handlers reports as 400.
func withMaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = config.DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
