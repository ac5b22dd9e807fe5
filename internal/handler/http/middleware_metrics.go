package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// unmatchedRoute labels requests that no registered route served, so
// arbitrary paths cannot create new series.
const unmatchedRoute = "unmatched"

// withMetrics records duration and count of every request except scrapes of
// /metrics itself. Requests are labelled with the chi route pattern.
func (h *Handler) withMetrics(next http.Handler) http.Handler {
	if h.metrics == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		mw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(mw, r)

		h.metrics.RecordRequest(r.Method, routeLabel(r), mw.Status(), time.Since(start))
	})
}

// routeLabel returns the pattern of the route that served r. It is only
// complete once the router has finished with the request.
func routeLabel(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}
