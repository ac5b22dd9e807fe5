// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-notes-keeper/internal/app"
)

// CheckHTTPMethod returns the router's MethodNotAllowed handler. A method
// that the matched route does not serve is answered like an unknown route,
// 404 with a JSON error body, so callers cannot tell which paths exist.
//
// Routes are compared by exact pattern against [http.Request.URL.Path]; a
// request whose method the route does serve is handed back to router.
//
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var matched chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				matched = route
				break
			}
		}

		if _, ok := matched.Handlers[r.Method]; !ok {
			notFound(w, r)
			return
		}

		router.ServeHTTP(w, r)
	}
}

// notFound is the router's NotFound handler.
func notFound(w http.ResponseWriter, _ *http.Request) {
	writeErrorMessage(w, app.MsgNotFound, http.StatusNotFound)
}
