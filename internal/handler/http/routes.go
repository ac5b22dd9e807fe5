package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. Every route is registered without a trailing
// slash; StripSlashes makes "/api/login/" and "/api/login" equivalent.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.Recoverer,
		h.withTraceID,
		h.withLogging,
		h.withMetrics,
		withGZip,
		withMaxBytes(h.cfg.MaxBodyBytes),
		middleware.StripSlashes,
	)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	if h.metrics != nil {
		router.Method("GET", "/metrics", h.metrics.Handler())
	}
	router.Get("/api/version", h.getServerVersion)

	// routes without authorization, throttled per client IP
	router.Group(func(r chi.Router) {
		r.Use(h.authLimiter.Middleware)

		r.Post("/api/register", h.register)
		r.Post("/api/login", h.login)
		r.Post("/api/token", h.obtainTokenPair)
		r.Post("/api/token/refresh", h.refreshToken)

		r.Post("/api/v1/register", h.registerV1)
		r.Post("/api/v1/login", h.loginV1)
	})

	router.Post("/api/logout", h.logout)

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/v1/logout", h.logoutV1)
		r.Get("/api/v1/profile", h.profile)

		r.Route("/api/v1/notes", func(r chi.Router) {
			r.Get("/", h.listNotes)
			r.Post("/", h.createNote)

			r.Route("/{noteID:[0-9]+}", func(r chi.Router) {
				r.Get("/", h.getNote)
				r.Put("/", h.updateNote)
				r.Patch("/", h.patchNote)
				r.Delete("/", h.deleteNote)
			})
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
