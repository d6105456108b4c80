package server

import "github.com/go-chi/chi/v5"

// SetupRoutes registers the playground routes.
func SetupRoutes(router chi.Router, h *Handlers) {
	router.Get("/", h.Index)
	router.Get("/healthz", h.Healthz)

	router.Route("/api", func(r chi.Router) {
		r.Post("/format", h.Format)
		r.Post("/types", h.Types)
	})

	// Short aliases
	router.Post("/format", h.Format)
	router.Post("/types", h.Types)
}
