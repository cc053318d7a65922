// Package api serves the recipe finder over HTTP: the HTML form page, the
// JSON search endpoint used by the page script, and operational endpoints.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds router-level settings.
type RouterConfig struct {
	// RateLimitPerMinute applies per client IP to the search routes. Zero or
	// negative disables limiting.
	RateLimitPerMinute int
}

// NewRouter wires every route onto a chi router.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(Instrument())

	r.Group(func(r chi.Router) {
		r.Use(RateLimit(cfg.RateLimitPerMinute))
		r.Get("/", h.Index)
		r.Post("/", h.IndexSubmit)
		r.Post("/search", h.Search)
	})

	r.Get("/static/script.js", h.Script)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/stats", h.Stats)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
