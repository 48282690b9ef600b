// Package api assembles the HTTP routes of the alignment server.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aria-lang/bioalign/api/handlers"
	"github.com/aria-lang/bioalign/api/middleware"
	"github.com/aria-lang/bioalign/internal/config"
)

// NewRouter builds the server's handler tree. version is reported by
// /health.
func NewRouter(cfg *config.Config, logger *log.Logger, version string) http.Handler {
	h := handlers.New(cfg, logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", handlers.Health(version))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if cfg.Server.RateLimit > 0 {
			r.Use(middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst).Handler)
		}
		r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeoutDuration()))

		// Alignment endpoints
		r.Route("/align", func(r chi.Router) {
			r.Post("/", h.Align)
			r.Post("/score", h.Score)
			r.Post("/batch", h.Batch)
		})
		r.Post("/msa", h.MSA)

		r.Route("/cigar", func(r chi.Router) {
			r.Post("/stats", h.CigarStats)
			r.Post("/decode", h.CigarDecode)
		})

		r.Get("/matrices", h.Matrices)
		r.Get("/matrices/{name}", h.Matrix)

		r.Route("/kmer", func(r chi.Router) {
			r.Post("/count", h.KMerCount)
			r.Post("/distance", h.KMerDistance)
		})

		r.Route("/sequence", func(r chi.Router) {
			r.Post("/info", h.SequenceInfo)
			r.Post("/validate", h.ValidateSequence)
			r.Post("/reverse-complement", h.ReverseComplement)
		})
	})

	return r
}
