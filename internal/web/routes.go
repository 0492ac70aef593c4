package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/imagehash/internal/web/handlers"
)

func (s *Server) routes() {
	hash := handlers.NewHashHandler(s.cfg)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handlers.HealthCheck)
		r.Get("/algorithms", hash.Algorithms)
		r.Post("/hash", hash.Hash)
		r.Post("/compare", hash.Compare)
	})
}
