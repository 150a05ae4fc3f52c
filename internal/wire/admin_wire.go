package wire

import (
	"streamvault/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireAdmin mounts catalog management. Access control sits in front of the
// service (reverse proxy or gateway).
func wireAdmin(r chi.Router, handler *adaptor.Handler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/stats", handler.Title.Stats)

		r.Route("/titles", func(r chi.Router) {
			r.Get("/", handler.Title.ListTitles)
			r.Post("/", handler.Title.CreateTitle)
			r.Post("/bulk", handler.Title.BulkAction)

			r.Get("/{id}", handler.Title.GetTitle)
			r.Put("/{id}", handler.Title.UpdateTitle)
			r.Delete("/{id}", handler.Title.DeleteTitle)

			r.Get("/{id}/episodes", handler.Episode.ListEpisodes)
			r.Post("/{id}/episodes", handler.Episode.CreateEpisode)
		})

		r.Put("/episodes/{id}", handler.Episode.UpdateEpisode)
		r.Delete("/episodes/{id}", handler.Episode.DeleteEpisode)
	})
}
