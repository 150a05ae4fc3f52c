package wire

import (
	"streamvault/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTitle(r chi.Router, titleHandler *adaptor.TitleHandler) {
	r.Get("/api/home", titleHandler.Home)
	r.Get("/api/search", titleHandler.Search)
	r.Get("/api/genres", titleHandler.Genres)

	r.Get("/api/titles", titleHandler.Browse)
	r.Get("/api/titles/trending", titleHandler.Trending)
	r.Get("/api/titles/{slug}", titleHandler.GetBySlug)
}
