package wire

import (
	"streamvault/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireEpisode(r chi.Router, episodeHandler *adaptor.EpisodeHandler) {
	r.Get("/api/watch/{titleID}", episodeHandler.Watch)
	r.Get("/api/titles/{titleID}/episodes/{episodeID}/adjacent", episodeHandler.Adjacent)
}
