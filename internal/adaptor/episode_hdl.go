package adaptor

import (
	"net/http"

	"streamvault/internal/dto/request"
	"streamvault/internal/usecase"
	"streamvault/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EpisodeHandler struct {
	service usecase.EpisodeService
	log     *zap.Logger
}

func NewEpisodeHandler(service usecase.EpisodeService, log *zap.Logger) *EpisodeHandler {
	return &EpisodeHandler{
		service: service,
		log:     log.With(zap.String("handler", "episode")),
	}
}

// Watch handles GET /api/watch/{titleID}?episode={episodeID}
func (h *EpisodeHandler) Watch(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "titleID")

	view, err := h.service.Watch(r.Context(), sessionID(r), titleID, optionalQuery(r, "episode"))
	if err != nil {
		handleServiceError(w, h.log, err, "load watch page")
		return
	}

	utils.ResponseSuccess(w, "Playback retrieved successfully", view)
}

// Adjacent handles GET /api/titles/{titleID}/episodes/{episodeID}/adjacent
func (h *EpisodeHandler) Adjacent(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "titleID")
	episodeID := chi.URLParam(r, "episodeID")

	adjacent, err := h.service.GetAdjacent(r.Context(), titleID, episodeID)
	if err != nil {
		handleServiceError(w, h.log, err, "get adjacent episodes")
		return
	}

	utils.ResponseSuccess(w, "Adjacent episodes retrieved successfully", adjacent)
}

// ListEpisodes handles GET /api/admin/titles/{id}/episodes
func (h *EpisodeHandler) ListEpisodes(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "id")

	episodes, err := h.service.ListEpisodes(r.Context(), titleID, nil)
	if err != nil {
		handleServiceError(w, h.log, err, "list episodes")
		return
	}

	utils.ResponseSuccess(w, "Episodes retrieved successfully", episodes)
}

// CreateEpisode handles POST /api/admin/titles/{id}/episodes
func (h *EpisodeHandler) CreateEpisode(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "id")

	var req request.EpisodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	episode, err := h.service.CreateEpisode(r.Context(), titleID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create episode")
		return
	}

	utils.ResponseCreated(w, "Episode created successfully", episode)
}

// UpdateEpisode handles PUT /api/admin/episodes/{id}
func (h *EpisodeHandler) UpdateEpisode(w http.ResponseWriter, r *http.Request) {
	episodeID := chi.URLParam(r, "id")

	var req request.EpisodeUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	episode, err := h.service.UpdateEpisode(r.Context(), episodeID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update episode")
		return
	}

	utils.ResponseSuccess(w, "Episode updated successfully", episode)
}

// DeleteEpisode handles DELETE /api/admin/episodes/{id}
func (h *EpisodeHandler) DeleteEpisode(w http.ResponseWriter, r *http.Request) {
	episodeID := chi.URLParam(r, "id")

	if err := h.service.DeleteEpisode(r.Context(), episodeID); err != nil {
		handleServiceError(w, h.log, err, "delete episode")
		return
	}

	utils.ResponseSuccess(w, "Episode deleted successfully", nil)
}
