package adaptor

import (
	"net/http"

	"streamvault/internal/dto/request"
	"streamvault/internal/usecase"
	"streamvault/pkg/utils"

	"go.uber.org/zap"
)

type ProgressHandler struct {
	service usecase.ProgressService
	log     *zap.Logger
}

func NewProgressHandler(service usecase.ProgressService, log *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		service: service,
		log:     log.With(zap.String("handler", "progress")),
	}
}

// GetProgress handles GET /api/progress?title_id=&episode_id=
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	titleID := r.URL.Query().Get("title_id")
	if titleID == "" {
		utils.ResponseBadRequest(w, "title_id is required", nil)
		return
	}

	progress, err := h.service.GetProgress(r.Context(), sessionID(r), titleID, optionalQuery(r, "episode_id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get progress")
		return
	}

	utils.ResponseSuccess(w, "Progress retrieved successfully", progress)
}

// SaveProgress handles POST /api/progress. The player posts periodically, so
// a dropped write still answers 202.
func (h *ProgressHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	var req request.SaveProgressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.SaveProgress(r.Context(), sessionID(r), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "save progress")
		return
	}

	utils.ResponseAccepted(w, "Progress saved", result)
}
