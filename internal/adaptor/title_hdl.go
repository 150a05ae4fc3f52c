package adaptor

import (
	"net/http"
	"strconv"

	"streamvault/internal/dto/request"
	"streamvault/internal/usecase"
	"streamvault/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// browseSorts maps the public sort names onto column and direction.
var browseSorts = map[string][2]string{
	"latest": {"created_at", "desc"},
	"oldest": {"created_at", "asc"},
	"title":  {"title", "asc"},
	"year":   {"year", "desc"},
	"rating": {"internal_rating", "desc"},
	"views":  {"views_count", "desc"},
}

type TitleHandler struct {
	service usecase.TitleService
	log     *zap.Logger
}

func NewTitleHandler(service usecase.TitleService, log *zap.Logger) *TitleHandler {
	return &TitleHandler{
		service: service,
		log:     log.With(zap.String("handler", "title")),
	}
}

func parseOptionalBool(value string) *bool {
	if value == "" {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &b
}

// listRequest reads the filters shared by every listing endpoint.
func listRequest(r *http.Request) *request.TitleListRequest {
	query := r.URL.Query()

	genres := utils.SplitList(query["genre"])
	genres = append(genres, utils.SplitList(query["genres"])...)

	return &request.TitleListRequest{
		Type:     query.Get("type"),
		Genres:   genres,
		Search:   query.Get("q"),
		Year:     utils.ParseOptionalInt(query.Get("year")),
		Featured: parseOptionalBool(query.Get("featured")),
		PaginatedRequest: request.PaginatedRequest{
			Page: utils.ParseInt(query.Get("page"), 1),
		},
	}
}

// Home handles GET /api/home
func (h *TitleHandler) Home(w http.ResponseWriter, r *http.Request) {
	home, err := h.service.Home(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "load home")
		return
	}

	utils.ResponseSuccess(w, "Home retrieved successfully", home)
}

// Browse handles GET /api/titles
func (h *TitleHandler) Browse(w http.ResponseWriter, r *http.Request) {
	req := listRequest(r)
	req.Search = ""

	sortName := r.URL.Query().Get("sort")
	if sortName == "" {
		sortName = "latest"
	}
	sort, ok := browseSorts[sortName]
	if !ok {
		h.log.Warn("Invalid sort, using latest", zap.String("sort", sortName))
		sort = browseSorts["latest"]
	}
	req.SortBy, req.SortOrder = sort[0], sort[1]

	titles, err := h.service.Browse(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "browse titles")
		return
	}

	utils.ResponseSuccess(w, "Titles retrieved successfully", titles)
}

// Search handles GET /api/search
func (h *TitleHandler) Search(w http.ResponseWriter, r *http.Request) {
	req := listRequest(r)
	req.Featured = nil

	titles, err := h.service.Search(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "search titles")
		return
	}

	utils.ResponseSuccess(w, "Search completed successfully", titles)
}

// Trending handles GET /api/titles/trending
func (h *TitleHandler) Trending(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 0)
	if limit > 50 {
		limit = 50
	}

	titles, err := h.service.Trending(r.Context(), limit)
	if err != nil {
		handleServiceError(w, h.log, err, "get trending titles")
		return
	}

	utils.ResponseSuccess(w, "Trending titles retrieved successfully", titles)
}

// Genres handles GET /api/genres
func (h *TitleHandler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.Genres(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list genres")
		return
	}

	utils.ResponseSuccess(w, "Genres retrieved successfully", genres)
}

// GetBySlug handles GET /api/titles/{slug}
func (h *TitleHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		utils.ResponseBadRequest(w, "Slug is required", nil)
		return
	}

	title, err := h.service.GetPublishedBySlug(r.Context(), slug)
	if err != nil {
		handleServiceError(w, h.log, err, "get title by slug")
		return
	}

	utils.ResponseSuccess(w, "Title retrieved successfully", title)
}

// ListTitles handles GET /api/admin/titles
func (h *TitleHandler) ListTitles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := listRequest(r)
	req.Status = query.Get("status")
	req.SortBy = query.Get("sort_by")
	req.SortOrder = query.Get("sort_order")
	req.PerPage = utils.ParseInt(query.Get("per_page"), 0)

	titles, err := h.service.ListTitles(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list titles")
		return
	}

	utils.ResponseSuccess(w, "Titles retrieved successfully", titles)
}

// GetTitle handles GET /api/admin/titles/{id}
func (h *TitleHandler) GetTitle(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "id")

	title, err := h.service.GetTitleByID(r.Context(), titleID)
	if err != nil {
		handleServiceError(w, h.log, err, "get title")
		return
	}

	utils.ResponseSuccess(w, "Title retrieved successfully", title)
}

// CreateTitle handles POST /api/admin/titles
func (h *TitleHandler) CreateTitle(w http.ResponseWriter, r *http.Request) {
	var req request.TitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	title, err := h.service.CreateTitle(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create title")
		return
	}

	utils.ResponseCreated(w, "Title created successfully", title)
}

// UpdateTitle handles PUT /api/admin/titles/{id}
func (h *TitleHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "id")

	var req request.TitleUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	title, err := h.service.UpdateTitle(r.Context(), titleID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update title")
		return
	}

	utils.ResponseSuccess(w, "Title updated successfully", title)
}

// DeleteTitle handles DELETE /api/admin/titles/{id}
func (h *TitleHandler) DeleteTitle(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "id")

	if err := h.service.DeleteTitle(r.Context(), titleID); err != nil {
		handleServiceError(w, h.log, err, "delete title")
		return
	}

	utils.ResponseSuccess(w, "Title deleted successfully", nil)
}

// BulkAction handles POST /api/admin/titles/bulk
func (h *TitleHandler) BulkAction(w http.ResponseWriter, r *http.Request) {
	var req request.BulkTitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.BulkAction(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "bulk title action")
		return
	}

	utils.ResponseSuccess(w, "Bulk action applied", result)
}

// Stats handles GET /api/admin/stats
func (h *TitleHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get catalog stats")
		return
	}

	utils.ResponseSuccess(w, "Stats retrieved successfully", stats)
}
