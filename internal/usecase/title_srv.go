package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"streamvault/internal/data/entity"
	"streamvault/internal/data/repository"
	"streamvault/internal/dto/request"
	"streamvault/internal/dto/response"
	"streamvault/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const featuredRailSize = 5

type TitleService interface {
	// Public catalog
	Browse(ctx context.Context, req *request.TitleListRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	Search(ctx context.Context, req *request.TitleListRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	Home(ctx context.Context) (*response.HomeResponse, error)
	Trending(ctx context.Context, limit int) ([]response.TitleResponse, error)
	Genres(ctx context.Context) ([]response.GenreResponse, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*response.TitleDetailResponse, error)

	// Admin
	ListTitles(ctx context.Context, req *request.TitleListRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	GetTitleByID(ctx context.Context, titleID string) (*response.TitleDetailResponse, error)
	CreateTitle(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error)
	UpdateTitle(ctx context.Context, titleID string, req *request.TitleUpdateRequest) (*response.TitleResponse, error)
	DeleteTitle(ctx context.Context, titleID string) error
	BulkAction(ctx context.Context, req *request.BulkTitleRequest) (*response.BulkActionResponse, error)
	Stats(ctx context.Context) (*response.CatalogStatsResponse, error)
}

type titleService struct {
	repo    *repository.Repository
	catalog utils.CatalogConfig
	log     *zap.Logger
	now     func() time.Time
}

func NewTitleService(
	repo *repository.Repository,
	catalog utils.CatalogConfig,
	log *zap.Logger,
) TitleService {
	return &titleService{
		repo:    repo,
		catalog: catalog,
		log:     log.With(zap.String("service", "title")),
		now:     time.Now,
	}
}

func parseID(raw, what string) (uuid.UUID, error) {
	id, err := utils.ParseUUID(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s id %q", ErrInvalidInput, what, raw)
	}
	return id, nil
}

func statusPtr(s entity.Status) *entity.Status { return &s }

// toFilter converts a validated list request into a repository filter.
func toFilter(req *request.TitleListRequest) repository.TitleFilter {
	filter := repository.TitleFilter{
		Genres:    req.Genres,
		Search:    req.Search,
		Year:      req.Year,
		Featured:  req.Featured,
		SortField: repository.SortField(req.SortBy),
		SortOrder: repository.SortOrder(req.SortOrder),
		Page:      req.Page,
		PageSize:  req.Limit(),
	}
	if req.Status != "" {
		filter.Status = statusPtr(entity.Status(req.Status))
	}
	if req.Type != "" {
		t := entity.TitleType(req.Type)
		filter.Type = &t
	}
	return filter
}

func (s *titleService) validateList(req *request.TitleListRequest) error {
	if req.Page < 1 {
		req.Page = 1
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("List titles validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}
	return nil
}

// listTitles runs the page query and the count query concurrently.
func (s *titleService) listTitles(ctx context.Context, filter repository.TitleFilter) (*response.PaginatedResponse[response.TitleResponse], error) {
	var (
		titles []*entity.Title
		total  int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		titles, err = s.repo.Title.FindAll(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Title.CountAll(gctx, filter)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Error("Failed to list titles",
			zap.Error(err),
			zap.Int("page", filter.Page),
			zap.Int("page_size", filter.Limit()),
		)
		return nil, fmt.Errorf("list titles: %w: %w", ErrFetchFailed, err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}

	s.log.Debug("Titles listed",
		zap.Int("count", len(titles)),
		zap.Int64("total", total),
		zap.Int("page", page),
	)

	return response.NewPaginatedResponse(response.TitlesToResponse(titles), page, filter.Limit(), total), nil
}

func (s *titleService) Browse(ctx context.Context, req *request.TitleListRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	req.Status = string(entity.StatusPublished)
	req.PerPage = s.catalog.BrowsePageSize
	if err := s.validateList(req); err != nil {
		return nil, err
	}
	return s.listTitles(ctx, toFilter(req))
}

func (s *titleService) Search(ctx context.Context, req *request.TitleListRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	req.Status = string(entity.StatusPublished)
	req.PerPage = s.catalog.SearchPageSize
	req.SortBy = string(repository.SortByViews)
	req.SortOrder = string(repository.SortDesc)
	if err := s.validateList(req); err != nil {
		return nil, err
	}
	return s.listTitles(ctx, toFilter(req))
}

func (s *titleService) ListTitles(ctx context.Context, req *request.TitleListRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	if req.PerPage == 0 {
		req.PerPage = s.catalog.AdminPageSize
	}
	if err := s.validateList(req); err != nil {
		return nil, err
	}
	return s.listTitles(ctx, toFilter(req))
}

func (s *titleService) publishedRail(ctx context.Context, sortBy repository.SortField, featured *bool, size int) ([]*entity.Title, error) {
	return s.repo.Title.FindAll(ctx, repository.TitleFilter{
		Status:    statusPtr(entity.StatusPublished),
		Featured:  featured,
		SortField: sortBy,
		SortOrder: repository.SortDesc,
		Page:      1,
		PageSize:  size,
	})
}

func (s *titleService) Home(ctx context.Context) (*response.HomeResponse, error) {
	size := s.catalog.HomeSectionSize
	featured := true

	var (
		latest, spotlight []*entity.Title
		trending          []response.TitleResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		latest, err = s.publishedRail(gctx, repository.SortByCreatedAt, nil, size)
		return err
	})
	g.Go(func() error {
		var err error
		spotlight, err = s.publishedRail(gctx, repository.SortByCreatedAt, &featured, featuredRailSize)
		return err
	})
	g.Go(func() error {
		var err error
		trending, err = s.Trending(gctx, size)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Error("Failed to load home rails", zap.Error(err))
		if errors.Is(err, ErrFetchFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("home: %w: %w", ErrFetchFailed, err)
	}

	return &response.HomeResponse{
		Latest:   response.TitlesToResponse(latest),
		Trending: trending,
		Featured: response.TitlesToResponse(spotlight),
	}, nil
}

// Trending prefers the redis view ranking and falls back to views_count
// ordering when redis is disabled, empty or failing.
func (s *titleService) Trending(ctx context.Context, limit int) ([]response.TitleResponse, error) {
	if limit < 1 {
		limit = s.catalog.HomeSectionSize
	}

	if s.repo.Trending.Enabled() {
		titles, err := s.rankedTitles(ctx, limit)
		if err != nil {
			s.log.Warn("Trending ranking unavailable, falling back to view counts", zap.Error(err))
		} else if len(titles) > 0 {
			return response.TitlesToResponse(titles), nil
		}
	}

	titles, err := s.publishedRail(ctx, repository.SortByViews, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("trending: %w: %w", ErrFetchFailed, err)
	}
	return response.TitlesToResponse(titles), nil
}

// rankedTitles resolves the ranking ids, keeping ranking order and dropping
// titles that are gone or no longer published.
func (s *titleService) rankedTitles(ctx context.Context, limit int) ([]*entity.Title, error) {
	ids, err := s.repo.Trending.Top(ctx, limit)
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	found, err := s.repo.Title.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*entity.Title, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}

	ranked := make([]*entity.Title, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok && t.Status == entity.StatusPublished {
			ranked = append(ranked, t)
		}
	}
	return ranked, nil
}

// Genres lists the genres in use by published titles, most used first.
func (s *titleService) Genres(ctx context.Context) ([]response.GenreResponse, error) {
	genres, err := s.repo.Genre.CountByStatus(ctx, entity.StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("genres: %w: %w", ErrFetchFailed, err)
	}
	return response.GenresToResponse(genres), nil
}

func (s *titleService) GetPublishedBySlug(ctx context.Context, slug string) (*response.TitleDetailResponse, error) {
	title, err := s.repo.Title.FindBySlug(ctx, slug, statusPtr(entity.StatusPublished))
	if err != nil {
		return nil, fmt.Errorf("get title by slug: %w: %w", ErrFetchFailed, err)
	}
	if title == nil {
		return nil, fmt.Errorf("title %q: %w", slug, ErrNotFound)
	}

	var episodes []*entity.Episode
	if title.IsSeries() {
		episodes, err = s.repo.Episode.FindByTitleID(ctx, title.ID, statusPtr(entity.StatusPublished))
		if err != nil {
			s.log.Error("Failed to get episodes for title",
				zap.Error(err),
				zap.String("title_id", title.ID.String()),
			)
			return nil, fmt.Errorf("get episodes: %w: %w", ErrFetchFailed, err)
		}
	}

	// Only a page that renders counts as a view.
	s.recordView(ctx, title)

	s.log.Info("Title viewed",
		zap.String("title_id", title.ID.String()),
		zap.String("slug", slug),
		zap.Int64("views", title.ViewsCount),
	)

	return s.detail(title, episodes), nil
}

// recordView increments the view counter. A failed increment is logged and
// does not fail the page.
func (s *titleService) recordView(ctx context.Context, title *entity.Title) {
	views, err := s.repo.Title.IncrementViews(ctx, title.ID)
	if err != nil {
		s.log.Warn("Failed to increment views",
			zap.Error(err),
			zap.String("title_id", title.ID.String()),
		)
		return
	}
	title.ViewsCount = views

	if err := s.repo.Trending.RecordView(ctx, title.ID); err != nil {
		s.log.Warn("Failed to update trending ranking",
			zap.Error(err),
			zap.String("title_id", title.ID.String()),
		)
	}
}

func (s *titleService) detail(title *entity.Title, episodes []*entity.Episode) *response.TitleDetailResponse {
	resp := &response.TitleDetailResponse{TitleResponse: response.TitleToResponse(title)}
	if title.IsSeries() {
		list := response.EpisodeListToResponse(episodes, GroupBySeason(episodes))
		resp.Episodes = &list
	}
	return resp
}

func (s *titleService) findTitle(ctx context.Context, titleID string) (*entity.Title, error) {
	id, err := parseID(titleID, "title")
	if err != nil {
		return nil, err
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find title: %w: %w", ErrFetchFailed, err)
	}
	if title == nil {
		return nil, fmt.Errorf("title %s: %w", titleID, ErrNotFound)
	}
	return title, nil
}

func (s *titleService) GetTitleByID(ctx context.Context, titleID string) (*response.TitleDetailResponse, error) {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	var episodes []*entity.Episode
	if title.IsSeries() {
		episodes, err = s.repo.Episode.FindByTitleID(ctx, title.ID, nil)
		if err != nil {
			return nil, fmt.Errorf("get episodes: %w: %w", ErrFetchFailed, err)
		}
	}

	return s.detail(title, episodes), nil
}

func resolveSlug(name string, override *string) (string, error) {
	source := name
	if override != nil && *override != "" {
		source = *override
	}

	slug := utils.GenerateSlug(source)
	if slug == "" {
		return "", fmt.Errorf("%w: slug for %q is empty", ErrInvalidInput, source)
	}
	return slug, nil
}

func trailerType(raw *string) *entity.TrailerType {
	if raw == nil || *raw == "" {
		return nil
	}
	t := entity.TrailerType(*raw)
	return &t
}

func (s *titleService) CreateTitle(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	slug, err := resolveSlug(req.Title, req.Slug)
	if err != nil {
		return nil, err
	}

	now := s.now()
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:           req.Title,
		Slug:            slug,
		Type:            entity.TitleType(req.Type),
		Synopsis:        req.Synopsis,
		Year:            req.Year,
		Country:         req.Country,
		Genres:          req.Genres,
		CastMembers:     req.CastMembers,
		Tags:            req.Tags,
		InternalRating:  req.InternalRating,
		DurationMinutes: req.DurationMinutes,
		TrailerURL:      req.TrailerURL,
		Featured:        req.Featured,
		Status:          entity.StatusDraft,
		PosterURL:       req.PosterURL,
		BackdropURL:     req.BackdropURL,
	}
	if title.TrailerURL != nil {
		title.TrailerType = trailerType(req.TrailerType)
	}

	if err := s.repo.Title.Create(ctx, title); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("slug %q: %w", slug, ErrConflict)
		}
		return nil, fmt.Errorf("create title: %w", err)
	}

	s.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("slug", title.Slug),
		zap.String("type", string(title.Type)),
	)

	resp := response.TitleToResponse(title)
	return &resp, nil
}

func (s *titleService) UpdateTitle(ctx context.Context, titleID string, req *request.TitleUpdateRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	// Apply partial updates only for provided fields. The slug is not
	// re-derived when the name changes; it only moves on explicit override.
	if req.Title != nil {
		title.Title = *req.Title
	}
	if req.Slug != nil {
		slug, err := resolveSlug(title.Title, req.Slug)
		if err != nil {
			return nil, err
		}
		title.Slug = slug
	}
	if req.Type != nil {
		title.Type = entity.TitleType(*req.Type)
	}
	if req.Synopsis != nil {
		title.Synopsis = req.Synopsis
	}
	if req.Year != nil {
		title.Year = req.Year
	}
	if req.Country != nil {
		title.Country = req.Country
	}
	if req.Genres != nil {
		title.Genres = *req.Genres
	}
	if req.CastMembers != nil {
		title.CastMembers = *req.CastMembers
	}
	if req.Tags != nil {
		title.Tags = *req.Tags
	}
	if req.InternalRating != nil {
		title.InternalRating = req.InternalRating
	}
	if req.DurationMinutes != nil {
		title.DurationMinutes = req.DurationMinutes
	}
	if req.TrailerURL != nil {
		if *req.TrailerURL == "" {
			title.TrailerURL, title.TrailerType = nil, nil
		} else {
			title.TrailerURL = req.TrailerURL
		}
	}
	if req.TrailerType != nil && title.TrailerURL != nil {
		title.TrailerType = trailerType(req.TrailerType)
	}
	if req.Featured != nil {
		title.Featured = *req.Featured
	}
	if req.Status != nil {
		title.Status = entity.Status(*req.Status)
	}
	if req.PosterURL != nil {
		title.PosterURL = req.PosterURL
	}
	if req.BackdropURL != nil {
		title.BackdropURL = req.BackdropURL
	}

	title.UpdatedAt = s.now()
	if err := s.repo.Title.Update(ctx, title); err != nil {
		switch {
		case errors.Is(err, repository.ErrNoRowsAffected):
			return nil, fmt.Errorf("title %s: %w", titleID, ErrNotFound)
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("slug %q: %w", title.Slug, ErrConflict)
		}
		return nil, fmt.Errorf("update title: %w", err)
	}

	s.log.Info("Title updated",
		zap.String("title_id", titleID),
		zap.String("status", string(title.Status)),
	)

	resp := response.TitleToResponse(title)
	return &resp, nil
}

func (s *titleService) DeleteTitle(ctx context.Context, titleID string) error {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return err
	}

	if err := s.repo.Title.Delete(ctx, title.ID); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return fmt.Errorf("title %s: %w", titleID, ErrNotFound)
		}
		return fmt.Errorf("delete title: %w", err)
	}

	if err := s.repo.Trending.Remove(ctx, title.ID); err != nil {
		s.log.Warn("Failed to drop deleted title from ranking", zap.Error(err))
	}

	s.log.Info("Title deleted",
		zap.String("title_id", titleID),
		zap.String("slug", title.Slug),
	)

	return nil
}

func (s *titleService) BulkAction(ctx context.Context, req *request.BulkTitleRequest) (*response.BulkActionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := parseID(raw, "title")
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	var (
		affected int64
		err      error
	)
	switch req.Action {
	case "delete":
		affected, err = s.repo.Title.DeleteBatch(ctx, ids)
		if err == nil {
			if rerr := s.repo.Trending.Remove(ctx, ids...); rerr != nil {
				s.log.Warn("Failed to drop deleted titles from ranking", zap.Error(rerr))
			}
		}
	case "publish":
		affected, err = s.repo.Title.UpdateStatusBatch(ctx, ids, entity.StatusPublished)
	case "unpublish":
		affected, err = s.repo.Title.UpdateStatusBatch(ctx, ids, entity.StatusDraft)
	default:
		return nil, fmt.Errorf("%w: unknown bulk action %q", ErrInvalidInput, req.Action)
	}
	if err != nil {
		return nil, fmt.Errorf("bulk %s: %w", req.Action, err)
	}

	s.log.Info("Bulk title action",
		zap.String("action", req.Action),
		zap.Int("requested", len(ids)),
		zap.Int64("affected", affected),
	)

	return &response.BulkActionResponse{Action: req.Action, Affected: affected}, nil
}

func (s *titleService) Stats(ctx context.Context) (*response.CatalogStatsResponse, error) {
	stats, err := s.repo.Title.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w: %w", ErrFetchFailed, err)
	}

	resp := response.StatsToResponse(stats)
	return &resp, nil
}
