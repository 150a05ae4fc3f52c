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

type EpisodeService interface {
	ListEpisodes(ctx context.Context, titleID string, status *entity.Status) (*response.EpisodeListResponse, error)
	GetAdjacent(ctx context.Context, titleID, episodeID string) (*response.AdjacentEpisodesResponse, error)
	Watch(ctx context.Context, sessionID, titleID string, episodeID *string) (*response.WatchResponse, error)

	CreateEpisode(ctx context.Context, titleID string, req *request.EpisodeRequest) (*response.EpisodeResponse, error)
	UpdateEpisode(ctx context.Context, episodeID string, req *request.EpisodeUpdateRequest) (*response.EpisodeResponse, error)
	DeleteEpisode(ctx context.Context, episodeID string) error
}

type episodeService struct {
	repo     *repository.Repository
	progress ProgressService
	log      *zap.Logger
	now      func() time.Time
}

func NewEpisodeService(repo *repository.Repository, progress ProgressService, log *zap.Logger) EpisodeService {
	return &episodeService{
		repo:     repo,
		progress: progress,
		log:      log.With(zap.String("service", "episode")),
		now:      time.Now,
	}
}

// orderedEpisodes fetches a title's episodes in canonical (season, episode) order.
func (s *episodeService) orderedEpisodes(ctx context.Context, titleID uuid.UUID, status *entity.Status) ([]*entity.Episode, error) {
	episodes, err := s.repo.Episode.FindByTitleID(ctx, titleID, status)
	if err != nil {
		s.log.Error("Failed to get episodes",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return nil, fmt.Errorf("get episodes: %w: %w", ErrFetchFailed, err)
	}
	SortEpisodes(episodes)
	return episodes, nil
}

func (s *episodeService) ListEpisodes(ctx context.Context, titleID string, status *entity.Status) (*response.EpisodeListResponse, error) {
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

	episodes, err := s.orderedEpisodes(ctx, id, status)
	if err != nil {
		return nil, err
	}

	resp := response.EpisodeListToResponse(episodes, GroupBySeason(episodes))
	return &resp, nil
}

func (s *episodeService) GetAdjacent(ctx context.Context, titleID, episodeID string) (*response.AdjacentEpisodesResponse, error) {
	tid, err := parseID(titleID, "title")
	if err != nil {
		return nil, err
	}
	eid, err := parseID(episodeID, "episode")
	if err != nil {
		return nil, err
	}

	episodes, err := s.orderedEpisodes(ctx, tid, statusPtr(entity.StatusPublished))
	if err != nil {
		return nil, err
	}

	prev, next, found := AdjacentEpisodes(episodes, eid)
	if !found {
		return nil, fmt.Errorf("episode %s: %w", episodeID, ErrNotFound)
	}

	return &response.AdjacentEpisodesResponse{
		Previous: response.EpisodeToResponsePtr(prev),
		Next:     response.EpisodeToResponsePtr(next),
	}, nil
}

// Watch assembles the playback view: the published title, the requested
// published episode with its neighbours, and the session's saved position.
func (s *episodeService) Watch(ctx context.Context, sessionID, titleID string, episodeID *string) (*response.WatchResponse, error) {
	tid, err := parseID(titleID, "title")
	if err != nil {
		return nil, err
	}

	var eid *uuid.UUID
	if episodeID != nil && *episodeID != "" {
		parsed, err := parseID(*episodeID, "episode")
		if err != nil {
			return nil, err
		}
		eid = &parsed
	}

	var (
		title    *entity.Title
		episodes []*entity.Episode
		progress response.ProgressResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		title, err = s.repo.Title.FindByID(gctx, tid)
		if err != nil {
			return fmt.Errorf("find title: %w: %w", ErrFetchFailed, err)
		}
		return nil
	})
	if eid != nil {
		g.Go(func() error {
			var err error
			episodes, err = s.orderedEpisodes(gctx, tid, statusPtr(entity.StatusPublished))
			return err
		})
	}
	g.Go(func() error {
		progress = s.progress.LoadProgress(gctx, sessionID, tid, eid)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if title == nil || title.Status != entity.StatusPublished {
		return nil, fmt.Errorf("title %s: %w", titleID, ErrNotFound)
	}

	resp := &response.WatchResponse{
		Title:    response.TitleToResponse(title),
		Progress: progress,
	}

	if eid != nil {
		prev, next, found := AdjacentEpisodes(episodes, *eid)
		if !found {
			return nil, fmt.Errorf("episode %s: %w", *episodeID, ErrNotFound)
		}
		for _, ep := range episodes {
			if ep.ID == *eid {
				resp.Episode = response.EpisodeToResponsePtr(ep)
				break
			}
		}
		resp.Previous = response.EpisodeToResponsePtr(prev)
		resp.Next = response.EpisodeToResponsePtr(next)
	}

	return resp, nil
}

func (s *episodeService) CreateEpisode(ctx context.Context, titleID string, req *request.EpisodeRequest) (*response.EpisodeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create episode validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	tid, err := parseID(titleID, "title")
	if err != nil {
		return nil, err
	}

	title, err := s.repo.Title.FindByID(ctx, tid)
	if err != nil {
		return nil, fmt.Errorf("find title: %w: %w", ErrFetchFailed, err)
	}
	if title == nil {
		return nil, fmt.Errorf("title %s: %w", titleID, ErrNotFound)
	}
	if !title.IsSeries() {
		return nil, fmt.Errorf("%w: title %s is a movie, episodes need a series", ErrInvalidInput, titleID)
	}

	status := entity.StatusDraft
	if req.Status != "" {
		status = entity.Status(req.Status)
	}

	now := s.now()
	episode := &entity.Episode{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TitleID:         tid,
		SeasonNumber:    req.SeasonNumber,
		EpisodeNumber:   req.EpisodeNumber,
		EpisodeTitle:    req.EpisodeTitle,
		Synopsis:        req.Synopsis,
		DurationMinutes: req.DurationMinutes,
		Status:          status,
	}

	if err := s.repo.Episode.Create(ctx, episode); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("episode S%dE%d: %w", episode.SeasonNumber, episode.EpisodeNumber, ErrConflict)
		}
		return nil, fmt.Errorf("create episode: %w", err)
	}

	s.log.Info("Episode created",
		zap.String("episode_id", episode.ID.String()),
		zap.String("title_id", titleID),
		zap.Int("season", episode.SeasonNumber),
		zap.Int("episode", episode.EpisodeNumber),
	)

	resp := response.EpisodeToResponse(episode)
	return &resp, nil
}

func (s *episodeService) UpdateEpisode(ctx context.Context, episodeID string, req *request.EpisodeUpdateRequest) (*response.EpisodeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	id, err := parseID(episodeID, "episode")
	if err != nil {
		return nil, err
	}

	episode, err := s.repo.Episode.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find episode: %w: %w", ErrFetchFailed, err)
	}
	if episode == nil {
		return nil, fmt.Errorf("episode %s: %w", episodeID, ErrNotFound)
	}

	if req.SeasonNumber != nil {
		episode.SeasonNumber = *req.SeasonNumber
	}
	if req.EpisodeNumber != nil {
		episode.EpisodeNumber = *req.EpisodeNumber
	}
	if req.EpisodeTitle != nil {
		episode.EpisodeTitle = req.EpisodeTitle
	}
	if req.Synopsis != nil {
		episode.Synopsis = req.Synopsis
	}
	if req.DurationMinutes != nil {
		episode.DurationMinutes = req.DurationMinutes
	}
	if req.Status != nil {
		episode.Status = entity.Status(*req.Status)
	}

	episode.UpdatedAt = s.now()
	if err := s.repo.Episode.Update(ctx, episode); err != nil {
		switch {
		case errors.Is(err, repository.ErrNoRowsAffected):
			return nil, fmt.Errorf("episode %s: %w", episodeID, ErrNotFound)
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("episode S%dE%d: %w", episode.SeasonNumber, episode.EpisodeNumber, ErrConflict)
		}
		return nil, fmt.Errorf("update episode: %w", err)
	}

	resp := response.EpisodeToResponse(episode)
	return &resp, nil
}

func (s *episodeService) DeleteEpisode(ctx context.Context, episodeID string) error {
	id, err := parseID(episodeID, "episode")
	if err != nil {
		return err
	}

	if err := s.repo.Episode.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return fmt.Errorf("episode %s: %w", episodeID, ErrNotFound)
		}
		return fmt.Errorf("delete episode: %w", err)
	}

	s.log.Info("Episode deleted", zap.String("episode_id", episodeID))
	return nil
}
