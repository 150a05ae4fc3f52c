package usecase

import (
	"context"
	"fmt"
	"time"

	"streamvault/internal/data/entity"
	"streamvault/internal/data/repository"
	"streamvault/internal/dto/request"
	"streamvault/internal/dto/response"
	"streamvault/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProgressService interface {
	// SaveProgress records the playback position. Only invalid input is an
	// error; a failed write is logged and dropped.
	SaveProgress(ctx context.Context, sessionID string, req *request.SaveProgressRequest) (*response.SaveProgressResponse, error)
	GetProgress(ctx context.Context, sessionID, titleID string, episodeID *string) (*response.ProgressResponse, error)
	// LoadProgress is GetProgress for already parsed ids; lookup failures
	// read as "no progress".
	LoadProgress(ctx context.Context, sessionID string, titleID uuid.UUID, episodeID *uuid.UUID) response.ProgressResponse
}

type progressService struct {
	repo repository.WatchProgressRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewProgressService(repo repository.WatchProgressRepository, log *zap.Logger) ProgressService {
	return &progressService{
		repo: repo,
		log:  log.With(zap.String("service", "progress")),
		now:  time.Now,
	}
}

func parseOptionalID(raw *string, what string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := parseID(*raw, what)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *progressService) SaveProgress(ctx context.Context, sessionID string, req *request.SaveProgressRequest) (*response.SaveProgressResponse, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: missing session id", ErrInvalidInput)
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	titleID, err := parseID(req.TitleID, "title")
	if err != nil {
		return nil, err
	}
	episodeID, err := parseOptionalID(req.EpisodeID, "episode")
	if err != nil {
		return nil, err
	}

	progress := entity.NewWatchProgress(
		sessionID,
		titleID,
		episodeID,
		req.ProgressSeconds,
		req.DurationSeconds,
		s.now(),
	)

	if err := s.repo.Upsert(ctx, progress); err != nil {
		s.log.Warn("Dropping watch progress after failed write",
			zap.Error(err),
			zap.String("session_id", sessionID),
			zap.String("title_id", req.TitleID),
		)
	}

	return &response.SaveProgressResponse{
		SessionID: sessionID,
		Completed: progress.Completed,
	}, nil
}

func (s *progressService) GetProgress(ctx context.Context, sessionID, titleID string, episodeID *string) (*response.ProgressResponse, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: missing session id", ErrInvalidInput)
	}

	tid, err := parseID(titleID, "title")
	if err != nil {
		return nil, err
	}
	eid, err := parseOptionalID(episodeID, "episode")
	if err != nil {
		return nil, err
	}

	progress, err := s.repo.Find(ctx, sessionID, tid, eid)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w: %w", ErrFetchFailed, err)
	}

	resp := response.ProgressToResponse(progress)
	return &resp, nil
}

func (s *progressService) LoadProgress(ctx context.Context, sessionID string, titleID uuid.UUID, episodeID *uuid.UUID) response.ProgressResponse {
	if sessionID == "" {
		return response.ProgressResponse{}
	}

	progress, err := s.repo.Find(ctx, sessionID, titleID, episodeID)
	if err != nil {
		s.log.Warn("Failed to load watch progress",
			zap.Error(err),
			zap.String("session_id", sessionID),
			zap.String("title_id", titleID.String()),
		)
		return response.ProgressResponse{}
	}

	return response.ProgressToResponse(progress)
}
