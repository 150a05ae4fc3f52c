package repository

import (
	"context"
	"errors"
	"fmt"

	"streamvault/internal/data/entity"
	"streamvault/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type WatchProgressRepository interface {
	// Upsert writes the row keyed by (session, title, episode); a later write
	// for the same key replaces the earlier one.
	Upsert(ctx context.Context, progress *entity.WatchProgress) error
	Find(ctx context.Context, sessionID string, titleID uuid.UUID, episodeID *uuid.UUID) (*entity.WatchProgress, error)
}

type watchProgressRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWatchProgressRepository(db database.PgxIface, log *zap.Logger) WatchProgressRepository {
	return &watchProgressRepository{
		db:  db,
		log: log.With(zap.String("repository", "watch_progress")),
	}
}

func (r *watchProgressRepository) Upsert(ctx context.Context, progress *entity.WatchProgress) error {
	if progress.ID == uuid.Nil {
		progress.ID = uuid.New()
	}

	query := `
		INSERT INTO watch_progress (id, session_id, title_id, episode_id, progress_seconds,
		                            duration_seconds, completed, last_watched)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT ON CONSTRAINT watch_progress_key DO UPDATE SET
		    progress_seconds = EXCLUDED.progress_seconds,
		    duration_seconds = EXCLUDED.duration_seconds,
		    completed = EXCLUDED.completed,
		    last_watched = EXCLUDED.last_watched
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		progress.ID,
		progress.SessionID,
		progress.TitleID,
		progress.EpisodeID,
		progress.ProgressSeconds,
		progress.DurationSeconds,
		progress.Completed,
		progress.LastWatched,
	).Scan(&progress.ID)

	if err != nil {
		r.log.Error("Failed to upsert watch progress",
			zap.Error(err),
			zap.String("session_id", progress.SessionID),
			zap.String("title_id", progress.TitleID.String()),
		)
		return fmt.Errorf("upsert watch progress: %w", err)
	}

	return nil
}

func (r *watchProgressRepository) Find(ctx context.Context, sessionID string, titleID uuid.UUID, episodeID *uuid.UUID) (*entity.WatchProgress, error) {
	query := `
		SELECT id, session_id, title_id, episode_id, progress_seconds, duration_seconds,
		       completed, last_watched
		FROM watch_progress
		WHERE session_id = $1 AND title_id = $2 AND episode_id IS NOT DISTINCT FROM $3
	`

	var p entity.WatchProgress
	err := r.db.QueryRow(ctx, query, sessionID, titleID, episodeID).Scan(
		&p.ID,
		&p.SessionID,
		&p.TitleID,
		&p.EpisodeID,
		&p.ProgressSeconds,
		&p.DurationSeconds,
		&p.Completed,
		&p.LastWatched,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find watch progress",
			zap.Error(err),
			zap.String("session_id", sessionID),
			zap.String("title_id", titleID.String()),
		)
		return nil, fmt.Errorf("find watch progress: %w", err)
	}

	return &p, nil
}
