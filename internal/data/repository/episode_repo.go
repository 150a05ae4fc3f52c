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

const episodeColumns = `id, title_id, season_number, episode_number, episode_title, synopsis,
	duration_minutes, status, created_at, updated_at`

type EpisodeRepository interface {
	Create(ctx context.Context, episode *entity.Episode) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Episode, error)
	Update(ctx context.Context, episode *entity.Episode) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByTitleID returns episodes in (season, episode) ascending order.
	FindByTitleID(ctx context.Context, titleID uuid.UUID, status *entity.Status) ([]*entity.Episode, error)
}

type episodeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEpisodeRepository(db database.PgxIface, log *zap.Logger) EpisodeRepository {
	return &episodeRepository{
		db:  db,
		log: log.With(zap.String("repository", "episode")),
	}
}

func scanEpisode(row rowScanner) (*entity.Episode, error) {
	var e entity.Episode
	err := row.Scan(
		&e.ID,
		&e.TitleID,
		&e.SeasonNumber,
		&e.EpisodeNumber,
		&e.EpisodeTitle,
		&e.Synopsis,
		&e.DurationMinutes,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *episodeRepository) Create(ctx context.Context, episode *entity.Episode) error {
	query := `
		INSERT INTO episodes (id, title_id, season_number, episode_number, episode_title, synopsis,
		                      duration_minutes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		episode.ID,
		episode.TitleID,
		episode.SeasonNumber,
		episode.EpisodeNumber,
		episode.EpisodeTitle,
		episode.Synopsis,
		episode.DurationMinutes,
		string(episode.Status),
		episode.CreatedAt,
		episode.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create episode",
			zap.Error(err),
			zap.String("title_id", episode.TitleID.String()),
			zap.Int("season", episode.SeasonNumber),
			zap.Int("episode", episode.EpisodeNumber),
		)
		return wrapWriteError(fmt.Sprintf("create episode S%dE%d for title %s",
			episode.SeasonNumber, episode.EpisodeNumber, episode.TitleID.String()), err)
	}

	return nil
}

func (r *episodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Episode, error) {
	query := `SELECT ` + episodeColumns + ` FROM episodes WHERE id = $1`

	episode, err := scanEpisode(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find episode by ID",
			zap.Error(err),
			zap.String("episode_id", id.String()),
		)
		return nil, fmt.Errorf("find episode by ID %s: %w", id.String(), err)
	}

	return episode, nil
}

func (r *episodeRepository) FindByTitleID(ctx context.Context, titleID uuid.UUID, status *entity.Status) ([]*entity.Episode, error) {
	query := `SELECT ` + episodeColumns + ` FROM episodes WHERE title_id = $1`
	args := []any{titleID}

	if status != nil {
		query += " AND status = $2"
		args = append(args, string(*status))
	}
	query += " ORDER BY season_number ASC, episode_number ASC, created_at ASC, id ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find episodes by title ID",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return nil, fmt.Errorf("find episodes by title ID %s: %w", titleID.String(), err)
	}
	defer rows.Close()

	var episodes []*entity.Episode
	for rows.Next() {
		episode, err := scanEpisode(rows)
		if err != nil {
			r.log.Error("Failed to scan episode row", zap.Error(err))
			return nil, fmt.Errorf("scan episode row: %w", err)
		}
		episodes = append(episodes, episode)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate episode rows: %w", err)
	}

	return episodes, nil
}

func (r *episodeRepository) Update(ctx context.Context, episode *entity.Episode) error {
	query := `
		UPDATE episodes
		SET season_number = $2, episode_number = $3, episode_title = $4, synopsis = $5,
		    duration_minutes = $6, status = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		episode.ID,
		episode.SeasonNumber,
		episode.EpisodeNumber,
		episode.EpisodeTitle,
		episode.Synopsis,
		episode.DurationMinutes,
		string(episode.Status),
		episode.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update episode",
			zap.Error(err),
			zap.String("episode_id", episode.ID.String()),
		)
		return wrapWriteError("update episode "+episode.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (r *episodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM episodes WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete episode",
			zap.Error(err),
			zap.String("episode_id", id.String()),
		)
		return fmt.Errorf("delete episode %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNoRowsAffected
	}

	r.log.Info("Episode deleted", zap.String("episode_id", id.String()))
	return nil
}
