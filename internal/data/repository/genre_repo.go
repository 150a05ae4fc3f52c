package repository

import (
	"context"
	"fmt"

	"streamvault/internal/data/entity"
	"streamvault/pkg/database"

	"go.uber.org/zap"
)

// GenreRepository aggregates the genre tags carried by titles.
type GenreRepository interface {
	// CountByStatus returns each genre with the number of titles in status
	// carrying it, most used first.
	CountByStatus(ctx context.Context, status entity.Status) ([]entity.GenreCount, error)
}

type genreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

func (r *genreRepository) CountByStatus(ctx context.Context, status entity.Status) ([]entity.GenreCount, error) {
	query := `
		SELECT g.name, COUNT(*)
		FROM titles t
		CROSS JOIN LATERAL unnest(t.genres) AS g(name)
		WHERE t.status = $1
		GROUP BY g.name
		ORDER BY COUNT(*) DESC, g.name ASC
	`

	rows, err := r.db.Query(ctx, query, string(status))
	if err != nil {
		r.log.Error("Failed to count genres",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("count genres: %w", err)
	}
	defer rows.Close()

	genres := []entity.GenreCount{}
	for rows.Next() {
		var genre entity.GenreCount
		if err := rows.Scan(&genre.Name, &genre.Titles); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre rows: %w", err)
	}

	return genres, nil
}
