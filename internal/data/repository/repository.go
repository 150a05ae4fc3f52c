package repository

import (
	"errors"
	"fmt"

	"streamvault/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	// ErrNoRowsAffected is returned by writes that matched no row.
	ErrNoRowsAffected = errors.New("no rows affected")
	// ErrDuplicate is returned when a write hits a unique constraint.
	ErrDuplicate = errors.New("already exists")
)

const uniqueViolation = "23505"

// wrapWriteError tags unique violations with ErrDuplicate.
func wrapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w (%s)", op, ErrDuplicate, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", op, err)
}

type Repository struct {
	Title    TitleRepository
	Genre    GenreRepository
	Episode  EpisodeRepository
	Progress WatchProgressRepository
	Trending TrendingRepository
}

// NewRepository builds every repository. rdb may be nil.
func NewRepository(db database.PgxIface, rdb *redis.Client, log *zap.Logger) *Repository {
	return &Repository{
		Title:    NewTitleRepository(db, log),
		Genre:    NewGenreRepository(db, log),
		Episode:  NewEpisodeRepository(db, log),
		Progress: NewWatchProgressRepository(db, log),
		Trending: NewTrendingRepository(rdb, log),
	}
}
