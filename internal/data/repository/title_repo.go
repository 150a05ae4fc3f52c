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

const titleColumns = `id, title, slug, type, synopsis, year, country, genres, cast_members, tags,
	internal_rating, duration_minutes, trailer_url, trailer_type, featured, status,
	poster_url, backdrop_url, views_count, created_at, updated_at`

type TitleRepository interface {
	// CRUD Title
	Create(ctx context.Context, title *entity.Title) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error)
	FindBySlug(ctx context.Context, slug string, status *entity.Status) (*entity.Title, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Title, error)
	Update(ctx context.Context, title *entity.Title) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Catalog listing
	FindAll(ctx context.Context, filter TitleFilter) ([]*entity.Title, error)
	CountAll(ctx context.Context, filter TitleFilter) (int64, error)

	// Bulk admin actions
	UpdateStatusBatch(ctx context.Context, ids []uuid.UUID, status entity.Status) (int64, error)
	DeleteBatch(ctx context.Context, ids []uuid.UUID) (int64, error)

	IncrementViews(ctx context.Context, id uuid.UUID) (int64, error)
	Stats(ctx context.Context) (*entity.CatalogStats, error)
}

type titleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTitleRepository(db database.PgxIface, log *zap.Logger) TitleRepository {
	return &titleRepository{
		db:  db,
		log: log.With(zap.String("repository", "title")),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTitle(row rowScanner) (*entity.Title, error) {
	var t entity.Title
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Slug,
		&t.Type,
		&t.Synopsis,
		&t.Year,
		&t.Country,
		&t.Genres,
		&t.CastMembers,
		&t.Tags,
		&t.InternalRating,
		&t.DurationMinutes,
		&t.TrailerURL,
		&t.TrailerType,
		&t.Featured,
		&t.Status,
		&t.PosterURL,
		&t.BackdropURL,
		&t.ViewsCount,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *titleRepository) scanTitles(rows pgx.Rows) ([]*entity.Title, error) {
	defer rows.Close()

	var titles []*entity.Title
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			r.log.Error("Failed to scan title row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		titles = append(titles, t)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return titles, nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func (r *titleRepository) Create(ctx context.Context, title *entity.Title) error {
	query := `
		INSERT INTO titles (id, title, slug, type, synopsis, year, country, genres, cast_members, tags,
		                    internal_rating, duration_minutes, trailer_url, trailer_type, featured, status,
		                    poster_url, backdrop_url, views_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	_, err := r.db.Exec(ctx, query,
		title.ID,
		title.Title,
		title.Slug,
		string(title.Type),
		title.Synopsis,
		title.Year,
		title.Country,
		emptyIfNil(title.Genres),
		emptyIfNil(title.CastMembers),
		emptyIfNil(title.Tags),
		title.InternalRating,
		title.DurationMinutes,
		title.TrailerURL,
		title.TrailerType,
		title.Featured,
		string(title.Status),
		title.PosterURL,
		title.BackdropURL,
		title.ViewsCount,
		title.CreatedAt,
		title.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create title",
			zap.Error(err),
			zap.String("title", title.Title),
			zap.String("slug", title.Slug),
		)
		return wrapWriteError("failed to create title", err)
	}

	return nil
}

func (r *titleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	query := `SELECT ` + titleColumns + ` FROM titles WHERE id = $1`

	title, err := scanTitle(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find title by ID",
			zap.Error(err),
			zap.String("title_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find title: %w", err)
	}

	return title, nil
}

func (r *titleRepository) FindBySlug(ctx context.Context, slug string, status *entity.Status) (*entity.Title, error) {
	query := `SELECT ` + titleColumns + ` FROM titles WHERE slug = $1`
	args := []any{slug}

	if status != nil {
		query += " AND status = $2"
		args = append(args, string(*status))
	}

	title, err := scanTitle(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find title by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("failed to find title: %w", err)
	}

	return title, nil
}

func (r *titleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Title, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + titleColumns + ` FROM titles WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find titles by IDs",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return nil, fmt.Errorf("failed to find titles: %w", err)
	}

	return r.scanTitles(rows)
}

func (r *titleRepository) FindAll(ctx context.Context, filter TitleFilter) ([]*entity.Title, error) {
	query, args := buildTitleListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find all titles",
			zap.Error(err),
			zap.Int("offset", filter.Offset()),
			zap.Int("limit", filter.Limit()),
			zap.String("search", filter.Search),
		)
		return nil, fmt.Errorf("failed to find titles: %w", err)
	}

	titles, err := r.scanTitles(rows)
	if err != nil {
		return nil, err
	}

	r.log.Debug("Titles found",
		zap.Int("count", len(titles)),
		zap.Int("offset", filter.Offset()),
		zap.Int("limit", filter.Limit()),
	)

	return titles, nil
}

func (r *titleRepository) CountAll(ctx context.Context, filter TitleFilter) (int64, error) {
	query, args := buildTitleCountQuery(filter)

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count titles",
			zap.Error(err),
			zap.String("search", filter.Search),
		)
		return 0, fmt.Errorf("failed to count titles: %w", err)
	}

	return total, nil
}

func (r *titleRepository) Update(ctx context.Context, title *entity.Title) error {
	query := `
		UPDATE titles
		SET title = $2, slug = $3, type = $4, synopsis = $5, year = $6, country = $7,
		    genres = $8, cast_members = $9, tags = $10, internal_rating = $11,
		    duration_minutes = $12, trailer_url = $13, trailer_type = $14, featured = $15,
		    status = $16, poster_url = $17, backdrop_url = $18, updated_at = $19
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		title.ID,
		title.Title,
		title.Slug,
		string(title.Type),
		title.Synopsis,
		title.Year,
		title.Country,
		emptyIfNil(title.Genres),
		emptyIfNil(title.CastMembers),
		emptyIfNil(title.Tags),
		title.InternalRating,
		title.DurationMinutes,
		title.TrailerURL,
		title.TrailerType,
		title.Featured,
		string(title.Status),
		title.PosterURL,
		title.BackdropURL,
		title.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update title",
			zap.Error(err),
			zap.String("title_id", title.ID.String()),
		)
		return wrapWriteError("failed to update title", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

// Delete removes the title for good; episodes and progress rows cascade.
func (r *titleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM titles WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete title",
			zap.Error(err),
			zap.String("title_id", id.String()),
		)
		return fmt.Errorf("failed to delete title: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNoRowsAffected
	}

	r.log.Info("Title deleted", zap.String("title_id", id.String()))
	return nil
}

func (r *titleRepository) UpdateStatusBatch(ctx context.Context, ids []uuid.UUID, status entity.Status) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `UPDATE titles SET status = $2, updated_at = NOW() WHERE id = ANY($1)`

	result, err := r.db.Exec(ctx, query, ids, string(status))
	if err != nil {
		r.log.Error("Failed to update title status batch",
			zap.Error(err),
			zap.Int("count", len(ids)),
			zap.String("status", string(status)),
		)
		return 0, fmt.Errorf("failed to update title status: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *titleRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result, err := r.db.Exec(ctx, `DELETE FROM titles WHERE id = ANY($1)`, ids)
	if err != nil {
		r.log.Error("Failed to delete title batch",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return 0, fmt.Errorf("failed to delete titles: %w", err)
	}

	r.log.Info("Titles deleted", zap.Int64("count", result.RowsAffected()))
	return result.RowsAffected(), nil
}

// IncrementViews bumps the counter in a single statement so concurrent
// viewers never lose an increment.
func (r *titleRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `UPDATE titles SET views_count = views_count + 1 WHERE id = $1 RETURNING views_count`

	var views int64
	err := r.db.QueryRow(ctx, query, id).Scan(&views)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNoRowsAffected
	}
	if err != nil {
		r.log.Error("Failed to increment title views",
			zap.Error(err),
			zap.String("title_id", id.String()),
		)
		return 0, fmt.Errorf("failed to increment views: %w", err)
	}

	return views, nil
}

func (r *titleRepository) Stats(ctx context.Context) (*entity.CatalogStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'published'),
			COUNT(*) FILTER (WHERE status = 'draft'),
			COUNT(*) FILTER (WHERE status = 'processing'),
			COUNT(*) FILTER (WHERE featured),
			COALESCE(SUM(views_count), 0)::bigint
		FROM titles
	`

	var stats entity.CatalogStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.Total,
		&stats.Published,
		&stats.Draft,
		&stats.Processing,
		&stats.Featured,
		&stats.TotalViews,
	)
	if err != nil {
		r.log.Error("Failed to get catalog stats", zap.Error(err))
		return nil, fmt.Errorf("failed to get catalog stats: %w", err)
	}

	return &stats, nil
}
