package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const trendingKey = "rank:titles:views"

// TrendingRepository keeps a redis sorted set of title views. With no redis
// client configured every method is a no-op and Enabled reports false.
type TrendingRepository interface {
	Enabled() bool
	RecordView(ctx context.Context, titleID uuid.UUID) error
	Top(ctx context.Context, limit int) ([]uuid.UUID, error)
	Remove(ctx context.Context, ids ...uuid.UUID) error
}

type trendingRepository struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewTrendingRepository(rdb *redis.Client, log *zap.Logger) TrendingRepository {
	return &trendingRepository{
		rdb: rdb,
		log: log.With(zap.String("repository", "trending")),
	}
}

func (r *trendingRepository) Enabled() bool {
	return r.rdb != nil
}

func (r *trendingRepository) RecordView(ctx context.Context, titleID uuid.UUID) error {
	if r.rdb == nil {
		return nil
	}

	if err := r.rdb.ZIncrBy(ctx, trendingKey, 1, titleID.String()).Err(); err != nil {
		r.log.Warn("Failed to record trending view",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return fmt.Errorf("record trending view: %w", err)
	}

	return nil
}

func (r *trendingRepository) Top(ctx context.Context, limit int) ([]uuid.UUID, error) {
	if r.rdb == nil || limit <= 0 {
		return nil, nil
	}

	members, err := r.rdb.ZRevRange(ctx, trendingKey, 0, int64(limit-1)).Result()
	if err != nil {
		r.log.Warn("Failed to read trending ranking", zap.Error(err))
		return nil, fmt.Errorf("read trending ranking: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			r.log.Warn("Skipping malformed trending member", zap.String("member", m))
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (r *trendingRepository) Remove(ctx context.Context, ids ...uuid.UUID) error {
	if r.rdb == nil || len(ids) == 0 {
		return nil
	}

	members := make([]any, len(ids))
	for i, id := range ids {
		members[i] = id.String()
	}

	if err := r.rdb.ZRem(ctx, trendingKey, members...).Err(); err != nil {
		r.log.Warn("Failed to remove trending members", zap.Error(err), zap.Int("count", len(ids)))
		return fmt.Errorf("remove trending members: %w", err)
	}

	return nil
}
