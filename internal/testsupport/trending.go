package testsupport

import (
	"context"
	"sort"
	"sync"

	"streamvault/internal/data/repository"

	"github.com/google/uuid"
)

// TrendingStore mimics the redis view ranking. It reports itself disabled
// until Enable is called.
type TrendingStore struct {
	mu      sync.Mutex
	enabled bool
	scores  map[uuid.UUID]float64
	failSwitch
}

var _ repository.TrendingRepository = (*TrendingStore)(nil)

func (s *TrendingStore) Enable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = true
}

func (s *TrendingStore) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

func (s *TrendingStore) RecordView(_ context.Context, titleID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return nil
	}
	if err := s.err(); err != nil {
		return err
	}
	s.scores[titleID]++
	return nil
}

func (s *TrendingStore) Top(_ context.Context, limit int) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return nil, nil
	}
	if err := s.err(); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(s.scores))
	for id := range s.scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if s.scores[ids[i]] != s.scores[ids[j]] {
			return s.scores[ids[i]] > s.scores[ids[j]]
		}
		return ids[i].String() > ids[j].String()
	})
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (s *TrendingStore) Remove(_ context.Context, ids ...uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return nil
	}
	for _, id := range ids {
		delete(s.scores, id)
	}
	return nil
}

// Score reads one title's ranking score.
func (s *TrendingStore) Score(id uuid.UUID) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scores[id]
}
