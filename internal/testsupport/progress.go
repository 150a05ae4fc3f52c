package testsupport

import (
	"context"
	"sync"

	"streamvault/internal/data/entity"
	"streamvault/internal/data/repository"

	"github.com/google/uuid"
)

// ProgressStore keys rows by (session, title, episode) with a missing
// episode acting as its own key value.
type ProgressStore struct {
	mu   sync.Mutex
	rows map[string]*entity.WatchProgress
	failSwitch
}

var _ repository.WatchProgressRepository = (*ProgressStore)(nil)

func progressKey(sessionID string, titleID uuid.UUID, episodeID *uuid.UUID) string {
	episode := "-"
	if episodeID != nil {
		episode = episodeID.String()
	}
	return sessionID + "|" + titleID.String() + "|" + episode
}

func (s *ProgressStore) Upsert(_ context.Context, progress *entity.WatchProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return err
	}

	key := progressKey(progress.SessionID, progress.TitleID, progress.EpisodeID)
	if existing, ok := s.rows[key]; ok {
		progress.ID = existing.ID
	} else if progress.ID == uuid.Nil {
		progress.ID = uuid.New()
	}

	row := *progress
	s.rows[key] = &row
	return nil
}

func (s *ProgressStore) Find(_ context.Context, sessionID string, titleID uuid.UUID, episodeID *uuid.UUID) (*entity.WatchProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return nil, err
	}
	if row, ok := s.rows[progressKey(sessionID, titleID, episodeID)]; ok {
		c := *row
		return &c, nil
	}
	return nil, nil
}

// Len reports how many progress rows are stored.
func (s *ProgressStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}
