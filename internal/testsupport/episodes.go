package testsupport

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"streamvault/internal/data/entity"
	"streamvault/internal/data/repository"

	"github.com/google/uuid"
)

type EpisodeStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entity.Episode
	failSwitch
}

var _ repository.EpisodeRepository = (*EpisodeStore)(nil)

func copyEpisode(e *entity.Episode) *entity.Episode {
	c := *e
	return &c
}

func (s *EpisodeStore) duplicate(e *entity.Episode) bool {
	for id, existing := range s.rows {
		if id != e.ID && existing.TitleID == e.TitleID &&
			existing.SeasonNumber == e.SeasonNumber && existing.EpisodeNumber == e.EpisodeNumber {
			return true
		}
	}
	return false
}

func (s *EpisodeStore) Create(_ context.Context, episode *entity.Episode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return err
	}
	if s.duplicate(episode) {
		return fmt.Errorf("create episode: %w", repository.ErrDuplicate)
	}
	s.rows[episode.ID] = copyEpisode(episode)
	return nil
}

func (s *EpisodeStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Episode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return nil, err
	}
	if e, ok := s.rows[id]; ok {
		return copyEpisode(e), nil
	}
	return nil, nil
}

func (s *EpisodeStore) Update(_ context.Context, episode *entity.Episode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return err
	}
	if _, ok := s.rows[episode.ID]; !ok {
		return repository.ErrNoRowsAffected
	}
	if s.duplicate(episode) {
		return fmt.Errorf("update episode: %w", repository.ErrDuplicate)
	}
	s.rows[episode.ID] = copyEpisode(episode)
	return nil
}

func (s *EpisodeStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return err
	}
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNoRowsAffected
	}
	delete(s.rows, id)
	return nil
}

func (s *EpisodeStore) FindByTitleID(_ context.Context, titleID uuid.UUID, status *entity.Status) ([]*entity.Episode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return nil, err
	}

	var out []*entity.Episode
	for _, e := range s.rows {
		if e.TitleID == titleID && (status == nil || e.Status == *status) {
			out = append(out, copyEpisode(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SeasonNumber != out[j].SeasonNumber || out[i].EpisodeNumber != out[j].EpisodeNumber {
			return out[i].Before(out[j])
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}
