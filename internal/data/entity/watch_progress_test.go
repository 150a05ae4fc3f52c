package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsCompleted(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  float64
		duration float64
		want     bool
	}{
		{"above threshold", 109, 120, true},
		{"fractional above threshold", 108.9, 120, true},
		{"fractional duration", 108.5, 120.4, true},
		{"short fractional", 9.5, 10.4, true},
		{"below threshold", 100, 120, false},
		{"exactly threshold is not completed", 108, 120, false},
		{"finished", 120, 120, true},
		{"zero duration", 50, 0, false},
		{"negative duration", 50, -10, false},
		{"nothing watched", 0, 120, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCompleted(tt.elapsed, tt.duration))
		})
	}
}

func TestNewWatchProgress_DerivesCompleted(t *testing.T) {
	titleID := uuid.New()
	now := time.Now()

	p := NewWatchProgress("s1", titleID, nil, 109, 120, now)
	assert.True(t, p.Completed)
	assert.Nil(t, p.EpisodeID)
	assert.Equal(t, 109, p.ProgressSeconds)
	assert.Equal(t, now, p.LastWatched)

	p = NewWatchProgress("s1", titleID, nil, 100, 120, now)
	assert.False(t, p.Completed)
}

func TestNewWatchProgress_FloorsStoredSecondsOnly(t *testing.T) {
	p := NewWatchProgress("s1", uuid.New(), nil, 108.9, 120.4, time.Now())
	assert.Equal(t, 108, p.ProgressSeconds)
	assert.Equal(t, 120, p.DurationSeconds)
	assert.True(t, p.Completed)
}

func TestEpisodeBefore(t *testing.T) {
	s1e2 := &Episode{SeasonNumber: 1, EpisodeNumber: 2}
	s2e1 := &Episode{SeasonNumber: 2, EpisodeNumber: 1}
	s1e1 := &Episode{SeasonNumber: 1, EpisodeNumber: 1}

	assert.True(t, s1e1.Before(s1e2))
	assert.True(t, s1e2.Before(s2e1))
	assert.False(t, s2e1.Before(s1e1))
	assert.False(t, s1e1.Before(s1e1))
}
