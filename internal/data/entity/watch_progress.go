package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// CompletionThreshold is the watched fraction above which playback counts as completed.
const CompletionThreshold = 0.9

type WatchProgress struct {
	ID              uuid.UUID  `db:"id"`
	SessionID       string     `db:"session_id"`
	TitleID         uuid.UUID  `db:"title_id"`
	EpisodeID       *uuid.UUID `db:"episode_id"`
	ProgressSeconds int        `db:"progress_seconds"`
	DurationSeconds int        `db:"duration_seconds"`
	Completed       bool       `db:"completed"`
	LastWatched     time.Time  `db:"last_watched"`
}

// NewWatchProgress builds a progress row from player positions. Completed is
// derived from the raw values; only the stored seconds are floored.
func NewWatchProgress(sessionID string, titleID uuid.UUID, episodeID *uuid.UUID, elapsed, duration float64, at time.Time) *WatchProgress {
	return &WatchProgress{
		SessionID:       sessionID,
		TitleID:         titleID,
		EpisodeID:       episodeID,
		ProgressSeconds: int(math.Floor(elapsed)),
		DurationSeconds: int(math.Floor(duration)),
		Completed:       IsCompleted(elapsed, duration),
		LastWatched:     at,
	}
}

// IsCompleted reports elapsed/duration > CompletionThreshold. A zero or
// negative duration never completes.
func IsCompleted(elapsed, duration float64) bool {
	if duration <= 0 {
		return false
	}
	return elapsed/duration > CompletionThreshold
}
