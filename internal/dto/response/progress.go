package response

import (
	"time"

	"streamvault/internal/data/entity"
)

// ProgressResponse distinguishes "never watched" (HasProgress=false) from a
// saved position of zero seconds.
type ProgressResponse struct {
	HasProgress     bool       `json:"has_progress"`
	ProgressSeconds *int       `json:"progress_seconds,omitempty"`
	DurationSeconds *int       `json:"duration_seconds,omitempty"`
	Completed       bool       `json:"completed"`
	LastWatched     *time.Time `json:"last_watched,omitempty"`
}

type SaveProgressResponse struct {
	SessionID string `json:"session_id"`
	Completed bool   `json:"completed"`
}

func ProgressToResponse(progress *entity.WatchProgress) ProgressResponse {
	if progress == nil {
		return ProgressResponse{}
	}

	return ProgressResponse{
		HasProgress:     true,
		ProgressSeconds: &progress.ProgressSeconds,
		DurationSeconds: &progress.DurationSeconds,
		Completed:       progress.Completed,
		LastWatched:     &progress.LastWatched,
	}
}
