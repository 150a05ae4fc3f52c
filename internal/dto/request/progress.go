package request

type SaveProgressRequest struct {
	TitleID         string  `json:"title_id" validate:"required,uuid"`
	EpisodeID       *string `json:"episode_id,omitempty" validate:"omitempty,uuid"`
	ProgressSeconds float64 `json:"progress_seconds" validate:"gte=0,lte=2147483647"`
	DurationSeconds float64 `json:"duration_seconds" validate:"gte=0,lte=2147483647"`
}
