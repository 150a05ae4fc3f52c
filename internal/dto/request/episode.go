package request

type EpisodeRequest struct {
	SeasonNumber    int     `json:"season_number" validate:"required,min=1"`
	EpisodeNumber   int     `json:"episode_number" validate:"required,min=1"`
	EpisodeTitle    *string `json:"episode_title,omitempty" validate:"omitempty,max=200"`
	Synopsis        *string `json:"synopsis,omitempty" validate:"omitempty,max=5000"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=9999"`
	Status          string  `json:"status,omitempty" validate:"omitempty,oneof=draft published processing"`
}

type EpisodeUpdateRequest struct {
	SeasonNumber    *int    `json:"season_number,omitempty" validate:"omitempty,min=1"`
	EpisodeNumber   *int    `json:"episode_number,omitempty" validate:"omitempty,min=1"`
	EpisodeTitle    *string `json:"episode_title,omitempty" validate:"omitempty,max=200"`
	Synopsis        *string `json:"synopsis,omitempty" validate:"omitempty,max=5000"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=9999"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=draft published processing"`
}
