package entity

import "github.com/google/uuid"

type Episode struct {
	Base
	TitleID         uuid.UUID `db:"title_id"`
	SeasonNumber    int       `db:"season_number"`
	EpisodeNumber   int       `db:"episode_number"`
	EpisodeTitle    *string   `db:"episode_title"`
	Synopsis        *string   `db:"synopsis"`
	DurationMinutes *int      `db:"duration_minutes"`
	Status          Status    `db:"status"`
}

// Before reports whether e sorts ahead of other in (season, episode) order.
func (e *Episode) Before(other *Episode) bool {
	if e.SeasonNumber != other.SeasonNumber {
		return e.SeasonNumber < other.SeasonNumber
	}
	return e.EpisodeNumber < other.EpisodeNumber
}

// Season is one season's episodes in playback order.
type Season struct {
	Number   int
	Episodes []*Episode
}
