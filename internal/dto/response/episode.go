package response

import (
	"time"

	"streamvault/internal/data/entity"
)

type EpisodeResponse struct {
	ID              string    `json:"id"`
	TitleID         string    `json:"title_id"`
	SeasonNumber    int       `json:"season_number"`
	EpisodeNumber   int       `json:"episode_number"`
	EpisodeTitle    *string   `json:"episode_title,omitempty"`
	Synopsis        *string   `json:"synopsis,omitempty"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type SeasonResponse struct {
	SeasonNumber int               `json:"season_number"`
	Episodes     []EpisodeResponse `json:"episodes"`
}

type EpisodeListResponse struct {
	Episodes []EpisodeResponse `json:"episodes"`
	Seasons  []SeasonResponse  `json:"seasons"`
}

type AdjacentEpisodesResponse struct {
	Previous *EpisodeResponse `json:"previous"`
	Next     *EpisodeResponse `json:"next"`
}

type WatchResponse struct {
	Title    TitleResponse    `json:"title"`
	Episode  *EpisodeResponse `json:"episode,omitempty"`
	Previous *EpisodeResponse `json:"previous"`
	Next     *EpisodeResponse `json:"next"`
	Progress ProgressResponse `json:"progress"`
}

func EpisodeToResponse(episode *entity.Episode) EpisodeResponse {
	return EpisodeResponse{
		ID:              episode.ID.String(),
		TitleID:         episode.TitleID.String(),
		SeasonNumber:    episode.SeasonNumber,
		EpisodeNumber:   episode.EpisodeNumber,
		EpisodeTitle:    episode.EpisodeTitle,
		Synopsis:        episode.Synopsis,
		DurationMinutes: episode.DurationMinutes,
		Status:          string(episode.Status),
		CreatedAt:       episode.CreatedAt,
	}
}

// EpisodeToResponsePtr returns nil for a nil episode.
func EpisodeToResponsePtr(episode *entity.Episode) *EpisodeResponse {
	if episode == nil {
		return nil
	}
	resp := EpisodeToResponse(episode)
	return &resp
}

func EpisodesToResponse(episodes []*entity.Episode) []EpisodeResponse {
	out := make([]EpisodeResponse, len(episodes))
	for i, e := range episodes {
		out[i] = EpisodeToResponse(e)
	}
	return out
}

func EpisodeListToResponse(episodes []*entity.Episode, seasons []entity.Season) EpisodeListResponse {
	out := EpisodeListResponse{
		Episodes: EpisodesToResponse(episodes),
		Seasons:  make([]SeasonResponse, len(seasons)),
	}
	for i, s := range seasons {
		out.Seasons[i] = SeasonResponse{
			SeasonNumber: s.Number,
			Episodes:     EpisodesToResponse(s.Episodes),
		}
	}
	return out
}
