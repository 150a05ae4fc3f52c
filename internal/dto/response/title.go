package response

import (
	"time"

	"streamvault/internal/data/entity"
)

type TrailerResponse struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

type TitleResponse struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Slug            string           `json:"slug"`
	Type            string           `json:"type"`
	Synopsis        *string          `json:"synopsis,omitempty"`
	Year            *int             `json:"year,omitempty"`
	Country         *string          `json:"country,omitempty"`
	Genres          []string         `json:"genres"`
	CastMembers     []string         `json:"cast_members"`
	Tags            []string         `json:"tags"`
	InternalRating  *float64         `json:"internal_rating,omitempty"`
	DurationMinutes *int             `json:"duration_minutes,omitempty"`
	Trailer         *TrailerResponse `json:"trailer,omitempty"`
	Featured        bool             `json:"featured"`
	Status          string           `json:"status"`
	PosterURL       *string          `json:"poster_url,omitempty"`
	BackdropURL     *string          `json:"backdrop_url,omitempty"`
	ViewsCount      int64            `json:"views_count"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type TitleDetailResponse struct {
	TitleResponse
	Episodes *EpisodeListResponse `json:"episodes,omitempty"`
}

type HomeResponse struct {
	Latest   []TitleResponse `json:"latest"`
	Trending []TitleResponse `json:"trending"`
	Featured []TitleResponse `json:"featured"`
}

type CatalogStatsResponse struct {
	TotalTitles      int64 `json:"total_titles"`
	PublishedTitles  int64 `json:"published_titles"`
	DraftTitles      int64 `json:"draft_titles"`
	ProcessingTitles int64 `json:"processing_titles"`
	FeaturedTitles   int64 `json:"featured_titles"`
	TotalViews       int64 `json:"total_views"`
}

type BulkActionResponse struct {
	Action   string `json:"action"`
	Affected int64  `json:"affected"`
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// Helper converters
func TitleToResponse(title *entity.Title) TitleResponse {
	var trailer *TrailerResponse
	if title.TrailerURL != nil && *title.TrailerURL != "" {
		trailer = &TrailerResponse{URL: *title.TrailerURL}
		if title.TrailerType != nil {
			trailer.Type = string(*title.TrailerType)
		}
	}

	return TitleResponse{
		ID:              title.ID.String(),
		Title:           title.Title,
		Slug:            title.Slug,
		Type:            string(title.Type),
		Synopsis:        title.Synopsis,
		Year:            title.Year,
		Country:         title.Country,
		Genres:          nonNil(title.Genres),
		CastMembers:     nonNil(title.CastMembers),
		Tags:            nonNil(title.Tags),
		InternalRating:  title.InternalRating,
		DurationMinutes: title.DurationMinutes,
		Trailer:         trailer,
		Featured:        title.Featured,
		Status:          string(title.Status),
		PosterURL:       title.PosterURL,
		BackdropURL:     title.BackdropURL,
		ViewsCount:      title.ViewsCount,
		CreatedAt:       title.CreatedAt,
		UpdatedAt:       title.UpdatedAt,
	}
}

func TitlesToResponse(titles []*entity.Title) []TitleResponse {
	out := make([]TitleResponse, len(titles))
	for i, t := range titles {
		out[i] = TitleToResponse(t)
	}
	return out
}

func StatsToResponse(stats *entity.CatalogStats) CatalogStatsResponse {
	return CatalogStatsResponse{
		TotalTitles:      stats.Total,
		PublishedTitles:  stats.Published,
		DraftTitles:      stats.Draft,
		ProcessingTitles: stats.Processing,
		FeaturedTitles:   stats.Featured,
		TotalViews:       stats.TotalViews,
	}
}

type GenreResponse struct {
	Name   string `json:"name"`
	Titles int64  `json:"titles"`
}

func GenresToResponse(genres []entity.GenreCount) []GenreResponse {
	out := make([]GenreResponse, len(genres))
	for i, g := range genres {
		out[i] = GenreResponse{Name: g.Name, Titles: g.Titles}
	}
	return out
}
