package entity

type TitleType string

const (
	TitleTypeMovie  TitleType = "movie"
	TitleTypeSeries TitleType = "series"
)

func (t TitleType) Valid() bool {
	return t == TitleTypeMovie || t == TitleTypeSeries
}

type TrailerType string

const (
	TrailerTypeYouTube TrailerType = "youtube"
	TrailerTypeVimeo   TrailerType = "vimeo"
	TrailerTypeMP4     TrailerType = "mp4"
)

type Title struct {
	Base
	Title           string       `db:"title"`
	Slug            string       `db:"slug"`
	Type            TitleType    `db:"type"`
	Synopsis        *string      `db:"synopsis"`
	Year            *int         `db:"year"`
	Country         *string      `db:"country"`
	Genres          []string     `db:"genres"`
	CastMembers     []string     `db:"cast_members"`
	Tags            []string     `db:"tags"`
	InternalRating  *float64     `db:"internal_rating"`
	DurationMinutes *int         `db:"duration_minutes"`
	TrailerURL      *string      `db:"trailer_url"`
	TrailerType     *TrailerType `db:"trailer_type"`
	Featured        bool         `db:"featured"`
	Status          Status       `db:"status"`
	PosterURL       *string      `db:"poster_url"`
	BackdropURL     *string      `db:"backdrop_url"`
	ViewsCount      int64        `db:"views_count"`
}

func (t *Title) IsSeries() bool {
	return t.Type == TitleTypeSeries
}

// CatalogStats is the admin dashboard summary over every title.
type CatalogStats struct {
	Total      int64
	Published  int64
	Draft      int64
	Processing int64
	Featured   int64
	TotalViews int64
}

// GenreCount is one genre tag and how many titles carry it.
type GenreCount struct {
	Name   string
	Titles int64
}
