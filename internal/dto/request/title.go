package request

type TitleRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=200"`
	Slug            *string  `json:"slug,omitempty" validate:"omitempty,min=1,max=200"`
	Type            string   `json:"type" validate:"required,oneof=movie series"`
	Synopsis        *string  `json:"synopsis,omitempty" validate:"omitempty,max=5000"`
	Year            *int     `json:"year,omitempty" validate:"omitempty,gte=1888,lte=2100"`
	Country         *string  `json:"country,omitempty" validate:"omitempty,max=100"`
	Genres          []string `json:"genres,omitempty" validate:"dive,min=1,max=50"`
	CastMembers     []string `json:"cast_members,omitempty" validate:"dive,min=1,max=100"`
	Tags            []string `json:"tags,omitempty" validate:"dive,min=1,max=50"`
	InternalRating  *float64 `json:"internal_rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=9999"`
	TrailerURL      *string  `json:"trailer_url,omitempty" validate:"omitempty,url"`
	TrailerType     *string  `json:"trailer_type,omitempty" validate:"omitempty,oneof=youtube vimeo mp4"`
	Featured        bool     `json:"featured"`
	PosterURL       *string  `json:"poster_url,omitempty" validate:"omitempty,url"`
	BackdropURL     *string  `json:"backdrop_url,omitempty" validate:"omitempty,url"`
}

type TitleUpdateRequest struct {
	Title           *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Slug            *string   `json:"slug,omitempty" validate:"omitempty,min=1,max=200"`
	Type            *string   `json:"type,omitempty" validate:"omitempty,oneof=movie series"`
	Synopsis        *string   `json:"synopsis,omitempty" validate:"omitempty,max=5000"`
	Year            *int      `json:"year,omitempty" validate:"omitempty,gte=1888,lte=2100"`
	Country         *string   `json:"country,omitempty" validate:"omitempty,max=100"`
	Genres          *[]string `json:"genres,omitempty" validate:"omitempty,dive,min=1,max=50"`
	CastMembers     *[]string `json:"cast_members,omitempty" validate:"omitempty,dive,min=1,max=100"`
	Tags            *[]string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
	InternalRating  *float64  `json:"internal_rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	DurationMinutes *int      `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=9999"`
	TrailerURL      *string   `json:"trailer_url,omitempty" validate:"omitempty,url"`
	TrailerType     *string   `json:"trailer_type,omitempty" validate:"omitempty,oneof=youtube vimeo mp4"`
	Featured        *bool     `json:"featured,omitempty"`
	Status          *string   `json:"status,omitempty" validate:"omitempty,oneof=draft published processing"`
	PosterURL       *string   `json:"poster_url,omitempty" validate:"omitempty,url"`
	BackdropURL     *string   `json:"backdrop_url,omitempty" validate:"omitempty,url"`
}

type BulkTitleRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1,dive,uuid"`
	Action string   `json:"action" validate:"required,oneof=delete publish unpublish"`
}

// TitleListRequest carries every listing knob; empty values mean "no filter".
type TitleListRequest struct {
	Status    string   `validate:"omitempty,oneof=draft published processing"`
	Type      string   `validate:"omitempty,oneof=movie series"`
	Genres    []string `validate:"dive,min=1"`
	Search    string   `validate:"max=200"`
	Year      *int     `validate:"omitempty,gte=1888,lte=2100"`
	Featured  *bool
	SortBy    string `validate:"omitempty,oneof=created_at title year views_count internal_rating"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
	PaginatedRequest
}
