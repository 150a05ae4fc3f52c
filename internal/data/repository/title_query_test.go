package repository

import (
	"math"
	"strings"
	"testing"

	"streamvault/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestTitleFilter_Pagination(t *testing.T) {
	f := TitleFilter{Page: 3, PageSize: 24}
	assert.Equal(t, 24, f.Limit())
	assert.Equal(t, 48, f.Offset())

	f = TitleFilter{}
	assert.Equal(t, defaultPageSize, f.Limit())
	assert.Equal(t, 0, f.Offset())

	f = TitleFilter{Page: 2, PageSize: 20}
	assert.Equal(t, 20, f.Offset())

	f = TitleFilter{Page: math.MaxInt, PageSize: 24}
	assert.Positive(t, f.Offset())
}

func TestBuildTitleListQuery_NoFilters(t *testing.T) {
	query, args := buildTitleListQuery(TitleFilter{Page: 1, PageSize: 24})

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY created_at DESC NULLS LAST, created_at ASC, id ASC")
	assert.True(t, strings.HasSuffix(query, "LIMIT $1 OFFSET $2"))
	assert.Equal(t, []any{24, 0}, args)
}

func TestBuildTitleListQuery_AllFiltersConjunctive(t *testing.T) {
	f := TitleFilter{
		Status:    ptr(entity.StatusPublished),
		Type:      ptr(entity.TitleTypeSeries),
		Genres:    []string{"Horror", "Comedy"},
		Year:      ptr(2021),
		Featured:  ptr(true),
		Search:    "action",
		SortField: SortByViews,
		SortOrder: SortDesc,
		Page:      2,
		PageSize:  20,
	}

	query, args := buildTitleListQuery(f)

	assert.Contains(t, query, "WHERE status = $1 AND type = $2 AND genres && $3::text[] AND year = $4 AND featured = $5 AND (")
	assert.Contains(t, query, "title ILIKE $6 OR synopsis ILIKE $6")
	assert.Contains(t, query, "unnest(cast_members) AS c(name) WHERE lower(c.name) = lower($7)")
	assert.Contains(t, query, "unnest(tags) AS t(tag) WHERE lower(t.tag) = lower($7)")
	assert.Contains(t, query, "ORDER BY views_count DESC NULLS LAST, created_at ASC, id ASC")
	assert.True(t, strings.HasSuffix(query, "LIMIT $8 OFFSET $9"))

	require.Len(t, args, 9)
	assert.Equal(t, "published", args[0])
	assert.Equal(t, "series", args[1])
	assert.Equal(t, []string{"Horror", "Comedy"}, args[2])
	assert.Equal(t, 2021, args[3])
	assert.Equal(t, true, args[4])
	assert.Equal(t, "%action%", args[5])
	assert.Equal(t, "action", args[6])
	assert.Equal(t, 20, args[7])
	assert.Equal(t, 20, args[8])
}

func TestBuildTitleCountQuery_SharesWhereClause(t *testing.T) {
	f := TitleFilter{Status: ptr(entity.StatusDraft), Search: "x", Page: 5, PageSize: 10}

	query, args := buildTitleCountQuery(f)

	assert.True(t, strings.HasPrefix(query, "SELECT COUNT(*) FROM titles WHERE status = $1 AND ("))
	assert.NotContains(t, query, "ORDER BY")
	assert.NotContains(t, query, "LIMIT")
	assert.Equal(t, []any{"draft", "%x%", "x"}, args)
}

func TestBuildTitleListQuery_SearchEscapesWildcards(t *testing.T) {
	_, args := buildTitleListQuery(TitleFilter{Search: `50%_off\`})
	assert.Equal(t, `%50\%\_off\\%`, args[0])
	assert.Equal(t, `50%_off\`, args[1])
}

func TestBuildTitleListQuery_BlankSearchIgnored(t *testing.T) {
	query, args := buildTitleListQuery(TitleFilter{Search: "   "})
	assert.NotContains(t, query, "ILIKE")
	assert.Len(t, args, 2)
}

func TestBuildTitleListQuery_Sorting(t *testing.T) {
	tests := []struct {
		field SortField
		order SortOrder
		want  string
	}{
		{SortByTitle, SortAsc, "ORDER BY title ASC"},
		{SortByYear, SortDesc, "ORDER BY year DESC"},
		{SortByRating, SortDesc, "ORDER BY internal_rating DESC"},
		{SortByCreatedAt, SortAsc, "ORDER BY created_at ASC"},
		{SortField("1; DROP TABLE titles"), SortAsc, "ORDER BY created_at ASC"},
		{"", "", "ORDER BY created_at DESC"},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			query, _ := buildTitleListQuery(TitleFilter{SortField: tt.field, SortOrder: tt.order})
			assert.Contains(t, query, tt.want)
			assert.NotContains(t, query, "DROP")
		})
	}
}
