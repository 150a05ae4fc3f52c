package repository

import (
	"fmt"
	"strings"

	"streamvault/internal/data/entity"
	"streamvault/pkg/utils"
)

type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortByTitle     SortField = "title"
	SortByYear      SortField = "year"
	SortByViews     SortField = "views_count"
	SortByRating    SortField = "internal_rating"
)

func (f SortField) Valid() bool {
	switch f {
	case SortByCreatedAt, SortByTitle, SortByYear, SortByViews, SortByRating:
		return true
	}
	return false
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const defaultPageSize = 24

// TitleFilter is the complete description of one catalog listing request.
// Every non-nil filter must match (AND). A zero value lists every title,
// newest first, 24 per page.
type TitleFilter struct {
	Status   *entity.Status
	Type     *entity.TitleType
	Genres   []string // overlap: at least one genre in common
	Search   string
	Year     *int
	Featured *bool

	SortField SortField
	SortOrder SortOrder
	Page      int
	PageSize  int
}

func (f TitleFilter) Limit() int {
	if f.PageSize < 1 {
		return defaultPageSize
	}
	return f.PageSize
}

func (f TitleFilter) Offset() int {
	return utils.CalculateOffset(f.Page, f.Limit())
}

func (f TitleFilter) sortColumn() string {
	if f.SortField.Valid() {
		return string(f.SortField)
	}
	return string(SortByCreatedAt)
}

func (f TitleFilter) sortDirection() string {
	if f.SortOrder == SortAsc {
		return "ASC"
	}
	return "DESC"
}

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// whereClause renders the filter conditions starting at placeholder $1.
func (f TitleFilter) whereClause() (string, []any) {
	var conds []string
	args := []any{}
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != nil {
		conds = append(conds, "status = "+next(string(*f.Status)))
	}
	if f.Type != nil {
		conds = append(conds, "type = "+next(string(*f.Type)))
	}
	if len(f.Genres) > 0 {
		conds = append(conds, "genres && "+next(f.Genres)+"::text[]")
	}
	if f.Year != nil {
		conds = append(conds, "year = "+next(*f.Year))
	}
	if f.Featured != nil {
		conds = append(conds, "featured = "+next(*f.Featured))
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := next("%" + escapeLike(search) + "%")
		exact := next(search)
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE %[1]s OR synopsis ILIKE %[1]s"+
				" OR EXISTS (SELECT 1 FROM unnest(cast_members) AS c(name) WHERE lower(c.name) = lower(%[2]s))"+
				" OR EXISTS (SELECT 1 FROM unnest(tags) AS t(tag) WHERE lower(t.tag) = lower(%[2]s)))",
			pattern, exact))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause sorts by the requested column and breaks ties by creation order.
func (f TitleFilter) orderClause() string {
	return fmt.Sprintf(" ORDER BY %s %s NULLS LAST, created_at ASC, id ASC", f.sortColumn(), f.sortDirection())
}

func buildTitleListQuery(f TitleFilter) (string, []any) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + titleColumns + " FROM titles")

	where, args := f.whereClause()
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(f.orderClause())

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, f.Limit(), f.Offset())

	return queryBuilder.String(), args
}

func buildTitleCountQuery(f TitleFilter) (string, []any) {
	where, args := f.whereClause()
	return "SELECT COUNT(*) FROM titles" + where, args
}
