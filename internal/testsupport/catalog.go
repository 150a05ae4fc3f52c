// Package testsupport holds in-memory repositories used by service and
// handler tests.
package testsupport

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"streamvault/internal/data/entity"
	"streamvault/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInjected is what a repository returns after Fail is called.
var ErrInjected = errors.New("injected failure")

// Catalog bundles in-memory implementations of every repository.
type Catalog struct {
	Titles   *TitleStore
	Episodes *EpisodeStore
	Progress *ProgressStore
	Trending *TrendingStore
}

// NewCatalog returns empty stores. The trending store starts disabled.
func NewCatalog() *Catalog {
	return &Catalog{
		Titles:   &TitleStore{rows: map[uuid.UUID]*entity.Title{}},
		Episodes: &EpisodeStore{rows: map[uuid.UUID]*entity.Episode{}},
		Progress: &ProgressStore{rows: map[string]*entity.WatchProgress{}},
		Trending: &TrendingStore{scores: map[uuid.UUID]float64{}},
	}
}

// Repository wires the stores into a repository.Repository.
func (c *Catalog) Repository() *repository.Repository {
	return &repository.Repository{
		Title:    c.Titles,
		Genre:    c.Titles,
		Episode:  c.Episodes,
		Progress: c.Progress,
		Trending: c.Trending,
	}
}

// Logger returns a no-op zap logger.
func Logger(t testing.TB) *zap.Logger {
	t.Helper()
	return zap.NewNop()
}

// TitleOption customizes a seeded title.
type TitleOption func(*entity.Title)

func WithStatus(s entity.Status) TitleOption {
	return func(t *entity.Title) { t.Status = s }
}

func WithType(tt entity.TitleType) TitleOption {
	return func(t *entity.Title) { t.Type = tt }
}

func WithGenres(genres ...string) TitleOption {
	return func(t *entity.Title) { t.Genres = genres }
}

func WithTags(tags ...string) TitleOption {
	return func(t *entity.Title) { t.Tags = tags }
}

func WithCast(names ...string) TitleOption {
	return func(t *entity.Title) { t.CastMembers = names }
}

func WithSynopsis(s string) TitleOption {
	return func(t *entity.Title) { t.Synopsis = &s }
}

func WithYear(y int) TitleOption {
	return func(t *entity.Title) { t.Year = &y }
}

func WithFeatured() TitleOption {
	return func(t *entity.Title) { t.Featured = true }
}

func WithViews(n int64) TitleOption {
	return func(t *entity.Title) { t.ViewsCount = n }
}

func WithCreatedAt(at time.Time) TitleOption {
	return func(t *entity.Title) {
		t.CreatedAt = at
		t.UpdatedAt = at
	}
}

var seedEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// SeedTitle stores a published movie named name, then applies opts. Each
// seeded title is created one minute after the previous one.
func (c *Catalog) SeedTitle(t testing.TB, name string, opts ...TitleOption) *entity.Title {
	t.Helper()

	c.Titles.mu.Lock()
	at := seedEpoch.Add(time.Duration(len(c.Titles.rows)) * time.Minute)
	c.Titles.mu.Unlock()

	title := &entity.Title{
		Base:   entity.Base{ID: uuid.New(), CreatedAt: at, UpdatedAt: at},
		Title:  name,
		Slug:   strings.ReplaceAll(strings.ToLower(name), " ", "-"),
		Type:   entity.TitleTypeMovie,
		Status: entity.StatusPublished,
	}
	for _, opt := range opts {
		opt(title)
	}

	if err := c.Titles.Create(context.Background(), title); err != nil {
		t.Fatalf("seed title %s: %v", name, err)
	}
	return title
}

// SeedEpisode stores a published episode of titleID.
func (c *Catalog) SeedEpisode(t testing.TB, titleID uuid.UUID, season, number int, status entity.Status) *entity.Episode {
	t.Helper()

	episode := &entity.Episode{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: seedEpoch, UpdatedAt: seedEpoch},
		TitleID:       titleID,
		SeasonNumber:  season,
		EpisodeNumber: number,
		Status:        status,
	}
	if err := c.Episodes.Create(context.Background(), episode); err != nil {
		t.Fatalf("seed episode S%dE%d: %v", season, number, err)
	}
	return episode
}

// failSwitch makes a store return ErrInjected while set.
type failSwitch struct {
	failing bool
}

func (f *failSwitch) Fail() { f.failing = true }
func (f *failSwitch) Heal() { f.failing = false }
func (f *failSwitch) err() error {
	if f.failing {
		return ErrInjected
	}
	return nil
}

func copyTitle(t *entity.Title) *entity.Title {
	c := *t
	return &c
}

// TitleStore evaluates repository.TitleFilter in memory with the same
// matching, ordering and paging rules as the SQL builder.
type TitleStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entity.Title
	failSwitch

	incrementFails bool
}

var (
	_ repository.TitleRepository = (*TitleStore)(nil)
	_ repository.GenreRepository = (*TitleStore)(nil)
)

func (s *TitleStore) Create(_ context.Context, title *entity.Title) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return err
	}
	for _, existing := range s.rows {
		if existing.Slug == title.Slug {
			return repository.ErrDuplicate
		}
	}
	s.rows[title.ID] = copyTitle(title)
	return nil
}

func (s *TitleStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Title, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return nil, err
	}
	if t, ok := s.rows[id]; ok {
		return copyTitle(t), nil
	}
	return nil, nil
}

func (s *TitleStore) FindBySlug(_ context.Context, slug string, status *entity.Status) (*entity.Title, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return nil, err
	}
	for _, t := range s.rows {
		if t.Slug == slug && (status == nil || t.Status == *status) {
			return copyTitle(t), nil
		}
	}
	return nil, nil
}

func (s *TitleStore) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Title, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return nil, err
	}
	var out []*entity.Title
	for _, id := range ids {
		if t, ok := s.rows[id]; ok {
			out = append(out, copyTitle(t))
		}
	}
	return out, nil
}

func (s *TitleStore) Update(_ context.Context, title *entity.Title) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return err
	}
	if _, ok := s.rows[title.ID]; !ok {
		return repository.ErrNoRowsAffected
	}
	for id, existing := range s.rows {
		if id != title.ID && existing.Slug == title.Slug {
			return repository.ErrDuplicate
		}
	}
	s.rows[title.ID] = copyTitle(title)
	return nil
}

func (s *TitleStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return err
	}
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNoRowsAffected
	}
	delete(s.rows, id)
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func memberFold(values []string, needle string) bool {
	for _, v := range values {
		if strings.ToLower(v) == strings.ToLower(needle) {
			return true
		}
	}
	return false
}

func overlaps(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func matches(t *entity.Title, f repository.TitleFilter) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if len(f.Genres) > 0 && !overlaps(t.Genres, f.Genres) {
		return false
	}
	if f.Year != nil && (t.Year == nil || *t.Year != *f.Year) {
		return false
	}
	if f.Featured != nil && t.Featured != *f.Featured {
		return false
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		synopsis := ""
		if t.Synopsis != nil {
			synopsis = *t.Synopsis
		}
		if !containsFold(t.Title, q) && !containsFold(synopsis, q) &&
			!memberFold(t.CastMembers, q) && !memberFold(t.Tags, q) {
			return false
		}
	}
	return true
}

// compareField orders two titles by one column. Missing values sort last in
// both directions.
func compareField(a, b *entity.Title, field repository.SortField) (cmp int, aNull, bNull bool) {
	switch field {
	case repository.SortByTitle:
		return strings.Compare(a.Title, b.Title), false, false
	case repository.SortByYear:
		if a.Year == nil || b.Year == nil {
			return 0, a.Year == nil, b.Year == nil
		}
		return *a.Year - *b.Year, false, false
	case repository.SortByViews:
		switch {
		case a.ViewsCount < b.ViewsCount:
			return -1, false, false
		case a.ViewsCount > b.ViewsCount:
			return 1, false, false
		}
		return 0, false, false
	case repository.SortByRating:
		if a.InternalRating == nil || b.InternalRating == nil {
			return 0, a.InternalRating == nil, b.InternalRating == nil
		}
		switch {
		case *a.InternalRating < *b.InternalRating:
			return -1, false, false
		case *a.InternalRating > *b.InternalRating:
			return 1, false, false
		}
		return 0, false, false
	}
	return a.CreatedAt.Compare(b.CreatedAt), false, false
}

func (s *TitleStore) filtered(f repository.TitleFilter) []*entity.Title {
	var out []*entity.Title
	for _, t := range s.rows {
		if matches(t, f) {
			out = append(out, t)
		}
	}

	desc := f.SortOrder != repository.SortAsc
	field := f.SortField
	if !field.Valid() {
		field = repository.SortByCreatedAt
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		cmp, aNull, bNull := compareField(a, b, field)
		switch {
		case aNull && !bNull:
			return false
		case bNull && !aNull:
			return true
		}
		if cmp != 0 {
			if desc {
				return cmp > 0
			}
			return cmp < 0
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
	return out
}

func (s *TitleStore) FindAll(_ context.Context, f repository.TitleFilter) ([]*entity.Title, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return nil, err
	}

	all := s.filtered(f)
	start := f.Offset()
	if start >= len(all) {
		return []*entity.Title{}, nil
	}
	end := len(all)
	if f.Limit() < end-start {
		end = start + f.Limit()
	}

	page := make([]*entity.Title, 0, end-start)
	for _, t := range all[start:end] {
		page = append(page, copyTitle(t))
	}
	return page, nil
}

func (s *TitleStore) CountAll(_ context.Context, f repository.TitleFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return 0, err
	}
	return int64(len(s.filtered(f))), nil
}

func (s *TitleStore) UpdateStatusBatch(_ context.Context, ids []uuid.UUID, status entity.Status) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		if t, ok := s.rows[id]; ok {
			t.Status = status
			n++
		}
	}
	return n, nil
}

func (s *TitleStore) DeleteBatch(_ context.Context, ids []uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		if _, ok := s.rows[id]; ok {
			delete(s.rows, id)
			n++
		}
	}
	return n, nil
}

// FailIncrement makes only IncrementViews fail.
func (s *TitleStore) FailIncrement() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incrementFails = true
}

func (s *TitleStore) IncrementViews(_ context.Context, id uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return 0, err
	}
	if s.incrementFails {
		return 0, ErrInjected
	}
	t, ok := s.rows[id]
	if !ok {
		return 0, repository.ErrNoRowsAffected
	}
	t.ViewsCount++
	return t.ViewsCount, nil
}

func (s *TitleStore) Stats(_ context.Context) (*entity.CatalogStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return nil, err
	}
	stats := &entity.CatalogStats{}
	for _, t := range s.rows {
		stats.Total++
		switch t.Status {
		case entity.StatusPublished:
			stats.Published++
		case entity.StatusDraft:
			stats.Draft++
		case entity.StatusProcessing:
			stats.Processing++
		}
		if t.Featured {
			stats.Featured++
		}
		stats.TotalViews += t.ViewsCount
	}
	return stats, nil
}

// Views reads the stored view counter.
func (s *TitleStore) Views(id uuid.UUID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.rows[id]; ok {
		return t.ViewsCount
	}
	return 0
}

func (s *TitleStore) CountByStatus(_ context.Context, status entity.Status) ([]entity.GenreCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.err(); err != nil {
		return nil, err
	}

	counts := map[string]int64{}
	for _, t := range s.rows {
		if t.Status != status {
			continue
		}
		for _, g := range t.Genres {
			counts[g]++
		}
	}

	genres := make([]entity.GenreCount, 0, len(counts))
	for name, n := range counts {
		genres = append(genres, entity.GenreCount{Name: name, Titles: n})
	}
	sort.Slice(genres, func(i, j int) bool {
		if genres[i].Titles != genres[j].Titles {
			return genres[i].Titles > genres[j].Titles
		}
		return genres[i].Name < genres[j].Name
	})
	return genres, nil
}
