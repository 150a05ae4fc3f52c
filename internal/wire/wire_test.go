package wire_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"streamvault/internal/data/entity"
	"streamvault/internal/testsupport"
	"streamvault/internal/wire"
	"streamvault/pkg/middleware"
	"streamvault/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newApp(t *testing.T, pinger wire.Pinger) (*wire.App, *testsupport.Catalog) {
	t.Helper()
	catalog := testsupport.NewCatalog()
	config := &utils.Config{Catalog: utils.CatalogConfig{
		BrowsePageSize:  24,
		SearchPageSize:  20,
		AdminPageSize:   20,
		HomeSectionSize: 12,
	}}
	return wire.Wiring(catalog.Repository(), pinger, config, testsupport.Logger(t)), catalog
}

func do(t *testing.T, app *wire.App, method, target string, body any, header http.Header) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	app, _ := newApp(t, stubPinger{})
	rec, _ := do(t, app, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	down, _ := newApp(t, stubPinger{err: errors.New("connection refused")})
	rec, _ = do(t, down, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSessionHeader(t *testing.T) {
	app, _ := newApp(t, stubPinger{})

	rec, _ := do(t, app, http.MethodGet, "/api/titles", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, err := uuid.Parse(rec.Header().Get("X-Session-ID"))
	assert.NoError(t, err, "a session id is minted")

	rec, _ = do(t, app, http.MethodGet, "/api/titles", nil, http.Header{"X-Session-Id": {"viewer-1"}})
	assert.Equal(t, "viewer-1", rec.Header().Get("X-Session-ID"))

	rec, _ = do(t, app, http.MethodGet, "/api/titles?session=viewer-2", nil, nil)
	assert.Equal(t, "viewer-2", rec.Header().Get("X-Session-ID"))
}

func TestCORSPreflight(t *testing.T) {
	app, _ := newApp(t, stubPinger{})

	rec, _ := do(t, app, http.MethodOptions, "/api/progress", nil, http.Header{
		"Origin":                         {"https://player.example.com"},
		"Access-Control-Request-Method":  {http.MethodPost},
		"Access-Control-Request-Headers": {"Content-Type, X-Session-ID"},
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-Session-Id")
}

func TestCORSExposesSessionHeader(t *testing.T) {
	app, _ := newApp(t, stubPinger{})

	rec, _ := do(t, app, http.MethodGet, "/health", nil, http.Header{
		"Origin": {"https://player.example.com"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "X-Session-Id", rec.Header().Get("Access-Control-Expose-Headers"))
	assert.NotEmpty(t, rec.Header().Get(middleware.SessionHeader))
}

func TestBrowseAndDetail(t *testing.T) {
	app, catalog := newApp(t, stubPinger{})
	catalog.SeedTitle(t, "Arrival", testsupport.WithGenres("Sci-Fi"), testsupport.WithViews(4))
	catalog.SeedTitle(t, "Heat", testsupport.WithGenres("Crime"))

	rec, env := do(t, app, http.MethodGet, "/api/titles?genre=Sci-Fi&sort=views", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Data []struct {
			Title string `json:"title"`
		} `json:"data"`
		Pagination struct {
			Total   int64 `json:"total"`
			PerPage int   `json:"per_page"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Arrival", page.Data[0].Title)
	assert.Equal(t, 24, page.Pagination.PerPage)

	rec, env = do(t, app, http.MethodGet, "/api/titles/arrival", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Views int64 `json:"views_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, int64(5), detail.Views)

	rec, _ = do(t, app, http.MethodGet, "/api/titles/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, app, http.MethodGet, "/api/titles/trending", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProgressRoundTrip(t *testing.T) {
	app, catalog := newApp(t, stubPinger{})
	title := catalog.SeedTitle(t, "Heat")
	session := http.Header{"X-Session-Id": {"viewer-1"}}

	rec, env := do(t, app, http.MethodPost, "/api/progress", map[string]any{
		"title_id":         title.ID.String(),
		"progress_seconds": 115.5,
		"duration_seconds": 120,
	}, session)
	require.Equal(t, http.StatusAccepted, rec.Code)
	var saved struct {
		Completed bool `json:"completed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	assert.True(t, saved.Completed)

	rec, env = do(t, app, http.MethodGet, "/api/progress?title_id="+title.ID.String(), nil, session)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		HasProgress     bool `json:"has_progress"`
		ProgressSeconds int  `json:"progress_seconds"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.True(t, got.HasProgress)
	assert.Equal(t, 115, got.ProgressSeconds)

	rec, _ = do(t, app, http.MethodPost, "/api/progress", map[string]any{"title_id": "nope"}, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProgressAcceptedWhenStoreDown(t *testing.T) {
	app, catalog := newApp(t, stubPinger{})
	catalog.Progress.Fail()

	rec, _ := do(t, app, http.MethodPost, "/api/progress", map[string]any{
		"title_id":         uuid.NewString(),
		"progress_seconds": 10,
		"duration_seconds": 100,
	}, nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestWatchAndAdjacent(t *testing.T) {
	app, catalog := newApp(t, stubPinger{})
	show := catalog.SeedTitle(t, "Show", testsupport.WithType(entity.TitleTypeSeries))
	first := catalog.SeedEpisode(t, show.ID, 1, 1, entity.StatusPublished)
	second := catalog.SeedEpisode(t, show.ID, 1, 2, entity.StatusPublished)

	rec, env := do(t, app, http.MethodGet, "/api/watch/"+show.ID.String()+"?episode="+second.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view struct {
		Previous *struct {
			ID string `json:"id"`
		} `json:"previous"`
		Next *struct {
			ID string `json:"id"`
		} `json:"next"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.NotNil(t, view.Previous)
	assert.Equal(t, first.ID.String(), view.Previous.ID)
	assert.Nil(t, view.Next)

	rec, _ = do(t, app, http.MethodGet,
		"/api/titles/"+show.ID.String()+"/episodes/"+first.ID.String()+"/adjacent", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminTitleLifecycle(t *testing.T) {
	app, _ := newApp(t, stubPinger{})

	rec, env := do(t, app, http.MethodPost, "/api/admin/titles", map[string]any{
		"title":  "The Expanse",
		"type":   "series",
		"genres": []string{"Sci-Fi"},
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID     string `json:"id"`
		Slug   string `json:"slug"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "the-expanse", created.Slug)
	assert.Equal(t, "draft", created.Status)

	rec, _ = do(t, app, http.MethodPost, "/api/admin/titles", map[string]any{
		"title": "The Expanse",
		"type":  "series",
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = do(t, app, http.MethodPost, "/api/admin/titles/"+created.ID+"/episodes", map[string]any{
		"season_number":  1,
		"episode_number": 1,
		"status":         "published",
	}, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = do(t, app, http.MethodPost, "/api/admin/titles/bulk", map[string]any{
		"ids":    []string{created.ID},
		"action": "publish",
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, app, http.MethodGet, "/api/titles/the-expanse", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, app, http.MethodGet, "/api/admin/stats", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, app, http.MethodDelete, "/api/admin/titles/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, app, http.MethodGet, "/api/admin/titles/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRejectsBadBody(t *testing.T) {
	app, _ := newApp(t, stubPinger{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/titles", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec2, _ := do(t, app, http.MethodPost, "/api/admin/titles", map[string]any{"title": "X", "type": "podcast"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
}
