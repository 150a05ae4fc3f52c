package usecase_test

import (
	"context"
	"testing"

	"streamvault/internal/data/entity"
	"streamvault/internal/dto/request"
	"streamvault/internal/testsupport"
	"streamvault/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEpisodeService(t *testing.T) (usecase.EpisodeService, usecase.ProgressService, *testsupport.Catalog) {
	t.Helper()
	catalog := testsupport.NewCatalog()
	log := testsupport.Logger(t)
	progress := usecase.NewProgressService(catalog.Progress, log)
	return usecase.NewEpisodeService(catalog.Repository(), progress, log), progress, catalog
}

func seedSeries(t *testing.T, catalog *testsupport.Catalog) (*entity.Title, []*entity.Episode) {
	t.Helper()
	show := catalog.SeedTitle(t, "Show", testsupport.WithType(entity.TitleTypeSeries))
	episodes := []*entity.Episode{
		catalog.SeedEpisode(t, show.ID, 1, 1, entity.StatusPublished),
		catalog.SeedEpisode(t, show.ID, 1, 2, entity.StatusPublished),
		catalog.SeedEpisode(t, show.ID, 2, 1, entity.StatusPublished),
	}
	return show, episodes
}

func TestListEpisodesGroupsSeasons(t *testing.T) {
	svc, _, catalog := newEpisodeService(t)
	show, _ := seedSeries(t, catalog)
	catalog.SeedEpisode(t, show.ID, 2, 2, entity.StatusDraft)

	all, err := svc.ListEpisodes(context.Background(), show.ID.String(), nil)
	require.NoError(t, err)
	assert.Len(t, all.Episodes, 4)
	require.Len(t, all.Seasons, 2)
	assert.Len(t, all.Seasons[1].Episodes, 2)

	published := entity.StatusPublished
	live, err := svc.ListEpisodes(context.Background(), show.ID.String(), &published)
	require.NoError(t, err)
	assert.Len(t, live.Episodes, 3)

	_, err = svc.ListEpisodes(context.Background(), uuid.NewString(), nil)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestGetAdjacentBoundaries(t *testing.T) {
	svc, _, catalog := newEpisodeService(t)
	show, episodes := seedSeries(t, catalog)

	first, err := svc.GetAdjacent(context.Background(), show.ID.String(), episodes[0].ID.String())
	require.NoError(t, err)
	assert.Nil(t, first.Previous)
	require.NotNil(t, first.Next)
	assert.Equal(t, episodes[1].ID.String(), first.Next.ID)

	last, err := svc.GetAdjacent(context.Background(), show.ID.String(), episodes[2].ID.String())
	require.NoError(t, err)
	require.NotNil(t, last.Previous)
	assert.Equal(t, episodes[1].ID.String(), last.Previous.ID)
	assert.Nil(t, last.Next)

	_, err = svc.GetAdjacent(context.Background(), show.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestGetAdjacentSkipsDrafts(t *testing.T) {
	svc, _, catalog := newEpisodeService(t)
	show := catalog.SeedTitle(t, "Show", testsupport.WithType(entity.TitleTypeSeries))
	one := catalog.SeedEpisode(t, show.ID, 1, 1, entity.StatusPublished)
	catalog.SeedEpisode(t, show.ID, 1, 2, entity.StatusDraft)
	three := catalog.SeedEpisode(t, show.ID, 1, 3, entity.StatusPublished)

	adj, err := svc.GetAdjacent(context.Background(), show.ID.String(), one.ID.String())
	require.NoError(t, err)
	require.NotNil(t, adj.Next)
	assert.Equal(t, three.ID.String(), adj.Next.ID)
}

func TestWatchEpisode(t *testing.T) {
	svc, progress, catalog := newEpisodeService(t)
	show, episodes := seedSeries(t, catalog)
	episodeID := episodes[1].ID.String()

	_, err := progress.SaveProgress(context.Background(), "session-1", &request.SaveProgressRequest{
		TitleID:         show.ID.String(),
		EpisodeID:       &episodeID,
		ProgressSeconds: 300,
		DurationSeconds: 1200,
	})
	require.NoError(t, err)

	view, err := svc.Watch(context.Background(), "session-1", show.ID.String(), &episodeID)
	require.NoError(t, err)
	assert.Equal(t, "Show", view.Title.Title)
	require.NotNil(t, view.Episode)
	assert.Equal(t, episodeID, view.Episode.ID)
	assert.Equal(t, episodes[0].ID.String(), view.Previous.ID)
	assert.Equal(t, episodes[2].ID.String(), view.Next.ID)
	assert.True(t, view.Progress.HasProgress)
	assert.Equal(t, 300, *view.Progress.ProgressSeconds)

	other, err := svc.Watch(context.Background(), "session-2", show.ID.String(), &episodeID)
	require.NoError(t, err)
	assert.False(t, other.Progress.HasProgress)
}

func TestWatchMovie(t *testing.T) {
	svc, _, catalog := newEpisodeService(t)
	movie := catalog.SeedTitle(t, "Movie")

	view, err := svc.Watch(context.Background(), "session-1", movie.ID.String(), nil)
	require.NoError(t, err)
	assert.Nil(t, view.Episode)
	assert.Nil(t, view.Previous)
	assert.Nil(t, view.Next)
}

func TestWatchRejectsUnpublished(t *testing.T) {
	svc, _, catalog := newEpisodeService(t)
	draft := catalog.SeedTitle(t, "Draft", testsupport.WithStatus(entity.StatusDraft))
	show, _ := seedSeries(t, catalog)
	hidden := catalog.SeedEpisode(t, show.ID, 3, 1, entity.StatusDraft).ID.String()

	_, err := svc.Watch(context.Background(), "s", draft.ID.String(), nil)
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	_, err = svc.Watch(context.Background(), "s", show.ID.String(), &hidden)
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	bad := "nope"
	_, err = svc.Watch(context.Background(), "s", show.ID.String(), &bad)
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestWatchIgnoresProgressFailure(t *testing.T) {
	svc, _, catalog := newEpisodeService(t)
	movie := catalog.SeedTitle(t, "Movie")
	catalog.Progress.Fail()

	view, err := svc.Watch(context.Background(), "session-1", movie.ID.String(), nil)
	require.NoError(t, err)
	assert.False(t, view.Progress.HasProgress)
}

func TestCreateEpisode(t *testing.T) {
	svc, _, catalog := newEpisodeService(t)
	show := catalog.SeedTitle(t, "Show", testsupport.WithType(entity.TitleTypeSeries))
	movie := catalog.SeedTitle(t, "Movie")

	created, err := svc.CreateEpisode(context.Background(), show.ID.String(), &request.EpisodeRequest{
		SeasonNumber:  1,
		EpisodeNumber: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "draft", created.Status)
	assert.Equal(t, show.ID.String(), created.TitleID)

	_, err = svc.CreateEpisode(context.Background(), show.ID.String(), &request.EpisodeRequest{
		SeasonNumber:  1,
		EpisodeNumber: 1,
	})
	assert.ErrorIs(t, err, usecase.ErrConflict)

	_, err = svc.CreateEpisode(context.Background(), movie.ID.String(), &request.EpisodeRequest{
		SeasonNumber:  1,
		EpisodeNumber: 1,
	})
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = svc.CreateEpisode(context.Background(), show.ID.String(), &request.EpisodeRequest{})
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestUpdateAndDeleteEpisode(t *testing.T) {
	svc, _, catalog := newEpisodeService(t)
	show, episodes := seedSeries(t, catalog)

	number := 5
	status := "draft"
	updated, err := svc.UpdateEpisode(context.Background(), episodes[0].ID.String(), &request.EpisodeUpdateRequest{
		EpisodeNumber: &number,
		Status:        &status,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.EpisodeNumber)
	assert.Equal(t, "draft", updated.Status)

	clash := 2
	_, err = svc.UpdateEpisode(context.Background(), episodes[0].ID.String(), &request.EpisodeUpdateRequest{
		EpisodeNumber: &clash,
	})
	assert.ErrorIs(t, err, usecase.ErrConflict)

	require.NoError(t, svc.DeleteEpisode(context.Background(), episodes[2].ID.String()))
	assert.ErrorIs(t, svc.DeleteEpisode(context.Background(), episodes[2].ID.String()), usecase.ErrNotFound)

	list, err := svc.ListEpisodes(context.Background(), show.ID.String(), nil)
	require.NoError(t, err)
	assert.Len(t, list.Episodes, 2)
}

func TestListEpisodesOrderIsStable(t *testing.T) {
	svc, _, catalog := newEpisodeService(t)
	show := catalog.SeedTitle(t, "Show", testsupport.WithType(entity.TitleTypeSeries))
	for _, se := range [][2]int{{2, 3}, {1, 2}, {2, 1}, {1, 1}, {2, 2}} {
		catalog.SeedEpisode(t, show.ID, se[0], se[1], entity.StatusPublished)
	}

	first, err := svc.ListEpisodes(context.Background(), show.ID.String(), nil)
	require.NoError(t, err)
	second, err := svc.ListEpisodes(context.Background(), show.ID.String(), nil)
	require.NoError(t, err)

	assert.Equal(t, first.Episodes, second.Episodes)
	var order [][2]int
	for _, e := range first.Episodes {
		order = append(order, [2]int{e.SeasonNumber, e.EpisodeNumber})
	}
	assert.Equal(t, [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {2, 3}}, order)
}
