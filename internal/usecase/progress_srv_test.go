package usecase_test

import (
	"context"
	"testing"

	"streamvault/internal/dto/request"
	"streamvault/internal/testsupport"
	"streamvault/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressService(t *testing.T) (usecase.ProgressService, *testsupport.ProgressStore) {
	t.Helper()
	catalog := testsupport.NewCatalog()
	return usecase.NewProgressService(catalog.Progress, testsupport.Logger(t)), catalog.Progress
}

func TestSaveProgressUpsertsOneRow(t *testing.T) {
	svc, store := newProgressService(t)
	titleID := uuid.NewString()

	for _, seconds := range []float64{10, 60.7, 45} {
		_, err := svc.SaveProgress(context.Background(), "session-1", &request.SaveProgressRequest{
			TitleID:         titleID,
			ProgressSeconds: seconds,
			DurationSeconds: 600,
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, store.Len())

	got, err := svc.GetProgress(context.Background(), "session-1", titleID, nil)
	require.NoError(t, err)
	require.True(t, got.HasProgress)
	assert.Equal(t, 45, *got.ProgressSeconds, "last write wins")
	assert.Equal(t, 600, *got.DurationSeconds)
}

func TestSaveProgressKeysByEpisode(t *testing.T) {
	svc, store := newProgressService(t)
	titleID := uuid.NewString()
	episodeA := uuid.NewString()
	episodeB := uuid.NewString()

	for _, episode := range []*string{nil, &episodeA, &episodeB, &episodeA} {
		_, err := svc.SaveProgress(context.Background(), "session-1", &request.SaveProgressRequest{
			TitleID:         titleID,
			EpisodeID:       episode,
			ProgressSeconds: 5,
			DurationSeconds: 100,
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, store.Len())

	_, err := svc.SaveProgress(context.Background(), "session-2", &request.SaveProgressRequest{
		TitleID:         titleID,
		ProgressSeconds: 5,
		DurationSeconds: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, store.Len())
}

func TestSaveProgressCompletion(t *testing.T) {
	svc, _ := newProgressService(t)

	tests := []struct {
		name     string
		elapsed  float64
		duration float64
		want     bool
	}{
		{name: "past threshold", elapsed: 109, duration: 120, want: true},
		{name: "at threshold", elapsed: 108, duration: 120, want: false},
		{name: "fractional past threshold", elapsed: 108.9, duration: 120, want: true},
		{name: "fractional duration", elapsed: 108.5, duration: 120.4, want: true},
		{name: "short fractional", elapsed: 9.5, duration: 10.4, want: true},
		{name: "fractional below threshold", elapsed: 107.9, duration: 120, want: false},
		{name: "early", elapsed: 30, duration: 120, want: false},
		{name: "unknown duration", elapsed: 30, duration: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.SaveProgress(context.Background(), "session-1", &request.SaveProgressRequest{
				TitleID:         uuid.NewString(),
				ProgressSeconds: tt.elapsed,
				DurationSeconds: tt.duration,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Completed)
			assert.Equal(t, "session-1", resp.SessionID)
		})
	}
}

func TestSaveProgressSwallowsWriteFailure(t *testing.T) {
	svc, store := newProgressService(t)
	store.Fail()

	resp, err := svc.SaveProgress(context.Background(), "session-1", &request.SaveProgressRequest{
		TitleID:         uuid.NewString(),
		ProgressSeconds: 119,
		DurationSeconds: 120,
	})
	require.NoError(t, err)
	assert.True(t, resp.Completed)

	store.Heal()
	assert.Equal(t, 0, store.Len())
}

func TestSaveProgressValidation(t *testing.T) {
	svc, _ := newProgressService(t)
	badEpisode := "episode-1"

	tests := []struct {
		name    string
		session string
		req     request.SaveProgressRequest
	}{
		{name: "missing session", req: request.SaveProgressRequest{TitleID: uuid.NewString()}},
		{name: "bad title", session: "s", req: request.SaveProgressRequest{TitleID: "movie"}},
		{name: "bad episode", session: "s", req: request.SaveProgressRequest{TitleID: uuid.NewString(), EpisodeID: &badEpisode}},
		{name: "negative", session: "s", req: request.SaveProgressRequest{TitleID: uuid.NewString(), ProgressSeconds: -1}},
		{name: "elapsed out of range", session: "s", req: request.SaveProgressRequest{TitleID: uuid.NewString(), ProgressSeconds: 1e19, DurationSeconds: 120}},
		{name: "duration out of range", session: "s", req: request.SaveProgressRequest{TitleID: uuid.NewString(), ProgressSeconds: 10, DurationSeconds: 2147483648}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveProgress(context.Background(), tt.session, &tt.req)
			assert.ErrorIs(t, err, usecase.ErrInvalidInput)
		})
	}
}

func TestGetProgressNone(t *testing.T) {
	svc, store := newProgressService(t)

	got, err := svc.GetProgress(context.Background(), "session-1", uuid.NewString(), nil)
	require.NoError(t, err)
	assert.False(t, got.HasProgress)
	assert.Nil(t, got.ProgressSeconds)

	store.Fail()
	_, err = svc.GetProgress(context.Background(), "session-1", uuid.NewString(), nil)
	assert.ErrorIs(t, err, usecase.ErrFetchFailed)
}

func TestSaveProgressReplayIsIdempotent(t *testing.T) {
	svc, store := newProgressService(t)
	titleID := uuid.NewString()
	episodeID := uuid.NewString()
	req := &request.SaveProgressRequest{
		TitleID:         titleID,
		EpisodeID:       &episodeID,
		ProgressSeconds: 30,
		DurationSeconds: 120,
	}

	for i := 0; i < 2; i++ {
		_, err := svc.SaveProgress(context.Background(), "session-1", req)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, store.Len())
	got, err := svc.GetProgress(context.Background(), "session-1", titleID, &episodeID)
	require.NoError(t, err)
	assert.Equal(t, 30, *got.ProgressSeconds)
	assert.False(t, got.Completed)
}
