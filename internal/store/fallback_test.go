package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"teamlink-service/internal/mocks"
	"teamlink-service/internal/models"
	"teamlink-service/internal/store"
)

func TestFallbackUsesLiveWhenProbeSucceeds(t *testing.T) {
	live := new(mocks.ConnectionStoreMock)
	live.On("Probe", mock.Anything).Return(nil).Once()
	live.On("QueryConnections", mock.Anything, "user1").Return([]models.Connection{{ID: "c1"}}, nil)

	s := store.NewFallbackConnections(live, store.NewFixtureConnections())

	conns, err := s.QueryConnections(context.Background(), "user1")
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, "c1", conns[0].ID)
	assert.Equal(t, store.ModeLive, s.Mode())
	live.AssertExpectations(t)
}

func TestFallbackPinsFixturesAfterFailedProbe(t *testing.T) {
	live := new(mocks.ConnectionStoreMock)
	live.On("Probe", mock.Anything).Return(errors.New("dial tcp: connection refused")).Once()

	s := store.NewFallbackConnections(live, store.NewFixtureConnections())
	ctx := context.Background()

	conns, err := s.QueryConnections(ctx, "user1")
	require.NoError(t, err)
	assert.Len(t, conns, 2, "fixture data served after a failed probe")
	assert.Equal(t, store.ModeFixtures, s.Mode())

	// The backend recovering later must not flip the collection back; the
	// probe ran once and the session stays on fixtures.
	_, err = s.InsertConnection(ctx, models.Connection{
		ID: "c9", PairKey: models.PairKey("user4", "user5"),
		RequesterID: "user4", RecipientID: "user5", Status: models.StatusPending,
	})
	require.NoError(t, err)
	got, err := s.ActiveForPair(ctx, models.PairKey("user4", "user5"))
	require.NoError(t, err)
	assert.Equal(t, "c9", got.ID, "writes land in the same fixture session")

	live.AssertExpectations(t)
	live.AssertNumberOfCalls(t, "Probe", 1)
	live.AssertNotCalled(t, "QueryConnections", mock.Anything, mock.Anything)
}

func TestFallbackNilLiveResolvesToFixtures(t *testing.T) {
	s := store.NewFallbackConnections(nil, store.NewFixtureConnections())

	assert.Equal(t, store.ModeUnresolved, s.Mode(), "mode is resolved lazily")

	_, err := s.GetConnection(context.Background(), "conn1")
	require.NoError(t, err)
	assert.Equal(t, store.ModeFixtures, s.Mode())
}

func TestFallbackWrapsLiveWriteFailures(t *testing.T) {
	live := new(mocks.MessageStoreMock)
	live.On("Probe", mock.Anything).Return(nil).Once()
	live.On("InsertMessage", mock.Anything, mock.Anything).Return(models.Message{}, errors.New("pq: connection reset"))

	s := store.NewFallbackMessages(live, store.NewFixtureMessages())

	_, err := s.InsertMessage(context.Background(), models.Message{SenderID: "user1", RecipientID: "user2", Content: "hi"})
	assert.ErrorIs(t, err, store.ErrBackendWrite)
	assert.Equal(t, store.ModeLive, s.Mode(), "a write failure after a healthy probe does not demote the collection")
}

func TestFallbackKeepsDomainErrorsUnwrapped(t *testing.T) {
	live := new(mocks.ConnectionStoreMock)
	live.On("Probe", mock.Anything).Return(nil).Once()
	live.On("InsertConnection", mock.Anything, mock.Anything).Return(models.Connection{}, store.ErrDuplicatePair)

	s := store.NewFallbackConnections(live, store.NewFixtureConnections())

	_, err := s.InsertConnection(context.Background(), models.Connection{ID: "c1"})
	assert.ErrorIs(t, err, store.ErrDuplicatePair)
	assert.NotErrorIs(t, err, store.ErrBackendWrite)
}

func TestFallbackCollectionsResolveIndependently(t *testing.T) {
	liveConns := new(mocks.ConnectionStoreMock)
	liveConns.On("Probe", mock.Anything).Return(errors.New("relation does not exist")).Once()
	liveMsgs := new(mocks.MessageStoreMock)
	liveMsgs.On("Probe", mock.Anything).Return(nil).Once()
	liveMsgs.On("QueryMessages", mock.Anything, "user1", "user3").Return([]models.Message{}, nil)

	conns := store.NewFallbackConnections(liveConns, store.NewFixtureConnections())
	msgs := store.NewFallbackMessages(liveMsgs, store.NewFixtureMessages())
	ctx := context.Background()

	_, err := conns.QueryConnections(ctx, "user1")
	require.NoError(t, err)
	_, err = msgs.QueryMessages(ctx, "user1", "user3")
	require.NoError(t, err)

	assert.Equal(t, store.ModeFixtures, conns.Mode())
	assert.Equal(t, store.ModeLive, msgs.Mode())
}
