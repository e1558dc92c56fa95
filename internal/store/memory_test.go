package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamlink-service/internal/models"
)

func TestMemoryConnectionsPairUniqueness(t *testing.T) {
	s := NewMemoryConnections()
	ctx := context.Background()

	_, err := s.InsertConnection(ctx, models.Connection{
		ID: "c1", PairKey: models.PairKey("u1", "u2"),
		RequesterID: "u1", RecipientID: "u2", Status: models.StatusPending,
	})
	require.NoError(t, err)

	_, err = s.InsertConnection(ctx, models.Connection{
		ID: "c2", PairKey: models.PairKey("u2", "u1"),
		RequesterID: "u2", RecipientID: "u1", Status: models.StatusPending,
	})
	assert.ErrorIs(t, err, ErrDuplicatePair)
}

func TestMemoryConnectionsRejectionReleasesPair(t *testing.T) {
	s := NewMemoryConnections()
	ctx := context.Background()
	pair := models.PairKey("u1", "u2")

	_, err := s.InsertConnection(ctx, models.Connection{
		ID: "c1", PairKey: pair, RequesterID: "u1", RecipientID: "u2", Status: models.StatusPending,
	})
	require.NoError(t, err)

	_, err = s.UpdateConnectionStatus(ctx, "c1", models.StatusRejected)
	require.NoError(t, err)

	_, err = s.ActiveForPair(ctx, pair)
	assert.ErrorIs(t, err, ErrConnectionNotFound)

	_, err = s.InsertConnection(ctx, models.Connection{
		ID: "c2", PairKey: pair, RequesterID: "u1", RecipientID: "u2", Status: models.StatusPending,
	})
	assert.NoError(t, err, "a rejected pair accepts a new request")
}

func TestMemoryConnectionsQueryNewestFirst(t *testing.T) {
	s := NewMemoryConnections()
	ctx := context.Background()
	base := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

	_, err := s.InsertConnection(ctx, models.Connection{
		ID: "c1", PairKey: models.PairKey("u1", "u2"),
		RequesterID: "u1", RecipientID: "u2", Status: models.StatusPending, CreatedAt: base,
	})
	require.NoError(t, err)
	_, err = s.InsertConnection(ctx, models.Connection{
		ID: "c2", PairKey: models.PairKey("u1", "u3"),
		RequesterID: "u3", RecipientID: "u1", Status: models.StatusPending, CreatedAt: base.Add(time.Hour),
	})
	require.NoError(t, err)

	conns, err := s.QueryConnections(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, conns, 2)
	assert.Equal(t, "c2", conns[0].ID)
	assert.Equal(t, "c1", conns[1].ID)

	others, err := s.QueryConnections(ctx, "u4")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestFixtureConnectionsSeeded(t *testing.T) {
	s := NewFixtureConnections()
	ctx := context.Background()

	conns, err := s.QueryConnections(ctx, "user1")
	require.NoError(t, err)
	assert.Len(t, conns, 2)

	active, err := s.ActiveForPair(ctx, models.PairKey("user1", "user3"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, active.Status)
}

func TestFixtureMessagesSeededAndSequenced(t *testing.T) {
	s := NewFixtureMessages()
	ctx := context.Background()

	msgs, err := s.QueryMessages(ctx, "user1", "user3")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "user3", msgs[0].SenderID)

	appended, err := s.InsertMessage(ctx, models.Message{ID: "m3", SenderID: "user1", RecipientID: "user3", Content: "ready when you are"})
	require.NoError(t, err)
	assert.Greater(t, appended.Seq, msgs[1].Seq, "sequence continues past the fixtures")
}

func TestFixtureProfilesDirectory(t *testing.T) {
	s := NewFixtureProfiles()
	ctx := context.Background()

	profile, err := s.GetProfile(ctx, "user2")
	require.NoError(t, err)
	assert.Equal(t, "Jordan Smith", profile.Name)

	_, err = s.GetProfile(ctx, "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	profiles, err := s.QueryProfiles(ctx, []string{"user1", "ghost", "user3"})
	require.NoError(t, err)
	assert.Len(t, profiles, 2, "missing ids are absent, not errors")
}
