package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamlink-service/internal/store"
)

func newTestMessenger(t *testing.T) *Messenger {
	t.Helper()
	m := New(store.NewMemoryMessages(), nil)

	base := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	m.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return m
}

func TestSendAppendsMessage(t *testing.T) {
	m := newTestMessenger(t)
	ctx := context.Background()

	msg, err := m.Send(ctx, "u1", "u2", "hi")
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "u1", msg.SenderID)
	assert.Equal(t, "u2", msg.RecipientID)
	assert.False(t, msg.Read)

	msgs, err := m.Conversation(ctx, "u1", "u2")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Content)
}

func TestSendEmptyContent(t *testing.T) {
	m := newTestMessenger(t)
	ctx := context.Background()

	_, err := m.Send(ctx, "u1", "u2", "")
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = m.Send(ctx, "u1", "u2", "   \t\n")
	assert.ErrorIs(t, err, ErrEmptyContent)

	msgs, err := m.Conversation(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.Empty(t, msgs, "no message is appended on validation failure")
}

func TestSendUnauthenticated(t *testing.T) {
	m := newTestMessenger(t)

	_, err := m.Send(context.Background(), "", "u2", "hi")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestConversationAscendingBothDirections(t *testing.T) {
	m := newTestMessenger(t)
	ctx := context.Background()

	_, err := m.Send(ctx, "u1", "u2", "hi")
	require.NoError(t, err)
	_, err = m.Send(ctx, "u2", "u1", "hello")
	require.NoError(t, err)
	_, err = m.Send(ctx, "u1", "u3", "other thread")
	require.NoError(t, err)

	msgs, err := m.Conversation(ctx, "u1", "u2")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hi", msgs[0].Content)
	assert.Equal(t, "hello", msgs[1].Content)

	// Same result regardless of argument order.
	reversed, err := m.Conversation(ctx, "u2", "u1")
	require.NoError(t, err)
	assert.Equal(t, msgs, reversed)
}

func TestConversationTimestampTieBrokenByInsertionOrder(t *testing.T) {
	m := newTestMessenger(t)
	ctx := context.Background()

	fixed := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	_, err := m.Send(ctx, "u1", "u2", "first")
	require.NoError(t, err)
	_, err = m.Send(ctx, "u2", "u1", "second")
	require.NoError(t, err)

	msgs, err := m.Conversation(ctx, "u1", "u2")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Content)
	assert.Equal(t, "second", msgs[1].Content)
}

func TestMarkRead(t *testing.T) {
	m := newTestMessenger(t)
	ctx := context.Background()

	_, err := m.Send(ctx, "u2", "u1", "hello")
	require.NoError(t, err)
	_, err = m.Send(ctx, "u2", "u1", "anyone there?")
	require.NoError(t, err)
	_, err = m.Send(ctx, "u1", "u2", "yes!")
	require.NoError(t, err)

	updated, err := m.MarkRead(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	msgs, err := m.Conversation(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.True(t, msgs[0].Read)
	assert.True(t, msgs[1].Read)
	assert.False(t, msgs[2].Read, "only messages addressed to the owner flip")

	updated, err = m.MarkRead(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.Zero(t, updated, "mark read is idempotent")
}
