package messaging

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"teamlink-service/internal/models"
	"teamlink-service/internal/observability"
	"teamlink-service/internal/store"
	"teamlink-service/internal/telemetry"
)

var (
	// ErrEmptyContent is returned when the message body trims to nothing.
	ErrEmptyContent = errors.New("message content is empty")
	// ErrUnauthenticated is returned when the sender id is absent.
	ErrUnauthenticated = errors.New("sender is not authenticated")
)

// Messenger owns the append-only conversation log per user pair.
type Messenger struct {
	store    store.MessageStore
	notifier *telemetry.Notifier
	now      func() time.Time
	newID    func() string
}

// New constructs a Messenger. notifier may be nil.
func New(msgStore store.MessageStore, notifier *telemetry.Notifier) *Messenger {
	return &Messenger{
		store:    msgStore,
		notifier: notifier,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Send durably appends a message before returning it. There is no delivery
// guarantee beyond the append.
func (m *Messenger) Send(ctx context.Context, fromID, toID, content string) (models.Message, error) {
	if fromID == "" {
		return models.Message{}, ErrUnauthenticated
	}
	if strings.TrimSpace(content) == "" {
		return models.Message{}, ErrEmptyContent
	}

	msg := models.Message{
		ID:          m.newID(),
		SenderID:    fromID,
		RecipientID: toID,
		Content:     content,
		CreatedAt:   m.now(),
	}

	out, err := m.store.InsertMessage(ctx, msg)
	if err != nil {
		return models.Message{}, err
	}

	observability.IncMessageSent()
	m.notifier.Notify(ctx, "message_received", out.RecipientID, out)
	return out, nil
}

// Conversation returns the full message history between two users, sorted
// ascending by timestamp. Recomputed from the message set on every call.
func (m *Messenger) Conversation(ctx context.Context, userA, userB string) ([]models.Message, error) {
	return m.store.QueryMessages(ctx, userA, userB)
}

// MarkRead flips the read flag on all messages addressed to owner from
// peer. Best-effort; no read receipt is pushed back to the sender.
func (m *Messenger) MarkRead(ctx context.Context, ownerID, peerID string) (int64, error) {
	return m.store.MarkMessagesRead(ctx, ownerID, peerID)
}
