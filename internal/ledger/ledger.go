package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"teamlink-service/internal/models"
	"teamlink-service/internal/observability"
	"teamlink-service/internal/store"
	"teamlink-service/internal/telemetry"
)

var (
	// ErrSelfConnection is returned when a user requests a connection with
	// themselves.
	ErrSelfConnection = errors.New("cannot connect with yourself")
	// ErrDuplicateConnection is returned when a pending or accepted
	// connection already exists for the pair.
	ErrDuplicateConnection = errors.New("connection already exists")
	// ErrNotFound is returned when no connection matches the id for the
	// acting user.
	ErrNotFound = errors.New("connection not found")
	// ErrInvalidTransition is returned when accept or reject is called on a
	// connection that is no longer pending.
	ErrInvalidTransition = errors.New("connection is not pending")
)

// Ledger owns the lifecycle of connection requests between user pairs. All
// mutation goes through its operations; the backing store enforces the
// at-most-one-active-connection-per-pair invariant as a keyed constraint.
type Ledger struct {
	store    store.ConnectionStore
	notifier *telemetry.Notifier
	now      func() time.Time
	newID    func() string
}

// New constructs a Ledger. notifier may be nil.
func New(connStore store.ConnectionStore, notifier *telemetry.Notifier) *Ledger {
	return &Ledger{
		store:    connStore,
		notifier: notifier,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Request creates a pending connection from requester to recipient. The
// pre-check gives a friendly error for the common case; the insert itself
// re-checks through the store's pair constraint, so two concurrent requests
// for the same pair resolve to exactly one pending row.
func (l *Ledger) Request(ctx context.Context, requesterID, recipientID, note string) (models.Connection, error) {
	if requesterID == recipientID {
		observability.IncConnectionOp("request", "self")
		return models.Connection{}, ErrSelfConnection
	}

	pairKey := models.PairKey(requesterID, recipientID)
	if _, err := l.store.ActiveForPair(ctx, pairKey); err == nil {
		observability.IncConnectionOp("request", "duplicate")
		return models.Connection{}, ErrDuplicateConnection
	} else if !errors.Is(err, store.ErrConnectionNotFound) {
		observability.IncConnectionOp("request", "error")
		return models.Connection{}, fmt.Errorf("check pair: %w", err)
	}

	conn := models.Connection{
		ID:          l.newID(),
		PairKey:     pairKey,
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      models.StatusPending,
		Note:        note,
		CreatedAt:   l.now(),
	}

	out, err := l.store.InsertConnection(ctx, conn)
	if err != nil {
		if errors.Is(err, store.ErrDuplicatePair) {
			observability.IncConnectionOp("request", "duplicate")
			return models.Connection{}, ErrDuplicateConnection
		}
		observability.IncConnectionOp("request", "error")
		return models.Connection{}, err
	}

	observability.IncConnectionOp("request", "ok")
	l.notifier.Notify(ctx, "connection_requested", out.RecipientID, out)
	return out, nil
}

// Accept transitions a pending connection to accepted. Only the recipient
// may act, and only while the connection is still pending.
func (l *Ledger) Accept(ctx context.Context, actorID, connectionID string) (models.Connection, error) {
	return l.resolve(ctx, actorID, connectionID, models.StatusAccepted)
}

// Reject transitions a pending connection to rejected. A new request for
// the pair may be issued afterwards.
func (l *Ledger) Reject(ctx context.Context, actorID, connectionID string) (models.Connection, error) {
	return l.resolve(ctx, actorID, connectionID, models.StatusRejected)
}

func (l *Ledger) resolve(ctx context.Context, actorID, connectionID, status string) (models.Connection, error) {
	op := "accept"
	if status == models.StatusRejected {
		op = "reject"
	}

	conn, err := l.store.GetConnection(ctx, connectionID)
	if err != nil {
		if errors.Is(err, store.ErrConnectionNotFound) {
			observability.IncConnectionOp(op, "not_found")
			return models.Connection{}, ErrNotFound
		}
		observability.IncConnectionOp(op, "error")
		return models.Connection{}, err
	}
	if conn.RecipientID != actorID {
		observability.IncConnectionOp(op, "not_found")
		return models.Connection{}, ErrNotFound
	}
	if conn.Status != models.StatusPending {
		observability.IncConnectionOp(op, "invalid_transition")
		return models.Connection{}, ErrInvalidTransition
	}

	out, err := l.store.UpdateConnectionStatus(ctx, connectionID, status)
	if err != nil {
		if errors.Is(err, store.ErrConnectionNotFound) {
			observability.IncConnectionOp(op, "not_found")
			return models.Connection{}, ErrNotFound
		}
		observability.IncConnectionOp(op, "error")
		return models.Connection{}, err
	}

	observability.IncConnectionOp(op, "ok")
	l.notifier.Notify(ctx, "connection_"+status, out.RequesterID, out)
	return out, nil
}

// ListFor returns all connections involving the user, newest first,
// optionally filtered by status.
func (l *Ledger) ListFor(ctx context.Context, userID, statusFilter string) ([]models.Connection, error) {
	conns, err := l.store.QueryConnections(ctx, userID)
	if err != nil {
		return nil, err
	}
	if statusFilter == "" {
		return conns, nil
	}
	out := make([]models.Connection, 0, len(conns))
	for _, conn := range conns {
		if conn.Status == statusFilter {
			out = append(out, conn)
		}
	}
	return out, nil
}

// IsConnected reports whether the pair has an accepted connection.
func (l *Ledger) IsConnected(ctx context.Context, userID, otherID string) (bool, error) {
	conn, err := l.store.ActiveForPair(ctx, models.PairKey(userID, otherID))
	if errors.Is(err, store.ErrConnectionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return conn.Status == models.StatusAccepted, nil
}

// IsPending reports whether the pair has a pending connection.
func (l *Ledger) IsPending(ctx context.Context, userID, otherID string) (bool, error) {
	conn, err := l.store.ActiveForPair(ctx, models.PairKey(userID, otherID))
	if errors.Is(err, store.ErrConnectionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return conn.Status == models.StatusPending, nil
}
