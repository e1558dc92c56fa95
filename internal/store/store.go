package store

import (
	"context"
	"errors"

	"teamlink-service/internal/models"
)

var (
	// ErrConnectionNotFound is returned when no connection matches an id.
	ErrConnectionNotFound = errors.New("connection not found")
	// ErrDuplicatePair is returned when an active connection already exists
	// for the unordered user pair.
	ErrDuplicatePair = errors.New("active connection already exists for pair")
	// ErrProfileNotFound is returned when a profile cannot be resolved.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrBackendUnavailable marks the live backend as unreachable or
	// unconfigured. It is consumed by the fallback layer and never reaches
	// handlers directly.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrBackendWrite marks a live-mode write that did not happen. Callers
	// must not assume the mutation was applied.
	ErrBackendWrite = errors.New("backend write failed")
)

// ConnectionStore abstracts connection persistence.
type ConnectionStore interface {
	InsertConnection(ctx context.Context, conn models.Connection) (models.Connection, error)
	UpdateConnectionStatus(ctx context.Context, connectionID string, status string) (models.Connection, error)
	GetConnection(ctx context.Context, connectionID string) (models.Connection, error)
	QueryConnections(ctx context.Context, userID string) ([]models.Connection, error)
	ActiveForPair(ctx context.Context, pairKey string) (models.Connection, error)
}

// MessageStore abstracts message persistence. Messages are append-only
// except for the read flag.
type MessageStore interface {
	InsertMessage(ctx context.Context, msg models.Message) (models.Message, error)
	QueryMessages(ctx context.Context, userA string, userB string) ([]models.Message, error)
	MarkMessagesRead(ctx context.Context, ownerID string, peerID string) (int64, error)
}

// ProfileStore abstracts profile lookups for the directory.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (models.Profile, error)
	QueryProfiles(ctx context.Context, userIDs []string) ([]models.Profile, error)
}
