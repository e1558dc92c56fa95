package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"teamlink-service/internal/models"
)

const uniqueViolation = "23505"

// PgConnections is a sqlx implementation of ConnectionStore. Pair
// uniqueness is enforced by a partial unique index on pair_key covering
// pending and accepted rows, so a concurrent duplicate insert surfaces as
// ErrDuplicatePair rather than a second row.
type PgConnections struct {
	db *sqlx.DB
}

// NewPgConnections constructs a PgConnections.
func NewPgConnections(db *sqlx.DB) *PgConnections {
	return &PgConnections{db: db}
}

// Probe checks that the connections table is reachable.
func (s *PgConnections) Probe(ctx context.Context) error {
	var one int
	if err := s.db.GetContext(ctx, &one, `SELECT 1 FROM connections LIMIT 1`); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return nil
}

// InsertConnection appends a connection row.
func (s *PgConnections) InsertConnection(ctx context.Context, conn models.Connection) (models.Connection, error) {
	var out models.Connection
	err := s.db.QueryRowxContext(ctx, `INSERT INTO connections (id, pair_key, requester_id, recipient_id, status, message)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, pair_key, requester_id, recipient_id, status, message, created_at`,
		conn.ID, conn.PairKey, conn.RequesterID, conn.RecipientID, conn.Status, conn.Note).
		StructScan(&out)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return models.Connection{}, ErrDuplicatePair
		}
		return models.Connection{}, err
	}
	return out, nil
}

// UpdateConnectionStatus transitions a connection's status.
func (s *PgConnections) UpdateConnectionStatus(ctx context.Context, connectionID string, status string) (models.Connection, error) {
	var out models.Connection
	err := s.db.QueryRowxContext(ctx, `UPDATE connections SET status=$2 WHERE id=$1
        RETURNING id, pair_key, requester_id, recipient_id, status, message, created_at`,
		connectionID, status).
		StructScan(&out)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Connection{}, ErrConnectionNotFound
	}
	return out, err
}

// GetConnection fetches a connection by id.
func (s *PgConnections) GetConnection(ctx context.Context, connectionID string) (models.Connection, error) {
	var out models.Connection
	err := s.db.GetContext(ctx, &out, `SELECT id, pair_key, requester_id, recipient_id, status, message, created_at
        FROM connections WHERE id=$1`, connectionID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Connection{}, ErrConnectionNotFound
	}
	return out, err
}

// QueryConnections returns all connections involving the user, newest first.
func (s *PgConnections) QueryConnections(ctx context.Context, userID string) ([]models.Connection, error) {
	var out []models.Connection
	err := s.db.SelectContext(ctx, &out, `SELECT id, pair_key, requester_id, recipient_id, status, message, created_at
        FROM connections WHERE requester_id=$1 OR recipient_id=$1
        ORDER BY created_at DESC, id DESC`, userID)
	return out, err
}

// ActiveForPair returns the pending or accepted connection for a pair key,
// or ErrConnectionNotFound when none exists.
func (s *PgConnections) ActiveForPair(ctx context.Context, pairKey string) (models.Connection, error) {
	var out models.Connection
	err := s.db.GetContext(ctx, &out, `SELECT id, pair_key, requester_id, recipient_id, status, message, created_at
        FROM connections WHERE pair_key=$1 AND status IN ('pending', 'accepted')`, pairKey)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Connection{}, ErrConnectionNotFound
	}
	return out, err
}

// PgMessages is a sqlx implementation of MessageStore.
type PgMessages struct {
	db *sqlx.DB
}

// NewPgMessages constructs a PgMessages.
func NewPgMessages(db *sqlx.DB) *PgMessages {
	return &PgMessages{db: db}
}

// Probe checks that the messages table is reachable.
func (s *PgMessages) Probe(ctx context.Context) error {
	var one int
	if err := s.db.GetContext(ctx, &one, `SELECT 1 FROM messages LIMIT 1`); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return nil
}

// InsertMessage appends a message row.
func (s *PgMessages) InsertMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	var out models.Message
	err := s.db.QueryRowxContext(ctx, `INSERT INTO messages (id, sender_id, recipient_id, content, read)
        VALUES ($1, $2, $3, $4, FALSE)
        RETURNING id, seq, sender_id, recipient_id, content, read, created_at`,
		msg.ID, msg.SenderID, msg.RecipientID, msg.Content).
		StructScan(&out)
	return out, err
}

// QueryMessages returns the conversation between two users in ascending
// timestamp order, ties broken by insertion order.
func (s *PgMessages) QueryMessages(ctx context.Context, userA string, userB string) ([]models.Message, error) {
	var out []models.Message
	err := s.db.SelectContext(ctx, &out, `SELECT id, seq, sender_id, recipient_id, content, read, created_at
        FROM messages
        WHERE (sender_id=$1 AND recipient_id=$2) OR (sender_id=$2 AND recipient_id=$1)
        ORDER BY created_at ASC, seq ASC`, userA, userB)
	return out, err
}

// MarkMessagesRead flips the read flag on unread messages from peer to owner.
func (s *PgMessages) MarkMessagesRead(ctx context.Context, ownerID string, peerID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE messages SET read = TRUE
        WHERE recipient_id=$1 AND sender_id=$2 AND read = FALSE`, ownerID, peerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// PgProfiles is a sqlx implementation of ProfileStore.
type PgProfiles struct {
	db *sqlx.DB
}

// NewPgProfiles constructs a PgProfiles.
func NewPgProfiles(db *sqlx.DB) *PgProfiles {
	return &PgProfiles{db: db}
}

// Probe checks that the profiles table is reachable.
func (s *PgProfiles) Probe(ctx context.Context) error {
	var one int
	if err := s.db.GetContext(ctx, &one, `SELECT 1 FROM profiles LIMIT 1`); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return nil
}

// GetProfile fetches a profile by user id.
func (s *PgProfiles) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	var out models.Profile
	err := s.db.GetContext(ctx, &out, `SELECT user_id, name, role, bio, avatar_url, skills, looking_for, contact_email, created_at
        FROM profiles WHERE user_id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, ErrProfileNotFound
	}
	return out, err
}

// QueryProfiles fetches multiple profiles in one query. Missing ids are
// silently absent from the result.
func (s *PgProfiles) QueryProfiles(ctx context.Context, userIDs []string) ([]models.Profile, error) {
	if len(userIDs) == 0 {
		return []models.Profile{}, nil
	}
	var out []models.Profile
	err := s.db.SelectContext(ctx, &out, `SELECT user_id, name, role, bio, avatar_url, skills, looking_for, contact_email, created_at
        FROM profiles WHERE user_id = ANY($1)`, pq.Array(userIDs))
	return out, err
}
