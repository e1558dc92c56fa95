package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"teamlink-service/internal/models"
)

// MemoryConnections is an in-memory ConnectionStore used for fixture
// sessions and tests. Pair uniqueness is a property of the activeByPair
// map, not of filtering logic.
type MemoryConnections struct {
	mu           sync.Mutex
	byID         map[string]models.Connection
	activeByPair map[string]string
	now          func() time.Time
}

// NewMemoryConnections builds an empty store.
func NewMemoryConnections() *MemoryConnections {
	return &MemoryConnections{
		byID:         make(map[string]models.Connection),
		activeByPair: make(map[string]string),
		now:          time.Now,
	}
}

// NewFixtureConnections builds a store pre-seeded with demo data.
func NewFixtureConnections() *MemoryConnections {
	s := NewMemoryConnections()
	for _, conn := range FixtureConnections() {
		s.byID[conn.ID] = conn
		if conn.Active() {
			s.activeByPair[conn.PairKey] = conn.ID
		}
	}
	return s
}

// InsertConnection appends a connection, rejecting a second active row for
// the same pair.
func (s *MemoryConnections) InsertConnection(ctx context.Context, conn models.Connection) (models.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.activeByPair[conn.PairKey]; exists {
		return models.Connection{}, ErrDuplicatePair
	}
	if conn.CreatedAt.IsZero() {
		conn.CreatedAt = s.now()
	}
	s.byID[conn.ID] = conn
	if conn.Active() {
		s.activeByPair[conn.PairKey] = conn.ID
	}
	return conn, nil
}

// UpdateConnectionStatus transitions a stored connection.
func (s *MemoryConnections) UpdateConnectionStatus(ctx context.Context, connectionID string, status string) (models.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.byID[connectionID]
	if !ok {
		return models.Connection{}, ErrConnectionNotFound
	}
	conn.Status = status
	s.byID[connectionID] = conn
	if conn.Active() {
		s.activeByPair[conn.PairKey] = conn.ID
	} else {
		delete(s.activeByPair, conn.PairKey)
	}
	return conn, nil
}

// GetConnection fetches a connection by id.
func (s *MemoryConnections) GetConnection(ctx context.Context, connectionID string) (models.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.byID[connectionID]
	if !ok {
		return models.Connection{}, ErrConnectionNotFound
	}
	return conn, nil
}

// QueryConnections returns all connections involving the user, newest first.
func (s *MemoryConnections) QueryConnections(ctx context.Context, userID string) ([]models.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Connection
	for _, conn := range s.byID {
		if conn.RequesterID == userID || conn.RecipientID == userID {
			out = append(out, conn)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// ActiveForPair returns the pending or accepted connection for a pair key.
func (s *MemoryConnections) ActiveForPair(ctx context.Context, pairKey string) (models.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.activeByPair[pairKey]
	if !ok {
		return models.Connection{}, ErrConnectionNotFound
	}
	return s.byID[id], nil
}

// MemoryMessages is an in-memory MessageStore.
type MemoryMessages struct {
	mu   sync.Mutex
	msgs []models.Message
	seq  int64
	now  func() time.Time
}

// NewMemoryMessages builds an empty store.
func NewMemoryMessages() *MemoryMessages {
	return &MemoryMessages{now: time.Now}
}

// NewFixtureMessages builds a store pre-seeded with the demo conversation.
func NewFixtureMessages() *MemoryMessages {
	s := NewMemoryMessages()
	s.msgs = FixtureMessages()
	for _, msg := range s.msgs {
		if msg.Seq > s.seq {
			s.seq = msg.Seq
		}
	}
	return s
}

// InsertMessage appends a message with the next sequence number.
func (s *MemoryMessages) InsertMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	msg.Seq = s.seq
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = s.now()
	}
	s.msgs = append(s.msgs, msg)
	return msg, nil
}

// QueryMessages returns the conversation between two users sorted ascending
// by timestamp, ties broken by insertion order.
func (s *MemoryMessages) QueryMessages(ctx context.Context, userA string, userB string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Message
	for _, msg := range s.msgs {
		if (msg.SenderID == userA && msg.RecipientID == userB) || (msg.SenderID == userB && msg.RecipientID == userA) {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Seq < out[j].Seq
	})
	return out, nil
}

// MarkMessagesRead flips the read flag on unread messages from peer to owner.
func (s *MemoryMessages) MarkMessagesRead(ctx context.Context, ownerID string, peerID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated int64
	for i, msg := range s.msgs {
		if msg.RecipientID == ownerID && msg.SenderID == peerID && !msg.Read {
			s.msgs[i].Read = true
			updated++
		}
	}
	return updated, nil
}

// MemoryProfiles is an in-memory ProfileStore over the fixture directory.
type MemoryProfiles struct {
	mu   sync.RWMutex
	byID map[string]models.Profile
}

// NewFixtureProfiles builds a profile store over the demo directory.
func NewFixtureProfiles() *MemoryProfiles {
	s := &MemoryProfiles{byID: make(map[string]models.Profile)}
	for _, p := range FixtureProfiles() {
		s.byID[p.UserID] = p
	}
	return s
}

// GetProfile fetches a profile by user id.
func (s *MemoryProfiles) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[userID]
	if !ok {
		return models.Profile{}, ErrProfileNotFound
	}
	return p, nil
}

// QueryProfiles fetches multiple profiles; missing ids are absent from the
// result.
func (s *MemoryProfiles) QueryProfiles(ctx context.Context, userIDs []string) ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Profile, 0, len(userIDs))
	for _, id := range userIDs {
		if p, ok := s.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
