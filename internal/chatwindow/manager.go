package chatwindow

import (
	"sync"
	"time"

	"teamlink-service/internal/observability"
)

// DefaultLimit bounds how many chat windows a session may hold open.
const DefaultLimit = 3

// Session is a transient handle onto a conversation, distinct from the
// persisted message history. Not stored anywhere.
type Session struct {
	PeerUserID string    `json:"peer_user_id"`
	OpenedAt   time.Time `json:"opened_at"`
}

// Manager bounds the set of concurrently open chat windows per user
// session, evicting the oldest-opened window when the limit is reached.
type Manager struct {
	mu       sync.Mutex
	limit    int
	sessions map[string][]Session
	now      func() time.Time
}

// NewManager creates an empty manager. A limit <= 0 falls back to
// DefaultLimit.
func NewManager(limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{
		limit:    limit,
		sessions: make(map[string][]Session),
		now:      time.Now,
	}
}

// Open ensures a window for peer is open in the user's session. Opening an
// already-open peer is a no-op and does not change eviction order. When the
// session is full the oldest-opened window is evicted first.
func (m *Manager) Open(userID, peerID string) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	open := m.sessions[userID]
	for _, s := range open {
		if s.PeerUserID == peerID {
			return s
		}
	}

	if len(open) >= m.limit {
		open = open[1:]
	}
	session := Session{PeerUserID: peerID, OpenedAt: m.now()}
	m.sessions[userID] = append(open, session)
	m.updateGauge()
	return session
}

// Close removes the window for peer if present; no-op otherwise.
func (m *Manager) Close(userID, peerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	open := m.sessions[userID]
	for i, s := range open {
		if s.PeerUserID == peerID {
			m.sessions[userID] = append(open[:i], open[i+1:]...)
			if len(m.sessions[userID]) == 0 {
				delete(m.sessions, userID)
			}
			m.updateGauge()
			return
		}
	}
}

// Sessions returns the user's open windows in opening order.
func (m *Manager) Sessions(userID string) []Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	open := m.sessions[userID]
	out := make([]Session, len(open))
	copy(out, open)
	return out
}

// Reset drops every window for the user, used when the browsing session
// ends.
func (m *Manager) Reset(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	m.updateGauge()
}

func (m *Manager) updateGauge() {
	total := 0
	for _, open := range m.sessions {
		total += len(open)
	}
	observability.SetOpenChatWindows(total)
}
