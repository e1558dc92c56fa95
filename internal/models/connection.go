package models

import "time"

// Connection statuses.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Connection represents a teammate request between two users.
type Connection struct {
	ID          string    `db:"id" json:"id"`
	PairKey     string    `db:"pair_key" json:"-"`
	RequesterID string    `db:"requester_id" json:"requester_id"`
	RecipientID string    `db:"recipient_id" json:"recipient_id"`
	Status      string    `db:"status" json:"status"`
	Note        string    `db:"message" json:"message,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Active reports whether the connection blocks a new request for its pair.
func (c Connection) Active() bool {
	return c.Status == StatusPending || c.Status == StatusAccepted
}

// PairKey builds the order-independent key for two user ids. At most one
// active connection may exist per pair key.
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

// ConnectionView is the API shape of a connection enriched with the peer's
// profile, mirroring how the connections page joins profile data.
type ConnectionView struct {
	Connection
	PeerID  string   `json:"peer_id"`
	Peer    *Profile `json:"peer,omitempty"`
	Inbound bool     `json:"inbound"`
}
