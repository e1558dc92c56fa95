package models

import "time"

// Message represents a direct message between two users.
// Messages are append-only; only the Read flag ever changes, false -> true.
type Message struct {
	ID          string    `db:"id" json:"id"`
	Seq         int64     `db:"seq" json:"-"`
	SenderID    string    `db:"sender_id" json:"sender_id"`
	RecipientID string    `db:"recipient_id" json:"recipient_id"`
	Content     string    `db:"content" json:"content"`
	Read        bool      `db:"read" json:"read"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
