package models

import (
	"time"

	"github.com/lib/pq"
)

// Profile is the displayable identity of a user. Owned by the directory;
// the ledger and conversation store only ever read it.
type Profile struct {
	UserID       string         `db:"user_id" json:"user_id"`
	Name         string         `db:"name" json:"name"`
	Role         string         `db:"role" json:"role,omitempty"`
	Bio          string         `db:"bio" json:"bio,omitempty"`
	AvatarURL    string         `db:"avatar_url" json:"avatar_url,omitempty"`
	Skills       pq.StringArray `db:"skills" json:"skills"`
	LookingFor   pq.StringArray `db:"looking_for" json:"looking_for"`
	ContactEmail string         `db:"contact_email" json:"contact_email,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}
