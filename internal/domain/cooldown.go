package domain

import "time"

// Gated action names shared between the cooldown gate and its callers.
const (
	ActionPull      = "pull"
	ActionMultiPull = "multi_pull"
	ActionDaily     = "daily"
	ActionPerform   = "perform"
)

// CooldownRecord marks a (user, action) pair as blocked until ExpiresAt.
// A record whose expiry is in the past is logically absent and is deleted
// lazily on the next read.
type CooldownRecord struct {
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Active reports whether the record still blocks the action at the given
// instant.
func (r CooldownRecord) Active(now time.Time) bool {
	return now.Before(r.ExpiresAt)
}
