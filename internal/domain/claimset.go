package domain

import (
	"time"

	"github.com/google/uuid"
)

// ClaimSlot is one claimable position in a shared drop. The claimant is set
// at most once, by the claim resolver's single conditional write.
type ClaimSlot struct {
	SetID      uuid.UUID  `json:"set_id"`
	SlotIndex  int        `json:"slot_index"`
	ItemCode   string     `json:"item_code"`
	ClaimantID *string    `json:"claimant_id,omitempty"`
	ClaimedAt  *time.Time `json:"claimed_at,omitempty"`
}

// Claimed reports whether the slot has been awarded.
func (s ClaimSlot) Claimed() bool {
	return s.ClaimantID != nil
}

// ClaimSet is a shared, time-boxed, multi-slot reward drop resolved on a
// first-come basis. It becomes inert after ExpiresAt or when every slot is
// claimed; expiry is always re-derived from the persisted instant, never
// from an in-process timer.
type ClaimSet struct {
	ID         uuid.UUID   `json:"id"`
	OnePerUser bool        `json:"one_per_user"`
	Slots      []ClaimSlot `json:"slots"`
	Claimers   []string    `json:"claimers"`
	ExpiresAt  time.Time   `json:"expires_at"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Expired reports whether the set is past its expiry at the given instant.
func (c *ClaimSet) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// FullyClaimed reports whether every slot has a claimant.
func (c *ClaimSet) FullyClaimed() bool {
	for _, s := range c.Slots {
		if !s.Claimed() {
			return false
		}
	}
	return len(c.Slots) > 0
}
