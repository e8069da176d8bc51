package domain

import "time"

// InventoryEntry is one (user, item) stack. Quantity is always > 0; a stack
// consumed down to zero is deleted, never stored as zero.
type InventoryEntry struct {
	UserID    string    `json:"user_id"`
	ItemCode  string    `json:"item_code"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}
