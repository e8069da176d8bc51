package domain

import "time"

// Listing is one live marketplace offer. BuyCode is globally unique and
// independent of the seller; at most one live listing exists per code.
type Listing struct {
	BuyCode   string    `json:"buy_code"`
	SellerID  string    `json:"seller_id"`
	ItemCode  string    `json:"item_code"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}
