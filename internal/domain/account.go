package domain

import "time"

// Currency identifies one of the tracked denominations.
type Currency string

const (
	CurrencyPatterns Currency = "patterns"
	CurrencySopop    Currency = "sopop"
)

// Currencies lists all tracked denominations in a stable order.
var Currencies = []Currency{CurrencyPatterns, CurrencySopop}

// Balances maps currency to a (non-negative) amount. Used both for stored
// balances and for credit/debit deltas.
type Balances map[Currency]int64

// Get returns the amount for a currency, zero when absent.
func (b Balances) Get(c Currency) int64 {
	return b[c]
}

// IsZero reports whether every amount in the set is zero.
func (b Balances) IsZero() bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// HasNegative reports whether any amount in the set is negative.
func (b Balances) HasNegative() bool {
	for _, v := range b {
		if v < 0 {
			return true
		}
	}
	return false
}

// Account is a user's currency ledger. Created lazily on the first economic
// action and never hard-deleted. Every balance is >= 0 at all times.
type Account struct {
	UserID      string     `json:"user_id"`
	Patterns    int64      `json:"patterns"`
	Sopop       int64      `json:"sopop"`
	DailyStreak int        `json:"daily_streak"`
	LastDailyAt *time.Time `json:"last_daily_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Balance returns the stored amount for a currency.
func (a *Account) Balance(c Currency) int64 {
	switch c {
	case CurrencyPatterns:
		return a.Patterns
	case CurrencySopop:
		return a.Sopop
	}
	return 0
}

// Balances returns the account's balances as a delta-style map.
func (a *Account) Balances() Balances {
	return Balances{
		CurrencyPatterns: a.Patterns,
		CurrencySopop:    a.Sopop,
	}
}
