package catalog

import "time"

// Cache sizing for item definition lookups. The catalog is small and nearly
// static, so a generous TTL is safe.
const (
	DefaultCacheSize = 2048
	DefaultCacheTTL  = 10 * time.Minute
)

// Per-rarity listing price caps in patterns.
var rarityPriceCaps = map[int]int64{
	1: 100,
	2: 300,
	3: 1000,
	4: 5000,
	5: 20000,
}

// Category overrides take precedence over the rarity cap.
var categoryPriceCaps = map[string]int64{
	"event": 50000,
}

// Error message constants
const (
	ErrMsgItemLookupFailed = "failed to look up item"
)

// Log message constants
const (
	LogMsgCatalogCacheMiss = "Catalog cache miss"
)
