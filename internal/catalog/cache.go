package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osmunda/cardbot/internal/domain"
)

// itemCache is an in-memory LRU over item definitions with time-based
// expiration. Definitions change rarely; a stale entry is at worst one TTL
// behind an admin edit.
type itemCache struct {
	lru *expirable.LRU[string, *domain.ItemDefinition]
}

func newItemCache(size int, ttl time.Duration) *itemCache {
	return &itemCache{
		lru: expirable.NewLRU[string, *domain.ItemDefinition](size, nil, ttl),
	}
}

func (c *itemCache) Get(itemCode string) (*domain.ItemDefinition, bool) {
	return c.lru.Get(itemCode)
}

func (c *itemCache) Set(itemCode string, def *domain.ItemDefinition) {
	c.lru.Add(itemCode, def)
}

func (c *itemCache) Invalidate(itemCode string) {
	c.lru.Remove(itemCode)
}
