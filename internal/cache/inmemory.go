package cache

import (
	"context"
	"strings"
	"time"

	"github.com/inventorypos/salesdesk/internal/config"
	goCache "github.com/patrickmn/go-cache"
)

// DefaultExpiration is used when the configuration has no TTL
const DefaultExpiration = 5 * time.Minute

// DefaultCleanupInterval is how often expired items are removed from the cache
const DefaultCleanupInterval = 10 * time.Minute

// InMemoryCache implements the Cache interface using github.com/patrickmn/go-cache
type InMemoryCache struct {
	cache *goCache.Cache
}

// NewInMemoryCache creates a cache whose default expiration is the customer TTL
func NewInMemoryCache(cfg *config.Configuration) Cache {
	expiration := cfg.Cache.CustomerTTL
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	return &InMemoryCache{
		cache: goCache.New(expiration, DefaultCleanupInterval),
	}
}

func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) {
	if expiration <= 0 {
		expiration = goCache.DefaultExpiration
	}
	c.cache.Set(key, value, expiration)
}

func (c *InMemoryCache) Delete(_ context.Context, key string) {
	c.cache.Delete(key)
}

func (c *InMemoryCache) DeleteByPrefix(_ context.Context, prefix string) {
	for k := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Delete(k)
		}
	}
}

func (c *InMemoryCache) Flush(_ context.Context) {
	c.cache.Flush()
}
