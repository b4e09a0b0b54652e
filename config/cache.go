package config

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// Caches holds the in-process response caches. District reference data
// is effectively immutable; dashboard snapshots only move when a sync
// lands, so a short TTL is enough.
type Caches struct {
	Districts *cache.Cache
	Dashboard *cache.Cache
}

const (
	districtCacheDuration  = 24 * time.Hour
	dashboardCacheDuration = 10 * time.Minute

	districtCleanupInterval  = 48 * time.Hour
	dashboardCleanupInterval = 30 * time.Minute
)

func NewCaches() *Caches {
	return &Caches{
		Districts: cache.New(districtCacheDuration, districtCleanupInterval),
		Dashboard: cache.New(dashboardCacheDuration, dashboardCleanupInterval),
	}
}

func (c *Caches) Flush() {
	c.Districts.Flush()
	c.Dashboard.Flush()
}

// CacheKey joins a prefix and parameters into a stable cache key.
func CacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += ":" + fmt.Sprintf("%v", param)
	}
	return key
}
