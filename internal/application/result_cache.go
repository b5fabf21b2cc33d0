package application

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Cache keys, one namespace per cached operation. The filter tuple of a
// catalog query is embedded directly in its key.
const (
	classesKeyPrefix      = "classes:"
	reservationsKeyPrefix = "reservations:my:"
	dashboardSummaryKey   = "dashboard:summary"
)

const (
	defaultCacheTTL   = 2 * time.Minute
	defaultMaxEntries = 128
)

// ResultCache stores recently fetched upstream query results so repeated
// reads within the staleness window avoid a network round trip. It is shared
// by every service that reads from the backend. Mutations never write results
// into it; they only invalidate keys, forcing the next read to re-fetch.
// Invalidation is idempotent and commutative, so no further coordination is
// needed between concurrent writers.
type ResultCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[string]cacheEntry
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// NewResultCache builds a cache with the given staleness window. Non-positive
// arguments fall back to the defaults (2 minutes, 128 entries); a nil clock
// falls back to time.Now.
func NewResultCache(ttl time.Duration, maxEntries int, now func() time.Time) *ResultCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	if now == nil {
		now = time.Now
	}
	return &ResultCache{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]cacheEntry),
	}
}

// Get returns the fresh value stored under key, if any.
func (c *ResultCache) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

// Store saves a value under key for one staleness window.
func (c *ResultCache) Store(key string, value any) {
	if c == nil {
		return
	}
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked()
	if len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[key] = cacheEntry{value: value, expiresAt: expiry}
}

// Invalidate marks every entry whose key starts with prefix as stale. An
// empty prefix clears the whole cache. Invalidating keys that are already
// absent is a no-op.
func (c *ResultCache) Invalidate(prefix string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if prefix == "" {
		c.entries = make(map[string]cacheEntry)
		return
	}
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

func (c *ResultCache) cleanupLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *ResultCache) evictOneLocked() {
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}

func classesCacheKey(params ListClassesParams) string {
	return fmt.Sprintf("%s%d:%d:%s:%s", classesKeyPrefix, params.Page, params.PageSize, params.Search, params.Date)
}

func myReservationsKey(completed *bool) string {
	if completed == nil {
		return reservationsKeyPrefix + "all"
	}
	return reservationsKeyPrefix + strconv.FormatBool(*completed)
}
