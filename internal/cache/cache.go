// Package cache provides a small in-memory TTL cache for backend query
// responses. Fund rosters, holdings pages and trending sets change once a
// quarter, so short-lived caching removes most duplicate round-trips.
package cache

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// CachedResponse holds a cached upstream response body.
type CachedResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

type entry struct {
	resp      *CachedResponse
	expiry    time.Time
	insertIdx int64
}

// ResponseCache caches GET responses keyed "scope:method:path". Public data
// uses the "anon" scope; portfolio reads are scoped per user so one user's
// document never leaks into another session. Thread-safe.
type ResponseCache struct {
	mu         sync.RWMutex
	items      map[string]entry
	ttl        time.Duration
	maxEntries int
	nextIdx    int64
}

// AnonScope is the cache scope for data not tied to a session.
const AnonScope = "anon"

// New creates a ResponseCache with the given TTL and max entry count.
func New(ttl time.Duration, maxEntries int) *ResponseCache {
	return &ResponseCache{
		items:      make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// MakeKey builds a cache key from scope, HTTP method, and request path
// including its query string.
func MakeKey(scope, method, path string) string {
	return scope + ":" + method + ":" + path
}

// Get returns a cached response if present and not expired. Expired entries
// are removed lazily on lookup.
func (c *ResponseCache) Get(key string) (*CachedResponse, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiry) {
		c.mu.Lock()
		if e2, ok2 := c.items[key]; ok2 && time.Now().After(e2.expiry) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.resp, true
}

// Set stores a response, evicting the oldest entry when at capacity.
func (c *ResponseCache) Set(key string, resp *CachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{
		resp:      resp,
		expiry:    time.Now().Add(c.ttl),
		insertIdx: c.nextIdx,
	}
	c.nextIdx++

	if _, exists := c.items[key]; exists {
		c.items[key] = e
		return
	}

	if len(c.items) >= c.maxEntries {
		c.evictOldest()
	}

	c.items[key] = e
}

// InvalidatePrefix removes every entry whose key contains the given path
// fragment. Portfolio mutations call this so the next read misses.
func (c *ResponseCache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if strings.Contains(key, prefix) {
			delete(c.items, key)
		}
	}
}

// evictOldest removes the entry with the lowest insertIdx. Caller holds mu.
func (c *ResponseCache) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1

	for key, e := range c.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
