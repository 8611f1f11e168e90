package render

import (
	"sync"
	"time"
)

// PageCache holds rendered pages keyed by slug. A page is served from cache
// until its revalidation interval elapses; after that the next request
// renders fresh (the blocking-fallback model — stale pages are tolerated,
// unknown slugs are always rendered on demand and never cached as misses).
type PageCache struct {
	ttl     time.Duration
	mutex   sync.RWMutex
	entries map[string]pageEntry

	now func() time.Time
}

type pageEntry struct {
	html       []byte
	renderedAt time.Time
}

// NewPageCache creates a cache with the given revalidation interval. A zero
// or negative interval disables caching entirely.
func NewPageCache(ttl time.Duration) *PageCache {
	return &PageCache{
		ttl:     ttl,
		entries: make(map[string]pageEntry),
		now:     time.Now,
	}
}

// Get returns the cached page for slug if it is still within the
// revalidation window.
func (c *PageCache) Get(slug string) ([]byte, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mutex.RLock()
	entry, ok := c.entries[slug]
	c.mutex.RUnlock()

	if !ok || c.now().Sub(entry.renderedAt) >= c.ttl {
		return nil, false
	}
	return entry.html, true
}

// Put stores a freshly rendered page.
func (c *PageCache) Put(slug string, html []byte) {
	if c.ttl <= 0 {
		return
	}

	c.mutex.Lock()
	c.entries[slug] = pageEntry{html: html, renderedAt: c.now()}
	c.mutex.Unlock()
}

// Invalidate drops one slug from the cache.
func (c *PageCache) Invalidate(slug string) {
	c.mutex.Lock()
	delete(c.entries, slug)
	c.mutex.Unlock()
}

// InvalidateAll drops every cached page, e.g. after a content reload.
func (c *PageCache) InvalidateAll() {
	c.mutex.Lock()
	c.entries = make(map[string]pageEntry)
	c.mutex.Unlock()
}
