package icons

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/qdeck/qdeck/pkg/logging"
)

// DefaultQuotaBytes caps the cache at 50 MiB unless configured otherwise.
const DefaultQuotaBytes = 50 * 1024 * 1024

// evictTargetPercent is the fill level eviction drains down to. Draining
// below the quota instead of exactly to it keeps a burst of inserts from
// evicting on every call.
const evictTargetPercent = 80

// Cache is a byte-quota LRU over resolved icon payloads. When an insert
// pushes usage past the quota, least recently used entries are dropped
// until usage is back at or below 80% of the quota.
type Cache struct {
	mu    sync.Mutex
	quota int64
	used  int64
	ll    *list.List // front is most recently used
	items map[string]*list.Element

	logger zerolog.Logger
}

type cacheEntry struct {
	key        string
	data       []byte
	lastAccess time.Time
}

// NewCache creates a cache with the given byte quota. A non-positive
// quota falls back to the default.
func NewCache(quotaBytes int64) *Cache {
	if quotaBytes <= 0 {
		quotaBytes = DefaultQuotaBytes
	}
	return &Cache{
		quota:  quotaBytes,
		ll:     list.New(),
		items:  make(map[string]*list.Element),
		logger: logging.GetLogger("icons.cache"),
	}
}

// Get returns the cached payload and marks the entry as recently used.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	entry := el.Value.(*cacheEntry)
	entry.lastAccess = time.Now()
	c.ll.MoveToFront(el)
	return entry.data, true
}

// Put stores a payload under key, replacing any previous payload, then
// evicts if the quota is exceeded. Payloads larger than the quota are not
// cached at all.
func (c *Cache) Put(key string, data []byte) {
	if int64(len(data)) > c.quota {
		c.logger.Warn().Str("key", key).Int("bytes", len(data)).Msg("Payload exceeds cache quota, not cached")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		entry := el.Value.(*cacheEntry)
		c.used += int64(len(data)) - int64(len(entry.data))
		entry.data = data
		entry.lastAccess = time.Now()
		c.ll.MoveToFront(el)
	} else {
		el := c.ll.PushFront(&cacheEntry{key: key, data: data, lastAccess: time.Now()})
		c.items[key] = el
		c.used += int64(len(data))
	}

	if c.used > c.quota {
		c.evictLocked()
	}
}

// evictLocked drops least recently used entries until usage is at or
// below the eviction target.
func (c *Cache) evictLocked() {
	target := c.quota * evictTargetPercent / 100
	evicted := 0
	for c.used > target {
		el := c.ll.Back()
		if el == nil {
			break
		}
		c.removeLocked(el)
		evicted++
	}
	c.logger.Debug().
		Int("evicted", evicted).
		Int64("used", c.used).
		Int64("quota", c.quota).
		Msg("Cache evicted to target")
}

// Remove drops one entry.
func (c *Cache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.removeLocked(el)
	}
}

func (c *Cache) removeLocked(el *list.Element) {
	entry := el.Value.(*cacheEntry)
	c.ll.Remove(el)
	delete(c.items, entry.key)
	c.used -= int64(len(entry.data))
}

// RemoveStale drops entries not accessed within maxAge. Called from the
// periodic cleanup timer. Returns the number of entries removed.
func (c *Cache) RemoveStale(maxAge time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for el := c.ll.Back(); el != nil; {
		entry := el.Value.(*cacheEntry)
		if entry.lastAccess.After(cutoff) {
			// Entries toward the front are newer still.
			break
		}
		prev := el.Prev()
		c.removeLocked(el)
		removed++
		el = prev
	}
	return removed
}

// StartCleanup drops entries unused for maxAge on every interval tick,
// until ctx is cancelled. Long-running hosts call this once at startup.
func (c *Cache) StartCleanup(ctx context.Context, interval, maxAge time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := c.RemoveStale(maxAge); removed > 0 {
					c.logger.Debug().Int("removed", removed).Msg("Stale cache entries removed")
				}
			}
		}
	}()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// UsedBytes returns the current payload total.
func (c *Cache) UsedBytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used
}
