package api

import (
	"sync"

	"github.com/stockfit/stockfit/internal/reports"
)

// ReportCache is a thread-safe LRU cache for loaded reports.
type ReportCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*reports.Report
	order   []string // oldest first
}

// NewReportCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 100.
func NewReportCache(maxSize int) *ReportCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &ReportCache{
		maxSize: maxSize,
		entries: make(map[string]*reports.Report),
	}
}

// Get retrieves a report from the cache, or nil if not found.
func (c *ReportCache) Get(id string) *reports.Report {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.entries[id]
	if !ok {
		return nil
	}
	c.moveToEnd(id)
	return r
}

// Put adds a report to the cache, evicting the least recently used if full.
func (c *ReportCache) Put(id string, r *reports.Report) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; ok {
		c.entries[id] = r
		c.moveToEnd(id)
		return
	}

	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[id] = r
	c.order = append(c.order, id)
}

// Len returns the number of cached reports.
func (c *ReportCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ReportCache) moveToEnd(id string) {
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, id)
			return
		}
	}
}
