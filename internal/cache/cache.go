// Package cache provides caching utilities for the MCP server.
package cache

import (
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mcp-tg/sever-template/internal/analyze"
)

// ReportCache provides thread-safe LRU caching for computed reports, keyed by
// a fingerprint of the backing users file. Because the key changes whenever
// the file's size or mtime changes, a cached report can never outlive the
// document revision it was computed from.
type ReportCache struct {
	cache *lru.Cache[string, *analyze.Report]
}

// NewReportCache creates a new LRU cache with the specified maximum number of
// items.
func NewReportCache(maxItems int) (*ReportCache, error) {
	c, err := lru.New[string, *analyze.Report](maxItems)
	if err != nil {
		return nil, err
	}
	return &ReportCache{cache: c}, nil
}

// Get retrieves a report by fingerprint.
func (c *ReportCache) Get(key string) (*analyze.Report, bool) {
	return c.cache.Get(key)
}

// Put adds or updates a report in the cache.
func (c *ReportCache) Put(key string, report *analyze.Report) {
	c.cache.Add(key, report)
}

// Len returns the current number of items in the cache.
func (c *ReportCache) Len() int {
	return c.cache.Len()
}

// FileKey fingerprints the file at path by size and mtime. A missing file is
// a valid fingerprint (the empty-collection state). Other stat failures
// return ok=false, which callers treat as "skip the cache".
func FileKey(path string) (key string, ok bool) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "absent", true
		}
		return "", false
	}
	return fmt.Sprintf("%d:%d", info.Size(), info.ModTime().UnixNano()), true
}
