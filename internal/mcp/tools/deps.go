package tools

import (
	"github.com/mcp-tg/sever-template/internal/analyze"
	"github.com/mcp-tg/sever-template/internal/cache"
	"github.com/mcp-tg/sever-template/internal/config"
	"github.com/mcp-tg/sever-template/internal/query"
	"github.com/mcp-tg/sever-template/internal/search"
	"github.com/mcp-tg/sever-template/internal/userstore"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Store    *userstore.Store
	Analyzer *analyze.Analyzer
	Search   *search.Engine
	Query    *query.Engine
	Reports  *cache.ReportCache
	Config   *config.Config
}

// Report loads the collection and builds the full report, consulting the LRU
// cache first. The cache key is the users-file fingerprint, so a changed file
// always misses.
func (d *Deps) Report() (*analyze.Report, error) {
	key, cacheable := cache.FileKey(d.Store.Path())
	if cacheable {
		if report, ok := d.Reports.Get(key); ok {
			return report, nil
		}
	}

	users, err := d.Store.Load()
	if err != nil {
		return nil, err
	}
	report, err := d.Analyzer.Report(users)
	if err != nil {
		return nil, err
	}

	if cacheable {
		d.Reports.Put(key, report)
	}
	return report, nil
}
