package mcpsrv

import (
	"github.com/mcp-tg/sever-template/internal/analyze"
	"github.com/mcp-tg/sever-template/internal/cache"
	"github.com/mcp-tg/sever-template/internal/config"
	"github.com/mcp-tg/sever-template/internal/query"
	"github.com/mcp-tg/sever-template/internal/search"
	"github.com/mcp-tg/sever-template/internal/userstore"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Store    *userstore.Store
	Analyzer *analyze.Analyzer
	Search   *search.Engine
	Query    *query.Engine
	Reports  *cache.ReportCache
	Config   *config.Config
}
