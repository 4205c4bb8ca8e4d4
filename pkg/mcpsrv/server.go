package mcpsrv

import (
	"context"
	"fmt"
	"os"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mcp-tg/sever-template/internal/analyze"
	"github.com/mcp-tg/sever-template/internal/cache"
	"github.com/mcp-tg/sever-template/internal/config"
	"github.com/mcp-tg/sever-template/internal/logging"
	"github.com/mcp-tg/sever-template/internal/mcp"
	"github.com/mcp-tg/sever-template/internal/mcp/tools"
	"github.com/mcp-tg/sever-template/internal/query"
	"github.com/mcp-tg/sever-template/internal/search"
	"github.com/mcp-tg/sever-template/internal/userstore"
)

// Server is the user data MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with builtin user data tools.
//
// Use functional options to configure the data directory, logging, add
// custom tools, etc. Remaining configuration is loaded from environment
// variables (see internal/config).
func NewServer(opts ...Option) (*Server, error) {
	// Build configuration from options
	cfg := &serverConfig{
		config: config.Load(), // Load defaults from environment
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.dataDir != "" {
		cfg.config.DataDir = cfg.dataDir
	}

	// Setup logging
	logCfg := logging.Config{
		Level:      cfg.config.LogLevel,
		FilePath:   cfg.config.LogFile,
		MaxSizeMB:  cfg.config.LogMaxSizeMB,
		MaxBackups: cfg.config.LogMaxBackups,
		MaxAgeDays: cfg.config.LogMaxAgeDays,
		Compress:   cfg.config.LogCompress,
	}
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	// Create storage
	if err := os.MkdirAll(cfg.config.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	store, err := userstore.New(cfg.config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create user store: %w", err)
	}

	// Create infrastructure
	reportCache, err := cache.NewReportCache(cfg.config.ReportCacheMaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create report cache: %w", err)
	}

	// Create engines
	analyzer := analyze.New()
	searchEngine := search.New(cfg.config.MaxSearchResults)
	queryEngine := query.NewEngine()

	// Create deps for internal tools and custom tools
	toolDeps := &tools.Deps{
		Store:    store,
		Analyzer: analyzer,
		Search:   searchEngine,
		Query:    queryEngine,
		Reports:  reportCache,
		Config:   cfg.config,
	}

	// Create public deps (same values, different type for public API)
	deps := &Deps{
		Store:    store,
		Analyzer: analyzer,
		Search:   searchEngine,
		Query:    queryEngine,
		Reports:  reportCache,
		Config:   cfg.config,
	}

	// Build internal server options
	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	// Add custom extension registration callbacks
	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.resourceRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}

	// Add deferred tool registrations (tools that need Deps access)
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	// Create internal server
	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}
