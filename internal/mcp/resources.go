package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mcp-tg/sever-template/internal/mcp/tools"
)

// Resource URI scheme: data://
// Supported URIs:
//   data://users
//   data://users/stats
//   data://users/report
//   data://users/{name}

// registerResources registers resources and templates with their handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         "data://users",
		Name:        "UserData",
		Description: "All user records from local storage, in insertion order.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.8,
		},
	}, s.handleResourceUsers)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         "data://users/stats",
		Name:        "UserStats",
		Description: "Summary statistics: totals, unique names, email domain breakdown, name length. Cheaper than fetching all users.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleResourceStats)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         "data://users/report",
		Name:        "UserReport",
		Description: "Comprehensive data-quality report: summary, domain analysis, name analysis, validity percentages.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.5,
		},
	}, s.handleResourceReport)

	// The {name} template also resolves "stats" and "report" segments to the
	// handlers above, so those two names can never be looked up as users.
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "data://users/{name}",
		Name:        "SingleUser",
		Description: "A single user by exact name (case-sensitive). URL-encode spaces, e.g. data://users/John%20Doe.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleResourceUser)
}

// Resource handlers

func (s *Server) handleResourceUsers(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	users, err := s.deps.Store.Load()
	if err != nil {
		return nil, tools.WrapStoreError(err)
	}

	return toResourceResult(req.Params.URI, map[string]any{"users": users})
}

func (s *Server) handleResourceStats(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	users, err := s.deps.Store.Load()
	if err != nil {
		return nil, tools.WrapStoreError(err)
	}

	return toResourceResult(req.Params.URI, map[string]any{"stats": s.deps.Analyzer.Summarize(users)})
}

func (s *Server) handleResourceReport(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	report, err := s.deps.Report()
	if err != nil {
		return nil, tools.WrapStoreError(err)
	}

	return toResourceResult(req.Params.URI, map[string]any{"report": report})
}

func (s *Server) handleResourceUser(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	name, err := parseUserResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	switch name {
	case "stats":
		return s.handleResourceStats(ctx, req)
	case "report":
		return s.handleResourceReport(ctx, req)
	}

	matches, err := s.deps.Store.FindByName(name)
	if err != nil {
		return nil, tools.WrapStoreError(err)
	}
	if len(matches) == 0 {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	content := map[string]any{"user": matches[0]}
	if len(matches) > 1 {
		content["duplicate_count"] = len(matches) - 1
	}

	return toResourceResult(req.Params.URI, content)
}

// Helper functions

// parseUserResourceURI extracts the URL-decoded user name from a
// data://users/{name} URI.
func parseUserResourceURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, "data://") {
		return "", tools.ErrInvalidInput("invalid URI scheme: expected data://")
	}

	path := strings.TrimPrefix(uri, "data://")
	parts := strings.Split(path, "/")

	if len(parts) < 2 || parts[0] != "users" || parts[1] == "" {
		return "", tools.ErrInvalidInput("user URI requires a name: data://users/{name}")
	}

	name, err := url.PathUnescape(strings.Join(parts[1:], "/"))
	if err != nil {
		return "", tools.ErrInvalidInput(fmt.Sprintf("malformed name encoding: %v", err))
	}
	return name, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
