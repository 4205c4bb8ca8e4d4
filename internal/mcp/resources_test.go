package mcp

import (
	"context"
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-tg/sever-template/internal/analyze"
	"github.com/mcp-tg/sever-template/internal/cache"
	"github.com/mcp-tg/sever-template/internal/config"
	"github.com/mcp-tg/sever-template/internal/mcp/tools"
	"github.com/mcp-tg/sever-template/internal/query"
	"github.com/mcp-tg/sever-template/internal/search"
	"github.com/mcp-tg/sever-template/internal/userstore"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.Load()
	store, err := userstore.New(t.TempDir())
	require.NoError(t, err)
	reports, err := cache.NewReportCache(cfg.ReportCacheMaxItems)
	require.NoError(t, err)

	deps := &tools.Deps{
		Store:    store,
		Analyzer: analyze.New(),
		Search:   search.New(cfg.MaxSearchResults),
		Query:    query.NewEngine(),
		Reports:  reports,
		Config:   cfg,
	}

	srv, err := NewServer(deps, WithBuiltinTools(), WithBuiltinPrompts())
	require.NoError(t, err)
	return srv
}

func readReq(uri string) *sdkmcp.ReadResourceRequest {
	return &sdkmcp.ReadResourceRequest{
		Params: &sdkmcp.ReadResourceParams{URI: uri},
	}
}

func TestParseUserResourceURI(t *testing.T) {
	cases := []struct {
		name    string
		uri     string
		want    string
		wantErr bool
	}{
		{"simple name", "data://users/Alice", "Alice", false},
		{"encoded space", "data://users/John%20Doe", "John Doe", false},
		{"name with slash", "data://users/a/b", "a/b", false},
		{"wrong scheme", "http://users/Alice", "", true},
		{"missing name", "data://users/", "", true},
		{"no name segment", "data://users", "", true},
		{"bad escape", "data://users/%zz", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseUserResourceURI(tc.uri)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHandleResourceUsers(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	_, err := srv.deps.Store.Append(userstore.Record{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	result, err := srv.handleResourceUsers(ctx, readReq("data://users"))
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, tools.MimeJSON, result.Contents[0].MIMEType)

	var content struct {
		Users []userstore.Record `json:"users"`
	}
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &content))
	require.Len(t, content.Users, 1)
	assert.Equal(t, "Alice", content.Users[0].Name)
}

func TestHandleResourceUser_routing(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	_, err := srv.deps.Store.Append(userstore.Record{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	_, err = srv.deps.Store.Append(userstore.Record{Name: "Alice", Email: "alice@work.com"})
	require.NoError(t, err)

	t.Run("by name returns first match and duplicate count", func(t *testing.T) {
		result, err := srv.handleResourceUser(ctx, readReq("data://users/Alice"))
		require.NoError(t, err)

		var content map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &content))
		user := content["user"].(map[string]any)
		assert.Equal(t, "alice@example.com", user["email"])
		assert.Equal(t, float64(1), content["duplicate_count"])
	})

	t.Run("unknown name is not found", func(t *testing.T) {
		_, err := srv.handleResourceUser(ctx, readReq("data://users/Bob"))
		assert.Error(t, err)
	})

	t.Run("case sensitive lookup", func(t *testing.T) {
		_, err := srv.handleResourceUser(ctx, readReq("data://users/alice"))
		assert.Error(t, err)
	})

	t.Run("stats segment routes to stats resource", func(t *testing.T) {
		result, err := srv.handleResourceUser(ctx, readReq("data://users/stats"))
		require.NoError(t, err)

		var content map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &content))
		assert.Contains(t, content, "stats")
	})

	t.Run("report segment routes to report resource", func(t *testing.T) {
		result, err := srv.handleResourceUser(ctx, readReq("data://users/report"))
		require.NoError(t, err)

		var content map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &content))
		assert.Contains(t, content, "report")
	})
}

func TestNewServer_requiresDeps(t *testing.T) {
	_, err := NewServer(nil)
	assert.Error(t, err)
}
