package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-tg/sever-template/internal/analyze"
	"github.com/mcp-tg/sever-template/internal/cache"
	"github.com/mcp-tg/sever-template/internal/config"
	"github.com/mcp-tg/sever-template/internal/query"
	"github.com/mcp-tg/sever-template/internal/search"
	"github.com/mcp-tg/sever-template/internal/userstore"
)

func newTestDeps(t *testing.T) *Deps {
	t.Helper()

	cfg := config.Load()
	store, err := userstore.New(t.TempDir())
	require.NoError(t, err)
	reports, err := cache.NewReportCache(cfg.ReportCacheMaxItems)
	require.NoError(t, err)

	return &Deps{
		Store:    store,
		Analyzer: analyze.New(),
		Search:   search.New(cfg.MaxSearchResults),
		Query:    query.NewEngine(),
		Reports:  reports,
		Config:   cfg,
	}
}

func seedUsers(t *testing.T, d *Deps, users ...userstore.Record) {
	t.Helper()
	require.NoError(t, d.Store.WriteAll(users))
}

func TestToolWriteUser(t *testing.T) {
	d := newTestDeps(t)
	handler := ToolWriteUser(d)

	_, out, err := handler(context.Background(), nil, UserInput{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "success", out.Status)
	assert.Equal(t, "User Alice added", out.Message)
	assert.Equal(t, 1, out.TotalUsers)
}

func TestToolWriteUser_invalidInput(t *testing.T) {
	d := newTestDeps(t)
	handler := ToolWriteUser(d)

	_, _, err := handler(context.Background(), nil, UserInput{Name: "", Email: "a@x"})
	require.Error(t, err)

	var coded *CodedError
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, ErrCodeInvalidInput, coded.Code)

	// Store unchanged
	n, err := d.Store.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestToolUserCount(t *testing.T) {
	d := newTestDeps(t)
	handler := ToolUserCount(d)

	_, out, err := handler(context.Background(), nil, UserCountInput{})
	require.NoError(t, err)
	assert.Zero(t, out.Count)

	seedUsers(t, d,
		userstore.Record{Name: "A", Email: "a@x"},
		userstore.Record{Name: "B", Email: "b@x"},
	)

	_, out, err = handler(context.Background(), nil, UserCountInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
}

func TestToolAnalyzeUsers(t *testing.T) {
	d := newTestDeps(t)
	seedUsers(t, d,
		userstore.Record{Name: "Alice", Email: "alice@example.com"},
		userstore.Record{Name: "Bob", Email: "bob@example.com"},
	)

	_, out, err := ToolAnalyzeUsers(d)(context.Background(), nil, AnalyzeUsersInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalUsers)
	assert.Equal(t, map[string]int{"example.com": 2}, out.EmailDomains)
	assert.NotEmpty(t, out.Insights)
}

func TestToolAnalyzeUsers_empty(t *testing.T) {
	d := newTestDeps(t)

	_, out, err := ToolAnalyzeUsers(d)(context.Background(), nil, AnalyzeUsersInput{})
	require.NoError(t, err)
	assert.Zero(t, out.TotalUsers)
	assert.Equal(t, []string{"No users to analyze"}, out.Insights)
}

func TestToolBulkAddUsers(t *testing.T) {
	d := newTestDeps(t)

	_, out, err := ToolBulkAddUsers(d)(context.Background(), nil, BulkAddUsersInput{
		Users: []UserInput{
			{Name: "Alice", Email: "alice@x.com"},
			{Name: "", Email: "ghost@x.com"},
			{Name: "Bob", Email: "bob@x.com"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "completed", out.Status)
	assert.Equal(t, 3, out.TotalProcessed)
	assert.Equal(t, 2, out.Successful)
	assert.Equal(t, 1, out.Failed)
	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0], "Unknown")

	n, err := d.Store.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestToolBulkAddUsers_emptyInput(t *testing.T) {
	d := newTestDeps(t)

	_, out, err := ToolBulkAddUsers(d)(context.Background(), nil, BulkAddUsersInput{})
	require.NoError(t, err)
	assert.Equal(t, "success", out.Status)
}

func TestToolBulkAddUsers_overCap(t *testing.T) {
	d := newTestDeps(t)
	d.Config.MaxBulkUsers = 2

	_, _, err := ToolBulkAddUsers(d)(context.Background(), nil, BulkAddUsersInput{
		Users: []UserInput{
			{Name: "A", Email: "a@x"},
			{Name: "B", Email: "b@x"},
			{Name: "C", Email: "c@x"},
		},
	})
	var coded *CodedError
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, ErrCodeInvalidInput, coded.Code)
}

func TestToolSearchUsers(t *testing.T) {
	d := newTestDeps(t)
	seedUsers(t, d,
		userstore.Record{Name: "Alice Johnson", Email: "alice@example.com"},
		userstore.Record{Name: "Bob Smith", Email: "bob@other.org"},
	)

	_, out, err := ToolSearchUsers(d)(context.Background(), nil, SearchUsersInput{Query: "alice"})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "Alice Johnson", out.Results[0].Name)
	assert.Equal(t, 1, out.TotalMatches)
}

func TestToolSearchUsers_requiresQuery(t *testing.T) {
	d := newTestDeps(t)

	_, _, err := ToolSearchUsers(d)(context.Background(), nil, SearchUsersInput{})
	var coded *CodedError
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, ErrCodeInvalidInput, coded.Code)
}

func TestToolQueryUsers(t *testing.T) {
	d := newTestDeps(t)
	seedUsers(t, d,
		userstore.Record{Name: "Alice", Email: "alice@example.com"},
		userstore.Record{Name: "Bob", Email: "bob@other.org"},
	)

	_, out, err := ToolQueryUsers(d)(context.Background(), nil, QueryUsersInput{Expression: ".users[].name"})
	require.NoError(t, err)
	assert.Equal(t, []any{"Alice", "Bob"}, out.Values)
	assert.Equal(t, 2, out.RawCount)
}

func TestToolQueryUsers_badExpression(t *testing.T) {
	d := newTestDeps(t)

	_, _, err := ToolQueryUsers(d)(context.Background(), nil, QueryUsersInput{Expression: ".users["})
	var coded *CodedError
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, ErrCodeInvalidInput, coded.Code)
}

func TestDepsReport_cachesByFingerprint(t *testing.T) {
	d := newTestDeps(t)
	seedUsers(t, d, userstore.Record{Name: "Alice", Email: "alice@x.com"})

	r1, err := d.Report()
	require.NoError(t, err)
	r2, err := d.Report()
	require.NoError(t, err)
	assert.Same(t, r1, r2)
}

func TestWrapStoreError_codes(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{userstore.ErrInvalidRecord, ErrCodeInvalidInput},
		{userstore.ErrCorrupt, ErrCodeDataCorrupt},
		{userstore.ErrStorage, ErrCodeStorageError},
	}

	for _, tt := range tests {
		var coded *CodedError
		require.ErrorAs(t, WrapStoreError(tt.err), &coded)
		assert.Equal(t, tt.code, coded.Code)
	}
}

func TestWrapStoreError_nil(t *testing.T) {
	assert.NoError(t, WrapStoreError(nil))
}
