package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-tg/sever-template/internal/analyze"
)

func TestReportCache_getPut(t *testing.T) {
	c, err := NewReportCache(4)
	require.NoError(t, err)

	_, ok := c.Get("k1")
	assert.False(t, ok)

	report := &analyze.Report{Summary: analyze.ReportSummary{TotalUsers: 3}}
	c.Put("k1", report)

	got, ok := c.Get("k1")
	require.True(t, ok)
	assert.Same(t, report, got)
	assert.Equal(t, 1, c.Len())
}

func TestReportCache_evictsOldest(t *testing.T) {
	c, err := NewReportCache(2)
	require.NoError(t, err)

	c.Put("a", &analyze.Report{})
	c.Put("b", &analyze.Report{})
	c.Put("c", &analyze.Report{})

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestFileKey_missingFile(t *testing.T) {
	key, ok := FileKey(filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, ok)
	assert.Equal(t, "absent", key)
}

func TestFileKey_changesWithContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users":[]}`), 0644))

	k1, ok := FileKey(path)
	require.True(t, ok)

	require.NoError(t, os.WriteFile(path, []byte(`{"users":[{"name":"A","email":"a@x"}]}`), 0644))
	k2, ok := FileKey(path)
	require.True(t, ok)

	assert.NotEqual(t, k1, k2)
}
