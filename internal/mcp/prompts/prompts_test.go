package prompts

import (
	"context"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-tg/sever-template/internal/analyze"
	"github.com/mcp-tg/sever-template/internal/userstore"
)

func newTestDeps(t *testing.T) *Deps {
	t.Helper()

	store, err := userstore.New(t.TempDir())
	require.NoError(t, err)

	return &Deps{
		Store:    store,
		Analyzer: analyze.New(),
	}
}

func promptText(t *testing.T, result *sdkmcp.GetPromptResult) string {
	t.Helper()

	require.Len(t, result.Messages, 1)
	assert.Equal(t, sdkmcp.Role("user"), result.Messages[0].Role)
	text, ok := result.Messages[0].Content.(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleUserManagementAssistant(t *testing.T) {
	d := newTestDeps(t)
	_, err := d.Store.Append(userstore.Record{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	_, err = d.Store.Append(userstore.Record{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	handler := HandleUserManagementAssistant(d)
	result, err := handler(context.Background(), &sdkmcp.GetPromptRequest{
		Params: &sdkmcp.GetPromptParams{Name: "user_management_assistant"},
	})
	require.NoError(t, err)

	text := promptText(t, result)
	assert.Contains(t, text, "Current system status: 2 users in storage")
	assert.Contains(t, text, "write_user")
	assert.Contains(t, text, "data://users/{name}")
}

func TestHandleUserManagementAssistant_emptyStore(t *testing.T) {
	handler := HandleUserManagementAssistant(newTestDeps(t))
	result, err := handler(context.Background(), &sdkmcp.GetPromptRequest{
		Params: &sdkmcp.GetPromptParams{Name: "user_management_assistant"},
	})
	require.NoError(t, err)

	assert.Contains(t, promptText(t, result), "Current system status: 0 users in storage")
}

func TestHandleDataAnalysis(t *testing.T) {
	d := newTestDeps(t)
	_, err := d.Store.Append(userstore.Record{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	handler := HandleDataAnalysis(d)

	t.Run("defaults to summary", func(t *testing.T) {
		result, err := handler(context.Background(), &sdkmcp.GetPromptRequest{
			Params: &sdkmcp.GetPromptParams{Name: "data_analysis_prompt"},
		})
		require.NoError(t, err)

		text := promptText(t, result)
		assert.Contains(t, text, "summary analysis")
		assert.Contains(t, text, "Total users: 1")
		assert.Contains(t, text, "Most common domain: example.com (1 users)")
	})

	t.Run("most common domain shows its user count", func(t *testing.T) {
		d := newTestDeps(t)
		for _, r := range []userstore.Record{
			{Name: "Alice", Email: "alice@example.com"},
			{Name: "Bob", Email: "bob@example.com"},
			{Name: "Carol", Email: "carol@example.com"},
			{Name: "Dave", Email: "dave@other.org"},
		} {
			_, err := d.Store.Append(r)
			require.NoError(t, err)
		}

		result, err := HandleDataAnalysis(d)(context.Background(), &sdkmcp.GetPromptRequest{
			Params: &sdkmcp.GetPromptParams{Name: "data_analysis_prompt"},
		})
		require.NoError(t, err)

		text := promptText(t, result)
		assert.Contains(t, text, "Most common domain: example.com (3 users)")
		assert.Contains(t, text, "Email domains: 2")
	})

	t.Run("quality focus", func(t *testing.T) {
		result, err := handler(context.Background(), &sdkmcp.GetPromptRequest{
			Params: &sdkmcp.GetPromptParams{
				Name:      "data_analysis_prompt",
				Arguments: map[string]string{"analysis_type": "quality"},
			},
		})
		require.NoError(t, err)

		text := promptText(t, result)
		assert.Contains(t, text, "quality analysis")
		assert.Contains(t, text, "validity percentage")
	})

	t.Run("unknown type falls back to summary focus", func(t *testing.T) {
		result, err := handler(context.Background(), &sdkmcp.GetPromptRequest{
			Params: &sdkmcp.GetPromptParams{
				Name:      "data_analysis_prompt",
				Arguments: map[string]string{"analysis_type": "bogus"},
			},
		})
		require.NoError(t, err)

		text := promptText(t, result)
		assert.Contains(t, text, "bogus analysis")
		assert.Contains(t, text, "High-level counts")
	})
}
