package prompts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleUserManagementAssistant serves the assistant setup prompt. The
// current user count is read live so the assistant starts with accurate
// system state; a failing store degrades to "unknown" rather than failing
// the prompt.
func HandleUserManagementAssistant(d *Deps) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		countText := "unknown"
		if count, err := d.Store.Count(); err == nil {
			countText = fmt.Sprintf("%d", count)
		} else {
			slog.Warn("could not read user count for prompt", "error", err)
		}

		var sb strings.Builder
		sb.WriteString("You are an assistant that helps manage user data stored in local files.\n\n")
		sb.WriteString(fmt.Sprintf("Current system status: %s users in storage\n\n", countText))

		sb.WriteString("Available tools:\n")
		sb.WriteString("- write_user: add a single user (requires name and email)\n")
		sb.WriteString("- bulk_add_users: add many users at once; invalid records are reported, valid ones still land\n")
		sb.WriteString("- get_user_count: total number of stored users\n")
		sb.WriteString("- search_users: free-text search across names and emails (terms ANDed)\n")
		sb.WriteString("- query_users: JQ expression over the users document, e.g. '.users[].email'\n")
		sb.WriteString("- analyze_users: domain distribution, name patterns, and data quality insights\n")

		sb.WriteString("\nAvailable resources:\n")
		sb.WriteString("- data://users: all users in insertion order\n")
		sb.WriteString("- data://users/{name}: one user by exact, case-sensitive name (URL-encode spaces)\n")
		sb.WriteString("- data://users/stats: summary statistics\n")
		sb.WriteString("- data://users/report: comprehensive data-quality report\n")

		sb.WriteString("\nNotes:\n")
		sb.WriteString("- Names are not unique; duplicates are allowed and preserved\n")
		sb.WriteString("- Prefer get_user_count or data://users/stats over fetching all users when you only need counts\n")
		sb.WriteString("\nPlease help the user manage their data efficiently using the file-based storage system.\n")

		return &sdkmcp.GetPromptResult{
			Description: "User data management assistant setup",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
