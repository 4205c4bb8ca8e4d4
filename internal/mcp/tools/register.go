package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: write_user
	AddTool(srv, &sdkmcp.Tool{
		Name:        "write_user",
		Description: "Add a new user to the data storage. Requires a non-empty name and an email containing '@'. Duplicate names are allowed; records keep insertion order.",
	}, ToolWriteUser(d))

	// Tool 2: get_user_count
	AddTool(srv, &sdkmcp.Tool{
		Name:        "get_user_count",
		Description: "Get the total number of users in storage. Returns 0 when no users file exists.",
	}, ToolUserCount(d))

	// Tool 3: analyze_users
	AddTool(srv, &sdkmcp.Tool{
		Name:        "analyze_users",
		Description: "Analyze user data and provide insights: email domain distribution, name length patterns, and data quality findings. Use the data://users/report resource for the full report.",
	}, ToolAnalyzeUsers(d))

	// Tool 4: bulk_add_users
	AddTool(srv, &sdkmcp.Tool{
		Name:        "bulk_add_users",
		Description: "Add multiple users in one call. Each user is validated individually; invalid records are reported in errors while the valid remainder is still written.",
	}, ToolBulkAddUsers(d))

	// Tool 5: search_users
	AddTool(srv, &sdkmcp.Tool{
		Name:        "search_users",
		Description: "Free-text search across user names and emails. Query terms are tokenized and ANDed: every term must match somewhere in the record. Results keep insertion order.",
	}, ToolSearchUsers(d))

	// Tool 6: query_users
	AddTool(srv, &sdkmcp.Tool{
		Name:        "query_users",
		Description: "Run a JQ expression against the users document ({\"users\": [...]}). E.g. '.users[].email' or '.users[] | select(.name == \"Alice\")'. Set deduplicate to drop repeated values.",
	}, ToolQueryUsers(d))
}
