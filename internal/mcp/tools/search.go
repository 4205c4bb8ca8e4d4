package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchUsersInput is the input for search_users.
type SearchUsersInput struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// SearchUsersOutput is the output for search_users.
type SearchUsersOutput struct {
	Results      []UserInput `json:"results,omitzero"`
	TotalMatches int         `json:"total_matches"`
	Truncated    bool        `json:"truncated,omitempty"`
}

// ToolSearchUsers runs a free-text token search over names and emails.
func ToolSearchUsers(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchUsersInput) (*sdkmcp.CallToolResult, SearchUsersOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchUsersInput) (*sdkmcp.CallToolResult, SearchUsersOutput, error) {
		if input.Query == "" {
			return nil, SearchUsersOutput{}, ErrInvalidInput("query is required")
		}

		users, err := d.Store.Load()
		if err != nil {
			return nil, SearchUsersOutput{}, WrapStoreError(err)
		}

		limit := input.Limit
		if limit <= 0 {
			limit = d.Config.DefaultSearchLimit
		}

		res := d.Search.Search(users, input.Query, limit)

		output := SearchUsersOutput{
			Results:      make([]UserInput, len(res.Records)),
			TotalMatches: res.TotalMatches,
			Truncated:    res.Truncated,
		}
		for i, r := range res.Records {
			output.Results[i] = UserInput{Name: r.Name, Email: r.Email}
		}

		return nil, output, nil
	}
}
