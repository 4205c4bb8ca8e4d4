package tools

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mcp-tg/sever-template/internal/userstore"
)

// QueryUsersInput is the input for query_users.
type QueryUsersInput struct {
	Expression  string `json:"expression"`
	Deduplicate bool   `json:"deduplicate,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

// QueryUsersOutput is the output for query_users.
type QueryUsersOutput struct {
	Values   []any    `json:"values,omitzero"`
	Errors   []string `json:"errors,omitzero"`
	RawCount int      `json:"raw_count"`
}

// ToolQueryUsers runs a JQ expression against the users document. The
// document root is {"users": [...]}, so expressions start at .users.
func ToolQueryUsers(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryUsersInput) (*sdkmcp.CallToolResult, QueryUsersOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryUsersInput) (*sdkmcp.CallToolResult, QueryUsersOutput, error) {
		if input.Expression == "" {
			return nil, QueryUsersOutput{}, ErrInvalidInput("expression is required")
		}

		users, err := d.Store.Load()
		if err != nil {
			return nil, QueryUsersOutput{}, WrapStoreError(err)
		}

		doc, err := json.Marshal(struct {
			Users []userstore.Record `json:"users"`
		}{Users: users})
		if err != nil {
			return nil, QueryUsersOutput{}, err
		}

		maxResults := input.MaxResults
		if maxResults <= 0 || maxResults > d.Config.MaxQueryResults {
			maxResults = d.Config.MaxQueryResults
		}

		res, err := d.Query.Query(doc, input.Expression, input.Deduplicate, maxResults)
		if err != nil {
			return nil, QueryUsersOutput{}, ErrInvalidInput(err.Error())
		}

		return nil, QueryUsersOutput{
			Values:   res.Values,
			Errors:   res.Errors,
			RawCount: res.RawCount,
		}, nil
	}
}
