package tools

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mcp-tg/sever-template/internal/userstore"
)

// UserInput is a single user payload for write_user and bulk_add_users.
type UserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// WriteUserOutput is the output for write_user.
type WriteUserOutput struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	TotalUsers int    `json:"total_users"`
}

// UserCountInput is the input for get_user_count.
type UserCountInput struct{}

// UserCountOutput is the output for get_user_count.
type UserCountOutput struct {
	Count int `json:"count"`
}

// ToolWriteUser appends one user to storage.
func ToolWriteUser(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input UserInput) (*sdkmcp.CallToolResult, WriteUserOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input UserInput) (*sdkmcp.CallToolResult, WriteUserOutput, error) {
		slog.Info("adding user", "name", input.Name, "email", input.Email)

		users, err := d.Store.Append(userstore.Record{Name: input.Name, Email: input.Email})
		if err != nil {
			return nil, WriteUserOutput{}, WrapStoreError(err)
		}

		return nil, WriteUserOutput{
			Status:     "success",
			Message:    fmt.Sprintf("User %s added", input.Name),
			TotalUsers: len(users),
		}, nil
	}
}

// ToolUserCount returns the number of stored users.
func ToolUserCount(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input UserCountInput) (*sdkmcp.CallToolResult, UserCountOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input UserCountInput) (*sdkmcp.CallToolResult, UserCountOutput, error) {
		count, err := d.Store.Count()
		if err != nil {
			return nil, UserCountOutput{}, WrapStoreError(err)
		}

		slog.Debug("user count retrieved", "count", count)
		return nil, UserCountOutput{Count: count}, nil
	}
}
