package tools

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mcp-tg/sever-template/internal/userstore"
)

// BulkAddUsersInput is the input for bulk_add_users.
type BulkAddUsersInput struct {
	Users []UserInput `json:"users"`
}

// BulkAddUsersOutput is the output for bulk_add_users.
type BulkAddUsersOutput struct {
	Status         string   `json:"status"`
	TotalProcessed int      `json:"total_processed"`
	Successful     int      `json:"successful"`
	Failed         int      `json:"failed"`
	Errors         []string `json:"errors,omitzero"`
}

// ToolBulkAddUsers appends many users in one document rewrite. Invalid
// records are reported and skipped; the valid remainder is still written.
func ToolBulkAddUsers(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input BulkAddUsersInput) (*sdkmcp.CallToolResult, BulkAddUsersOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input BulkAddUsersInput) (*sdkmcp.CallToolResult, BulkAddUsersOutput, error) {
		if len(input.Users) == 0 {
			return nil, BulkAddUsersOutput{Status: "success"}, nil
		}
		if len(input.Users) > d.Config.MaxBulkUsers {
			return nil, BulkAddUsersOutput{}, ErrInvalidInput(
				fmt.Sprintf("too many users in one call: %d (max %d)", len(input.Users), d.Config.MaxBulkUsers))
		}

		slog.Info("starting bulk user addition", "count", len(input.Users))

		records := make([]userstore.Record, len(input.Users))
		for i, u := range input.Users {
			records[i] = userstore.Record{Name: u.Name, Email: u.Email}
		}

		added, rejected, err := d.Store.AppendAll(records)
		if err != nil {
			return nil, BulkAddUsersOutput{}, WrapStoreError(err)
		}

		output := BulkAddUsersOutput{
			Status:         "completed",
			TotalProcessed: len(input.Users),
			Successful:     len(added),
			Failed:         len(rejected),
		}
		for _, r := range rejected {
			name := r.Record.Name
			if name == "" {
				name = "Unknown"
			}
			output.Errors = append(output.Errors, fmt.Sprintf("Failed to add user %s: %s", name, r.Reason))
		}

		slog.Info("bulk addition finished", "successful", output.Successful, "failed", output.Failed)
		return nil, output, nil
	}
}
