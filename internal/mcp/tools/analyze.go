package tools

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AnalyzeUsersInput is the input for analyze_users.
type AnalyzeUsersInput struct{}

// AnalyzeUsersOutput is the output for analyze_users.
type AnalyzeUsersOutput struct {
	TotalUsers   int            `json:"total_users"`
	EmailDomains map[string]int `json:"email_domains,omitzero"`
	Insights     []string       `json:"insights,omitzero"`
}

// ToolAnalyzeUsers runs the statistical analysis over all stored users.
func ToolAnalyzeUsers(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input AnalyzeUsersInput) (*sdkmcp.CallToolResult, AnalyzeUsersOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input AnalyzeUsersInput) (*sdkmcp.CallToolResult, AnalyzeUsersOutput, error) {
		users, err := d.Store.Load()
		if err != nil {
			return nil, AnalyzeUsersOutput{}, WrapStoreError(err)
		}

		if len(users) == 0 {
			slog.Warn("no users found for analysis")
			return nil, AnalyzeUsersOutput{
				EmailDomains: map[string]int{},
				Insights:     []string{"No users to analyze"},
			}, nil
		}

		output := AnalyzeUsersOutput{
			TotalUsers:   len(users),
			EmailDomains: d.Analyzer.Domains(users),
			Insights:     d.Analyzer.Insights(users),
		}

		slog.Info("user analysis completed", "total_users", output.TotalUsers, "domains", len(output.EmailDomains))
		return nil, output, nil
	}
}
