package prompts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleDataAnalysis serves the data analysis prompt. The analysis_type
// argument selects the focus; unknown values fall back to summary.
func HandleDataAnalysis(d *Deps) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		analysisType := "summary"
		if v, ok := req.Params.Arguments["analysis_type"]; ok && v != "" {
			analysisType = v
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Please perform a %s analysis of the current user data.\n\n", analysisType))

		users, err := d.Store.Load()
		if err != nil {
			slog.Warn("could not load users for analysis prompt", "error", err)
			sb.WriteString("Current data context is unavailable; use the analyze_users tool to gather it.\n\n")
		} else {
			summary := d.Analyzer.Summarize(users)
			sb.WriteString("Current data context:\n")
			sb.WriteString(fmt.Sprintf("- Total users: %d\n", summary.Total))
			sb.WriteString(fmt.Sprintf("- Unique names: %d\n", summary.UniqueNames))
			sb.WriteString(fmt.Sprintf("- Email domains: %d\n", len(summary.Domains)))
			if summary.MostCommonDomain != "" {
				sb.WriteString(fmt.Sprintf("- Most common domain: %s (%d users)\n", summary.MostCommonDomain, summary.Domains[summary.MostCommonDomain]))
			}
			sb.WriteString(fmt.Sprintf("- Average name length: %.1f characters\n", summary.AverageNameLength))
			sb.WriteString("\n")
		}

		switch analysisType {
		case "detailed":
			sb.WriteString("Focus areas:\n")
			sb.WriteString("- Per-domain user breakdown and outliers\n")
			sb.WriteString("- Name length distribution and naming patterns\n")
			sb.WriteString("- Duplicate names and what they might indicate\n")
		case "quality":
			sb.WriteString("Focus areas:\n")
			sb.WriteString("- Records with invalid or suspicious email formats\n")
			sb.WriteString("- Empty or placeholder names\n")
			sb.WriteString("- Overall validity percentage and concrete cleanup steps\n")
		case "demographic":
			sb.WriteString("Focus areas:\n")
			sb.WriteString("- Email domain distribution as a proxy for user origin\n")
			sb.WriteString("- Concentration versus diversity of domains\n")
			sb.WriteString("- Opportunities to expand reach beyond dominant domains\n")
		default:
			sb.WriteString("Focus areas:\n")
			sb.WriteString("- High-level counts and domain distribution\n")
			sb.WriteString("- One or two notable patterns worth a closer look\n")
		}

		sb.WriteString("\nUse the analyze_users tool and the data://users/report resource for full details, ")
		sb.WriteString("and query_users for ad-hoc questions over the raw records.\n")

		return &sdkmcp.GetPromptResult{
			Description: fmt.Sprintf("Data analysis prompt (%s)", analysisType),
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
