package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Prompt 1: user management assistant
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "user_management_assistant",
		Description: "Assistant setup for managing the user data store. Embeds the current user count and lists available tools and resources.",
	}, HandleUserManagementAssistant(d))

	// Prompt 2: data analysis
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "data_analysis_prompt",
		Description: "Analysis instructions with current data context. analysis_type tailors the focus: summary, detailed, quality, or demographic.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "analysis_type",
				Description: "Type of analysis to perform: summary (default), detailed, quality, or demographic",
				Required:    false,
			},
		},
	}, HandleDataAnalysis(d))
}
