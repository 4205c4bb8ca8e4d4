// Package prompts contains MCP prompt implementations for the user data
// server.
package prompts

import (
	"github.com/mcp-tg/sever-template/internal/analyze"
	"github.com/mcp-tg/sever-template/internal/userstore"
)

// Deps contains the dependencies prompt handlers need to embed live system
// state into their text.
type Deps struct {
	Store    *userstore.Store
	Analyzer *analyze.Analyzer
}
