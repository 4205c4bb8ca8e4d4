// Package mcpsrv provides an extensible MCP server for a file-backed user
// data store.
//
// This package exposes a high-level API for creating and running an MCP server
// with all builtin user data tools, prompts, and resources. Users can extend
// the server with custom tools, prompts, and resources using functional
// options.
//
// # Basic Usage
//
// Create a server with default configuration:
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Add custom tools using MCP SDK types directly:
//
//	import mcp "github.com/modelcontextprotocol/go-sdk/mcp"
//
//	type MyInput struct {
//	    Name string `json:"name"`
//	}
//
//	type MyOutput struct {
//	    Count int `json:"count"`
//	}
//
//	func myHandler(ctx context.Context, req *mcp.CallToolRequest, input MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	    return nil, MyOutput{Count: 42}, nil
//	}
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithTool(&mcp.Tool{Name: "my_tool", Description: "My tool"}, myHandler),
//	)
//
// # Configuration
//
// Configure storage, logging, and other options:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithDataDir("/var/lib/userdata"),
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/userdata-mcp.log"),
//	)
package mcpsrv
