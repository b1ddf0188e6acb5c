// Package mcp exposes draft generation and history over the Model Context
// Protocol so agent tooling can drive the service.
package mcp

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		"gttb-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	toolDefinitions := map[string]mcp.Tool{
		"generate_draft": mcp.NewTool("generate_draft",
			mcp.WithDescription("Generate (or regenerate) a tech-blog draft from a GitHub pull request URL and persist it. Regenerating for the same PR overwrites the stored draft."),
			mcp.WithString("pr_url",
				mcp.Required(),
				mcp.Description("Full GitHub pull request URL (e.g., 'https://github.com/golang/go/pull/12345')"),
			),
		),
		"list_drafts": mcp.NewTool("list_drafts",
			mcp.WithDescription("List recently generated drafts, newest first. Returns summaries without the markdown body."),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of drafts to return (default: 20)"),
			),
		),
		"get_draft": mcp.NewTool("get_draft",
			mcp.WithDescription("Retrieve one generated draft by id, including the full markdown body."),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("The draft id as returned by list_drafts or generate_draft"),
			),
		),
		"search_drafts": mcp.NewTool("search_drafts",
			mcp.WithDescription("Semantic search across generated drafts using embeddings. Returns matching drafts with similarity distances."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Natural language search query (e.g., 'drafts about caching')"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of results to return (default: 20)"),
			),
		),
	}

	for name, adapter := range cfg.ToolAdapters {
		mcpServer.AddTool(toolDefinitions[name], adapter.ToolAdapter)
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: httpServer,
	}
}
