package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/asanchezr/gttb/internal/mcp/tools"
)

// EndpointPath is where the streamable MCP server is mounted on the shared
// HTTP listener.
const EndpointPath = "/mcp/jsonrpc"

type Config struct {
	ToolAdapters map[string]ToolAdapter
	Options      []server.StreamableHTTPOption
}

// NewConfig wires all draft tools against the given service.
func NewConfig(svc tools.DraftService) Config {
	return Config{
		ToolAdapters: map[string]ToolAdapter{
			"generate_draft": &tools.GenerateDraftHandler{Service: svc},
			"list_drafts":    &tools.ListDraftsHandler{Service: svc},
			"get_draft":      &tools.GetDraftHandler{Service: svc},
			"search_drafts":  &tools.SearchDraftsHandler{Service: svc},
		},
		Options: []server.StreamableHTTPOption{
			server.WithEndpointPath(EndpointPath),
			server.WithStateLess(true),
		},
	}
}
