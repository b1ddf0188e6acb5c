// Package tools implements the MCP tool handlers for the draft service.
package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/asanchezr/gttb/internal/db"
	"github.com/asanchezr/gttb/internal/draft"
)

// DraftService is the slice of the blog service the tools need.
type DraftService interface {
	Generate(ctx context.Context, prURL string) (*db.Draft, error)
	History(ctx context.Context, limit int) ([]db.Draft, error)
	Get(ctx context.Context, id int64) (*db.Draft, error)
	Search(ctx context.Context, query string, limit int) ([]db.DraftSearchRow, error)
}

type GenerateDraftHandler struct{ Service DraftService }

func (h *GenerateDraftHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prURL, _ := req.GetArguments()["pr_url"].(string)
	if prURL == "" {
		return mcp.NewToolResultError("pr_url parameter is required"), nil
	}

	d, err := h.Service.Generate(ctx, prURL)
	if err != nil {
		if msg, ok := domainErrorMessage(err); ok {
			return mcp.NewToolResultError(msg), nil
		}
		return nil, err
	}
	return mcp.NewToolResultText(string(mustMarshal(d))), nil
}

type ListDraftsHandler struct{ Service DraftService }

func (h *ListDraftsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := 0
	if raw, ok := req.GetArguments()["limit"].(float64); ok && raw > 0 {
		limit = int(raw)
	}

	drafts, err := h.Service.History(ctx, limit)
	if err != nil {
		return nil, err
	}

	type summary struct {
		ID             int64   `json:"id"`
		PRURL          string  `json:"pr_url"`
		PRTitle        *string `json:"pr_title"`
		GeneratedTitle *string `json:"generated_title"`
		CreatedAt      string  `json:"created_at"`
	}
	items := make([]summary, 0, len(drafts))
	for _, d := range drafts {
		items = append(items, summary{
			ID:             d.ID,
			PRURL:          d.PRURL,
			PRTitle:        d.PRTitle,
			GeneratedTitle: d.GeneratedTitle,
			CreatedAt:      d.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	response := struct {
		Drafts []summary `json:"drafts"`
		Total  int       `json:"total"`
	}{Drafts: items, Total: len(items)}
	return mcp.NewToolResultText(string(mustMarshal(response))), nil
}

type GetDraftHandler struct{ Service DraftService }

func (h *GetDraftHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := parseIDArgument(req.GetArguments()["id"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	d, err := h.Service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, draft.ErrDraftNotFound) {
			return mcp.NewToolResultError("draft not found"), nil
		}
		return nil, err
	}
	return mcp.NewToolResultText(string(mustMarshal(d))), nil
}

type SearchDraftsHandler struct{ Service DraftService }

func (h *SearchDraftsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	query, _ := args["query"].(string)
	if query == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}
	limit := 0
	if raw, ok := args["limit"].(float64); ok && raw > 0 {
		limit = int(raw)
	}

	results, err := h.Service.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	response := struct {
		Query   string              `json:"query"`
		Results []db.DraftSearchRow `json:"results"`
		Total   int                 `json:"total_found"`
	}{Query: query, Results: results, Total: len(results)}
	return mcp.NewToolResultText(string(mustMarshal(response))), nil
}

// domainErrorMessage maps the error taxonomy to the fixed messages surfaced
// to tool callers; upstream details stay in the server log.
func domainErrorMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, draft.ErrInvalidPRURL):
		return "invalid GitHub PR URL", true
	case errors.Is(err, draft.ErrGitHubAuth):
		return "GitHub authentication failed", true
	case errors.Is(err, draft.ErrPRNotFound):
		return "pull request not found", true
	case errors.Is(err, draft.ErrUpstream):
		return "upstream service error", true
	}
	return "", false
}
