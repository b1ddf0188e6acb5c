// Package httpapi provides the HTTP surface for draft generation and history.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/asanchezr/gttb/internal/db"
	"github.com/asanchezr/gttb/internal/draft"
	"github.com/asanchezr/gttb/internal/logging"
)

// Service is the draft-generation surface the HTTP layer calls into.
type Service interface {
	Generate(ctx context.Context, prURL string) (*db.Draft, error)
	History(ctx context.Context, limit int) ([]db.Draft, error)
	Get(ctx context.Context, id int64) (*db.Draft, error)
	Search(ctx context.Context, query string, limit int) ([]db.DraftSearchRow, error)
}

type Handler struct {
	service      Service
	defaultLimit int
	log          logging.Logger
}

func NewHandler(svc Service, defaultLimit int, logger logging.Logger) *Handler {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	return &Handler{service: svc, defaultLimit: defaultLimit, log: logging.New(logger.Logr()).WithName("http")}
}

// Generate handles POST /api/generate.
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	d, err := h.service.Generate(c.Request.Context(), req.PRURL)
	if err != nil {
		h.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// History handles GET /api/history.
func (h *Handler) History(c *gin.Context) {
	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			errorResponse(c, "INVALID_REQUEST", "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	drafts, err := h.service.History(c.Request.Context(), limit)
	if err != nil {
		h.writeDomainError(c, err)
		return
	}

	items := make([]DraftListItem, 0, len(drafts))
	for _, d := range drafts {
		items = append(items, toListItem(d))
	}
	c.JSON(http.StatusOK, items)
}

// GetDraft handles GET /api/history/:id.
func (h *Handler) GetDraft(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "draft id must be an integer", http.StatusBadRequest)
		return
	}

	d, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// Search handles GET /api/search.
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		errorResponse(c, "INVALID_REQUEST", "q parameter is required", http.StatusBadRequest)
		return
	}
	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			errorResponse(c, "INVALID_REQUEST", "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	results, err := h.service.Search(c.Request.Context(), query, limit)
	if err != nil {
		h.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeDomainError maps the error taxonomy onto fixed status/message pairs.
func (h *Handler) writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, draft.ErrInvalidPRURL):
		errorResponse(c, "INVALID_PR_URL", "invalid GitHub PR URL", http.StatusUnprocessableEntity)
	case errors.Is(err, draft.ErrGitHubAuth):
		errorResponse(c, "GITHUB_AUTH", "GitHub authentication failed", http.StatusUnauthorized)
	case errors.Is(err, draft.ErrPRNotFound):
		errorResponse(c, "PR_NOT_FOUND", "pull request not found", http.StatusNotFound)
	case errors.Is(err, draft.ErrDraftNotFound):
		errorResponse(c, "DRAFT_NOT_FOUND", "draft not found", http.StatusNotFound)
	case errors.Is(err, draft.ErrUpstream):
		errorResponse(c, "UPSTREAM_ERROR", "upstream service error", http.StatusBadGateway)
	default:
		h.log.Error(err, "unhandled service error", "path", c.FullPath())
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
