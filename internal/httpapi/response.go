package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/asanchezr/gttb/internal/db"
)

// GenerateRequest is the POST /api/generate body.
type GenerateRequest struct {
	PRURL string `json:"pr_url" binding:"required"`
}

// DraftListItem is a history entry with the markdown body omitted.
type DraftListItem struct {
	ID             int64     `json:"id"`
	PRURL          string    `json:"pr_url"`
	PRTitle        *string   `json:"pr_title"`
	GeneratedTitle *string   `json:"generated_title"`
	CreatedAt      time.Time `json:"created_at"`
}

func toListItem(d db.Draft) DraftListItem {
	return DraftListItem{
		ID:             d.ID,
		PRURL:          d.PRURL,
		PRTitle:        d.PRTitle,
		GeneratedTitle: d.GeneratedTitle,
		CreatedAt:      d.CreatedAt,
	}
}

// ErrorResponse is the uniform error body. Messages are fixed per error
// kind; upstream error details never leak through.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorResponse(c *gin.Context, code, message string, status int) {
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code, Message: message})
}
