package db

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/uptrace/bun"
)

// Draft is a generated blog draft persisted per pull-request identity.
// (owner, repo, pr_number) is the natural key: regenerating for the same PR
// overwrites the row in place while id and created_at survive, so created_at
// is a first-seen timestamp rather than a last-update one.
type Draft struct {
	bun.BaseModel `bun:"table:drafts"`

	ID             int64            `bun:"id,pk,autoincrement" json:"id"`
	PRURL          string           `bun:"pr_url" json:"pr_url"`
	Owner          string           `bun:"owner,unique:uq_pr" json:"owner"`
	Repo           string           `bun:"repo,unique:uq_pr" json:"repo"`
	PRNumber       int              `bun:"pr_number,unique:uq_pr" json:"pr_number"`
	PRTitle        *string          `bun:"pr_title" json:"pr_title"`
	GeneratedTitle *string          `bun:"generated_title" json:"generated_title"`
	Markdown       string           `bun:"markdown" json:"markdown"`
	Embedding      *pgvector.Vector `bun:"embedding" json:"-"` // NULL when embeddings are disabled or failed
	CreatedAt      time.Time        `bun:"created_at" json:"created_at"`
}
