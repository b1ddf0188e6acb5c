package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	pgvector "github.com/pgvector/pgvector-go"
	"github.com/uptrace/bun"

	"github.com/asanchezr/gttb/internal/draft"
)

const defaultListLimit = 20

// DraftRepository persists generated drafts keyed by (owner, repo, pr_number).
type DraftRepository struct {
	db *bun.DB
}

func NewDraftRepository(database *Database) *DraftRepository {
	return &DraftRepository{db: database.Bun()}
}

// DraftSearchRow is a Draft joined with its cosine distance to a query vector.
type DraftSearchRow struct {
	Draft    `bun:",extend"`
	Distance float64 `bun:"distance" json:"distance"`
}

// Upsert inserts the draft or, when a row for the same (owner, repo,
// pr_number) already exists, overwrites pr_url, pr_title, generated_title,
// markdown and embedding in place. The statement is a single atomic
// INSERT ... ON CONFLICT DO UPDATE so concurrent requests for the same PR
// cannot create duplicate rows; id and created_at always come back from the
// surviving row.
func (r *DraftRepository) Upsert(ctx context.Context, d *Draft) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.NewInsert().
		Model(d).
		On("CONFLICT (owner, repo, pr_number) DO UPDATE").
		Set("pr_url = EXCLUDED.pr_url").
		Set("pr_title = EXCLUDED.pr_title").
		Set("generated_title = EXCLUDED.generated_title").
		Set("markdown = EXCLUDED.markdown").
		Set("embedding = EXCLUDED.embedding").
		Returning("*").
		Exec(ctx)
	return err
}

// ListRecent returns up to limit drafts ordered by created_at descending.
// Non-positive limits fall back to the default of 20.
func (r *DraftRepository) ListRecent(ctx context.Context, limit int) ([]Draft, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var drafts []Draft
	err := r.db.NewSelect().
		Model(&drafts).
		OrderExpr("created_at DESC, id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return drafts, nil
}

// GetByID fetches one draft by surrogate id.
func (r *DraftRepository) GetByID(ctx context.Context, id int64) (*Draft, error) {
	d := new(Draft)
	err := r.db.NewSelect().Model(d).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, draft.ErrDraftNotFound
		}
		return nil, err
	}
	return d, nil
}

// Search orders embedded drafts by cosine distance to the query vector.
// Drafts without an embedding are not searchable.
func (r *DraftRepository) Search(ctx context.Context, embedding []float32, limit int) ([]DraftSearchRow, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var results []DraftSearchRow
	err := r.db.NewSelect().
		Model(&results).
		Column("id", "pr_url", "owner", "repo", "pr_number", "pr_title", "generated_title", "created_at").
		ColumnExpr("embedding <=> ? AS distance", pgvector.NewVector(embedding)).
		Where("embedding IS NOT NULL").
		OrderExpr("distance").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return results, nil
}
