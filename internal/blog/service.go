// Package blog orchestrates draft generation: parse the PR reference, fetch
// the bundle, generate markdown, persist by natural key.
package blog

import (
	"context"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/asanchezr/gttb/internal/db"
	"github.com/asanchezr/gttb/internal/generate"
	"github.com/asanchezr/gttb/internal/github"
	"github.com/asanchezr/gttb/internal/logging"
)

// BundleFetcher fetches one PR snapshot from the hosting API.
type BundleFetcher interface {
	GetBundle(ctx context.Context, owner, repo string, number int) (*github.PullRequestData, error)
}

// MarkdownGenerator turns a PR snapshot into draft markdown.
type MarkdownGenerator interface {
	Generate(ctx context.Context, pr *github.PullRequestData) (string, error)
}

// Store is the persistence surface the service needs.
type Store interface {
	Upsert(ctx context.Context, d *db.Draft) error
	ListRecent(ctx context.Context, limit int) ([]db.Draft, error)
	GetByID(ctx context.Context, id int64) (*db.Draft, error)
	Search(ctx context.Context, embedding []float32, limit int) ([]db.DraftSearchRow, error)
}

// Embedder computes optional embedding vectors for semantic search.
type Embedder interface {
	Enabled() bool
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

type Service struct {
	fetcher   BundleFetcher
	generator MarkdownGenerator
	store     Store
	embedder  Embedder
	log       logging.Logger
}

func NewService(fetcher BundleFetcher, generator MarkdownGenerator, store Store, embedder Embedder, logger logging.Logger) *Service {
	return &Service{
		fetcher:   fetcher,
		generator: generator,
		store:     store,
		embedder:  embedder,
		log:       logging.New(logger.Logr()).WithName("blog"),
	}
}

// Generate runs one end-to-end generation for the given PR URL and returns
// the persisted draft. Any parse, fetch or generation failure aborts before
// the store is touched.
func (s *Service) Generate(ctx context.Context, prURL string) (*db.Draft, error) {
	owner, repo, number, err := github.ParsePRURL(prURL)
	if err != nil {
		return nil, err
	}

	bundle, err := s.fetcher.GetBundle(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}

	markdown, err := s.generator.Generate(ctx, bundle)
	if err != nil {
		return nil, err
	}

	record := &db.Draft{
		PRURL:          prURL,
		Owner:          owner,
		Repo:           repo,
		PRNumber:       number,
		PRTitle:        &bundle.Title,
		GeneratedTitle: generate.ExtractTitle(markdown),
		Markdown:       markdown,
		Embedding:      s.embedDraft(ctx, markdown),
	}
	if err := s.store.Upsert(ctx, record); err != nil {
		return nil, err
	}

	s.log.Info("draft stored", "owner", owner, "repo", repo, "pr", number, "id", record.ID)
	return record, nil
}

// embedDraft is best-effort: disabled or failing embeddings leave the column
// NULL and never fail the generation.
func (s *Service) embedDraft(ctx context.Context, markdown string) *pgvector.Vector {
	if s.embedder == nil || !s.embedder.Enabled() {
		return nil
	}
	vec, err := s.embedder.EmbedText(ctx, markdown)
	if err != nil {
		s.log.Error(err, "draft embedding failed, storing without vector")
		return nil
	}
	v := pgvector.NewVector(vec)
	return &v
}

// History lists the most recently created drafts, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]db.Draft, error) {
	return s.store.ListRecent(ctx, limit)
}

// Get fetches a single draft by id.
func (s *Service) Get(ctx context.Context, id int64) (*db.Draft, error) {
	return s.store.GetByID(ctx, id)
}

// Search finds drafts semantically similar to the query. It requires a
// configured embedder.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]db.DraftSearchRow, error) {
	if s.embedder == nil || !s.embedder.Enabled() {
		return []db.DraftSearchRow{}, nil
	}
	vec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.store.Search(ctx, vec, limit)
}
