package blog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/asanchezr/gttb/internal/db"
	"github.com/asanchezr/gttb/internal/draft"
	"github.com/asanchezr/gttb/internal/github"
	"github.com/asanchezr/gttb/internal/llm"
	"github.com/asanchezr/gttb/internal/logging"
)

type mockFetcher struct{ mock.Mock }

func (m *mockFetcher) GetBundle(ctx context.Context, owner, repo string, number int) (*github.PullRequestData, error) {
	args := m.Called(ctx, owner, repo, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*github.PullRequestData), args.Error(1)
}

type mockGenerator struct{ mock.Mock }

func (m *mockGenerator) Generate(ctx context.Context, pr *github.PullRequestData) (string, error) {
	args := m.Called(ctx, pr)
	return args.String(0), args.Error(1)
}

type mockStore struct{ mock.Mock }

func (m *mockStore) Upsert(ctx context.Context, d *db.Draft) error {
	args := m.Called(ctx, d)
	if args.Error(0) == nil {
		d.ID = 1
	}
	return args.Error(0)
}

func (m *mockStore) ListRecent(ctx context.Context, limit int) ([]db.Draft, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.Draft), args.Error(1)
}

func (m *mockStore) GetByID(ctx context.Context, id int64) (*db.Draft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.Draft), args.Error(1)
}

func (m *mockStore) Search(ctx context.Context, embedding []float32, limit int) ([]db.DraftSearchRow, error) {
	args := m.Called(ctx, embedding, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.DraftSearchRow), args.Error(1)
}

func newTestService(fetcher *mockFetcher, generator *mockGenerator, store *mockStore) *Service {
	return NewService(fetcher, generator, store, nil, logging.Logger{})
}

func TestGenerate_HappyPath(t *testing.T) {
	fetcher := new(mockFetcher)
	generator := new(mockGenerator)
	store := new(mockStore)

	bundle := &github.PullRequestData{Title: "Add cache"}
	fetcher.On("GetBundle", mock.Anything, "octo", "widgets", 7).Return(bundle, nil)
	generator.On("Generate", mock.Anything, bundle).Return("Intro\n# Caching widgets\nBody", nil)
	store.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(fetcher, generator, store)
	got, err := svc.Generate(context.Background(), "https://github.com/octo/widgets/pull/7")
	require.NoError(t, err)

	assert.Equal(t, "octo", got.Owner)
	assert.Equal(t, "widgets", got.Repo)
	assert.Equal(t, 7, got.PRNumber)
	assert.Equal(t, "https://github.com/octo/widgets/pull/7", got.PRURL)
	require.NotNil(t, got.PRTitle)
	assert.Equal(t, "Add cache", *got.PRTitle)
	require.NotNil(t, got.GeneratedTitle)
	assert.Equal(t, "Caching widgets", *got.GeneratedTitle)
	assert.Nil(t, got.Embedding)

	fetcher.AssertExpectations(t)
	generator.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestGenerate_InvalidURL(t *testing.T) {
	fetcher := new(mockFetcher)
	generator := new(mockGenerator)
	store := new(mockStore)

	svc := newTestService(fetcher, generator, store)
	_, err := svc.Generate(context.Background(), "https://github.com/octo/widgets/issues/7")
	assert.ErrorIs(t, err, draft.ErrInvalidPRURL)

	fetcher.AssertNotCalled(t, "GetBundle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestGenerate_PRNotFound_NothingPersistedNoCompletion(t *testing.T) {
	fetcher := new(mockFetcher)
	generator := new(mockGenerator)
	store := new(mockStore)

	fetcher.On("GetBundle", mock.Anything, "octo", "widgets", 404).Return(nil, draft.ErrPRNotFound)

	svc := newTestService(fetcher, generator, store)
	_, err := svc.Generate(context.Background(), "https://github.com/octo/widgets/pull/404")
	assert.ErrorIs(t, err, draft.ErrPRNotFound)

	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestGenerate_CompletionFailure_NothingPersisted(t *testing.T) {
	fetcher := new(mockFetcher)
	generator := new(mockGenerator)
	store := new(mockStore)

	bundle := &github.PullRequestData{Title: "t"}
	fetcher.On("GetBundle", mock.Anything, "octo", "widgets", 7).Return(bundle, nil)
	generator.On("Generate", mock.Anything, bundle).Return("", draft.ErrUpstream)

	svc := newTestService(fetcher, generator, store)
	_, err := svc.Generate(context.Background(), "https://github.com/octo/widgets/pull/7")
	assert.ErrorIs(t, err, draft.ErrUpstream)

	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestGenerate_PlaceholderDraftTitle(t *testing.T) {
	fetcher := new(mockFetcher)
	generator := new(mockGenerator)
	store := new(mockStore)

	bundle := &github.PullRequestData{Title: "t"}
	fetcher.On("GetBundle", mock.Anything, "octo", "widgets", 7).Return(bundle, nil)
	generator.On("Generate", mock.Anything, bundle).Return(llm.Placeholder, nil)
	store.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(fetcher, generator, store)
	got, err := svc.Generate(context.Background(), "https://github.com/octo/widgets/pull/7")
	require.NoError(t, err)

	assert.Equal(t, llm.Placeholder, got.Markdown)
	require.NotNil(t, got.GeneratedTitle)
	assert.Equal(t, "Draft unavailable", *got.GeneratedTitle)
}

func TestSearch_WithoutEmbedderReturnsEmpty(t *testing.T) {
	svc := newTestService(new(mockFetcher), new(mockGenerator), new(mockStore))
	results, err := svc.Search(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}
