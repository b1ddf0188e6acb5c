package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asanchezr/gttb/internal/draft"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientConfig{BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestGetBundle(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/widgets/pulls/7", func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Accept"), "diff") {
			fmt.Fprint(w, "diff --git a/main.go b/main.go\n+added line\n")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"number":7,"title":"Add widget cache","body":"Caches widgets."}`)
	})
	mux.HandleFunc("/repos/octo/widgets/pulls/7/files", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"filename":"main.go","status":"modified","additions":10,"deletions":2,"patch":"@@ -1 +1 @@"},
			{"filename":"cache.go","status":"added","additions":50,"deletions":0}
		]`)
	})
	mux.HandleFunc("/repos/octo/widgets/pulls/7/comments", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"user":{"login":"alice"},"body":"nice","path":"main.go","position":3},
			{"body":"anonymous note"}
		]`)
	})

	client := newTestClient(t, mux)
	bundle, err := client.GetBundle(context.Background(), "octo", "widgets", 7)
	require.NoError(t, err)

	assert.Equal(t, "Add widget cache", bundle.Title)
	assert.Equal(t, "Caches widgets.", bundle.Body)
	assert.Contains(t, bundle.Diff, "diff --git")

	require.Len(t, bundle.Files, 2)
	assert.Equal(t, "main.go", bundle.Files[0].Filename)
	assert.Equal(t, 10, bundle.Files[0].Additions)
	assert.Equal(t, "added", bundle.Files[1].Status)
	assert.Empty(t, bundle.Files[1].Patch)

	require.Len(t, bundle.Comments, 2)
	assert.Equal(t, "alice", bundle.Comments[0].User)
	assert.Equal(t, "main.go", bundle.Comments[0].Path)
	assert.Empty(t, bundle.Comments[1].User)
	assert.Equal(t, "anonymous note", bundle.Comments[1].Body)
}

func TestGetBundle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		headers map[string]string
		body    string
		wantErr error
	}{
		{"not found", http.StatusNotFound, nil, `{"message":"nope"}`, draft.ErrPRNotFound},
		{"unauthorized", http.StatusUnauthorized, nil, `{"message":"nope"}`, draft.ErrGitHubAuth},
		{"forbidden", http.StatusForbidden, nil, `{"message":"nope"}`, draft.ErrGitHubAuth},
		{"primary rate limit", http.StatusForbidden,
			map[string]string{"X-RateLimit-Remaining": "0", "X-RateLimit-Limit": "60", "X-RateLimit-Reset": "1"},
			`{"message":"API rate limit exceeded"}`, draft.ErrGitHubAuth},
		{"secondary rate limit", http.StatusForbidden, nil,
			`{"message":"You have exceeded a secondary rate limit. Please wait a few minutes before you try again."}`,
			draft.ErrGitHubAuth},
		{"server error", http.StatusInternalServerError, nil, `{"message":"nope"}`, draft.ErrUpstream},
		{"bad gateway", http.StatusBadGateway, nil, `{"message":"nope"}`, draft.ErrUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.Header().Set("Content-Type", "application/json")
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))

			_, err := client.GetBundle(context.Background(), "octo", "widgets", 7)
			assert.ErrorIs(t, err, tt.wantErr)
			// fail-fast: the metadata call fails, nothing else is fetched
			assert.Equal(t, 1, calls)
		})
	}
}

func TestGetBundle_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client, err := NewClient(ClientConfig{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.GetBundle(context.Background(), "octo", "widgets", 7)
	assert.ErrorIs(t, err, draft.ErrUpstream)
}
