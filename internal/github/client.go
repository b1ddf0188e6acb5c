package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/asanchezr/gttb/internal/draft"
	"github.com/asanchezr/gttb/internal/logging"
)

// requestTimeout bounds every individual GitHub API call.
const requestTimeout = 20 * time.Second

const defaultAPIBase = "https://api.github.com"

type ClientConfig struct {
	Token   string
	BaseURL string
	Logger  logging.Logger
}

// Client fetches pull-request bundles from the GitHub REST API.
type Client struct {
	gh  *gh.Client
	log logging.Logger
}

func NewClient(cfg ClientConfig) (*Client, error) {
	hc := &http.Client{Timeout: requestTimeout}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		hc = oauth2.NewClient(context.Background(), ts)
		hc.Timeout = requestTimeout
	}

	client := gh.NewClient(hc)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" && base != defaultAPIBase {
		parsed, err := url.Parse(strings.TrimSuffix(base, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse github base url: %w", err)
		}
		client.BaseURL = parsed
	}

	return &Client{gh: client, log: logging.New(cfg.Logger.Logr()).WithName("github")}, nil
}

// FetchPullRequest retrieves the PR metadata record.
func (c *Client) FetchPullRequest(ctx context.Context, owner, repo string, number int) (*gh.PullRequest, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, mapError(err)
	}
	return pr, nil
}

// FetchFiles lists the changed files. Only the first page (100 entries) is
// requested; PRs touching more files are summarized from that page alone.
func (c *Client) FetchFiles(ctx context.Context, owner, repo string, number int) ([]*gh.CommitFile, error) {
	files, _, err := c.gh.PullRequests.ListFiles(ctx, owner, repo, number, &gh.ListOptions{PerPage: 100})
	if err != nil {
		return nil, mapError(err)
	}
	return files, nil
}

// FetchComments lists review comments, first page only (100 entries).
func (c *Client) FetchComments(ctx context.Context, owner, repo string, number int) ([]*gh.PullRequestComment, error) {
	opts := &gh.PullRequestListCommentsOptions{ListOptions: gh.ListOptions{PerPage: 100}}
	comments, _, err := c.gh.PullRequests.ListComments(ctx, owner, repo, number, opts)
	if err != nil {
		return nil, mapError(err)
	}
	return comments, nil
}

// FetchDiff retrieves the raw unified diff via the diff media type.
func (c *Client) FetchDiff(ctx context.Context, owner, repo string, number int) (string, error) {
	diff, _, err := c.gh.PullRequests.GetRaw(ctx, owner, repo, number, gh.RawOptions{Type: gh.Diff})
	if err != nil {
		return "", mapError(err)
	}
	return diff, nil
}

// GetBundle fetches metadata, files, comments and diff sequentially and maps
// them into a PullRequestData snapshot. The first failed call aborts the
// whole fetch; no partial bundle is ever returned.
func (c *Client) GetBundle(ctx context.Context, owner, repo string, number int) (*PullRequestData, error) {
	pr, err := c.FetchPullRequest(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}
	files, err := c.FetchFiles(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}
	comments, err := c.FetchComments(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}
	diff, err := c.FetchDiff(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}

	bundle := &PullRequestData{
		Title:    pr.GetTitle(),
		Body:     pr.GetBody(),
		Diff:     diff,
		Files:    make([]PullRequestFile, 0, len(files)),
		Comments: make([]PullRequestComment, 0, len(comments)),
	}
	for _, f := range files {
		bundle.Files = append(bundle.Files, PullRequestFile{
			Filename:  f.GetFilename(),
			Status:    f.GetStatus(),
			Additions: f.GetAdditions(),
			Deletions: f.GetDeletions(),
			Patch:     f.GetPatch(),
		})
	}
	for _, cm := range comments {
		bundle.Comments = append(bundle.Comments, PullRequestComment{
			User:     cm.GetUser().GetLogin(),
			Body:     cm.GetBody(),
			Path:     cm.GetPath(),
			Position: cm.GetPosition(),
		})
	}

	c.log.Debug("fetched PR bundle",
		"owner", owner, "repo", repo, "number", number,
		"files", len(bundle.Files), "comments", len(bundle.Comments), "diff_bytes", len(diff),
	)
	return bundle, nil
}

// mapError translates go-github errors into the domain taxonomy. Credential
// rejections (401/403, including rate limits) map to ErrGitHubAuth, missing
// PRs to ErrPRNotFound, everything else to ErrUpstream.
func mapError(err error) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%w: rate limited", draft.ErrGitHubAuth)
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: secondary rate limited", draft.ErrGitHubAuth)
	}
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: status %d", draft.ErrGitHubAuth, ghErr.Response.StatusCode)
		case http.StatusNotFound:
			return draft.ErrPRNotFound
		default:
			return fmt.Errorf("%w: github status %d", draft.ErrUpstream, ghErr.Response.StatusCode)
		}
	}
	return fmt.Errorf("%w: %v", draft.ErrUpstream, err)
}
