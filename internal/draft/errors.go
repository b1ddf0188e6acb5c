package draft

import "errors"

var (
	// ErrInvalidPRURL indicates the submitted pull-request URL does not match
	// the https://github.com/<owner>/<repo>/pull/<number> form.
	ErrInvalidPRURL = errors.New("invalid GitHub PR URL")
	// ErrPRNotFound indicates GitHub reported the pull request as missing.
	ErrPRNotFound = errors.New("pull request not found")
	// ErrGitHubAuth indicates GitHub rejected the configured credential.
	ErrGitHubAuth = errors.New("github authentication failed")
	// ErrUpstream covers any other GitHub or LLM provider failure, including
	// timeouts and malformed responses.
	ErrUpstream = errors.New("upstream service error")
	// ErrDraftNotFound indicates the requested draft id is absent in the store.
	ErrDraftNotFound = errors.New("draft not found")
)
