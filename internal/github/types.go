package github

// PullRequestFile describes one changed file in a PR. Built per request from
// the GitHub files listing, never persisted.
type PullRequestFile struct {
	Filename  string
	Status    string
	Additions int
	Deletions int
	Patch     string
}

// PullRequestComment is a single review comment. An empty User means the
// author handle was absent in the API response.
type PullRequestComment struct {
	User     string
	Body     string
	Path     string
	Position int
}

// PullRequestData is one fetched snapshot of a pull request: metadata, the
// full unified diff, changed files and review comments. Immutable once built.
type PullRequestData struct {
	Title    string
	Body     string
	Diff     string
	Files    []PullRequestFile
	Comments []PullRequestComment
}
