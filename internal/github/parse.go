package github

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/asanchezr/gttb/internal/draft"
)

var prURLPattern = regexp.MustCompile(`(?i)^https?://github\.com/([^/]+)/([^/]+)/pull/(\d+)`)

// ParsePRURL extracts (owner, repo, number) from a GitHub pull-request URL.
// Owner and repo casing is preserved verbatim; anything that does not match
// the pull-request URL form fails with draft.ErrInvalidPRURL.
func ParsePRURL(prURL string) (string, string, int, error) {
	m := prURLPattern.FindStringSubmatch(strings.TrimSpace(prURL))
	if m == nil {
		return "", "", 0, draft.ErrInvalidPRURL
	}
	number, err := strconv.Atoi(m[3])
	if err != nil {
		return "", "", 0, draft.ErrInvalidPRURL
	}
	return m[1], m[2], number, nil
}
