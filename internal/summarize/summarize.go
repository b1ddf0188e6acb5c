// Package summarize reduces a fetched PR bundle into bounded-length text
// blocks for prompt assembly. All functions are pure and deterministic; the
// truncation widths are a contract that keeps prompt cost bounded regardless
// of PR size.
package summarize

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/asanchezr/gttb/internal/github"
)

const (
	maxFiles      = 15
	maxComments   = 15
	patchWidth    = 220
	commentWidth  = 180
	truncatedMark = "... [truncated]"

	// DiffLimit and BodyLimit are the TruncateBlock limits used when
	// assembling the prompt.
	DiffLimit = 6000
	BodyLimit = 2000

	noFilesFallback    = "No file summary available."
	noCommentsFallback = "No review comments."
)

// Files renders at most the first 15 files, one line each, in input order.
func Files(files []github.PullRequestFile) string {
	if len(files) == 0 {
		return noFilesFallback
	}
	if len(files) > maxFiles {
		files = files[:maxFiles]
	}
	lines := make([]string, 0, len(files))
	for _, f := range files {
		status := f.Status
		if status == "" {
			status = "modified"
		}
		line := fmt.Sprintf("- %s (+%d/-%d, %s)", f.Filename, f.Additions, f.Deletions, status)
		if f.Patch != "" {
			line += " | patch: " + shorten(f.Patch, patchWidth)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Comments renders at most the first 15 review comments, one line each.
func Comments(comments []github.PullRequestComment) string {
	if len(comments) == 0 {
		return noCommentsFallback
	}
	if len(comments) > maxComments {
		comments = comments[:maxComments]
	}
	lines := make([]string, 0, len(comments))
	for _, c := range comments {
		author := c.User
		if author == "" {
			author = "someone"
		}
		location := ""
		if c.Path != "" {
			location = " (" + c.Path + ")"
		}
		lines = append(lines, fmt.Sprintf("- %s%s: %s", author, location, shorten(c.Body, commentWidth)))
	}
	return strings.Join(lines, "\n")
}

// TruncateBlock returns text unchanged when it fits within limit, otherwise
// the leading limit bytes, backed off to a rune boundary, followed by a
// truncation marker. Empty input yields an empty string.
func TruncateBlock(text string, limit int) string {
	if text == "" {
		return ""
	}
	if len(text) <= limit {
		return text
	}
	return text[:runeBoundary(text, limit)] + truncatedMark
}

// shorten collapses all whitespace runs (including newlines) to single
// spaces, then truncates to width characters at a word boundary with a
// trailing " ..." marker. Strings that already fit are returned as-is.
func shorten(text string, width int) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	if len(collapsed) <= width {
		return collapsed
	}
	const placeholder = " ..."
	cut := collapsed[:runeBoundary(collapsed, width-len(placeholder))]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ") + placeholder
}

// runeBoundary backs i off until s[:i] ends on a complete rune, so a cut
// never leaves invalid UTF-8 behind.
func runeBoundary(s string, i int) int {
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
