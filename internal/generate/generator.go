// Package generate assembles the two-message prompt for a PR bundle and
// drives the completion call that produces the draft markdown.
package generate

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/asanchezr/gttb/internal/github"
	"github.com/asanchezr/gttb/internal/logging"
	"github.com/asanchezr/gttb/internal/summarize"
)

// Completer is the single-call completion dependency.
type Completer interface {
	Complete(ctx context.Context, messages []llms.MessageContent) (string, error)
}

type Generator struct {
	completer Completer
	log       logging.Logger
}

func NewGenerator(completer Completer, logger logging.Logger) *Generator {
	return &Generator{completer: completer, log: logging.New(logger.Logr()).WithName("generate")}
}

// Generate builds the prompt from the PR bundle and returns the completion
// result verbatim. The generated markdown is not post-processed.
func (g *Generator) Generate(ctx context.Context, pr *github.PullRequestData) (string, error) {
	messages := g.buildMessages(pr)
	return g.completer.Complete(ctx, messages)
}

func (g *Generator) buildMessages(pr *github.PullRequestData) []llms.MessageContent {
	body := summarize.TruncateBlock(pr.Body, summarize.BodyLimit)
	if body == "" {
		body = noBodyMarker
	}
	diff := summarize.TruncateBlock(pr.Diff, summarize.DiffLimit)
	if diff == "" {
		diff = noDiffMarker
	}

	replacer := strings.NewReplacer(
		"{{.Title}}", pr.Title,
		"{{.Body}}", body,
		"{{.FileSummary}}", summarize.Files(pr.Files),
		"{{.CommentSummary}}", summarize.Comments(pr.Comments),
		"{{.Diff}}", diff,
	)
	userPrompt := replacer.Replace(userPromptTemplate)

	g.log.Debug("assembled prompt",
		"files", len(pr.Files),
		"comments", len(pr.Comments),
		"est_tokens", summarize.EstimateTokens(systemPrompt)+summarize.EstimateTokens(userPrompt),
	)

	return []llms.MessageContent{
		{Role: llms.ChatMessageTypeSystem, Parts: []llms.ContentPart{llms.TextContent{Text: systemPrompt}}},
		{Role: llms.ChatMessageTypeHuman, Parts: []llms.ContentPart{llms.TextContent{Text: userPrompt}}},
	}
}

// ExtractTitle returns the text of the first markdown heading line, with the
// leading '#' markers and surrounding whitespace stripped, or nil when the
// document has no heading.
func ExtractTitle(markdown string) *string {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			title := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			return &title
		}
	}
	return nil
}
