// Package llm wraps the OpenAI chat-completion and embedding endpoints
// behind small clients with per-call timeouts. An unconfigured client is a
// supported degraded mode, not an error.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/asanchezr/gttb/internal/draft"
	"github.com/asanchezr/gttb/internal/logging"
)

// Placeholder is returned instead of generated markdown when no API key is
// configured. Callers treat it as a regular successful draft body.
const Placeholder = "# Draft unavailable\n\nProvide OPENAI_API_KEY to enable Markdown generation."

type Config struct {
	APIKey      string
	Model       string
	CallTimeout time.Duration
	Logger      logging.Logger
}

// CompletionClient issues a single chat-completion call per request. With no
// API key configured it short-circuits to Placeholder without any network
// traffic.
type CompletionClient struct {
	llm *openai.LLM
	log logging.Logger
	to  time.Duration
}

func NewCompletionClient(cfg Config) (*CompletionClient, error) {
	log := logging.New(cfg.Logger.Logr()).WithName("llm")
	client := &CompletionClient{log: log, to: cfg.CallTimeout}
	if cfg.APIKey == "" {
		log.Info("no OpenAI API key configured, drafts will use the placeholder body")
		return client, nil
	}

	model, err := openai.New(openai.WithToken(cfg.APIKey), openai.WithModel(cfg.Model))
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	client.llm = model
	return client, nil
}

// Complete sends the ordered messages and returns the first candidate
// completion. A response with no candidates yields an empty string; provider
// failures map to draft.ErrUpstream.
func (c *CompletionClient) Complete(ctx context.Context, messages []llms.MessageContent) (string, error) {
	if c.llm == nil {
		return Placeholder, nil
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%w: llm generation failed: %v", draft.ErrUpstream, c.annotateError(err))
	}
	if len(resp.Choices) == 0 {
		c.log.Info("completion returned no candidates")
		return "", nil
	}
	return resp.Choices[0].Content, nil
}

func (c *CompletionClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.to <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.to)
}

func (c *CompletionClient) annotateError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("llm call timed out after %s: %w", c.to, err)
	}
	return err
}
