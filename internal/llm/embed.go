package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms/openai"

	"github.com/asanchezr/gttb/internal/logging"
)

// EmbeddingClient computes embedding vectors for draft search. It is
// optional: a client built without an API key reports Enabled() == false and
// callers skip embedding entirely.
type EmbeddingClient struct {
	llm   *openai.LLM
	model string
	log   logging.Logger
	to    time.Duration
}

func NewEmbeddingClient(apiKey, model string, timeout time.Duration, logger logging.Logger) (*EmbeddingClient, error) {
	log := logging.New(logger.Logr()).WithName("embeddings")
	client := &EmbeddingClient{model: model, log: log, to: timeout}
	if apiKey == "" {
		return client, nil
	}

	m, err := openai.New(openai.WithToken(apiKey), openai.WithEmbeddingModel(model))
	if err != nil {
		return nil, fmt.Errorf("create openai embedding client: %w", err)
	}
	client.llm = m
	return client, nil
}

func (c *EmbeddingClient) Enabled() bool {
	return c != nil && c.llm != nil
}

// EmbedText returns the embedding vector for a single text.
func (c *EmbeddingClient) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("embedding client not configured")
	}
	if c.to > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.to)
		defer cancel()
	}

	start := time.Now()
	vectors, err := c.llm.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}
	c.log.Debug("embedded text", "model", c.model, "chars", len(text), "took", time.Since(start).String())
	return vectors[0], nil
}
