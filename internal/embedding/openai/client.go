// Package openai implements the embedding provider on top of the OpenAI
// embeddings API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/talentvec/talentvec/internal/embedding"
)

const defaultModel = goopenai.SmallEmbedding3

// Client wraps the go-openai client for embedding generation.
type Client struct {
	client *goopenai.Client
	model  goopenai.EmbeddingModel
}

// New creates a Client for the given API key and model name.
func New(apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	embeddingModel := defaultModel
	if model = strings.TrimSpace(model); model != "" {
		embeddingModel = goopenai.EmbeddingModel(model)
	}

	return &Client{
		client: goopenai.NewClient(apiKey),
		model:  embeddingModel,
	}, nil
}

// Embed returns the embedding vector for a single text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds every text in one API call. The result is parallel to
// the input.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("openai client is not initialized")
	}
	if len(texts) == 0 {
		return nil, errors.New("at least one text is required")
	}

	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, &embedding.ProviderError{Text: text, Err: errors.New("text must not be empty")}
		}
	}

	req := goopenai.EmbeddingRequest{
		Input: texts,
		Model: c.model,
	}

	resp, err := c.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, &embedding.ProviderError{Text: texts[0], Err: fmt.Errorf("create embeddings: %w", err)}
	}

	if len(resp.Data) != len(texts) {
		return nil, &embedding.ProviderError{
			Text: texts[0],
			Err:  fmt.Errorf("openai api returned %d embeddings for %d texts", len(resp.Data), len(texts)),
		}
	}

	vectors := make([][]float32, len(texts))
	for i, data := range resp.Data {
		if len(data.Embedding) == 0 {
			return nil, &embedding.ProviderError{Text: texts[i], Err: errors.New("openai api returned empty embedding")}
		}
		vectors[i] = data.Embedding
	}

	return vectors, nil
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return string(c.model)
}
