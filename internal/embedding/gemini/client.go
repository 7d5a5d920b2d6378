// Package gemini implements the embedding provider on top of the Google
// GenAI API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/talentvec/talentvec/internal/embedding"
)

const defaultModel = "gemini-embedding-001"

// Client wraps the Google GenAI client for embedding generation.
type Client struct {
	client    *genai.Client
	modelName string
}

// New creates a Client configured for the Gemini API backend.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Client{client: client, modelName: model}, nil
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
		return nil, errors.New("gemini client is not initialized")
	}
	if len(texts) == 0 {
		return nil, errors.New("at least one text is required")
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, &embedding.ProviderError{Text: text, Err: errors.New("text must not be empty")}
		}
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	resp, err := c.client.Models.EmbedContent(ctx, c.modelName, contents, nil)
	if err != nil {
		return nil, &embedding.ProviderError{Text: texts[0], Err: fmt.Errorf("embed content: %w", err)}
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, &embedding.ProviderError{
			Text: texts[0],
			Err:  fmt.Errorf("gemini api returned %d embeddings for %d texts", len(resp.Embeddings), len(texts)),
		}
	}

	vectors := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, &embedding.ProviderError{Text: texts[i], Err: errors.New("gemini api returned empty embedding")}
		}
		vectors[i] = emb.Values
	}

	return vectors, nil
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}
