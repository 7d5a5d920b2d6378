// Package embedding defines the boundary to the text-embedding backend and
// the similarity math shared by the ranking, matching and clustering
// services.
package embedding

import (
	"context"
	"math"
)

// Provider maps a text to a fixed-dimensionality vector. Implementations
// must return vectors of constant length across calls and be deterministic
// for a fixed text and model version.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// BatchProvider extends Provider with batch embedding. When EmbedBatch
// returns a nil error the result has the same length as texts, with
// result[i] corresponding to texts[i].
type BatchProvider interface {
	Provider
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// ProviderError reports a failed embedding call together with the text that
// failed, so the caller can decide on retry policy.
type ProviderError struct {
	Text string
	Err  error
}

func (e *ProviderError) Error() string {
	return "embedding failed for text " + quotePreview(e.Text) + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error { return e.Err }

func quotePreview(s string) string {
	const limit = 60
	runes := []rune(s)
	if len(runes) > limit {
		s = string(runes[:limit]) + "..."
	}
	return "\"" + s + "\""
}

// Cosine computes cosine similarity between two vectors, accumulating in
// float64. Returns 0 for mismatched lengths or zero vectors.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// EmbedAll embeds every text through the provider, using batch support when
// the backend offers it. Duplicate texts are embedded independently.
func EmbedAll(ctx context.Context, provider Provider, texts []string) ([][]float32, error) {
	if batcher, ok := provider.(BatchProvider); ok {
		vectors, err := batcher.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, err
		}
		if len(vectors) == len(texts) {
			return vectors, nil
		}
		// Fall through when the backend returned a short batch.
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := provider.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vector
	}
	return vectors, nil
}
