// Package ranking turns a query and a set of candidate texts into a
// deterministic, ordered relevance ranking.
package ranking

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/talentvec/talentvec/internal/embedding"
	"github.com/talentvec/talentvec/internal/faults"
)

// Candidate pairs a text with the identifier of its source record. The ID
// travels through the ranking so results never have to be matched back to
// their records by string equality, which breaks under duplicate texts.
type Candidate struct {
	ID   string
	Text string
}

// Result is a single ranked entry. Rank is the 1-based position after the
// sort. Similarity is cosine, in [-1, 1].
type Result struct {
	ID         string
	Text       string
	Similarity float64
	Rank       int
}

// Engine ranks candidates against a query by embedding similarity. Safe for
// concurrent use: every call computes its own embeddings.
type Engine struct {
	provider embedding.Provider
	logger   *zap.Logger
}

func NewEngine(provider embedding.Provider, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{provider: provider, logger: logger}
}

// Rank returns the candidates ordered by similarity to the query, truncated
// to topK entries. topK must be positive.
func (e *Engine) Rank(ctx context.Context, query string, candidates []Candidate, topK int) ([]Result, error) {
	if topK <= 0 {
		return nil, faults.Newf(faults.InvalidInput, "top_k must be positive, got %d", topK)
	}

	results, err := e.RankAll(ctx, query, candidates)
	if err != nil {
		return nil, err
	}

	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

// RankAll returns the full ranking without truncation. The returned slice is
// sorted non-increasing by similarity; ties keep the original input order.
func (e *Engine) RankAll(ctx context.Context, query string, candidates []Candidate) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, faults.New(faults.InvalidInput, "query must not be empty")
	}
	if len(candidates) == 0 {
		return nil, faults.New(faults.InvalidInput, "at least one candidate is required")
	}

	queryVector, err := e.provider.Embed(ctx, query)
	if err != nil {
		return nil, faults.Wrap(faults.ProviderFailure, err, "embedding query")
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Text
	}

	vectors, err := embedding.EmbedAll(ctx, e.provider, texts)
	if err != nil {
		return nil, faults.Wrap(faults.ProviderFailure, err, "embedding candidates")
	}

	results := make([]Result, len(candidates))
	for i, c := range candidates {
		results[i] = Result{
			ID:         c.ID,
			Text:       c.Text,
			Similarity: embedding.Cosine(queryVector, vectors[i]),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	for i := range results {
		results[i].Rank = i + 1
	}

	e.logger.Debug("ranked candidates",
		zap.String("query", query),
		zap.Int("candidates", len(candidates)),
		zap.Float64("top_similarity", results[0].Similarity),
	)

	return results, nil
}

// Similarity computes cosine similarity between two texts.
func (e *Engine) Similarity(ctx context.Context, a, b string) (float64, error) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0, faults.New(faults.InvalidInput, "both texts must be non-empty")
	}

	vectors, err := embedding.EmbedAll(ctx, e.provider, []string{a, b})
	if err != nil {
		return 0, faults.Wrap(faults.ProviderFailure, err, "embedding texts")
	}

	return embedding.Cosine(vectors[0], vectors[1]), nil
}

// FromTexts builds candidates with positional identifiers for callers that
// rank bare text lists.
func FromTexts(texts []string) []Candidate {
	candidates := make([]Candidate, len(texts))
	for i, text := range texts {
		candidates[i] = Candidate{ID: "", Text: text}
	}
	return candidates
}
