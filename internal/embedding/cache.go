package embedding

import (
	"context"
	"sync"
)

// Cache memoizes embeddings by text value around another provider. Values
// are deterministic for a fixed model, so a lost race between two first
// computations of the same text is harmless: both writers store the same
// vector.
type Cache struct {
	provider Provider

	mu      sync.RWMutex
	vectors map[string][]float32
}

func NewCache(provider Provider) *Cache {
	return &Cache{
		provider: provider,
		vectors:  make(map[string][]float32),
	}
}

func (c *Cache) Embed(ctx context.Context, text string) ([]float32, error) {
	c.mu.RLock()
	if vector, ok := c.vectors[text]; ok {
		c.mu.RUnlock()
		return vector, nil
	}
	c.mu.RUnlock()

	vector, err := c.provider.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.vectors[text] = vector
	c.mu.Unlock()

	return vector, nil
}

// EmbedBatch serves cached entries and forwards only the misses to the
// underlying provider.
func (c *Cache) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	missing := make([]int, 0, len(texts))

	c.mu.RLock()
	for i, text := range texts {
		if vector, ok := c.vectors[text]; ok {
			vectors[i] = vector
			continue
		}
		missing = append(missing, i)
	}
	c.mu.RUnlock()

	if len(missing) == 0 {
		return vectors, nil
	}

	texts2 := make([]string, len(missing))
	for i, idx := range missing {
		texts2[i] = texts[idx]
	}

	fetched, err := EmbedAll(ctx, c.provider, texts2)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for i, idx := range missing {
		vectors[idx] = fetched[i]
		c.vectors[texts[idx]] = fetched[i]
	}
	c.mu.Unlock()

	return vectors, nil
}

// Size reports the number of cached texts.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vectors)
}
