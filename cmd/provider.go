package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/talentvec/talentvec/internal/embedding"
	"github.com/talentvec/talentvec/internal/embedding/gemini"
	"github.com/talentvec/talentvec/internal/embedding/openai"
	"github.com/talentvec/talentvec/internal/secrets"

	"go.uber.org/zap"
)

// newProvider builds the embedding provider from the configuration. The
// returned name and model feed the info endpoint and log fields.
func newProvider(ctx context.Context, cfg *EmbeddingConfig, logger *zap.Logger) (embedding.Provider, string, string, error) {
	if cfg == nil {
		cfg = &EmbeddingConfig{}
	}

	name := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if name == "" {
		name = "gemini"
	}

	var (
		provider embedding.Provider
		model    string
	)

	switch name {
	case "gemini":
		gcfg := cfg.Gemini
		if gcfg == nil {
			gcfg = &GeminiConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: gcfg.APIKey,
			File:  gcfg.APIKeyFile,
			Env:   "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, "", "", fmt.Errorf("%w (set embedding.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}

		client, err := gemini.New(ctx, apiKey, gcfg.Model)
		if err != nil {
			return nil, "", "", err
		}
		provider, model = client, client.Model()

	case "openai":
		ocfg := cfg.OpenAI
		if ocfg == nil {
			ocfg = &OpenAIConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "openai api key",
			Value: ocfg.APIKey,
			File:  ocfg.APIKeyFile,
			Env:   "OPENAI_API_KEY",
		})
		if err != nil {
			return nil, "", "", fmt.Errorf("%w (set embedding.openai.api-key-file or OPENAI_API_KEY_FILE)", err)
		}

		client, err := openai.New(apiKey, ocfg.Model)
		if err != nil {
			return nil, "", "", err
		}
		provider, model = client, client.Model()

	default:
		return nil, "", "", fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}

	logger.Info("embedding provider ready",
		zap.String("provider", name),
		zap.String("model", model),
		zap.Bool("cache", cfg.Cache),
	)

	if cfg.Cache {
		provider = embedding.NewCache(provider)
	}

	return provider, name, model, nil
}
