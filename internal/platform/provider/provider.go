// Package provider selects the LLM client named in the configuration.
package provider

import (
	"context"
	"errors"
	"fmt"

	"pantrychef/internal/config"
	"pantrychef/internal/platform/gemini"
	"pantrychef/internal/platform/localllm"
	"pantrychef/internal/recipe"
)

// ErrNoAPIKey is what every call returns when Gemini has no key.
var ErrNoAPIKey = errors.New("no API key configured")

// missingKey stands in for the Gemini client when no key is configured, so
// the program still starts and each generation fails as unavailable.
type missingKey struct{}

func (missingKey) GenerateText(context.Context, string, recipe.Format) (string, error) {
	return "", ErrNoAPIKey
}

// New builds the generator for cfg.Provider. The returned func releases it.
func New(ctx context.Context, cfg *config.Config) (recipe.TextGenerator, func(), error) {
	switch cfg.Provider {
	case config.ProviderLocal:
		return localllm.NewClient(cfg.LocalLLMURL, cfg.LocalLLMModel, localllm.WithAPIKey(cfg.APIKey)), func() {}, nil
	case config.ProviderGemini:
		if cfg.MissingCredential() {
			return missingKey{}, func() {}, nil
		}
		client, err := gemini.NewClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, nil, fmt.Errorf("error creating gemini client: %w", err)
		}
		return client, func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
