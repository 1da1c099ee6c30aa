package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantrychef/internal/config"
	"pantrychef/internal/logger"
	"pantrychef/internal/platform/localllm"
	"pantrychef/internal/recipe"
)

func TestMissingKeyFailsAsUnavailable(t *testing.T) {
	gen, release, err := New(context.Background(), &config.Config{Provider: config.ProviderGemini})
	require.NoError(t, err)
	defer release()

	svc := recipe.NewService(gen, logger.Nop())
	_, err = svc.GenerateRecipe(context.Background(), "eggs", nil)
	assert.ErrorIs(t, err, recipe.ErrServiceUnavailable)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestLocalProvider(t *testing.T) {
	gen, release, err := New(context.Background(), &config.Config{
		Provider:      config.ProviderLocal,
		LocalLLMURL:   "http://localhost:1234/v1/chat/completions",
		LocalLLMModel: "gemma-3-12b-it",
	})
	require.NoError(t, err)
	defer release()

	_, ok := gen.(*localllm.Client)
	assert.True(t, ok)
}

func TestUnknownProvider(t *testing.T) {
	_, _, err := New(context.Background(), &config.Config{Provider: "oracle"})
	assert.Error(t, err)
}
