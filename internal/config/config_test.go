package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PANTRYCHEF_API_KEY", "")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://localhost:8081"}, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.True(t, cfg.MissingCredential())
}

func TestLoadReadsBareAPIKey(t *testing.T) {
	t.Setenv("PANTRYCHEF_API_KEY", "")
	t.Setenv("API_KEY", "secret")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.False(t, cfg.MissingCredential())
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yml := "llm:\n  provider: local\n  timeout: 10s\nport: \"9000\"\nsession:\n  idle_timeout: 5m\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600))
	t.Setenv("PORT", "9100")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ProviderLocal, cfg.Provider)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.SessionIdleTimeout)
	assert.False(t, cfg.MissingCredential())
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("PANTRYCHEF_LLM_PROVIDER", "carrier-pigeon")

	_, err := Load(t.TempDir())
	assert.Error(t, err)
}
