// Package config loads runtime settings from defaults, an optional
// configs/config.yml and the process environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Providers understood by the recipe service wiring.
const (
	ProviderGemini = "gemini"
	ProviderLocal  = "local"
)

// Config represents the application configuration.
type Config struct {
	APIKey         string
	Provider       string
	Model          string
	LocalLLMURL    string
	LocalLLMModel  string
	Port           string
	AllowedOrigins []string
	LogLevel       string
	RequestTimeout time.Duration
	WhisperBin     string
	WhisperModel   string

	// SessionIdleTimeout expires API sessions nobody has touched; zero keeps them.
	SessionIdleTimeout time.Duration
}

// Load reads the configuration. The config file is optional; paths default
// to ./configs and the working directory.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"configs", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("PANTRYCHEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The credential keeps the bare names the hosting environment injects.
	_ = v.BindEnv("api_key", "PANTRYCHEF_API_KEY", "API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("port", "PANTRYCHEF_PORT", "PORT")

	cfg := &Config{
		APIKey:             v.GetString("api_key"),
		Provider:           strings.ToLower(v.GetString("llm.provider")),
		Model:              v.GetString("llm.model"),
		LocalLLMURL:        v.GetString("llm.local_url"),
		LocalLLMModel:      v.GetString("llm.local_model"),
		Port:               v.GetString("port"),
		AllowedOrigins:     v.GetStringSlice("cors.allowed_origins"),
		LogLevel:           v.GetString("log.level"),
		RequestTimeout:     v.GetDuration("llm.timeout"),
		WhisperBin:         v.GetString("whisper.bin"),
		WhisperModel:       v.GetString("whisper.model"),
		SessionIdleTimeout: v.GetDuration("session.idle_timeout"),
	}

	switch cfg.Provider {
	case ProviderGemini, ProviderLocal:
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("llm.timeout must be positive, got %s", cfg.RequestTimeout)
	}
	if cfg.SessionIdleTimeout < 0 {
		return nil, fmt.Errorf("session.idle_timeout must not be negative, got %s", cfg.SessionIdleTimeout)
	}
	return cfg, nil
}

// MissingCredential reports whether the selected provider needs an API key
// that was not supplied.
func (c *Config) MissingCredential() bool {
	return c.Provider == ProviderGemini && c.APIKey == ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.local_url", "http://localhost:1234/v1/chat/completions")
	v.SetDefault("llm.local_model", "gemma-3-12b-it")
	v.SetDefault("llm.timeout", 45*time.Second)
	v.SetDefault("port", "8080")
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:8081"})
	v.SetDefault("log.level", "info")
	v.SetDefault("session.idle_timeout", 30*time.Minute)
	v.SetDefault("whisper.bin", "whisper-cli")
	v.SetDefault("whisper.model", "models/ggml-base.en.bin")
}
