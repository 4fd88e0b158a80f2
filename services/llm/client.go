// Package llm talks to the text-generation collaborator used for session insights, invite copy
// and loop recommendations. Every call made through CopyService returns a Result that carries
// either the model's answer or a deterministic fallback of the same shape.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"

	DefaultTimeout = 8 * time.Second
)

var (
	ErrNoClient        = errors.New("llm client not configured")
	ErrEmptyResponse   = errors.New("llm returned an empty response")
	ErrInvalidResponse = errors.New("llm returned an invalid response")
)

// Client sends one system + user prompt pair and returns the raw completion text.
// With jsonMode set the provider is asked for a JSON object.
type Client interface {
	Complete(ctx context.Context, system, user string, jsonMode bool) (string, error)
}

type Config struct {
	Provider      string
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiKey     string
	GeminiModel   string
	Timeout       time.Duration
}

// NewClient builds the client for cfg.Provider. A nil client with a nil error means the
// collaborator is switched off and every call goes straight to its fallback.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderNone:
		return nil, nil
	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for provider %s", ProviderOpenAI)
		}
		return NewOpenAIClient(OpenAIConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.Timeout,
		}), nil
	case ProviderGemini:
		client, err := NewGeminiClient(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
