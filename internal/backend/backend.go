// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package backend provides the text-generation capability used to write the
// interlinking analysis. Providers share one small interface so the analyzer
// never inspects backend internals.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shashikant999/AstraNode/pkg/types"
)

// ErrUnavailable is returned by Generate on a backend that is not configured.
var ErrUnavailable = errors.New("generation backend unavailable")

// Generator produces free text from a prompt.
type Generator interface {
	// Generate makes one blocking call. There is no retry.
	Generate(ctx context.Context, prompt string) (string, error)
	// Available reports whether Generate can be attempted at all.
	Available() bool
	// Model is the tag reported in analysis results.
	Model() string
}

// Default model per provider.
const (
	DefaultGeminiModel = "gemini-2.5-pro"
	DefaultClaudeModel = "claude-sonnet-4-5-20250929"
	DefaultOpenAIModel = "gpt-4o"
	DefaultOllamaModel = "llama3.1"
	DefaultOllamaURL   = "http://localhost:11434"
)

// New returns the provider selected by cfg. A provider that needs an API key
// but has none yields an Unavailable backend rather than an error, so the
// analyzer degrades to its deterministic fallback.
func New(ctx context.Context, cfg types.BackendConfig) (Generator, error) {
	provider := types.BackendProvider(strings.ToLower(string(cfg.Provider)))

	switch provider {
	case types.ProviderNone:
		return NewUnavailable("disabled by configuration"), nil

	case "", types.ProviderGemini:
		if cfg.APIKey == "" {
			return NewUnavailable("no Gemini API key"), nil
		}
		return NewGemini(ctx, cfg)

	case types.ProviderClaude:
		if cfg.APIKey == "" {
			return NewUnavailable("no Anthropic API key"), nil
		}
		return NewClaude(cfg), nil

	case types.ProviderOpenAI:
		if cfg.APIKey == "" {
			return NewUnavailable("no OpenAI API key"), nil
		}
		return NewOpenAI(cfg), nil

	case types.ProviderOllama:
		// Ollama ignores the key but the OpenAI client requires one.
		if cfg.APIKey == "" {
			cfg.APIKey = "ollama"
		}
		if cfg.BaseURL == "" {
			cfg.BaseURL = DefaultOllamaURL
		}
		if !strings.HasSuffix(cfg.BaseURL, "/v1") {
			cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/") + "/v1"
		}
		if cfg.Model == "" {
			cfg.Model = DefaultOllamaModel
		}
		return NewOpenAI(cfg), nil

	default:
		return nil, fmt.Errorf("unsupported backend provider: %s", cfg.Provider)
	}
}

// Unavailable is a backend whose Available flag is false.
type Unavailable struct {
	Reason string
}

// NewUnavailable returns a backend that always reports unavailable.
func NewUnavailable(reason string) *Unavailable {
	return &Unavailable{Reason: reason}
}

func (u *Unavailable) Generate(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrUnavailable, u.Reason)
}

func (u *Unavailable) Available() bool { return false }

func (u *Unavailable) Model() string { return "none" }
