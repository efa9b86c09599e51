// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shashikant999/AstraNode/pkg/types"
)

func TestNew_MissingKeyIsUnavailable(t *testing.T) {
	for _, p := range []types.BackendProvider{"", types.ProviderGemini, types.ProviderClaude, types.ProviderOpenAI, types.ProviderNone} {
		t.Run(string(p), func(t *testing.T) {
			g, err := New(context.Background(), types.BackendConfig{Provider: p})
			require.NoError(t, err)
			assert.False(t, g.Available())

			_, err = g.Generate(context.Background(), "prompt")
			assert.True(t, errors.Is(err, ErrUnavailable))
		})
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), types.BackendConfig{Provider: "watson"})
	assert.Error(t, err)
}

func TestNew_ProviderIsCaseInsensitive(t *testing.T) {
	g, err := New(context.Background(), types.BackendConfig{Provider: "CLAUDE", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &Claude{}, g)
	assert.Equal(t, DefaultClaudeModel, g.Model())
}

func TestNew_OllamaDefaults(t *testing.T) {
	g, err := New(context.Background(), types.BackendConfig{Provider: types.ProviderOllama})
	require.NoError(t, err)
	assert.True(t, g.Available())
	assert.Equal(t, DefaultOllamaModel, g.Model())
}

func TestNew_Gemini(t *testing.T) {
	g, err := New(context.Background(), types.BackendConfig{Provider: types.ProviderGemini, APIKey: "test-key"})
	require.NoError(t, err)
	assert.True(t, g.Available())
	assert.Equal(t, DefaultGeminiModel, g.Model())
}

func TestClaude_Generate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req claudeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-test", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "analyze this", req.Messages[0].Content)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"thinking","text":"hmm"},{"type":"text","text":"1. TOPIC "},{"type":"text","text":"INTERCONNECTIONS"}]}`))
	}))
	defer ts.Close()

	c := NewClaude(types.BackendConfig{APIKey: "test-key", Model: "claude-test", BaseURL: ts.URL})
	c.Client = ts.Client()

	got, err := c.Generate(context.Background(), "analyze this")
	require.NoError(t, err)
	assert.Equal(t, "1. TOPIC INTERCONNECTIONS", got)
	assert.Equal(t, "claude-test", c.Model())
}

func TestClaude_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer ts.Close()

	c := NewClaude(types.BackendConfig{APIKey: "k", BaseURL: ts.URL})
	_, err := c.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestClaude_EmptyContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"content":[]}`))
	}))
	defer ts.Close()

	c := NewClaude(types.BackendConfig{APIKey: "k", BaseURL: ts.URL})
	_, err := c.Generate(context.Background(), "p")
	assert.Error(t, err)
}

func TestOpenAI_Generate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Topic 1: Bone remodeling under load"},"finish_reason":"stop"}]}`))
	}))
	defer ts.Close()

	o := NewOpenAI(types.BackendConfig{APIKey: "test-key", Model: "gpt-test", BaseURL: ts.URL + "/v1"})
	got, err := o.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "Topic 1: Bone remodeling under load", got)
	assert.Equal(t, "gpt-test", o.Model())
}

func TestOpenAI_NoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	o := NewOpenAI(types.BackendConfig{APIKey: "k", BaseURL: ts.URL + "/v1"})
	_, err := o.Generate(context.Background(), "p")
	assert.Error(t, err)
}
