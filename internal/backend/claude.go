// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Shashikant999/AstraNode/pkg/types"
)

// claudeAPIURL is the Claude Messages API endpoint.
const claudeAPIURL = "https://api.anthropic.com/v1/messages"

// Claude calls the Anthropic Messages API.
type Claude struct {
	APIKey    string
	ModelName string
	URL       string
	MaxTokens int
	Client    *http.Client
}

// NewClaude creates a Claude backend. cfg.BaseURL, when set, replaces the
// Messages API endpoint.
func NewClaude(cfg types.BackendConfig) *Claude {
	c := &Claude{
		APIKey:    cfg.APIKey,
		ModelName: cfg.Model,
		URL:       cfg.BaseURL,
		MaxTokens: cfg.MaxTokens,
	}
	if c.ModelName == "" {
		c.ModelName = DefaultClaudeModel
	}
	if c.URL == "" {
		c.URL = claudeAPIURL
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = types.DefaultMaxTokens
	}
	return c
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Generate sends prompt as one user message and concatenates the text blocks.
func (c *Claude) Generate(ctx context.Context, prompt string) (string, error) {
	bodyBytes, err := json.Marshal(claudeRequest{
		Model:     c.ModelName,
		MaxTokens: c.MaxTokens,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("Claude API returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding Claude response: %w", err)
	}

	var b strings.Builder
	for _, block := range cResp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no text content in Claude API response")
	}
	return b.String(), nil
}

func (c *Claude) Available() bool { return c.APIKey != "" }

func (c *Claude) Model() string { return c.ModelName }
