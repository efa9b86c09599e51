// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than limit", "abc", 5, "abc"},
		{"exact limit", "abcde", 5, "abcde"},
		{"ascii cut", "abcdef", 3, "abc"},
		{"multibyte counted as runes", "μgravité", 4, "μgra"},
		{"zero limit", "abc", 0, ""},
		{"empty", "", 3, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.max))
		})
	}
}

func TestPaperContentSummary(t *testing.T) {
	p := PaperContent{
		Title:    "Bone Loss",
		Abstract: strings.Repeat("a", 600),
		Keywords: []string{"bone", "microgravity"},
	}
	got := p.Summary()

	assert.Contains(t, got, "Title: Bone Loss\n")
	assert.Contains(t, got, "Abstract: "+strings.Repeat("a", 500)+"...\n")
	assert.NotContains(t, got, strings.Repeat("a", 501))
	assert.Contains(t, got, "Keywords: bone, microgravity\n")

	bare := PaperContent{Title: "Only"}.Summary()
	assert.Equal(t, "Title: Only\n", bare)
}

func TestAnalyzerConfigWithDefaults(t *testing.T) {
	cfg := AnalyzerConfig{}.WithDefaults()

	assert.Equal(t, DefaultFetchTimeout, cfg.HTTP.Timeout)
	assert.Equal(t, BrowserUserAgent, cfg.HTTP.UserAgent)
	assert.Equal(t, time.Duration(0), cfg.FetchDelay, "zero delay is a valid setting")
	assert.Equal(t, DefaultMaxDocuments, cfg.MaxDocuments)
	assert.Equal(t, 1, cfg.Concurrency)
	assert.Equal(t, Limits{5000, 3000, 300, 400}, cfg.Limits)
	assert.Equal(t, ProviderGemini, cfg.Backend.Provider)
	assert.Equal(t, CacheMemory, cfg.Cache.Driver)

	assert.Equal(t, DefaultFetchDelay, DefaultAnalyzerConfig().FetchDelay)
	assert.Equal(t, time.Duration(0), AnalyzerConfig{FetchDelay: -time.Second}.WithDefaults().FetchDelay)
}

func TestResults(t *testing.T) {
	nc := NoContentResult()
	assert.False(t, nc.Success)
	assert.Equal(t, NoContentError, nc.Error)
	assert.NotNil(t, nc.InterlinkedTopics)

	ok := SuccessResult("text", nil, 2, "q", "m", AnalysisTypeBackend)
	assert.True(t, ok.Success)
	assert.Empty(t, ok.Error)
	assert.NotNil(t, ok.InterlinkedTopics)
	assert.Equal(t, 2, ok.PapersAnalyzed)

	topic := NewTopic("x", RelevanceHigh)
	assert.NotNil(t, topic.Connections)
	assert.Nil(t, topic.Frequency)
}
