// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shashikant999/AstraNode/pkg/types"
)

func testPapers() []types.PaperContent {
	return []types.PaperContent{
		{
			Title:    "Paper A",
			URL:      "https://site/articles/ID1111",
			Abstract: strings.Repeat("a", 350),
			FullText: strings.Repeat("b", 500),
			Keywords: []string{"microgravity", "bone density"},
		},
		{
			Title: "Paper B",
			URL:   "https://example.org/x",
		},
	}
}

func TestBuild_Deterministic(t *testing.T) {
	first := Build(testPapers(), "bone density microgravity", types.Limits{})
	second := Build(testPapers(), "bone density microgravity", types.Limits{})
	assert.Equal(t, first, second)
}

func TestBuild_Content(t *testing.T) {
	got := Build(testPapers(), "bone density microgravity", types.Limits{})

	assert.Contains(t, got, `USER QUERY: "bone density microgravity"`)
	assert.Contains(t, got, "access to 2 research papers")
	assert.Contains(t, got, "Paper 1:\nTitle: Paper A\nURL: https://site/articles/ID1111\n")
	assert.Contains(t, got, "Abstract: "+strings.Repeat("a", 300)+"...\n")
	assert.NotContains(t, got, strings.Repeat("a", 301))
	assert.Contains(t, got, "Keywords: microgravity, bone density\n")
	assert.Contains(t, got, "Content Preview: "+strings.Repeat("b", 400)+"...\n")
	assert.NotContains(t, got, strings.Repeat("b", 401))

	assert.Contains(t, got, "Paper 2:\nTitle: Paper B\n")
	assert.Contains(t, got, "Keywords: None provided\n")

	assert.Less(t, strings.Index(got, "Paper 1:"), strings.Index(got, "Paper 2:"))
}

func TestBuild_RequestsFiveSections(t *testing.T) {
	got := Build(testPapers(), "q", types.Limits{})
	last := -1
	for i, s := range Sections {
		idx := strings.Index(got, s+":")
		assert.Greater(t, idx, last, "section %d %q out of order or missing", i+1, s)
		last = idx
	}
}

func TestBuild_CustomLimits(t *testing.T) {
	got := Build(testPapers(), "q", types.Limits{PromptAbstract: 10, PromptPreview: 20})
	assert.Contains(t, got, "Abstract: "+strings.Repeat("a", 10)+"...\n")
	assert.Contains(t, got, "Content Preview: "+strings.Repeat("b", 20)+"...\n")
}

func TestBuild_QueryNotEscaped(t *testing.T) {
	got := Build(nil, `effects of <radiation> & "spin"`, types.Limits{})
	assert.Contains(t, got, `USER QUERY: "effects of <radiation> & "spin""`)
}
