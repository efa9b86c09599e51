// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docsfile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/Shashikant999/AstraNode/pkg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantQuery string
		want      []types.DocumentRef
		errMsg    string
	}{
		{
			name: "yaml list",
			input: `
- title: Bone Loss
  link: https://www.ncbi.nlm.nih.gov/pmc/articles/PMC4136787/
- title: Radiation
  url: https://example.org/paper
`,
			want: []types.DocumentRef{
				{Title: "Bone Loss", Link: "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC4136787/"},
				{Title: "Radiation", Link: "https://example.org/paper"},
			},
		},
		{
			name:      "yaml object with query",
			input:     "query: \" space biology \"\ndocuments:\n  - title: A\n    link: https://a.example\n",
			wantQuery: "space biology",
			want:      []types.DocumentRef{{Title: "A", Link: "https://a.example"}},
		},
		{
			name:  "json list",
			input: `[{"title": "A", "link": "https://a.example"}, {"title": "No link"}]`,
			want: []types.DocumentRef{
				{Title: "A", Link: "https://a.example"},
				{Title: "No link"},
			},
		},
		{
			name:      "json object",
			input:     `{"query": "q", "documents": [{"title": "A", "link": "https://a.example"}]}`,
			wantQuery: "q",
			want:      []types.DocumentRef{{Title: "A", Link: "https://a.example"}},
		},
		{
			name:  "link wins over url",
			input: `[{"link": "https://link.example", "url": "https://url.example"}]`,
			want:  []types.DocumentRef{{Link: "https://link.example"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  []types.DocumentRef{},
		},
		{
			name:   "scalar is rejected",
			input:  "just a string",
			errMsg: "expected a list",
		},
		{
			name:   "malformed",
			input:  "[{",
			errMsg: "parsing documents file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.input))
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, f.Query)
			assert.Equal(t, tt.want, f.Documents)
		})
	}
}

func TestReadDocuments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- title: A\n  link: https://a.example\n"), 0o644))

	f, err := ReadDocuments(path)
	require.NoError(t, err)
	assert.Len(t, f.Documents, 1)

	_, err = ReadDocuments(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading documents file")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "JSON": FormatJSON, "yaml": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteResult(t *testing.T) {
	freq := 3
	topic := types.NewTopic("microgravity", types.RelevanceHigh)
	topic.Frequency = &freq
	res := types.SuccessResult("analysis & text", []types.Topic{topic}, 2, "q", "demo_url_analyzer", types.AnalysisTypeFallback)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteResult(&buf, res, FormatJSON))
		assert.Contains(t, buf.String(), `"analysis & text"`)

		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, true, got["success"])
		assert.NotContains(t, got, "error")
		assert.Equal(t, "demo_url_content_analysis", got["analysis_type"])
		topics := got["interlinked_topics"].([]any)
		first := topics[0].(map[string]any)
		assert.Equal(t, []any{}, first["connections"])
		assert.Equal(t, float64(3), first["frequency"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteResult(&buf, res, FormatYAML))

		var got types.AnalysisResult
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, res.PapersAnalyzed, got.PapersAnalyzed)
		assert.Equal(t, "microgravity", got.InterlinkedTopics[0].Topic)
	})

	t.Run("failure omits success-only fields", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteResult(&buf, types.NoContentResult(), FormatJSON))

		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, types.NoContentError, got["error"])
		assert.NotContains(t, got, "papers_analyzed")
		assert.NotContains(t, got, "model")
		assert.Equal(t, []any{}, got["interlinked_topics"])
	})
}
