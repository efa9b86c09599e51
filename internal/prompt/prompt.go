// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt renders fetched papers and a research query into the single
// prompt sent to the generation backend. Rendering is deterministic: the same
// ordered inputs always produce byte-identical output.
package prompt

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/Shashikant999/AstraNode/pkg/types"
)

// Sections are the headings the backend is asked to produce, in order.
var Sections = []string{
	"TOPIC INTERCONNECTIONS",
	"CROSS-PAPER INSIGHTS",
	"QUERY-SPECIFIC ANALYSIS",
	"INTERLINKED RESEARCH NETWORK",
	"ACTIONABLE INSIGHTS",
}

// noKeywords is rendered when a paper has no keywords.
const noKeywords = "None provided"

var analysisPromptTmpl = template.Must(template.New("analysis").Parse(`You are an expert research analyst with access to {{len .Papers}} research papers.
Your task is to analyze these papers and identify interlinked topics specifically related to this user query:

USER QUERY: "{{.Query}}"

RESEARCH PAPERS CONTENT:
{{range .Papers}}
Paper {{.Number}}:
Title: {{.Title}}
URL: {{.URL}}
Abstract: {{.Abstract}}...
Keywords: {{.Keywords}}
Content Preview: {{.Preview}}...
---
{{end}}
Please provide a comprehensive analysis with the following structure:

1. TOPIC INTERCONNECTIONS:
   - Identify 5-8 key topics that appear across multiple papers
   - Show how these topics connect to the user's query
   - Explain the relationships between topics

2. CROSS-PAPER INSIGHTS:
   - Find patterns, trends, or contradictions across papers
   - Identify research gaps or opportunities
   - Highlight novel connections between different studies

3. QUERY-SPECIFIC ANALYSIS:
   - Direct relevance to the user's query
   - Key findings that address the query
   - Recommended research directions

4. INTERLINKED RESEARCH NETWORK:
   - Create a conceptual map of how papers relate to each other
   - Identify central themes and peripheral topics
   - Show research collaboration opportunities

5. ACTIONABLE INSIGHTS:
   - Practical applications of the research
   - Future research directions
   - Policy or clinical implications

Please provide detailed analysis with specific paper references and clear explanations of topic interconnections.
`))

type paperView struct {
	Number   int
	Title    string
	URL      string
	Abstract string
	Keywords string
	Preview  string
}

// Build renders the analysis prompt. Papers are numbered from 1 in the given
// order; abstracts and previews are cut to the configured limits.
func Build(papers []types.PaperContent, query string, limits types.Limits) string {
	limits = limits.WithDefaults()

	views := make([]paperView, len(papers))
	for i, p := range papers {
		keywords := noKeywords
		if len(p.Keywords) > 0 {
			keywords = strings.Join(p.Keywords, ", ")
		}
		views[i] = paperView{
			Number:   i + 1,
			Title:    p.Title,
			URL:      p.URL,
			Abstract: types.Truncate(p.Abstract, limits.PromptAbstract),
			Keywords: keywords,
			Preview:  types.Truncate(p.FullText, limits.PromptPreview),
		}
	}

	var buf bytes.Buffer
	// The template only ranges over plain strings and ints; Execute cannot fail.
	_ = analysisPromptTmpl.Execute(&buf, struct {
		Query  string
		Papers []paperView
	}{Query: query, Papers: views})
	return buf.String()
}
