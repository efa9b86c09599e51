// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fallback produces a deterministic keyword-frequency analysis when
// the generation backend is unavailable or fails.
package fallback

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Shashikant999/AstraNode/pkg/types"
)

const (
	// Model is the model tag reported for fallback results.
	Model = "demo_url_analyzer"
	// Marker opens every fallback analysis.
	Marker = "DEMO MODE"

	maxTopics         = 8
	narrativeTopics   = 5
	narrativeTitles   = 10
	highFrequencyOver = 2
)

// KeywordCount is a keyword and the number of times it appears across papers.
type KeywordCount struct {
	Keyword string
	Count   int
}

// Rank counts keywords across all papers and returns them by descending
// frequency. Ties keep first-seen order, so identical inputs always rank
// identically.
func Rank(papers []types.PaperContent) []KeywordCount {
	index := make(map[string]int)
	var counts []KeywordCount
	for _, p := range papers {
		for _, kw := range p.Keywords {
			if i, ok := index[kw]; ok {
				counts[i].Count++
				continue
			}
			index[kw] = len(counts)
			counts = append(counts, KeywordCount{Keyword: kw, Count: 1})
		}
	}
	slices.SortStableFunc(counts, func(a, b KeywordCount) int {
		return b.Count - a.Count
	})
	return counts
}

// Summarize builds the fallback AnalysisResult. The top eight keywords become
// topics; a keyword seen more than twice is high relevance, otherwise medium.
func Summarize(papers []types.PaperContent, query string) types.AnalysisResult {
	ranked := Rank(papers)

	topics := make([]types.Topic, 0, maxTopics)
	for _, kc := range ranked[:min(len(ranked), maxTopics)] {
		relevance := types.RelevanceMedium
		if kc.Count > highFrequencyOver {
			relevance = types.RelevanceHigh
		}
		t := types.NewTopic(kc.Keyword, relevance)
		freq := kc.Count
		t.Frequency = &freq
		topics = append(topics, t)
	}

	return types.SuccessResult(narrative(papers, query, ranked, topics), topics,
		len(papers), query, Model, types.AnalysisTypeFallback)
}

func narrative(papers []types.PaperContent, query string, ranked []KeywordCount, topics []types.Topic) string {
	withAbstract := 0
	totalKeywords := 0
	for _, p := range papers {
		if p.Abstract != "" {
			withAbstract++
		}
		totalKeywords += len(p.Keywords)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s - URL Content Analysis for: %q\n\n", Marker, query)
	fmt.Fprintf(&b, "PAPERS ANALYZED: %d research papers\n", len(papers))
	fmt.Fprintf(&b, "CONTENT SOURCES: Successfully fetched from %d abstracts\n\n", withAbstract)

	b.WriteString("KEY INTERLINKED TOPICS:\n")
	for _, t := range topics[:min(len(topics), narrativeTopics)] {
		fmt.Fprintf(&b, "• %s (mentioned %d times)\n", t.Topic, *t.Frequency)
	}

	b.WriteString("\nPAPER TITLES ANALYZED:\n")
	for _, p := range papers[:min(len(papers), narrativeTitles)] {
		fmt.Fprintf(&b, "• %s\n", p.Title)
	}

	b.WriteString("\nANALYSIS INSIGHTS:\n")
	fmt.Fprintf(&b, "- Cross-referenced %d total keywords across papers\n", totalKeywords)
	fmt.Fprintf(&b, "- Identified %d unique research concepts\n", len(ranked))
	fmt.Fprintf(&b, "- Found %d recurring themes relevant to your query\n\n", len(topics))

	b.WriteString("TOPIC INTERCONNECTIONS:\n")
	b.WriteString("The analyzed papers show connections through shared keywords and research methodologies.\n")
	fmt.Fprintf(&b, "Common themes relate to your query %q through overlapping research domains.\n\n", query)

	b.WriteString("Note: This is a demo analysis. Enable a generation backend for comprehensive AI-powered analysis with deep topic interconnections and research insights.\n")
	return b.String()
}
