// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the AstraNode interlinking
// pipeline: document references, fetched paper content, extracted topics, the
// analysis result, and the configuration for every stage.
package types

import (
	"fmt"
	"strings"
)

// ExtractionStrategy names the parsing variant used to fetch a document.
// It is selected from the URL shape at fetch time.
type ExtractionStrategy string

const (
	StrategyStructured ExtractionStrategy = "structured"
	StrategyGeneric    ExtractionStrategy = "generic"
)

// DocumentRef is a candidate document supplied by the caller, typically a row
// returned by an external paper search.
type DocumentRef struct {
	// Title is the display title from the search result. It is only used for
	// progress output; the fetched page title wins in PaperContent.
	Title string `json:"title" yaml:"title"`

	// Link is the document URL. Entries without a link are skipped.
	Link string `json:"link" yaml:"link"`
}

// PaperContent is the normalized record of one fetched document.
// It is created on a successful fetch and never modified afterwards.
type PaperContent struct {
	// Title is the page or article title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the abstract text, or empty when none was found.
	Abstract string `json:"abstract" yaml:"abstract"`

	// FullText is the main content, truncated to the strategy's text limit.
	FullText string `json:"full_text" yaml:"full_text"`

	// Keywords is an ordered set of non-empty, deduplicated keywords.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// URL is the address the content was fetched from.
	URL string `json:"url" yaml:"url"`

	// SourceID is the repository identifier parsed from the URL (e.g. "PMC4136787").
	SourceID string `json:"source_id,omitempty" yaml:"source_id,omitempty"`

	// Strategy records which extraction variant produced this record.
	Strategy ExtractionStrategy `json:"strategy" yaml:"strategy"`
}

// Summary returns a short human-readable digest: title, the first 500
// characters of the abstract, and the keyword list.
func (p PaperContent) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", p.Title)
	if p.Abstract != "" {
		fmt.Fprintf(&b, "Abstract: %s...\n", Truncate(p.Abstract, 500))
	}
	if len(p.Keywords) > 0 {
		fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(p.Keywords, ", "))
	}
	return b.String()
}

// Truncate returns at most max runes of s. It never splits a UTF-8 sequence.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
