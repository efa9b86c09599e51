// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Shashikant999/AstraNode/pkg/types"
)

// articleIDPattern matches repository article URLs such as
// https://www.ncbi.nlm.nih.gov/pmc/articles/PMC4136787/ and captures the
// article identifier. The repository prefix is required: bare numeric
// article paths on news or publisher sites use the generic strategy.
var articleIDPattern = regexp.MustCompile(`/articles/((?:PMC|ID)\d+)`)

// hiddenSelectors lists elements whose text is never visible on the page.
const hiddenSelectors = "script, style, noscript, template, iframe"

// StructuredStrategy parses article pages from structured repositories
// (PubMed Central style markup).
type StructuredStrategy struct {
	maxText int
}

// NewStructuredStrategy returns a strategy that truncates full text to maxText runes.
func NewStructuredStrategy(maxText int) *StructuredStrategy {
	return &StructuredStrategy{maxText: maxText}
}

func (s *StructuredStrategy) Name() types.ExtractionStrategy { return types.StrategyStructured }

func (s *StructuredStrategy) Match(url string) bool {
	return articleIDPattern.MatchString(url)
}

func (s *StructuredStrategy) Extract(doc *goquery.Document, url string) types.PaperContent {
	doc.Find(hiddenSelectors).Remove()

	content := types.PaperContent{
		Title:    firstText(doc, "h1.content-title", "title"),
		Abstract: firstText(doc, "div.abstract", "div#abstract"),
		Keywords: structuredKeywords(doc),
		FullText: types.Truncate(firstText(doc, "div.tsec", "div.article-content"), s.maxText),
		URL:      url,
		Strategy: types.StrategyStructured,
	}
	if m := articleIDPattern.FindStringSubmatch(url); m != nil {
		content.SourceID = m[1]
	}
	return content
}

// structuredKeywords reads the keyword group. Keywords are normally wrapped
// in span or anchor elements; a bare list is split on separators.
func structuredKeywords(doc *goquery.Document) []string {
	group := firstMatch(doc, "div.kwd-group", "div.keywords")
	if group == nil {
		return []string{}
	}

	var raw []string
	group.Find("span, a").Each(func(_ int, sel *goquery.Selection) {
		raw = append(raw, sel.Text())
	})
	if len(raw) == 0 {
		text := cleanText(group.Text())
		if i := strings.Index(text, ":"); i >= 0 && i < 20 {
			text = text[i+1:]
		}
		raw = splitKeywords(text)
	}
	return dedupe(raw)
}

// GenericStrategy parses arbitrary web pages.
type GenericStrategy struct {
	maxText int
}

// NewGenericStrategy returns a strategy that truncates full text to maxText runes.
func NewGenericStrategy(maxText int) *GenericStrategy {
	return &GenericStrategy{maxText: maxText}
}

func (g *GenericStrategy) Name() types.ExtractionStrategy { return types.StrategyGeneric }

// Match accepts every URL; the generic strategy is the last resort.
func (g *GenericStrategy) Match(string) bool { return true }

// abstractSelectors are tried in order until one yields text.
var abstractSelectors = []string{
	`div[class*="abstract"]`,
	`div[id*="abstract"]`,
	`section[class*="abstract"]`,
	`p[class*="summary"]`,
}

// contentRegions are the structured content containers preferred over the
// whole page.
var contentRegions = []string{"article", "main", `[role="main"]`}

func (g *GenericStrategy) Extract(doc *goquery.Document, url string) types.PaperContent {
	doc.Find(hiddenSelectors).Remove()

	content := types.PaperContent{
		Title:    firstText(doc, "title", "h1"),
		Abstract: firstText(doc, abstractSelectors...),
		Keywords: metaKeywords(doc),
		URL:      url,
		Strategy: types.StrategyGeneric,
	}

	text := firstText(doc, contentRegions...)
	if text == "" {
		text = cleanText(doc.Text())
	}
	content.FullText = types.Truncate(text, g.maxText)
	return content
}

// metaKeywords collects keywords declared in meta tags.
func metaKeywords(doc *goquery.Document) []string {
	var raw []string
	doc.Find(`meta[name="keywords"], meta[name="citation_keywords"]`).Each(func(_ int, sel *goquery.Selection) {
		if v, ok := sel.Attr("content"); ok {
			raw = append(raw, splitKeywords(v)...)
		}
	})
	return dedupe(raw)
}

// firstMatch returns the first element matching any selector, in selector order.
func firstMatch(doc *goquery.Document, selectors ...string) *goquery.Selection {
	for _, s := range selectors {
		if sel := doc.Find(s).First(); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// firstText returns the whitespace-normalized text of the first selector
// that yields non-empty text.
func firstText(doc *goquery.Document, selectors ...string) string {
	for _, s := range selectors {
		if text := cleanText(doc.Find(s).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// cleanText collapses runs of whitespace into single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func splitKeywords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
}

// dedupe trims entries and drops empties and repeats, keeping first-seen order.
func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = cleanText(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
