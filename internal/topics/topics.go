// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package topics pulls structured topics out of free-text backend output.
//
// Extraction is a best-effort heuristic, not a validated NLP pipeline: an
// ordered list of named matcher rules is applied to the text, every match is
// collected, and the union is deduplicated. Text with no matches simply
// yields no topics.
package topics

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Shashikant999/AstraNode/pkg/types"
)

const (
	// MaxTopics caps the extracted list.
	MaxTopics = 10
	// MinLength is the minimum topic length in characters.
	MinLength = 11
)

// Rule is a named matcher. Group 1 of Pattern captures the topic text.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

// Rules are evaluated in order; earlier rules win on duplicates.
var Rules = []Rule{
	{
		Name:    "numbered-label",
		Pattern: regexp.MustCompile(`(?i)(?:Topic|Theme|Area)[ \t]*\d+[:.]?[ \t]*([^.\n]+)`),
	},
	{
		Name:    "bullet",
		Pattern: regexp.MustCompile(`(?m)^[ \t]*(?:•|\*|-)[ \t]+([^.\n]+)`),
	},
	{
		Name:    "labeled-finding",
		Pattern: regexp.MustCompile(`(?i)(?:Key finding|Main topic|Central theme):[ \t]*([^.\n]+)`),
	},
}

// markup is stripped from both ends of a topic that passed the length check.
const markup = " \t*_#:`-•"

// Extract applies Rules to text and returns at most MaxTopics unique topics
// in first-seen order. Every topic is graded high relevance.
func Extract(text string) []types.Topic {
	topics := []types.Topic{}
	seen := make(map[string]bool)

	for _, rule := range Rules {
		for _, m := range rule.Pattern.FindAllStringSubmatch(text, -1) {
			// Length is judged on the whitespace-trimmed match; markup is
			// stripped afterwards for display only.
			raw := strings.TrimSpace(m[1])
			if utf8.RuneCountInString(raw) < MinLength {
				continue
			}
			topic := strings.Trim(raw, markup)
			if topic == "" {
				continue
			}
			key := normalize(topic)
			if seen[key] {
				continue
			}
			seen[key] = true
			topics = append(topics, types.NewTopic(topic, types.RelevanceHigh))
			if len(topics) == MaxTopics {
				return topics
			}
		}
	}
	return topics
}

// normalize folds case and collapses whitespace for duplicate detection.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
