// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Relevance grades an interlinked topic.
type Relevance string

const (
	RelevanceHigh   Relevance = "high"
	RelevanceMedium Relevance = "medium"
)

// Analysis type tags reported in AnalysisResult.AnalysisType.
const (
	AnalysisTypeBackend  = "url_content_analysis"
	AnalysisTypeFallback = "demo_url_content_analysis"
)

// NoContentError is the error message returned when no document in a batch
// could be fetched.
const NoContentError = "No paper content could be fetched"

// noContentAnalysis accompanies NoContentError in the failure result.
const noContentAnalysis = "Unable to analyze papers - content not accessible"

// Topic is one cross-document theme found by the analysis.
type Topic struct {
	// Topic is the theme text.
	Topic string `json:"topic" yaml:"topic"`

	// Relevance is "high" for backend-extracted topics and frequency-graded
	// for fallback topics.
	Relevance Relevance `json:"relevance" yaml:"relevance"`

	// Connections is reserved for related-topic links and is always empty.
	Connections []string `json:"connections" yaml:"connections"`

	// Frequency is the keyword count, set only by the fallback summarizer.
	Frequency *int `json:"frequency,omitempty" yaml:"frequency,omitempty"`
}

// NewTopic returns a Topic with an empty, non-nil connection list.
func NewTopic(text string, relevance Relevance) Topic {
	return Topic{Topic: text, Relevance: relevance, Connections: []string{}}
}

// AnalysisResult is the uniform outcome of an interlinking run. Success and
// failure share one shape; fields that do not apply are omitted on the wire.
type AnalysisResult struct {
	Success           bool    `json:"success" yaml:"success"`
	Error             string  `json:"error,omitempty" yaml:"error,omitempty"`
	Analysis          string  `json:"analysis" yaml:"analysis"`
	InterlinkedTopics []Topic `json:"interlinked_topics" yaml:"interlinked_topics"`
	PapersAnalyzed    int     `json:"papers_analyzed,omitempty" yaml:"papers_analyzed,omitempty"`
	UserQuery         string  `json:"user_query,omitempty" yaml:"user_query,omitempty"`
	Model             string  `json:"model,omitempty" yaml:"model,omitempty"`
	AnalysisType      string  `json:"analysis_type,omitempty" yaml:"analysis_type,omitempty"`
}

// NoContentResult is the failure result for a batch in which nothing was fetched.
func NoContentResult() AnalysisResult {
	return AnalysisResult{
		Success:           false,
		Error:             NoContentError,
		Analysis:          noContentAnalysis,
		InterlinkedTopics: []Topic{},
	}
}

// SuccessResult assembles the success result shared by the backend and
// fallback paths. A nil topic list is replaced by an empty one.
func SuccessResult(analysis string, topics []Topic, papersAnalyzed int, query, model, analysisType string) AnalysisResult {
	if topics == nil {
		topics = []Topic{}
	}
	return AnalysisResult{
		Success:           true,
		Analysis:          analysis,
		InterlinkedTopics: topics,
		PapersAnalyzed:    papersAnalyzed,
		UserQuery:         query,
		Model:             model,
		AnalysisType:      analysisType,
	}
}
