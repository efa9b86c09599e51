// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze drives a topic-interlinking run: it fetches the candidate
// documents (through the content cache), then either asks the generation
// backend for an analysis or falls back to the deterministic summarizer.
//
// The pipeline boundary never fails: every outcome, including a batch in which
// nothing could be fetched, is returned as a types.AnalysisResult.
package analyze

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Shashikant999/AstraNode/internal/backend"
	"github.com/Shashikant999/AstraNode/internal/cache"
	"github.com/Shashikant999/AstraNode/internal/fallback"
	"github.com/Shashikant999/AstraNode/internal/logging"
	"github.com/Shashikant999/AstraNode/internal/prompt"
	"github.com/Shashikant999/AstraNode/internal/topics"
	"github.com/Shashikant999/AstraNode/pkg/types"
)

// ContentFetcher retrieves one document. fetch.Fetcher implements it.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) (types.PaperContent, error)
}

// sleep pauses after every network fetch attempt, failed ones included, so a
// failing host is not hit back to back. Cache hits never sleep. Tests override
// it to avoid real waits.
var sleep = func(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Analyzer runs interlinking analyses. The cache is injected so callers
// control its lifetime; one Analyzer may serve many runs.
type Analyzer struct {
	fetcher ContentFetcher
	cache   cache.Cache
	gen     backend.Generator
	cfg     types.AnalyzerConfig
	log     logging.Logger

	// flight collapses concurrent fetches of the same URL into one.
	flight singleflight.Group
}

// New returns an Analyzer. A nil cache gets a fresh in-memory cache, a nil
// generator an unavailable backend, and a nil logger a no-op logger.
func New(fetcher ContentFetcher, c cache.Cache, gen backend.Generator, cfg types.AnalyzerConfig, log logging.Logger) *Analyzer {
	if c == nil {
		c = cache.NewMemory()
	}
	if gen == nil {
		gen = backend.NewUnavailable("no backend configured")
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Analyzer{
		fetcher: fetcher,
		cache:   c,
		gen:     gen,
		cfg:     cfg.WithDefaults(),
		log:     log,
	}
}

// Outcome classifies what happened to one document reference.
type Outcome int

const (
	OutcomeNotConsidered Outcome = iota
	OutcomeSkipped
	OutcomeFetched
	OutcomeCached
	OutcomeFailed
)

// BatchStats summarizes the fetch phase of a run.
type BatchStats struct {
	Considered int
	Skipped    int
	Fetched    int
	Cached     int
	Failed     int
}

// Usable returns the number of documents that produced content.
func (s BatchStats) Usable() int {
	return s.Fetched + s.Cached
}

func (s *BatchStats) add(o Outcome) {
	switch o {
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFetched:
		s.Fetched++
	case OutcomeCached:
		s.Cached++
	case OutcomeFailed:
		s.Failed++
	default:
		return
	}
	s.Considered++
}

// Analyze fetches up to maxDocuments of docs and analyzes them against query.
// A maxDocuments <= 0 uses the configured default.
func (a *Analyzer) Analyze(ctx context.Context, docs []types.DocumentRef, query string, maxDocuments int) types.AnalysisResult {
	papers, stats := a.Collect(ctx, docs, maxDocuments)
	a.log.Info("fetch phase complete",
		logging.String("query", query),
		logging.Int("considered", stats.Considered),
		logging.Int("fetched", stats.Fetched),
		logging.Int("cached", stats.Cached),
		logging.Int("skipped", stats.Skipped),
		logging.Int("failed", stats.Failed),
	)
	return a.Run(ctx, papers, query)
}

type slot struct {
	content types.PaperContent
	outcome Outcome
}

// Collect fetches the first maxDocuments references, consulting the cache
// before the network. Failed or link-less entries are skipped. The returned
// contents follow input order regardless of fetch completion order.
func (a *Analyzer) Collect(ctx context.Context, docs []types.DocumentRef, maxDocuments int) ([]types.PaperContent, BatchStats) {
	if maxDocuments <= 0 {
		maxDocuments = a.cfg.MaxDocuments
	}
	window := docs[:min(len(docs), maxDocuments)]
	slots := make([]slot, len(window))

	if a.cfg.Concurrency <= 1 {
		for i, doc := range window {
			if ctx.Err() != nil {
				break
			}
			a.log.Debug("fetching content",
				logging.Int("index", i+1),
				logging.Int("of", len(window)),
				logging.String("title", doc.Title),
			)
			slots[i] = a.load(ctx, doc)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(a.cfg.Concurrency)
		for i, doc := range window {
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}
				slots[i] = a.load(gctx, doc)
				return nil
			})
		}
		g.Wait()
	}

	var (
		papers []types.PaperContent
		stats  BatchStats
	)
	for _, s := range slots {
		stats.add(s.outcome)
		if s.outcome == OutcomeFetched || s.outcome == OutcomeCached {
			papers = append(papers, s.content)
		}
	}
	return papers, stats
}

type fetched struct {
	content types.PaperContent
	cached  bool
}

// load resolves one reference through the cache, fetching on a miss.
func (a *Analyzer) load(ctx context.Context, doc types.DocumentRef) slot {
	url := strings.TrimSpace(doc.Link)
	if url == "" {
		a.log.Debug("skipping document without link", logging.String("title", doc.Title))
		return slot{outcome: OutcomeSkipped}
	}
	log := a.log.With(logging.String("url", url))

	if c, ok := a.cached(ctx, url, log); ok {
		log.Debug("cache hit")
		return slot{content: c, outcome: OutcomeCached}
	}

	// Only the caller whose function runs owns the network fetch; callers that
	// join an in-flight fetch count as cache hits.
	leader := false
	v, err, _ := a.flight.Do(url, func() (any, error) {
		leader = true
		// Another caller may have populated the entry while this one waited.
		if c, ok := a.cached(ctx, url, log); ok {
			return fetched{content: c, cached: true}, nil
		}
		c, err := a.fetcher.Fetch(ctx, url)
		sleep(ctx, a.cfg.FetchDelay)
		if err != nil {
			return nil, err
		}
		if err := a.cache.Put(ctx, url, c); err != nil {
			log.Warn("cache put failed", logging.Error(err))
		}
		return fetched{content: c}, nil
	})
	if err != nil {
		log.Warn("document skipped", logging.Error(err))
		return slot{outcome: OutcomeFailed}
	}

	f := v.(fetched)
	if f.cached || !leader {
		return slot{content: f.content, outcome: OutcomeCached}
	}
	log.Info("fetched document", logging.String("strategy", string(f.content.Strategy)))
	return slot{content: f.content, outcome: OutcomeFetched}
}

// cached looks url up in the cache. Cache errors are logged and treated as misses.
func (a *Analyzer) cached(ctx context.Context, url string, log logging.Logger) (types.PaperContent, bool) {
	c, ok, err := a.cache.Get(ctx, url)
	if err != nil {
		log.Warn("cache lookup failed", logging.Error(err))
		return types.PaperContent{}, false
	}
	return c, ok
}

// Run analyzes already-fetched papers. With no papers it returns the
// no-content failure result without touching the backend. Otherwise it makes
// exactly one dispatch decision: backend output when generation succeeds,
// the deterministic fallback when the backend is unavailable or fails.
func (a *Analyzer) Run(ctx context.Context, papers []types.PaperContent, query string) types.AnalysisResult {
	if len(papers) == 0 {
		a.log.Warn("no document content could be fetched", logging.String("query", query))
		return types.NoContentResult()
	}

	text, err := a.generate(ctx, papers, query)
	if err != nil {
		a.log.Info("using fallback analysis", logging.Error(err))
		return fallback.Summarize(papers, query)
	}

	found := topics.Extract(text)
	a.log.Info("backend analysis complete",
		logging.String("model", a.gen.Model()),
		logging.Int("topics", len(found)),
	)
	return types.SuccessResult(text, found, len(papers), query, a.gen.Model(), types.AnalysisTypeBackend)
}

// generate calls the backend once. Panics inside a provider are contained
// and reported as errors.
func (a *Analyzer) generate(ctx context.Context, papers []types.PaperContent, query string) (text string, err error) {
	if !a.gen.Available() {
		return "", backend.ErrUnavailable
	}

	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("backend panic: %v", r)
		}
	}()

	p := prompt.Build(papers, query, a.cfg.Limits)
	a.log.Debug("calling generation backend", logging.String("model", a.gen.Model()), logging.Int("prompt_len", len(p)))
	return a.gen.Generate(ctx, p)
}

// CacheSize returns the number of entries in the content cache.
func (a *Analyzer) CacheSize(ctx context.Context) (int, error) {
	return a.cache.Len(ctx)
}
