// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves a single document and normalizes it into a
// PaperContent. The parsing variant is chosen from the URL: repository
// article URLs use the structured strategy, everything else the generic one.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Shashikant999/AstraNode/internal/httputil"
	"github.com/Shashikant999/AstraNode/internal/logging"
	"github.com/Shashikant999/AstraNode/pkg/types"
)

// Fetch failures. Every error returned by Fetcher.Fetch wraps exactly one of these.
var (
	ErrNotFound   = errors.New("document not found")
	ErrParse      = errors.New("document could not be parsed")
	ErrTimeout    = errors.New("fetch timed out")
	ErrHTTPStatus = errors.New("unexpected HTTP status")
	ErrTransport  = errors.New("transport failure")
)

// Strategy extracts a PaperContent from a parsed HTML document.
// Adding a new source type means adding a Strategy, not branching callers.
type Strategy interface {
	// Name identifies the variant.
	Name() types.ExtractionStrategy
	// Match reports whether the strategy handles url.
	Match(url string) bool
	// Extract builds the record from the parsed page.
	Extract(doc *goquery.Document, url string) types.PaperContent
}

// Fetcher retrieves and parses documents. It is safe for concurrent use.
type Fetcher struct {
	client     *http.Client
	http       types.HTTPConfig
	strategies []Strategy
	log        logging.Logger
}

// New returns a Fetcher with the structured and generic strategies, in that
// order. A nil client gets one built from cfg.HTTP.
func New(client *http.Client, cfg types.AnalyzerConfig, log logging.Logger) *Fetcher {
	cfg = cfg.WithDefaults()
	if client == nil {
		client = httputil.NewClient(cfg.HTTP)
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Fetcher{
		client: client,
		http:   cfg.HTTP,
		strategies: []Strategy{
			NewStructuredStrategy(cfg.Limits.StructuredText),
			NewGenericStrategy(cfg.Limits.GenericText),
		},
		log: log,
	}
}

// StrategyFor returns the first strategy matching url. The generic strategy
// matches everything, so the result is never nil.
func (f *Fetcher) StrategyFor(url string) Strategy {
	for _, s := range f.strategies {
		if s.Match(url) {
			return s
		}
	}
	return f.strategies[len(f.strategies)-1]
}

// Fetch issues one GET for url, bounded by the configured timeout, and
// extracts its content with the matching strategy. There is no retry.
func (f *Fetcher) Fetch(ctx context.Context, url string) (types.PaperContent, error) {
	strategy := f.StrategyFor(url)
	log := f.log.With(logging.String("url", url), logging.String("strategy", string(strategy.Name())))

	ctx, cancel := context.WithTimeout(ctx, f.http.Timeout)
	defer cancel()

	page, err := httputil.Get(ctx, f.client, url, f.http)
	if err != nil {
		err = classify(err)
		log.Debug("fetch failed", logging.Error(err))
		return types.PaperContent{}, err
	}

	if !isMarkup(page.ContentType) {
		return types.PaperContent{}, fmt.Errorf("%w: content type %q", ErrParse, page.ContentType)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return types.PaperContent{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	content := strategy.Extract(doc, url)
	log.Debug("fetched",
		logging.Int("abstract_len", len(content.Abstract)),
		logging.Int("keywords", len(content.Keywords)),
	)
	return content, nil
}

// classify maps transport and status errors onto the fetch error taxonomy.
func classify(err error) error {
	var se *httputil.StatusError
	if errors.As(err, &se) {
		if se.StatusCode == http.StatusNotFound || se.StatusCode == http.StatusGone {
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return fmt.Errorf("%w: %v", ErrHTTPStatus, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}

// isMarkup reports whether a Content-Type can be parsed as HTML. A missing
// header is given the benefit of the doubt.
func isMarkup(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return true
	}
	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case mediaType == "application/xhtml+xml", mediaType == "application/xml":
		return true
	}
	return false
}
