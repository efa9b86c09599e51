// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Shashikant999/AstraNode/pkg/types"
)

// ErrStatus is wrapped by StatusError for any non-2xx response.
var ErrStatus = errors.New("unexpected HTTP status")

// ErrTooManyRedirects is returned when the redirect hop limit is exceeded.
var ErrTooManyRedirects = errors.New("too many redirects")

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

func (e *StatusError) Unwrap() error { return ErrStatus }

// Page is a fetched response body with the metadata callers need to parse it.
type Page struct {
	// URL is the final URL after redirects.
	URL string

	// ContentType is the Content-Type response header.
	ContentType string

	// Body holds at most cfg.MaxBodyBytes bytes.
	Body []byte
}

// NewClient returns an http.Client with the configured timeout and redirect
// limit.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{
		Timeout:       cfg.Timeout,
		CheckRedirect: RedirectPolicy(cfg.MaxRedirects),
	}
}

// RedirectPolicy returns a CheckRedirect function that follows redirects until
// maxHops is reached, then fails with ErrTooManyRedirects. When maxHops is
// <= 0 the net/http default of 10 applies.
func RedirectPolicy(maxHops int) func(*http.Request, []*http.Request) error {
	if maxHops <= 0 {
		maxHops = 10
	}
	return func(_ *http.Request, via []*http.Request) error {
		if len(via) >= maxHops {
			return ErrTooManyRedirects
		}
		return nil
	}
}

// Get issues a single GET with the configured User-Agent and reads the body.
// Non-2xx responses return a *StatusError after draining the body. There is
// no retry; a failure is final for this request.
func Get(ctx context.Context, client *http.Client, url string, cfg types.HTTPConfig) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	limit := cfg.MaxBodyBytes
	if limit <= 0 {
		limit = types.DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	return &Page{
		URL:         resp.Request.URL.String(),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
