// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Shashikant999/AstraNode/internal/analyze"
	"github.com/Shashikant999/AstraNode/internal/backend"
	"github.com/Shashikant999/AstraNode/internal/cache"
	"github.com/Shashikant999/AstraNode/internal/fetch"
	"github.com/Shashikant999/AstraNode/internal/logging"
	"github.com/Shashikant999/AstraNode/pkg/types"
)

// setDefaults registers every config key so environment variables resolve
// during Unmarshal.
func setDefaults(v *viper.Viper) {
	d := types.DefaultAnalyzerConfig()
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
	v.SetDefault("http.max_body_bytes", d.HTTP.MaxBodyBytes)
	v.SetDefault("http.max_redirects", d.HTTP.MaxRedirects)
	v.SetDefault("fetch_delay", d.FetchDelay)
	v.SetDefault("max_documents", d.MaxDocuments)
	v.SetDefault("concurrency", d.Concurrency)
	v.SetDefault("limits.structured_text", d.Limits.StructuredText)
	v.SetDefault("limits.generic_text", d.Limits.GenericText)
	v.SetDefault("limits.prompt_abstract", d.Limits.PromptAbstract)
	v.SetDefault("limits.prompt_preview", d.Limits.PromptPreview)
	v.SetDefault("backend.provider", string(d.Backend.Provider))
	v.SetDefault("backend.model", "")
	v.SetDefault("backend.api_key", "")
	v.SetDefault("backend.base_url", "")
	v.SetDefault("backend.max_tokens", d.Backend.MaxTokens)
	v.SetDefault("cache.driver", string(d.Cache.Driver))
	v.SetDefault("cache.path", "")
}

// flagKeys maps command flags onto config keys.
var flagKeys = map[string]string{
	"timeout":     "http.timeout",
	"delay":       "fetch_delay",
	"max-docs":    "max_documents",
	"concurrency": "concurrency",
	"provider":    "backend.provider",
	"model":       "backend.model",
	"base-url":    "backend.base_url",
	"cache":       "cache.driver",
	"cache-path":  "cache.path",
}

// bindFlags binds the flags cmd defines. It runs per invocation because
// several commands share flag names and viper keeps one binding per key.
func bindFlags(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

// addFetchFlags registers the flags shared by every command that fetches.
func addFetchFlags(cmd *cobra.Command) {
	d := types.DefaultAnalyzerConfig()
	cmd.Flags().Duration("timeout", d.HTTP.Timeout, "per-document fetch timeout")
	cmd.Flags().Duration("delay", d.FetchDelay, "pause after each network fetch")
}

// addPipelineFlags registers the flags for commands that run the batch.
func addPipelineFlags(cmd *cobra.Command) {
	addFetchFlags(cmd)
	d := types.DefaultAnalyzerConfig()
	cmd.Flags().String("docs", "", "documents file (YAML or JSON list of {title, link}); - reads stdin")
	cmd.Flags().String("query", "", "research question the documents are analyzed against")
	cmd.Flags().Int("max-docs", d.MaxDocuments, "maximum number of documents to consider")
	cmd.Flags().Int("concurrency", d.Concurrency, "parallel fetch workers (1 keeps strict input order)")
	cmd.Flags().String("cache", string(d.Cache.Driver), "content cache: memory or sqlite")
	cmd.Flags().String("cache-path", "", "sqlite cache file (default: in-memory database)")
}

// loadConfig builds the analyzer configuration from defaults, the config
// file, environment, and the command's flags.
func loadConfig(cmd *cobra.Command) (types.AnalyzerConfig, error) {
	if err := bindFlags(cmd); err != nil {
		return types.AnalyzerConfig{}, err
	}
	var cfg types.AnalyzerConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.AnalyzerConfig{}, fmt.Errorf("reading configuration: %w", err)
	}
	cfg.Backend.Provider = types.BackendProvider(strings.ToLower(string(cfg.Backend.Provider)))
	if cfg.Backend.APIKey == "" {
		cfg.Backend.APIKey = loadedSecrets.ProviderKey(cfg.Backend.Provider)
	}
	return cfg.WithDefaults(), nil
}

// newAnalyzer wires the fetcher, cache, and backend for one run. The returned
// close function releases the cache.
func newAnalyzer(ctx context.Context, cfg types.AnalyzerConfig) (*analyze.Analyzer, func(), error) {
	c, err := cache.New(cfg.Cache)
	if err != nil {
		return nil, nil, err
	}

	gen, err := backend.New(ctx, cfg.Backend)
	if err != nil {
		c.Close()
		return nil, nil, err
	}
	if !gen.Available() {
		logger.Warn("generation backend unavailable, using fallback analysis",
			logging.String("provider", string(cfg.Backend.Provider)))
	} else {
		logger.Info("generation backend ready", logging.String("model", gen.Model()))
	}

	f := fetch.New(nil, cfg, logger)
	a := analyze.New(f, c, gen, cfg, logger)
	return a, func() { c.Close() }, nil
}
