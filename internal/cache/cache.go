// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores fetched PaperContent by URL so a document is fetched
// at most once per process run.
package cache

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Shashikant999/AstraNode/pkg/types"
)

// Cache is a read-through store keyed by URL. Implementations are safe for
// concurrent use. Put never overwrites an existing entry.
type Cache interface {
	Get(ctx context.Context, url string) (types.PaperContent, bool, error)
	Put(ctx context.Context, url string, content types.PaperContent) error
	Len(ctx context.Context) (int, error)
	Close() error
}

// New returns the cache selected by cfg.Driver.
func New(cfg types.CacheConfig) (Cache, error) {
	switch cfg.Driver {
	case "", types.CacheMemory:
		return NewMemory(), nil
	case types.CacheSQLite:
		return NewSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

// Memory is a process-lifetime map cache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]types.PaperContent
}

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]types.PaperContent)}
}

func (m *Memory) Get(_ context.Context, url string) (types.PaperContent, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.entries[url]
	if !ok {
		return types.PaperContent{}, false, nil
	}
	c.Keywords = slices.Clone(c.Keywords)
	return c, true, nil
}

func (m *Memory) Put(_ context.Context, url string, content types.PaperContent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[url]; ok {
		return nil
	}
	content.Keywords = slices.Clone(content.Keywords)
	m.entries[url] = content
	return nil
}

func (m *Memory) Len(context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

func (m *Memory) Close() error { return nil }
