// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Shashikant999/AstraNode/pkg/types"
)

// memoryDBSeq gives each in-memory database a distinct name.
var memoryDBSeq atomic.Int64

// SQLite is a cache backed by a SQLite database. With an empty path the
// database lives in memory and disappears with the process; with a file path
// fetched content is reused across runs.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens or creates the cache database at path.
func NewSQLite(path string) (*SQLite, error) {
	var dsn string
	if path == "" {
		dsn = fmt.Sprintf("file:astranode-cache-%d?mode=memory&cache=shared", memoryDBSeq.Add(1))
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps the in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS contents (
		url TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		abstract TEXT NOT NULL,
		full_text TEXT NOT NULL,
		keywords TEXT NOT NULL,
		source_id TEXT NOT NULL,
		strategy TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	)`)
	return err
}

// Close releases the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Get(ctx context.Context, url string) (types.PaperContent, bool, error) {
	var (
		c        types.PaperContent
		keywords string
		strategy string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT url, title, abstract, full_text, keywords, source_id, strategy FROM contents WHERE url = ?`, url,
	).Scan(&c.URL, &c.Title, &c.Abstract, &c.FullText, &keywords, &c.SourceID, &strategy)
	if errors.Is(err, sql.ErrNoRows) {
		return types.PaperContent{}, false, nil
	}
	if err != nil {
		return types.PaperContent{}, false, fmt.Errorf("querying cache: %w", err)
	}
	if err := json.Unmarshal([]byte(keywords), &c.Keywords); err != nil {
		return types.PaperContent{}, false, fmt.Errorf("decoding keywords for %s: %w", url, err)
	}
	if c.Keywords == nil {
		c.Keywords = []string{}
	}
	c.Strategy = types.ExtractionStrategy(strategy)
	return c, true, nil
}

// Put inserts content for url unless an entry already exists.
func (s *SQLite) Put(ctx context.Context, url string, content types.PaperContent) error {
	keywords := content.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	kw, err := json.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("encoding keywords: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO contents (url, title, abstract, full_text, keywords, source_id, strategy, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		url, content.Title, content.Abstract, content.FullText, string(kw),
		content.SourceID, string(content.Strategy), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting %s: %w", url, err)
	}
	return nil
}

func (s *SQLite) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM contents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}
