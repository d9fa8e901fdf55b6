// Package store caches serialized summaries in a sqlite database so that
// downstream consumers can check staleness without re-running analysis.
// The cache is an explicit value owned by the caller; there is no hidden
// process-wide state, and Clear drops everything.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"repolens/internal/errors"
	"repolens/internal/summary"
)

const schema = `
CREATE TABLE IF NOT EXISTS summaries (
	root_path   TEXT NOT NULL,
	head_commit TEXT NOT NULL,
	analyzed_at TEXT NOT NULL,
	analysis_id TEXT NOT NULL,
	document    BLOB NOT NULL,
	PRIMARY KEY (root_path, head_commit)
);
`

// Store is a sqlite-backed summary cache.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.New(errors.CacheError, "failed to create cache directory", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.New(errors.CacheError, "failed to open cache database", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.New(errors.CacheError, "failed to initialize cache schema", err)
	}

	return &Store{db: db}, nil
}

// DefaultPath returns the conventional cache location under a root.
func DefaultPath(root string) string {
	return filepath.Join(root, ".repolens", "cache.db")
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores a summary keyed by root path and head commit. An empty head
// commit (no version control) keys the entry on the root alone.
func (s *Store) Put(sum *summary.RepoSummary) error {
	head := ""
	if sum.RevisionInfo != nil {
		head = sum.RevisionInfo.CurrentCommit
	}

	doc, err := json.Marshal(sum)
	if err != nil {
		return errors.New(errors.CacheError, "failed to serialize summary", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO summaries (root_path, head_commit, analyzed_at, analysis_id, document)
		VALUES (?, ?, ?, ?, ?)
	`, sum.RootPath, head, sum.AnalyzedAt, sum.AnalysisID, doc)
	if err != nil {
		return errors.New(errors.CacheError, "failed to store summary", err)
	}
	return nil
}

// Get loads the cached summary for a root and head commit.
// Returns (nil, nil) on a cache miss.
func (s *Store) Get(rootPath, headCommit string) (*summary.RepoSummary, error) {
	row := s.db.QueryRow(`
		SELECT document FROM summaries WHERE root_path = ? AND head_commit = ?
	`, rootPath, headCommit)

	var doc []byte
	err := row.Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New(errors.CacheError, "failed to read cached summary", err)
	}

	var sum summary.RepoSummary
	if err := json.Unmarshal(doc, &sum); err != nil {
		return nil, errors.New(errors.CacheError, "cached summary is corrupt", err)
	}
	return &sum, nil
}

// AnalyzedAt returns the analysis timestamp of a cached entry without
// deserializing the document, for staleness checks.
func (s *Store) AnalyzedAt(rootPath, headCommit string) (string, bool, error) {
	row := s.db.QueryRow(`
		SELECT analyzed_at FROM summaries WHERE root_path = ? AND head_commit = ?
	`, rootPath, headCommit)

	var at string
	err := row.Scan(&at)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.New(errors.CacheError, "failed to read cache timestamp", err)
	}
	return at, true, nil
}

// Count returns the number of cached summaries.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM summaries`).Scan(&n); err != nil {
		return 0, errors.New(errors.CacheError, "failed to count cache entries", err)
	}
	return n, nil
}

// Clear drops every cached summary.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM summaries`); err != nil {
		return errors.New(errors.CacheError, "failed to clear cache", err)
	}
	return nil
}

// String describes the store for diagnostics.
func (s *Store) String() string {
	n, err := s.Count()
	if err != nil {
		return "summary cache (unavailable)"
	}
	return fmt.Sprintf("summary cache (%d entries)", n)
}
