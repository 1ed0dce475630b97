package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/anchorlog/internal/graph"
)

// CachedRepository keeps the last drawn graph in a plain-text file. The file is
// only a performance cache: when it is missing, unreadable, or does not
// describe the current commit list it is regenerated, never reported.
type CachedRepository struct {
	source      CommitRepository
	path        string
	commits     []Commit
	listed      bool
	invalidated bool
}

// NewCachedRepository wraps source with a graph cache stored at path.
func NewCachedRepository(source CommitRepository, path string) *CachedRepository {
	return &CachedRepository{source: source, path: path}
}

// Path returns the cache file location.
func (c *CachedRepository) Path() string {
	return c.path
}

// ListCommits delegates to the wrapped repository and remembers the result
// for cache validation.
func (c *CachedRepository) ListCommits() ([]Commit, error) {
	commits, err := c.source.ListCommits()
	if err != nil {
		return nil, err
	}
	c.commits = commits
	c.listed = true
	return commits, nil
}

// GraphText returns the cached graph if it is fresh, otherwise draws a new
// one and rewrites the cache.
func (c *CachedRepository) GraphText() (string, error) {
	if !c.invalidated {
		if text, ok := c.readCache(); ok {
			logDebug("[repository] graph cache hit: %s", c.path)
			return text, nil
		}
	}
	c.invalidated = false

	text, err := c.source.GraphText()
	if err != nil {
		return "", err
	}
	if err := c.writeCache(text); err != nil {
		logDebug("[repository] writing graph cache failed: %v", err)
	}
	return text, nil
}

// Invalidate forces the next GraphText call to regenerate the graph.
func (c *CachedRepository) Invalidate() {
	c.invalidated = true
}

// readCache loads the cache file and checks it against the commit list.
func (c *CachedRepository) readCache() (string, bool) {
	if c.path == "" {
		return "", false
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		logDebug("[repository] graph cache unavailable: %v", err)
		return "", false
	}

	if !c.listed {
		if _, err := c.ListCommits(); err != nil {
			logDebug("[repository] cannot validate graph cache: %v", err)
			return "", false
		}
	}

	text := string(data)
	if !matchesCommits(graph.Parse(text).IDs(), c.commits) {
		logDebug("[repository] graph cache is stale: %s", c.path)
		return "", false
	}
	return text, true
}

// writeCache stores text at the cache path, creating parent directories.
func (c *CachedRepository) writeCache(text string) error {
	if c.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	if err := os.WriteFile(c.path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}

// matchesCommits reports whether the header ids drawn in a graph are exactly
// the given commits: same count and every commit present by id prefix.
func matchesCommits(ids []string, commits []Commit) bool {
	if len(ids) != len(commits) {
		return false
	}

	byShort := make(map[string]string, len(ids))
	for _, id := range ids {
		if len(id) < ShortIDLength {
			return false
		}
		byShort[id[:ShortIDLength]] = id
	}

	for _, commit := range commits {
		if len(commit.FullID) < ShortIDLength {
			return false
		}
		id, ok := byShort[commit.FullID[:ShortIDLength]]
		if !ok || len(id) > len(commit.FullID) || commit.FullID[:len(id)] != id {
			return false
		}
	}
	return true
}
