// Package repository reads commit history for anchorlog. It uses the go-git
// library to list commits and resolve revisions, and falls back to the git CLI
// only for drawing the commit graph, which go-git does not provide.
package repository

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for repository operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// ShortIDLength is the number of hex characters in a commit's short id.
const ShortIDLength = 7

// DisableCLI is the Options.GitBinary value that forces the linear fallback graph.
const DisableCLI = "-"

// Commit is an immutable view of a single commit.
type Commit struct {
	FullID  string
	ShortID string
	// Date is the author date formatted as YYYY-MM-DD in the author's zone.
	Date    string
	Subject string
	// Body is the message after the subject line, without the separating
	// blank line or trailing newlines. It may be empty.
	Body string
}

// CommitRepository supplies commits and the raw graph drawing. Both calls are
// read-only.
type CommitRepository interface {
	// ListCommits returns commits ordered oldest to newest.
	ListCommits() ([]Commit, error)
	// GraphText returns the graph drawing with one header line per commit.
	GraphText() (string, error)
}

// Options configures how a GitRepository draws its graph.
type Options struct {
	// GitBinary overrides the git executable used for graph drawing.
	// Empty looks up "git" on PATH; DisableCLI always uses the linear fallback.
	GitBinary string
}

// GitRepository implements CommitRepository on top of go-git.
type GitRepository struct {
	repo *git.Repository
	root string
	opts Options
}

// Open opens the git repository containing path. An empty path means the
// current working directory. Parent directories are searched for .git.
func Open(path string, opts Options) (*GitRepository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[repository] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	root := path
	if worktree, err := repo.Worktree(); err == nil {
		root = worktree.Filesystem.Root()
	}

	logDebug("[repository] repository root: %s", root)
	return New(repo, root, opts), nil
}

// New wraps an already opened go-git repository. root is the directory the git
// CLI runs in; it may be empty for in-memory repositories, in which case the
// linear fallback graph is always used.
func New(repo *git.Repository, root string, opts Options) *GitRepository {
	return &GitRepository{repo: repo, root: root, opts: opts}
}

// Root returns the repository's working directory.
func (r *GitRepository) Root() string {
	return r.root
}

// ListCommits returns every commit reachable from HEAD, oldest first.
// An empty repository (no HEAD yet) yields no commits and no error.
func (r *GitRepository) ListCommits() ([]Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			logDebug("[repository] ListCommits: no HEAD, repository is empty")
			return nil, nil
		}
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	iter, err := r.repo.Log(&git.LogOptions{
		From:  head.Hash(),
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", head.Hash(), err)
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, newCommit(c))
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, fmt.Errorf("iterating commits: %w", err)
	}

	// Log walks newest first.
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}

	logDebug("[repository] ListCommits: %d commits", len(commits))
	return commits, nil
}

// ResolveRevision maps a revision (branch, tag, hash prefix, HEAD~2, ...) to a
// full commit hash.
func (r *GitRepository) ResolveRevision(revision string) (string, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return "", fmt.Errorf("resolving revision %q: %w", revision, err)
	}
	return hash.String(), nil
}

// GraphText draws the commit graph. The git CLI is used when available since
// go-git has no graph renderer; otherwise a linear graph is drawn from the
// go-git commit list.
func (r *GitRepository) GraphText() (string, error) {
	if binary := r.gitBinary(); binary != "" {
		text, err := r.cliGraph(binary)
		if err == nil {
			return text, nil
		}
		logDebug("[repository] git CLI graph failed, using linear fallback: %v", err)
	}

	commits, err := r.ListCommits()
	if err != nil {
		return "", err
	}
	return DrawLinear(commits), nil
}

// gitBinary returns the git executable to use, or "" when the CLI is unavailable.
func (r *GitRepository) gitBinary() string {
	if r.root == "" || r.opts.GitBinary == DisableCLI {
		return ""
	}
	if r.opts.GitBinary != "" {
		return r.opts.GitBinary
	}
	path, err := exec.LookPath("git")
	if err != nil {
		logDebug("[repository] git executable not found: %v", err)
		return ""
	}
	return path
}

// cliGraph runs git log --graph in the repository root.
func (r *GitRepository) cliGraph(binary string) (string, error) {
	cmd := exec.Command(binary, "-C", r.root, "log", "--graph", "--no-color",
		"--date=short", "--format=%h %ad %s%n%b", "HEAD")
	logDebug("[repository] running %s", strings.Join(cmd.Args, " "))

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("git log: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git log: %w", err)
	}
	return string(out), nil
}

// newCommit converts a go-git commit object.
func newCommit(c *object.Commit) Commit {
	full := c.Hash.String()
	subject, body := splitMessage(c.Message)
	return Commit{
		FullID:  full,
		ShortID: full[:ShortIDLength],
		Date:    c.Author.When.Format("2006-01-02"),
		Subject: subject,
		Body:    body,
	}
}

// splitMessage separates the subject line from the body.
func splitMessage(message string) (subject, body string) {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	message = strings.TrimRight(message, "\n")

	idx := strings.Index(message, "\n")
	if idx < 0 {
		return strings.TrimSpace(message), ""
	}
	return strings.TrimSpace(message[:idx]), strings.Trim(message[idx+1:], "\n")
}
