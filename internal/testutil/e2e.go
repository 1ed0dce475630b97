// Package testutil provides test utilities and helpers for anchorlog tests.
package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var (
	// anchorlogBinaryPath caches the built anchorlog binary path.
	anchorlogBinaryPath string
	anchorlogBuildOnce  sync.Once
	anchorlogBuildErr   error
)

// CommitTime is the author time of the first commit created by Commit; each
// later commit is one day newer.
var CommitTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// E2EEnv provides an isolated environment for E2E testing: a temp repository
// directory, a private HOME and config directory, and an environment without
// ANCHORLOG_* variables.
type E2EEnv struct {
	t       *testing.T
	tempDir string
	repoDir string
	repo    *git.Repository
	commits int
}

// CommandResult captures the result of running an anchorlog command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewE2EEnv builds anchorlog (once per test binary) and creates a fresh
// environment with an empty repository directory.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	env := &E2EEnv{t: t, tempDir: t.TempDir()}
	env.repoDir = filepath.Join(env.tempDir, "repo")
	if err := os.MkdirAll(env.repoDir, 0o755); err != nil {
		t.Fatalf("creating repository directory: %v", err)
	}

	env.buildAnchorlog()
	return env
}

func (e *E2EEnv) buildAnchorlog() {
	e.t.Helper()

	anchorlogBuildOnce.Do(func() {
		anchorlogBinaryPath, anchorlogBuildErr = doBuildAnchorlog()
	})
	if anchorlogBuildErr != nil {
		e.t.Fatalf("building anchorlog: %v", anchorlogBuildErr)
	}
}

func doBuildAnchorlog() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("determining current file location")
	}
	repoRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")

	tmpDir, err := os.MkdirTemp("", "anchorlog-build-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir for build: %w", err)
	}
	binaryPath := filepath.Join(tmpDir, "anchorlog")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/anchorlog")
	cmd.Dir = repoRoot
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("building anchorlog: %w\nOutput: %s", err, output)
	}
	return binaryPath, nil
}

// InitRepo initializes a git repository in RepoDir.
func (e *E2EEnv) InitRepo() {
	e.t.Helper()

	repo, err := git.PlainInit(e.repoDir, false)
	if err != nil {
		e.t.Fatalf("initializing repository: %v", err)
	}
	e.repo = repo
}

// Commit adds a file and commits it with message, returning the full hash.
func (e *E2EEnv) Commit(message string) string {
	e.t.Helper()

	if e.repo == nil {
		e.InitRepo()
	}
	worktree, err := e.repo.Worktree()
	if err != nil {
		e.t.Fatalf("opening worktree: %v", err)
	}

	name := fmt.Sprintf("file-%d.txt", e.commits)
	if err := os.WriteFile(filepath.Join(e.repoDir, name), []byte(message), 0o644); err != nil {
		e.t.Fatalf("writing %s: %v", name, err)
	}
	if _, err := worktree.Add(name); err != nil {
		e.t.Fatalf("adding %s: %v", name, err)
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "E2E",
			Email: "e2e@example.com",
			When:  CommitTime.Add(time.Duration(e.commits) * 24 * time.Hour),
		},
	})
	if err != nil {
		e.t.Fatalf("committing: %v", err)
	}
	e.commits++
	return hash.String()
}

// Tag creates a lightweight tag on hash.
func (e *E2EEnv) Tag(name, hash string) {
	e.t.Helper()

	if _, err := e.repo.CreateTag(name, plumbing.NewHash(hash), nil); err != nil {
		e.t.Fatalf("tagging %s: %v", name, err)
	}
}

// WriteFile writes content to a path relative to RepoDir.
func (e *E2EEnv) WriteFile(rel, content string) {
	e.t.Helper()

	path := filepath.Join(e.repoDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("creating directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("writing %s: %v", rel, err)
	}
}

// Run executes anchorlog in RepoDir with the isolated environment.
func (e *E2EEnv) Run(args ...string) CommandResult {
	e.t.Helper()

	start := time.Now()

	cmd := exec.Command(anchorlogBinaryPath, args...)
	cmd.Dir = e.repoDir
	cmd.Env = e.buildIsolatedEnv()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
		}
	}
	return result
}

// buildIsolatedEnv keeps PATH and locale settings but points HOME and the
// config directory into the temp dir, so no user config is read.
func (e *E2EEnv) buildIsolatedEnv() []string {
	env := []string{
		"HOME=" + e.tempDir,
		"XDG_CONFIG_HOME=" + filepath.Join(e.tempDir, "config"),
		"NO_COLOR=1",
	}

	safeVars := []string{"PATH", "TERM", "LANG", "LC_ALL", "TMPDIR", "TMP", "TEMP"}
	for _, key := range safeVars {
		if val, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+val)
		}
	}
	return env
}

// HasAnchorlogEnv reports whether any ANCHORLOG_* variable leaks into the
// isolated environment.
func (e *E2EEnv) HasAnchorlogEnv() bool {
	for _, v := range e.buildIsolatedEnv() {
		if strings.HasPrefix(v, "ANCHORLOG_") {
			return true
		}
	}
	return false
}

// TempDir returns the root temp directory for this test environment.
func (e *E2EEnv) TempDir() string {
	return e.tempDir
}

// RepoDir returns the repository directory commands run in.
func (e *E2EEnv) RepoDir() string {
	return e.repoDir
}
