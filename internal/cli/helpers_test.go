package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ariel-frischer/anchorlog/internal/cli/shared"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// testRepo is an on-disk repository with commits "change 0".."change n-1",
// one day apart starting 2024-06-01.
type testRepo struct {
	dir    string
	hashes []string // oldest first
}

func (r testRepo) short(i int) string {
	return r.hashes[i][:7]
}

func newTestRepo(t *testing.T, n int) testRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	hashes := make([]string, 0, n)
	for i := range n {
		name := fmt.Sprintf("file-%d.txt", i)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
		_, err := worktree.Add(name)
		require.NoError(t, err)

		hash, err := worktree.Commit(fmt.Sprintf("change %d\n\ndetails for %d", i, i), &git.CommitOptions{
			Author: &object.Signature{
				Name:  "Test",
				Email: "test@example.com",
				When:  base.Add(time.Duration(i) * 24 * time.Hour),
			},
		})
		require.NoError(t, err)
		hashes = append(hashes, hash.String())
	}

	return testRepo{dir: dir, hashes: hashes}
}

// tag creates a lightweight tag on the i-th commit.
func (r testRepo) tag(t *testing.T, name string, i int) {
	t.Helper()

	repo, err := git.PlainOpen(r.dir)
	require.NoError(t, err)
	_, err = repo.CreateTag(name, plumbing.NewHash(r.hashes[i]), nil)
	require.NoError(t, err)
}

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

// runIsolated executes run on a fresh command carrying the global flags plus
// whatever setup registers, so tests never share flag state.
func runIsolated(run func(*cobra.Command, []string) error, setup func(*cobra.Command), args ...string) cmdResult {
	cmd := &cobra.Command{
		Use:           "test",
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	shared.AddGlobalFlags(cmd.Flags())
	if setup != nil {
		setup(cmd)
	}

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return cmdResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
