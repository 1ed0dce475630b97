// Package cli tests the changelog commands against on-disk repositories.
// Related: internal/cli/render.go, internal/cli/generate.go, internal/cli/versions.go, internal/cli/graph.go
// Tags: cli, render, generate, versions, graph, exit-codes

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/anchorlog/internal/cli/shared"
	clierrors "github.com/ariel-frischer/anchorlog/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestRunRender(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t, 5)
	res := runIsolated(runRender, addAnchorFlag, "--repo", repo.dir, repo.short(1), repo.short(3))
	require.NoError(t, res.err)

	want := "## [Unreleased]\n\n" +
		"## [0.1.0] - 2024-06-02\n\n- change 1 (" + repo.short(1) + ")\n  details for 1\n\n" +
		"## [0.1.5] - 2024-06-03\n\n- change 2 (" + repo.short(2) + ")\n  details for 2\n\n" +
		"## [0.2.0] - 2024-06-04\n\n- change 3 (" + repo.short(3) + ")\n  details for 3\n\n"
	assert.Equal(t, want, res.stdout)
	assert.Empty(t, res.stderr)
}

func TestRunRender_Anchors(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t, 4)
	repo.tag(t, "v1.0", 0)

	tests := map[string]struct {
		args        []string
		wantVersion []string
		wantWarning string
	}{
		"anchor flag and positional": {
			args:        []string{"--anchor", repo.short(0), repo.short(2)},
			wantVersion: []string{"## [0.1.0]", "## [0.1.5]", "## [0.2.0]"},
		},
		"tag name": {
			args:        []string{"v1.0", repo.short(1)},
			wantVersion: []string{"## [0.1.0] - 2024-06-01", "## [0.2.0] - 2024-06-02"},
		},
		"full hash in upper case": {
			args:        []string{strings.ToUpper(repo.hashes[0]), repo.short(3)},
			wantVersion: []string{"## [0.1.0] - 2024-06-01", "## [0.2.0] - 2024-06-04"},
		},
		"unknown anchor is skipped with a warning": {
			args:        []string{repo.short(0), "nosuchref", repo.short(1)},
			wantVersion: []string{"## [0.1.0]", "## [0.2.0]"},
			wantWarning: `warning: ignoring anchor "nosuchref": not a hexadecimal commit id`,
		},
		"numbering flags": {
			args:        []string{"--major", "3", "--minor-start", "0", repo.short(0), repo.short(1)},
			wantVersion: []string{"## [3.0.0]", "## [3.1.0]"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res := runIsolated(runRender, addAnchorFlag, append([]string{"--repo", repo.dir}, tt.args...)...)
			require.NoError(t, res.err)
			for _, want := range tt.wantVersion {
				assert.Contains(t, res.stdout, want)
			}
			if tt.wantWarning != "" {
				assert.Contains(t, res.stderr, tt.wantWarning)
			}
		})
	}
}

func TestRunRender_ExitCodes(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t, 3)

	tests := map[string]struct {
		args     []string
		wantCode int
	}{
		"one anchor": {
			args:     []string{"--repo", repo.dir, repo.short(0)},
			wantCode: shared.ExitInsufficientAnchors,
		},
		"same anchor twice": {
			args:     []string{"--repo", repo.dir, repo.short(1), repo.hashes[1]},
			wantCode: shared.ExitInsufficientAnchors,
		},
		"all anchors unresolved": {
			args:     []string{"--repo", repo.dir, "nope", "nada"},
			wantCode: shared.ExitInsufficientAnchors,
		},
		"not a repository": {
			args:     []string{"--repo", t.TempDir(), "abcd", "ef01"},
			wantCode: shared.ExitRepositoryUnavailable,
		},
		"invalid base patch": {
			args:     []string{"--repo", repo.dir, "--base-patch", "0", repo.short(0), repo.short(1)},
			wantCode: shared.ExitInvalidArguments,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res := runIsolated(runRender, addAnchorFlag, tt.args...)
			require.Error(t, res.err)
			assert.Equal(t, tt.wantCode, ExitCode(res.err))
			assert.Empty(t, res.stdout)
		})
	}
}

func TestRunRender_DroppedAnchorsReport(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t, 3)
	res := runIsolated(runRender, addAnchorFlag, "--repo", repo.dir, "nope", repo.short(0), "nada")
	require.Error(t, res.err)

	want := "warning: ignoring 2 anchors\n" +
		"  \"nope\": not a hexadecimal commit id\n" +
		"  \"nada\": not a hexadecimal commit id\n"
	assert.Equal(t, want, res.stderr)

	cliErr := clierrors.AsCLIError(res.err)
	require.NotNil(t, cliErr)
	assert.Equal(t, "need at least 2 anchors, have 1", cliErr.Message)
	assert.Equal(t, "test [flags]", cliErr.Usage)
	assert.Equal(t, shared.ExitInsufficientAnchors, ExitCode(res.err))
}

func TestRunGenerate(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t, 3)
	setup := func(cmd *cobra.Command) {
		addAnchorFlag(cmd)
		cmd.Flags().StringP("output", "o", "", "")
	}

	t.Run("default output in repository root", func(t *testing.T) {
		t.Parallel()

		res := runIsolated(runGenerate, setup, "--repo", repo.dir, repo.short(0), repo.short(2))
		require.NoError(t, res.err)

		path := filepath.Join(repo.dir, "CHANGELOG.md")
		assert.Equal(t, "✓ Changelog written to "+path+"\n", res.stdout)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "## [Unreleased]\n\n## [0.1.0] - 2024-06-01"))
		assert.NoFileExists(t, path+".tmp")
	})

	t.Run("output flag overwrites", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "docs", "CHANGES.md")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

		res := runIsolated(runGenerate, setup, "--repo", repo.dir, "-o", path, repo.short(0), repo.short(1))
		require.NoError(t, res.err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "old")
		assert.Contains(t, string(data), "## [0.2.0] - 2024-06-02")
	})

	t.Run("insufficient anchors write nothing", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "CHANGES.md")
		res := runIsolated(runGenerate, setup, "--repo", repo.dir, "-o", path, repo.short(0))
		assert.Equal(t, shared.ExitInsufficientAnchors, ExitCode(res.err))
		assert.NoFileExists(t, path)
	})
}

func TestRunVersions(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t, 4)
	setup := func(cmd *cobra.Command) {
		addAnchorFlag(cmd)
		cmd.Flags().Bool("plain", false, "")
	}

	res := runIsolated(runVersions, setup, "--repo", repo.dir, "--plain", repo.short(0), repo.short(3))
	require.NoError(t, res.err)

	for _, want := range []string{"0.1.0", "0.1.3", "0.1.7", "0.2.0", "change 0", "change 3"} {
		assert.Contains(t, res.stdout, want)
	}
	assert.NotContains(t, res.stdout, "◆")
}

func TestRunGraph(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t, 3)

	res := runIsolated(runGraph, addGraphFlags, "--repo", repo.dir, "--git-binary", "-")
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimRight(res.stdout, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "* "+repo.short(2)+" 2024-06-03 change 2", lines[0])
	assert.Equal(t, "3 commits in graph, 3 in history\n", res.stderr)

	cachePath := filepath.Join(repo.dir, ".anchorlog", "graph.txt")
	cached, err := os.ReadFile(cachePath)
	require.NoError(t, err)
	assert.Equal(t, res.stdout, string(cached))

	// A cache file that matches the commit list is served as is; --refresh redraws.
	edited := string(cached) + "  (from cache)\n"
	require.NoError(t, os.WriteFile(cachePath, []byte(edited), 0o644))

	res = runIsolated(runGraph, addGraphFlags, "--repo", repo.dir, "--git-binary", "-")
	require.NoError(t, res.err)
	assert.Equal(t, edited, res.stdout)

	res = runIsolated(runGraph, addGraphFlags, "--repo", repo.dir, "--git-binary", "-", "--refresh")
	require.NoError(t, res.err)
	assert.Equal(t, string(cached), res.stdout)
}

func TestIsHexToken(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		token string
		want  bool
	}{
		"short id":   {token: "1a2b3c4", want: true},
		"upper case": {token: "DEADBEEF", want: true},
		"tag":        {token: "v1.0", want: false},
		"revision":   {token: "HEAD~2", want: false},
		"empty":      {token: "", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isHexToken(tt.token))
		})
	}
}
