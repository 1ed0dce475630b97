package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/anchorlog/internal/changelog"
	"github.com/ariel-frischer/anchorlog/internal/cli/shared"
	"github.com/ariel-frischer/anchorlog/internal/config"
	clierrors "github.com/ariel-frischer/anchorlog/internal/errors"
	"github.com/ariel-frischer/anchorlog/internal/progress"
	"github.com/ariel-frischer/anchorlog/internal/repository"
	"github.com/spf13/cobra"
)

// session is the configuration and repository a command works on.
type session struct {
	cfg    *config.Configuration
	repo   *repository.GitRepository
	source repository.CommitRepository
	// cache is nil when graph caching is disabled.
	cache *repository.CachedRepository
}

// openSession loads configuration and opens the repository selected by --repo.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}

	repoPath, _ := cmd.Flags().GetString(shared.RepoFlag)
	repo, err := repository.Open(repoPath, repository.Options{GitBinary: cfg.GitBinary})
	if err != nil {
		if repoPath == "" {
			repoPath = "."
		}
		return nil, clierrors.NotARepository(repoPath, err)
	}

	s := &session{cfg: cfg, repo: repo, source: repo}
	if cfg.GraphCache != "" {
		s.cache = repository.NewCachedRepository(repo, config.ResolvePath(repo.Root(), cfg.GraphCache))
		s.source = s.cache
	}
	return s, nil
}

// outputPath is the configured changelog path resolved against the repository root.
func (s *session) outputPath() string {
	return config.ResolvePath(s.repo.Root(), s.cfg.Output)
}

// snapshot reads commits and graph text with a spinner on stderr.
func (s *session) snapshot(cmd *cobra.Command) repository.Snapshot {
	indicator := progress.NewIndicator(cmd.ErrOrStderr(), progress.DetectTerminalCapabilities())
	indicator.Start("Reading repository")
	snap := repository.Load(s.source)
	indicator.Stop(true)
	return snap
}

// commits lists the repository's commits oldest first with a spinner on stderr.
func (s *session) commits(cmd *cobra.Command) ([]repository.Commit, error) {
	indicator := progress.NewIndicator(cmd.ErrOrStderr(), progress.DetectTerminalCapabilities())
	indicator.Start("Reading commits")
	commits, err := s.repo.ListCommits()
	indicator.Stop(err == nil)
	if err != nil {
		return nil, clierrors.Wrap(fmt.Errorf("listing commits: %w", err), clierrors.Runtime)
	}
	return commits, nil
}

// expandRefs replaces tokens that name a ref (tag, branch, HEAD~n) with the
// full hash they point to. Hex tokens are left for prefix resolution so that
// ambiguity is reported against the commit list.
func (s *session) expandRefs(tokens []string) []string {
	expanded := make([]string, len(tokens))
	for i, token := range tokens {
		expanded[i] = token
		if isHexToken(token) {
			continue
		}
		if hash, err := s.repo.ResolveRevision(token); err == nil {
			expanded[i] = hash
		}
	}
	return expanded
}

// render resolves tokens and renders the changelog, warning about dropped
// tokens on stderr.
func (s *session) render(cmd *cobra.Command, tokens []string) (string, error) {
	commits, err := s.commits(cmd)
	if err != nil {
		return "", err
	}

	doc, unresolved, err := changelog.Render(commits, s.expandRefs(tokens), s.cfg.VersionConfig())
	warnUnresolved(cmd.ErrOrStderr(), unresolved)
	if err != nil {
		return "", anchorError(cmd, err)
	}
	return doc, nil
}

// versions resolves tokens and assigns versions, warning about dropped tokens
// on stderr.
func (s *session) versions(cmd *cobra.Command, tokens []string) ([]changelog.VersionedCommit, error) {
	commits, err := s.commits(cmd)
	if err != nil {
		return nil, err
	}

	positions, unresolved := changelog.ResolveTokens(commits, s.expandRefs(tokens))
	warnUnresolved(cmd.ErrOrStderr(), unresolved)

	entries, err := changelog.AssignVersions(commits, positions, s.cfg.VersionConfig())
	if err != nil {
		return nil, anchorError(cmd, err)
	}
	return entries, nil
}

// anchorError turns an InsufficientAnchorsError into a CLIError carrying the
// command's usage line and hints.
func anchorError(cmd *cobra.Command, err error) error {
	var insufficient *changelog.InsufficientAnchorsError
	if errors.As(err, &insufficient) {
		return clierrors.InsufficientAnchors(insufficient.Have, changelog.MinAnchors, cmd.UseLine(), err)
	}
	return err
}

func warnUnresolved(w io.Writer, unresolved []changelog.UnresolvableTokenError) {
	tokens := make([]clierrors.Unresolved, len(unresolved))
	for i, u := range unresolved {
		tokens[i] = clierrors.Unresolved{Token: u.Token, Reason: u.Reason}
	}
	clierrors.FprintUnresolved(w, tokens)
}

func isHexToken(token string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return false
	}
	return strings.Trim(token, "0123456789abcdef") == ""
}
