package cli

import (
	"fmt"

	"github.com/ariel-frischer/anchorlog/internal/changelog"
	"github.com/ariel-frischer/anchorlog/internal/cli/shared"
	clierrors "github.com/ariel-frischer/anchorlog/internal/errors"
	"github.com/ariel-frischer/anchorlog/internal/output"
	"github.com/ariel-frischer/anchorlog/internal/preview"
	"github.com/ariel-frischer/anchorlog/internal/repository"
	"github.com/ariel-frischer/anchorlog/internal/tui"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:     "browse",
	Aliases: []string{"b"},
	Short:   "Pick anchors in the commit graph and write the changelog (b)",
	Long: `Open the interactive browser: the commit graph on the left, the live
changelog preview on the right.

Keys:
  j/k, arrows      move the cursor (graph) or scroll (preview)
  C-d/C-u, pgdn    page down/up
  g/G              top/bottom
  space, x         toggle the commit under the cursor as an anchor
  f                keep whole commit blocks on screen
  tab              switch focus between graph and preview
  [ ]              resize the panes
  r                reload the repository, keeping anchors
  enter            write the changelog and exit
  q, esc           exit without writing`,
	Example: `  # Browse the current repository
  anchorlog browse

  # Write to a different file with highlighting on
  anchorlog browse -o docs/CHANGES.md --highlight`,
	Args:    cobra.NoArgs,
	GroupID: shared.GroupChangelog,
	RunE:    runBrowse,
}

func init() {
	addBrowseFlags(browseCmd)
	rootCmd.AddCommand(browseCmd)
}

// addBrowseFlags registers the browser flags. The root command shares them
// since it runs the browser when no command is given.
func addBrowseFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Changelog file to write on confirm (default from config: CHANGELOG.md)")
	cmd.Flags().Bool("fit", false, "Start with fit-full-block scrolling on")
	cmd.Flags().Bool("highlight", false, "Highlight the preview as markdown")
	cmd.Flags().String("style", "", "Chroma style for preview highlighting (default from config: monokai)")
	addGraphSourceFlags(cmd)
}

// addGraphSourceFlags registers the flags that control how the graph is drawn.
func addGraphSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("git-binary", "", "Git executable used to draw the graph (\"-\" draws a linear graph)")
	cmd.Flags().String("graph-cache", "", "Graph cache file relative to the repository root (default from config)")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !output.IsTerminal() {
		return clierrors.NewPrerequisiteError("browse needs an interactive terminal",
			"Run anchorlog in a terminal",
			"Or render without the browser: anchorlog render <commit> <commit>",
		)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	opts, err := s.browserOptions(termenv.EnvColorProfile())
	if err != nil {
		return err
	}

	coord := tui.NewCoordinator(func() repository.Snapshot {
		return repository.Load(s.source)
	}, opts)

	if err := tui.Run(coord); err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}

	if coord.Status() != tui.StatusConfirmed {
		return nil
	}

	path := s.outputPath()
	if _, err := changelog.Generate(coord.Commits(), coord.Result(), path, s.cfg.VersionConfig()); err != nil {
		if changelog.IsInsufficientAnchors(err) {
			return anchorError(cmd, err)
		}
		return clierrors.FileNotWritable(path, err)
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Changelog written to %s", path))
	return nil
}

// browserOptions builds the coordinator options from configuration. The
// preview highlighter emits escape sequences for profile.
func (s *session) browserOptions(profile termenv.Profile) (tui.Options, error) {
	opts := tui.Options{
		Version:      s.cfg.VersionConfig(),
		FitFullBlock: s.cfg.FitFullBlock,
		Layout: tui.Layout{
			SplitRatio:    s.cfg.Layout.SplitRatio,
			MinLeftWidth:  s.cfg.Layout.MinLeftWidth,
			MinRightWidth: s.cfg.Layout.MinRightWidth,
			ResizeStep:    s.cfg.Layout.ResizeStep,
		},
	}

	if s.cache != nil {
		opts.BeforeRefresh = s.cache.Invalidate
	}

	if s.cfg.Preview.Highlight {
		highlighter, err := preview.NewHighlighterForProfile(s.cfg.Preview.Style, profile)
		if err != nil {
			return tui.Options{}, clierrors.InvalidConfig(err)
		}
		opts.Highlighter = highlighter
	}

	return opts, nil
}
