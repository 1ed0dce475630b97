// Package cli implements the anchorlog command line interface.
package cli

import (
	"os"

	configcmd "github.com/ariel-frischer/anchorlog/internal/cli/config"
	"github.com/ariel-frischer/anchorlog/internal/cli/shared"
	"github.com/ariel-frischer/anchorlog/internal/cli/util"
	clierrors "github.com/ariel-frischer/anchorlog/internal/errors"
	"github.com/spf13/cobra"
)

// closeLog closes the debug log file opened for the running command.
var closeLog = func() error { return nil }

var rootCmd = &cobra.Command{
	Use:   "anchorlog",
	Short: "Build a versioned changelog from anchor commits",
	Long: `anchorlog turns a git history into a versioned changelog.

Pick two or more anchor commits. The oldest anchor becomes 0.1.0, each later
anchor opens the next minor version, and the commits in-between get patch
versions spread across the gap. The result is a markdown document listing
every commit from the first anchor to the last, oldest first.

Run without a command to pick anchors interactively in the commit graph.`,
	Example: `  # Browse the graph and pick anchors interactively
  anchorlog

  # Render a changelog between two tags and a commit
  anchorlog render v1.0 v2.0 4f2a91c

  # Write CHANGELOG.md in another repository
  anchorlog -C ../project generate 1a2b3c4 5d6e7f8 -o CHANGELOG.md

  # Show the versions each commit would get
  anchorlog versions 1a2b3c4 5d6e7f8 --major 1`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setupLogging,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return closeLog() },
	Args:               cobra.NoArgs,
	RunE:               runBrowse,
}

func init() {
	shared.AddGlobalFlags(rootCmd.PersistentFlags())
	addBrowseFlags(rootCmd)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.Wrap(err, clierrors.Argument, "Use 'anchorlog "+cmd.Name()+" --help' to see valid options")
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: shared.GroupChangelog, Title: "Changelog Commands:"},
		&cobra.Group{ID: shared.GroupInspection, Title: "Inspection Commands:"},
		&cobra.Group{ID: shared.GroupConfiguration, Title: "Configuration Commands:"},
	)

	configcmd.Register(rootCmd)
	util.Register(rootCmd)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	closer, err := shared.SetupDebugLogging(cmd)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Argument)
	}
	closeLog = closer
	return nil
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	if !shared.IsExitError(err) {
		cliErr := clierrors.AsCLIError(err)
		if cliErr == nil {
			cliErr = clierrors.Wrap(err, clierrors.Runtime)
		}
		clierrors.FprintError(os.Stderr, cliErr)
	}
	return err
}

// ExitCode maps an error returned by Execute to the process exit code.
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
