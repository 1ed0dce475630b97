package cli

import (
	"github.com/ariel-frischer/anchorlog/internal/changelog"
	"github.com/ariel-frischer/anchorlog/internal/cli/shared"
	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:     "versions [commit...]",
	Aliases: []string{"ver"},
	Short:   "Show the version each commit gets for the given anchors (ver)",
	Long: `Assign versions for two or more anchor commits and print one row per
commit: version, date, short id and subject. Anchors are highlighted and
each minor version starts a new block.`,
	Example: `  # Show versions between two commits
  anchorlog versions 1a2b3c4 5d6e7f8

  # Plain output for scripts
  anchorlog versions v1.0 v2.0 --plain`,
	GroupID: shared.GroupInspection,
	RunE:    runVersions,
}

func init() {
	addAnchorFlag(versionsCmd)
	versionsCmd.Flags().Bool("plain", false, "Plain output without colors or icons")
	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, args []string) error {
	plain, _ := cmd.Flags().GetBool("plain")

	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	entries, err := s.versions(cmd, anchorTokens(cmd, args))
	if err != nil {
		return err
	}

	return changelog.FormatTerminal(entries, cmd.OutOrStdout(), changelog.FormatOptions{Plain: plain})
}
