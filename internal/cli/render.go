package cli

import (
	"fmt"

	"github.com/ariel-frischer/anchorlog/internal/cli/shared"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:     "render [commit...]",
	Aliases: []string{"r"},
	Short:   "Print the changelog for the given anchors (r)",
	Long: `Render the changelog for two or more anchor commits and print the markdown
to stdout.

Anchors are commit id prefixes (at least 4 hex characters), tags, branches or
any revision git understands, e.g. HEAD~3. Anchors that match no commit are
reported on stderr and skipped. At least two distinct anchors must remain.`,
	Example: `  # Render between two commits
  anchorlog render 1a2b3c4 5d6e7f8

  # Anchors as flags, mixed with tags
  anchorlog render --anchor v1.0 --anchor v1.1 HEAD`,
	GroupID: shared.GroupChangelog,
	RunE:    runRender,
}

func init() {
	addAnchorFlag(renderCmd)
	rootCmd.AddCommand(renderCmd)
}

// addAnchorFlag registers the repeatable --anchor flag.
func addAnchorFlag(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("anchor", "a", nil, "Anchor commit (repeatable, combined with positional anchors)")
}

// anchorTokens returns the --anchor values followed by the positional arguments.
func anchorTokens(cmd *cobra.Command, args []string) []string {
	anchors, _ := cmd.Flags().GetStringArray("anchor")
	return append(anchors, args...)
}

func runRender(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	doc, err := s.render(cmd, anchorTokens(cmd, args))
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), doc)
	return err
}
