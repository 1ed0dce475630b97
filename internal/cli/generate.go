package cli

import (
	"fmt"

	"github.com/ariel-frischer/anchorlog/internal/changelog"
	"github.com/ariel-frischer/anchorlog/internal/cli/shared"
	clierrors "github.com/ariel-frischer/anchorlog/internal/errors"
	"github.com/ariel-frischer/anchorlog/internal/output"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:     "generate [commit...]",
	Aliases: []string{"gen"},
	Short:   "Write the changelog for the given anchors to a file (gen)",
	Long: `Render the changelog for two or more anchor commits and write it to the
output file, replacing any existing file.

The file defaults to the configured output (CHANGELOG.md in the repository
root). Anchors are resolved the same way as for render.`,
	Example: `  # Write CHANGELOG.md
  anchorlog generate 1a2b3c4 5d6e7f8

  # Write somewhere else
  anchorlog generate v1.0 v2.0 -o docs/CHANGES.md`,
	GroupID: shared.GroupChangelog,
	RunE:    runGenerate,
}

func init() {
	addAnchorFlag(generateCmd)
	generateCmd.Flags().StringP("output", "o", "", "Changelog file to write (default from config: CHANGELOG.md)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	doc, err := s.render(cmd, anchorTokens(cmd, args))
	if err != nil {
		return err
	}

	path := s.outputPath()
	if err := changelog.WriteDocument(path, doc); err != nil {
		return clierrors.FileNotWritable(path, err)
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Changelog written to %s", path))
	return nil
}
