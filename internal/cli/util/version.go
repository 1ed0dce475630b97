// Package util implements anchorlog's utility commands.
package util

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/ariel-frischer/anchorlog/internal/build"
	"github.com/ariel-frischer/anchorlog/internal/cli/shared"
	"github.com/ariel-frischer/anchorlog/internal/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/anchorlog"

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for anchorlog",
	Example: `  # Show version info
  anchorlog version

  # Plain output (for scripts)
  anchorlog version --plain`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		if plain {
			printPlainVersion(cmd.OutOrStdout())
			return nil
		}
		printPrettyVersion(cmd.OutOrStdout(), output.GetTerminalWidth())
		return nil
	},
}

func init() {
	versionCmd.GroupID = shared.GroupConfiguration
	versionCmd.Flags().Bool("plain", false, "Plain output without formatting")
}

// Register adds the utility commands to root.
func Register(root *cobra.Command) {
	root.AddCommand(versionCmd)
}

// versionInfo is the label/value list shown by both output styles.
func versionInfo() [][2]string {
	return [][2]string{
		{"Version", build.Version},
		{"Commit", build.ShortCommit()},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", build.Platform()},
	}
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	fmt.Fprintf(w, "anchorlog %s\n", build.Version)
	fmt.Fprintf(w, "commit: %s\n", build.Commit)
	fmt.Fprintf(w, "built: %s\n", build.BuildDate)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	fmt.Fprintf(w, "platform: %s\n", build.Platform())
}

// printPrettyVersion prints the version info in a centered box
func printPrettyVersion(w io.Writer, termWidth int) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	boxWidth := 44
	if termWidth < 50 {
		boxWidth = max(termWidth-6, 24)
	}
	contentWidth := boxWidth - 4
	pad := strings.Repeat(" ", max((termWidth-boxWidth)/2, 0))

	fmt.Fprintln(w)
	fmt.Fprintln(w, pad+cyan("anchorlog")+" "+dim(SourceURL))
	fmt.Fprintln(w, pad+"╭"+strings.Repeat("─", boxWidth-2)+"╮")
	for _, item := range versionInfo() {
		line := fmt.Sprintf("  %s    %s", yellow(fmt.Sprintf("%10s", item[0])), white(item[1]))
		lineLen := 10 + 4 + len(item[1]) + 2
		if lineLen < contentWidth {
			line += strings.Repeat(" ", contentWidth-lineLen)
		}
		fmt.Fprintln(w, pad+"│ "+line+" │")
	}
	fmt.Fprintln(w, pad+"╰"+strings.Repeat("─", boxWidth-2)+"╯")
	fmt.Fprintln(w)
}
