package cli

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/anchorlog/internal/cli/shared"
	"github.com/ariel-frischer/anchorlog/internal/graph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:     "graph",
	Aliases: []string{"g"},
	Short:   "Print the commit graph the browser shows (g)",
	Long: `Print the commit graph text and the number of commits found in it.

The graph comes from the cache file when it still matches the commit list;
--refresh redraws it and rewrites the cache.`,
	Example: `  # Print the graph
  anchorlog graph

  # Redraw and rewrite the cache
  anchorlog graph --refresh`,
	Args:    cobra.NoArgs,
	GroupID: shared.GroupInspection,
	RunE:    runGraph,
}

func init() {
	addGraphFlags(graphCmd)
	rootCmd.AddCommand(graphCmd)
}

func addGraphFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("refresh", false, "Ignore the graph cache and redraw")
	addGraphSourceFlags(cmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	refresh, _ := cmd.Flags().GetBool("refresh")

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	if refresh && s.cache != nil {
		s.cache.Invalidate()
	}

	snap := s.snapshot(cmd)
	out := cmd.OutOrStdout()
	fmt.Fprint(out, snap.Graph)
	if !strings.HasSuffix(snap.Graph, "\n") {
		fmt.Fprintln(out)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%d commits in graph, %d in history\n",
		graph.Parse(snap.Graph).HeaderCount(), len(snap.Commits))
	return nil
}
