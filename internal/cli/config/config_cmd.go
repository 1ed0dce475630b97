// Package config implements the anchorlog config commands.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ariel-frischer/anchorlog/internal/cli/shared"
	"github.com/ariel-frischer/anchorlog/internal/config"
	"github.com/ariel-frischer/anchorlog/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create anchorlog configuration",
	Long: `Inspect and create anchorlog configuration.

Configuration is merged from, highest priority first:
  1. command-line flags
  2. environment variables (ANCHORLOG_BASE_PATCH, ANCHORLOG_PREVIEW__STYLE, ...)
  3. project config (.anchorlog.yml or .anchorlog.json in the repository)
  4. user config (~/.config/anchorlog/config.yml)
  5. built-in defaults`,
	GroupID: shared.GroupConfiguration,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration and where each value came from",
	Example: `  # Show as YAML
  anchorlog config show

  # Show as JSON
  anchorlog config show --json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List every configuration key with its type",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

func init() {
	configShowCmd.Flags().Bool("json", false, "Output in JSON format")
	configCmd.AddCommand(configShowCmd, configKeysCmd, initCmd)
}

// Register adds the config command tree to root.
func Register(root *cobra.Command) {
	root.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		fmt.Fprint(out, string(data))
	}

	fmt.Fprintln(out)
	output.PrintSectionHeader(out, "Configuration Sources")
	return printSources(out, cfg)
}

// printSources lists each key with the layer that set it.
func printSources(w io.Writer, cfg *config.Configuration) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, key := range cfg.Keys() {
		fmt.Fprintf(tw, "%s\t%s\n", key, cfg.Source(key))
	}
	return tw.Flush()
}

func runConfigKeys(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tTYPE\tDESCRIPTION")
	for _, path := range config.KnownKeyPaths() {
		schema, err := config.GetKeySchema(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", schema.Path, schema.Type, schema.Description)
	}
	return tw.Flush()
}
