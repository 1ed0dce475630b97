package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/anchorlog/internal/cli/shared"
	"github.com/ariel-frischer/anchorlog/internal/config"
	clierrors "github.com/ariel-frischer/anchorlog/internal/errors"
	"github.com/ariel-frischer/anchorlog/internal/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var cDim = color.New(color.Faint).SprintFunc()

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file with the default values",
	Long: `Create a commented config file listing every key with its default value.

By default the project config (.anchorlog.yml in the repository given by
--repo, or the current directory) is created. Use --user for the user config.
An existing file is left alone unless --force is given.`,
	Example: `  # Create .anchorlog.yml here
  anchorlog config init

  # Create ~/.config/anchorlog/config.yml, replacing it if present
  anchorlog config init --user --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	initCmd.Flags().BoolP("user", "u", false, "Create the user config instead of the project config")
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetBool("user")
	force, _ := cmd.Flags().GetBool("force")

	path, err := initTarget(cmd, user)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return clierrors.NewArgumentError(
			fmt.Sprintf("config file already exists: %s", path),
			"Use --force to replace it with the defaults",
			"Show the effective values with: anchorlog config show",
		)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return clierrors.FileNotWritable(path, err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return clierrors.FileNotWritable(path, err)
	}

	out := cmd.OutOrStdout()
	output.PrintSuccess(out, fmt.Sprintf("Created %s", path))
	fmt.Fprintln(out, cDim("Edit the values you want to change; anchorlog config show lists the result."))
	return nil
}

// initTarget returns the config file path init writes.
func initTarget(cmd *cobra.Command, user bool) (string, error) {
	if user {
		path, err := config.UserConfigPath()
		if err != nil {
			return "", clierrors.Wrap(fmt.Errorf("locating user config: %w", err), clierrors.Configuration)
		}
		return path, nil
	}

	if path, _ := cmd.Flags().GetString(shared.ConfigFlag); path != "" {
		return path, nil
	}
	dir, _ := cmd.Flags().GetString(shared.RepoFlag)
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, config.ProjectConfigName), nil
}
