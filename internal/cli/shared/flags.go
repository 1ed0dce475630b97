package shared

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/anchorlog/internal/config"
	clierrors "github.com/ariel-frischer/anchorlog/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Global flag names.
const (
	RepoFlag       = "repo"
	ConfigFlag     = "config"
	DebugFlag      = "debug"
	LogFileFlag    = "log-file"
	MajorFlag      = "major"
	MinorStartFlag = "minor-start"
	BasePatchFlag  = "base-patch"
)

// flagConfigKeys maps flags that override a configuration value to the key
// they override. Only flags the user set explicitly take effect.
var flagConfigKeys = map[string]string{
	MajorFlag:      "major",
	MinorStartFlag: "minor_start",
	BasePatchFlag:  "base_patch",
	"output":       "output",
	"fit":          "fit_full_block",
	"highlight":    "preview.highlight",
	"style":        "preview.style",
	"git-binary":   "git_binary",
	"graph-cache":  "graph_cache",
}

// versionKeys are the keys reported as numbering errors rather than
// configuration errors.
var versionKeys = map[string]bool{
	"major":       true,
	"minor_start": true,
	"base_patch":  true,
}

// AddGlobalFlags registers the flags every command accepts.
func AddGlobalFlags(flags *pflag.FlagSet) {
	flags.StringP(RepoFlag, "C", "", "Repository path (default: current directory)")
	flags.String(ConfigFlag, "", "Project config file (default: .anchorlog.yml in the repository)")
	flags.BoolP(DebugFlag, "d", false, "Enable debug logging")
	flags.String(LogFileFlag, "", "Write debug logs to this file instead of stderr")
	flags.Int(MajorFlag, 0, "Major version shared by every version")
	flags.Int(MinorStartFlag, 1, "Minor version of the first anchor")
	flags.Int(BasePatchFlag, 10, "Patch range in-between commits are spread over")
}

// FlagOverrides collects configuration overrides from explicitly set flags.
func FlagOverrides(flags *pflag.FlagSet) (map[string]any, error) {
	overrides := make(map[string]any)
	for name, key := range flagConfigKeys {
		flag := flags.Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}

		var (
			value any
			err   error
		)
		switch flag.Value.Type() {
		case "int":
			value, err = flags.GetInt(name)
		case "bool":
			value, err = flags.GetBool(name)
		default:
			value = flag.Value.String()
		}
		if err != nil {
			return nil, fmt.Errorf("reading --%s: %w", name, err)
		}
		overrides[key] = value
	}
	return overrides, nil
}

// LoadConfig loads configuration for cmd, applying --repo, --config and any
// flag overrides.
func LoadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	flags := cmd.Flags()
	overrides, err := FlagOverrides(flags)
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Argument)
	}

	repoPath, _ := flags.GetString(RepoFlag)
	configPath, _ := flags.GetString(ConfigFlag)

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectDir:        repoPath,
		ProjectConfigPath: configPath,
		WarningWriter:     cmd.ErrOrStderr(),
		Overrides:         overrides,
	})
	if err != nil {
		var validationErr *config.ValidationError
		if errors.As(err, &validationErr) && versionKeys[validationErr.Field] {
			return nil, clierrors.InvalidVersionConfig(err)
		}
		return nil, clierrors.InvalidConfig(err)
	}
	return cfg, nil
}
