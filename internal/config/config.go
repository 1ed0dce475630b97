// Package config provides layered configuration for anchorlog using koanf.
// Values are merged with priority: command-line flags > environment variables
// (ANCHORLOG_*) > project config (.anchorlog.yml, or .anchorlog.json) > user
// config (~/.config/anchorlog/config.yml) > defaults.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ariel-frischer/anchorlog/internal/changelog"
)

// EnvPrefix is the prefix of environment variables read as configuration.
const EnvPrefix = "ANCHORLOG_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
	SourceFlag    ConfigSource = "flag"
)

// PreviewConfig controls the changelog preview pane.
type PreviewConfig struct {
	// Highlight colors the preview as markdown.
	Highlight bool `koanf:"highlight" yaml:"highlight"`
	// Style is the chroma style used when highlighting.
	Style string `koanf:"style" yaml:"style" validate:"required"`
}

// LayoutConfig controls the split between the graph and preview panes.
type LayoutConfig struct {
	SplitRatio    float64 `koanf:"split_ratio" yaml:"split_ratio" validate:"gt=0,lt=1"`
	MinLeftWidth  int     `koanf:"min_left_width" yaml:"min_left_width" validate:"min=1"`
	MinRightWidth int     `koanf:"min_right_width" yaml:"min_right_width" validate:"min=1"`
	ResizeStep    int     `koanf:"resize_step" yaml:"resize_step" validate:"min=1"`
}

// Configuration represents the anchorlog configuration
type Configuration struct {
	// Major, MinorStart and BasePatch control version numbering.
	Major      int `koanf:"major" yaml:"major" validate:"min=0"`
	MinorStart int `koanf:"minor_start" yaml:"minor_start" validate:"min=0"`
	BasePatch  int `koanf:"base_patch" yaml:"base_patch" validate:"min=1"`

	// Output is the changelog path written by browse and generate. Relative
	// paths are resolved against the repository root.
	Output string `koanf:"output" yaml:"output" validate:"required"`

	// GraphCache is the graph cache file, relative to the repository root.
	// Empty disables caching.
	GraphCache string `koanf:"graph_cache" yaml:"graph_cache"`

	// GitBinary overrides the git executable used to draw the graph.
	// "-" always draws the linear fallback graph.
	GitBinary string `koanf:"git_binary" yaml:"git_binary"`

	// FitFullBlock starts the browser in fit-full-block mode.
	FitFullBlock bool `koanf:"fit_full_block" yaml:"fit_full_block"`

	Preview PreviewConfig `koanf:"preview" yaml:"preview"`
	Layout  LayoutConfig  `koanf:"layout" yaml:"layout"`

	sources map[string]ConfigSource
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectDir is searched for the project config (default: current directory).
	ProjectDir string
	// ProjectConfigPath overrides the project config file. Files ending in
	// .json are parsed as JSON, everything else as YAML.
	ProjectConfigPath string
	// UserConfigPath overrides the user config file (default: UserConfigPath()).
	UserConfigPath string
	// SkipUserConfig ignores the user config file.
	SkipUserConfig bool
	// WarningWriter receives warnings about unknown keys (default: os.Stderr)
	WarningWriter io.Writer
	// Overrides are applied last, keyed by dotted config key. The CLI fills it
	// from the flags the user set explicitly.
	Overrides map[string]any
}

// Load loads configuration from defaults, user, project and environment
// sources for the project in the current directory.
func Load() (*Configuration, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	sources := make(map[string]ConfigSource)
	warningWriter := getWarningWriter(opts.WarningWriter)

	merge := func(layer *koanf.Koanf, source ConfigSource) error {
		for _, key := range layer.Keys() {
			sources[key] = source
		}
		return k.Merge(layer)
	}

	if err := merge(setLayer(GetDefaults()), SourceDefault); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if !opts.SkipUserConfig {
		userPath := opts.UserConfigPath
		if userPath == "" {
			userPath, _ = UserConfigPath()
		}
		if fileExists(userPath) {
			layer, err := loadFileLayer(userPath, "user")
			if err != nil {
				return nil, err
			}
			warnUnknownKeys(warningWriter, layer, userPath)
			if err := merge(layer, SourceUser); err != nil {
				return nil, fmt.Errorf("merging user config: %w", err)
			}
		}
	}

	projectPath := opts.ProjectConfigPath
	if projectPath == "" {
		projectPath = ProjectConfigPath(opts.ProjectDir)
	} else if !fileExists(projectPath) {
		return nil, &ValidationError{FilePath: projectPath, Message: "config file not found"}
	}
	if fileExists(projectPath) {
		layer, err := loadFileLayer(projectPath, "project")
		if err != nil {
			return nil, err
		}
		warnUnknownKeys(warningWriter, layer, projectPath)
		if err := merge(layer, SourceProject); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	envLayer := koanf.New(".")
	if err := envLayer.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}
	if err := merge(envLayer, SourceEnv); err != nil {
		return nil, fmt.Errorf("merging environment config: %w", err)
	}

	if err := merge(setLayer(opts.Overrides), SourceFlag); err != nil {
		return nil, fmt.Errorf("applying flags: %w", err)
	}

	return finalizeConfig(k, sources)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// warnUnknownKeys reports keys in a config file that no setting reads.
func warnUnknownKeys(w io.Writer, layer *koanf.Koanf, path string) {
	for _, key := range layer.Keys() {
		if _, err := GetKeySchema(key); err != nil {
			fmt.Fprintf(w, "Warning: unknown config key %q in %s (ignored)\n", key, path)
		}
	}
}

// setLayer builds a koanf layer from dotted keys.
func setLayer(values map[string]any) *koanf.Koanf {
	layer := koanf.New(".")
	for key, value := range values {
		layer.Set(key, value)
	}
	return layer
}

// loadFileLayer reads one config file, validating YAML syntax first so
// errors carry line and column.
func loadFileLayer(path, configType string) (*koanf.Koanf, error) {
	layer := koanf.New(".")

	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := layer.Load(file.Provider(path), json.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
		}
		return layer, nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return nil, fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := layer.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return layer, nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf, sources map[string]ConfigSource) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.Output = expandHomePath(cfg.Output)
	cfg.GraphCache = expandHomePath(cfg.GraphCache)
	cfg.sources = sources

	return &cfg, nil
}

// VersionConfig returns the numbering settings.
func (c *Configuration) VersionConfig() changelog.VersionConfig {
	return changelog.VersionConfig{Major: c.Major, MinorStart: c.MinorStart, BasePatch: c.BasePatch}
}

// Source reports which layer set key, or SourceDefault for unknown keys.
func (c *Configuration) Source(key string) ConfigSource {
	if source, ok := c.sources[key]; ok {
		return source
	}
	return SourceDefault
}

// Keys returns every loaded key in sorted order.
func (c *Configuration) Keys() []string {
	keys := make([]string, 0, len(c.sources))
	for key := range c.sources {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// ResolvePath makes a configured path absolute against root. Empty stays empty.
func ResolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) || root == "" {
		return path
	}
	return filepath.Join(root, path)
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// A double underscore separates nesting levels.
// Example: ANCHORLOG_BASE_PATCH -> base_patch, ANCHORLOG_PREVIEW__STYLE -> preview.style
func envTransform(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
