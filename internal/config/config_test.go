package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/anchorlog/internal/changelog"
)

// isolatedOptions loads from an empty project directory with no user config.
func isolatedOptions(t *testing.T) LoadOptions {
	t.Helper()
	return LoadOptions{
		ProjectDir:     t.TempDir(),
		SkipUserConfig: true,
		WarningWriter:  &bytes.Buffer{},
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadWithOptions(isolatedOptions(t))
	require.NoError(t, err)

	assert.Equal(t, changelog.DefaultVersionConfig(), cfg.VersionConfig())
	assert.Equal(t, "CHANGELOG.md", cfg.Output)
	assert.Equal(t, ".anchorlog/graph.txt", cfg.GraphCache)
	assert.Empty(t, cfg.GitBinary)
	assert.False(t, cfg.FitFullBlock)
	assert.Equal(t, PreviewConfig{Highlight: false, Style: "monokai"}, cfg.Preview)
	assert.Equal(t, LayoutConfig{SplitRatio: 0.5, MinLeftWidth: 30, MinRightWidth: 30, ResizeStep: 4}, cfg.Layout)

	assert.Equal(t, KnownKeyPaths(), cfg.Keys())
	for _, key := range cfg.Keys() {
		assert.Equal(t, SourceDefault, cfg.Source(key), key)
	}
}

func TestLoad_ProjectYAML(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t)
	writeFile(t, filepath.Join(opts.ProjectDir, ProjectConfigName), `
major: 2
base_patch: 5
preview:
  highlight: true
layout:
  split_ratio: 0.4
`)

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)

	assert.Equal(t, changelog.VersionConfig{Major: 2, MinorStart: 1, BasePatch: 5}, cfg.VersionConfig())
	assert.True(t, cfg.Preview.Highlight)
	assert.Equal(t, "monokai", cfg.Preview.Style)
	assert.InDelta(t, 0.4, cfg.Layout.SplitRatio, 1e-9)

	assert.Equal(t, SourceProject, cfg.Source("major"))
	assert.Equal(t, SourceProject, cfg.Source("preview.highlight"))
	assert.Equal(t, SourceDefault, cfg.Source("preview.style"))
	assert.Equal(t, SourceDefault, cfg.Source("minor_start"))
}

func TestLoad_ProjectJSON(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t)
	writeFile(t, filepath.Join(opts.ProjectDir, ProjectJSONConfigName), `{"minor_start": 4, "layout": {"resize_step": 2}}`)

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.MinorStart)
	assert.Equal(t, 2, cfg.Layout.ResizeStep)
	assert.Equal(t, SourceProject, cfg.Source("layout.resize_step"))
}

func TestLoad_YAMLPreferredOverJSON(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t)
	writeFile(t, filepath.Join(opts.ProjectDir, ProjectConfigName), "major: 3\n")
	writeFile(t, filepath.Join(opts.ProjectDir, ProjectJSONConfigName), `{"major": 7}`)

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Major)
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t)
	opts.SkipUserConfig = false
	opts.UserConfigPath = filepath.Join(t.TempDir(), "anchorlog", "config.yml")
	writeFile(t, opts.UserConfigPath, "major: 1\nminor_start: 5\noutput: user.md\n")
	writeFile(t, filepath.Join(opts.ProjectDir, ProjectConfigName), "major: 2\n")
	opts.Overrides = map[string]any{"output": "flag.md"}

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Major)
	assert.Equal(t, SourceProject, cfg.Source("major"))
	assert.Equal(t, 5, cfg.MinorStart)
	assert.Equal(t, SourceUser, cfg.Source("minor_start"))
	assert.Equal(t, "flag.md", cfg.Output)
	assert.Equal(t, SourceFlag, cfg.Source("output"))
}

func TestLoad_ExplicitConfigPath(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t)
	opts.ProjectConfigPath = filepath.Join(t.TempDir(), "custom.json")
	writeFile(t, opts.ProjectConfigPath, `{"base_patch": 3}`)
	// Ignored: the explicit path replaces the project lookup.
	writeFile(t, filepath.Join(opts.ProjectDir, ProjectConfigName), "base_patch: 8\n")

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.BasePatch)

	opts.ProjectConfigPath = filepath.Join(t.TempDir(), "missing.yml")
	_, err = LoadWithOptions(opts)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "config file not found", validationErr.Message)
}

// Not parallel: modifies the process environment.
func TestLoad_Environment(t *testing.T) {
	t.Setenv("ANCHORLOG_BASE_PATCH", "20")
	t.Setenv("ANCHORLOG_FIT_FULL_BLOCK", "true")
	t.Setenv("ANCHORLOG_LAYOUT__SPLIT_RATIO", "0.3")
	t.Setenv("ANCHORLOG_MAJOR", "4")

	opts := isolatedOptions(t)
	writeFile(t, filepath.Join(opts.ProjectDir, ProjectConfigName), "base_patch: 5\nmajor: 9\n")
	opts.Overrides = map[string]any{"major": 6}

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.BasePatch)
	assert.Equal(t, SourceEnv, cfg.Source("base_patch"))
	assert.True(t, cfg.FitFullBlock)
	assert.InDelta(t, 0.3, cfg.Layout.SplitRatio, 1e-9)
	assert.Equal(t, SourceEnv, cfg.Source("layout.split_ratio"))
	assert.Equal(t, 6, cfg.Major)
	assert.Equal(t, SourceFlag, cfg.Source("major"))
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		overrides map[string]any
		wantField string
	}{
		"zero base patch":     {overrides: map[string]any{"base_patch": 0}, wantField: "base_patch"},
		"negative major":      {overrides: map[string]any{"major": -1}, wantField: "major"},
		"negative minor":      {overrides: map[string]any{"minor_start": -2}, wantField: "minor_start"},
		"empty output":        {overrides: map[string]any{"output": ""}, wantField: "output"},
		"split ratio of one":  {overrides: map[string]any{"layout.split_ratio": 1.0}, wantField: "layout.split_ratio"},
		"zero resize step":    {overrides: map[string]any{"layout.resize_step": 0}, wantField: "layout.resize_step"},
		"unknown style":       {overrides: map[string]any{"preview.style": "no-such-style"}, wantField: "preview.style"},
		"zero min left width": {overrides: map[string]any{"layout.min_left_width": 0}, wantField: "layout.min_left_width"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			opts := isolatedOptions(t)
			opts.Overrides = tt.overrides

			_, err := LoadWithOptions(opts)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestLoad_YAMLSyntaxError(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t)
	writeFile(t, filepath.Join(opts.ProjectDir, ProjectConfigName), "major: 1\n\tminor_start: 2\n")

	_, err := LoadWithOptions(opts)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Positive(t, validationErr.Line)
	assert.Contains(t, err.Error(), "project config")
}

func TestLoad_WrongType(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t)
	writeFile(t, filepath.Join(opts.ProjectDir, ProjectConfigName), "major: [1, 2]\n")

	_, err := LoadWithOptions(opts)
	require.Error(t, err)
}

func TestLoad_UnknownKeysWarn(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t)
	warnings := &bytes.Buffer{}
	opts.WarningWriter = warnings
	writeFile(t, filepath.Join(opts.ProjectDir, ProjectConfigName), "major: 1\nmax_retries: 3\n")

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Major)
	assert.Contains(t, warnings.String(), `unknown config key "max_retries"`)
	assert.NotContains(t, warnings.String(), `"major"`)
}

func TestDefaultConfigTemplate(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t)
	warnings := &bytes.Buffer{}
	opts.WarningWriter = warnings
	writeFile(t, filepath.Join(opts.ProjectDir, ProjectConfigName), GetDefaultConfigTemplate())

	fromTemplate, err := LoadWithOptions(opts)
	require.NoError(t, err)
	assert.Empty(t, warnings.String())

	defaults, err := LoadWithOptions(isolatedOptions(t))
	require.NoError(t, err)

	assert.Equal(t, defaults.VersionConfig(), fromTemplate.VersionConfig())
	assert.Equal(t, defaults.Output, fromTemplate.Output)
	assert.Equal(t, defaults.GraphCache, fromTemplate.GraphCache)
	assert.Equal(t, defaults.Preview, fromTemplate.Preview)
	assert.Equal(t, defaults.Layout, fromTemplate.Layout)
	assert.Equal(t, SourceProject, fromTemplate.Source("layout.resize_step"))
}

func TestDefaultsMatchKnownKeys(t *testing.T) {
	t.Parallel()

	for key := range GetDefaults() {
		_, err := GetKeySchema(key)
		assert.NoError(t, err, key)
	}
	assert.Len(t, GetDefaults(), len(KnownKeys))
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  string
	}{
		"top level":    {input: "ANCHORLOG_BASE_PATCH", want: "base_patch"},
		"nested":       {input: "ANCHORLOG_PREVIEW__STYLE", want: "preview.style"},
		"nested snake": {input: "ANCHORLOG_LAYOUT__MIN_LEFT_WIDTH", want: "layout.min_left_width"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, envTransform(tt.input))
		})
	}
}

func TestFieldKey(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		namespace string
		want      string
	}{
		"top level": {namespace: "Configuration.BasePatch", want: "base_patch"},
		"nested":    {namespace: "Configuration.Layout.MinRightWidth", want: "layout.min_right_width"},
		"bare":      {namespace: "Output", want: "output"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fieldKey(tt.namespace))
		})
	}
}

func TestResolvePath(t *testing.T) {
	t.Parallel()

	root := filepath.Join(string(filepath.Separator), "repo")
	abs := filepath.Join(string(filepath.Separator), "tmp", "out.md")

	assert.Equal(t, filepath.Join(root, "CHANGELOG.md"), ResolvePath(root, "CHANGELOG.md"))
	assert.Equal(t, abs, ResolvePath(root, abs))
	assert.Empty(t, ResolvePath(root, ""))
	assert.Equal(t, "CHANGELOG.md", ResolvePath("", "CHANGELOG.md"))
}

func TestProjectConfigPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.Equal(t, filepath.Join(dir, ProjectConfigName), ProjectConfigPath(dir))

	writeFile(t, filepath.Join(dir, ProjectJSONConfigName), "{}")
	assert.Equal(t, filepath.Join(dir, ProjectJSONConfigName), ProjectConfigPath(dir))

	writeFile(t, filepath.Join(dir, ProjectConfigName), "")
	assert.Equal(t, filepath.Join(dir, ProjectConfigName), ProjectConfigPath(dir))
}
