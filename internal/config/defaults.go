package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# anchorlog configuration
# Precedence: flags > ANCHORLOG_* env > .anchorlog.yml > ~/.config/anchorlog/config.yml > defaults

# Version numbering
major: 0                              # Major version of every generated version
minor_start: 1                        # Minor version of the oldest anchor
base_patch: 10                        # Patch range in-between commits are spread over (>= 1)

# Files
output: CHANGELOG.md                  # Changelog written by browse and generate
graph_cache: .anchorlog/graph.txt     # Graph cache file (empty disables caching)
git_binary: ""                        # git executable for the graph ("" = PATH, "-" = never)

# Browser
fit_full_block: false                 # Keep the whole commit block on screen when possible

preview:
  highlight: false                    # Syntax-highlight the markdown preview
  style: monokai                      # chroma style name

layout:
  split_ratio: 0.5                    # Initial share of the width for the graph pane
  min_left_width: 30                  # Minimum graph pane width
  min_right_width: 30                 # Minimum preview pane width
  resize_step: 4                      # Columns moved per ] or [ key
`
}

// GetDefaults returns the default configuration values keyed by dotted path
func GetDefaults() map[string]any {
	return map[string]any{
		"major":       0,
		"minor_start": 1,
		"base_patch":  10,
		"output":      "CHANGELOG.md",
		// graph_cache: relative paths live under the repository root.
		"graph_cache":    ".anchorlog/graph.txt",
		"git_binary":     "",
		"fit_full_block": false,
		// preview: plain text unless highlighting is enabled.
		"preview.highlight": false,
		"preview.style":     "monokai",
		// layout: mirrors tui.DefaultLayout.
		"layout.split_ratio":     0.5,
		"layout.min_left_width":  30,
		"layout.min_right_width": 30,
		"layout.resize_step":     4,
	}
}
