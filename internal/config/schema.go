package config

import (
	"slices"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeFloat
	TypeString
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type.
type ConfigKeySchema struct {
	Path        string          // Dotted key path (e.g., "layout.split_ratio")
	Type        ConfigValueType // Expected value type
	Description string          // Human-readable description for help text
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"major": {
		Path:        "major",
		Type:        TypeInt,
		Description: "Major version of every generated version",
	},
	"minor_start": {
		Path:        "minor_start",
		Type:        TypeInt,
		Description: "Minor version given to the oldest anchor",
	},
	"base_patch": {
		Path:        "base_patch",
		Type:        TypeInt,
		Description: "Patch range in-between commits are spread over",
	},
	"output": {
		Path:        "output",
		Type:        TypeString,
		Description: "Changelog file written by browse and generate",
	},
	"graph_cache": {
		Path:        "graph_cache",
		Type:        TypeString,
		Description: "Graph cache file relative to the repository root (empty disables)",
	},
	"git_binary": {
		Path:        "git_binary",
		Type:        TypeString,
		Description: "git executable used to draw the graph (\"-\" disables)",
	},
	"fit_full_block": {
		Path:        "fit_full_block",
		Type:        TypeBool,
		Description: "Start the browser in fit-full-block mode",
	},
	"preview.highlight": {
		Path:        "preview.highlight",
		Type:        TypeBool,
		Description: "Syntax-highlight the markdown preview",
	},
	"preview.style": {
		Path:        "preview.style",
		Type:        TypeString,
		Description: "chroma style used for highlighting",
	},
	"layout.split_ratio": {
		Path:        "layout.split_ratio",
		Type:        TypeFloat,
		Description: "Initial share of the width given to the graph pane",
	},
	"layout.min_left_width": {
		Path:        "layout.min_left_width",
		Type:        TypeInt,
		Description: "Minimum graph pane width",
	},
	"layout.min_right_width": {
		Path:        "layout.min_right_width",
		Type:        TypeInt,
		Description: "Minimum preview pane width",
	},
	"layout.resize_step": {
		Path:        "layout.resize_step",
		Type:        TypeInt,
		Description: "Columns moved by one resize key",
	},
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[strings.ToLower(path)]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// KnownKeyPaths returns every known key path in sorted order.
func KnownKeyPaths() []string {
	paths := make([]string, 0, len(KnownKeys))
	for path := range KnownKeys {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}
