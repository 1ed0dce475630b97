package config

import (
	"os"
	"path/filepath"
)

const (
	// ProjectConfigName is the project-level YAML config, looked up in the
	// repository root.
	ProjectConfigName = ".anchorlog.yml"
	// ProjectJSONConfigName is read when no YAML project config exists.
	ProjectJSONConfigName = ".anchorlog.json"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/anchorlog/config.yml
// - macOS: ~/Library/Application Support/anchorlog/config.yml
// - Windows: %APPDATA%\anchorlog\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "anchorlog"), nil
}

// ProjectConfigPath returns the project config inside dir: the YAML file if
// present, else the JSON file if present, else the YAML path.
func ProjectConfigPath(dir string) string {
	yamlPath := filepath.Join(dir, ProjectConfigName)
	if fileExists(yamlPath) {
		return yamlPath
	}
	if jsonPath := filepath.Join(dir, ProjectJSONConfigName); fileExists(jsonPath) {
		return jsonPath
	}
	return yamlPath
}
