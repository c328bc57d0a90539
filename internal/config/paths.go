package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/relmate/config.yml
// - macOS: ~/Library/Application Support/relmate/config.yml
// - Windows: %APPDATA%\relmate\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "relmate", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file.
// This is always .relmate/config.yml relative to the current directory.
func ProjectConfigPath() string {
	return filepath.Join(".relmate", "config.yml")
}

// ProjectConfigDir returns the path to the project-level config directory.
func ProjectConfigDir() string {
	return ".relmate"
}

// LegacyProjectConfigPath returns the path to the legacy project-level JSON
// config file, kept loadable during migration.
func LegacyProjectConfigPath() string {
	return filepath.Join(".relmate", "config.json")
}
