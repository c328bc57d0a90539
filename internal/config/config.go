// Package config provides hierarchical configuration management for relmate
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.relmate/config.yml) > user config (~/.config/relmate/config.yml)
// > defaults. Legacy JSON project configs are still honored with a migration
// warning.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	relyaml "github.com/ariel-frischer/relmate/internal/yaml"
)

// Configuration represents the relmate CLI tool configuration.
type Configuration struct {
	// ChangelogPath is the changelog location relative to the working tree
	// root. Restored by the release task, rewritten by the hook task.
	// Can be set via RELMATE_CHANGELOG_PATH env var.
	ChangelogPath string `koanf:"changelog_path" validate:"required"`

	// BaselineRef is the revision the changelog is restored to before the
	// release tool runs. Almost always HEAD.
	BaselineRef string `koanf:"baseline_ref" validate:"required"`

	// ReleaseCmd is the release tool command line. Arguments given to
	// 'relmate release' are appended verbatim after the template's own.
	ReleaseCmd string `koanf:"release_cmd" validate:"required"`

	// ChangelogCmd is the changelog generator command line. {{VERSION}} and
	// {{CHANGELOG}} placeholders are substituted before execution.
	ChangelogCmd string `koanf:"changelog_cmd" validate:"required"`

	// ToolTimeout bounds each external tool run, in seconds. 0 disables the
	// timeout; release tools are often interactive, so that is the default.
	ToolTimeout int `koanf:"tool_timeout" validate:"min=0"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .relmate/config.yml)
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := opts.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	loadDefaults(k)

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("RELMATE_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if present.
func loadUserConfig(k *koanf.Koanf) error {
	userPath, err := UserConfigPath()
	if err != nil || !fileExists(userPath) {
		return nil
	}
	return loadYAMLConfig(k, userPath, "user")
}

// loadProjectConfig loads the project-level config (YAML preferred, legacy
// JSON supported with a migration warning). A custom path override takes
// precedence, mainly for tests.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	projectPath := ProjectConfigPath()
	if customPath != "" {
		projectPath = customPath
	}
	legacyPath := LegacyProjectConfigPath()

	switch {
	case fileExists(projectPath):
		return loadYAMLConfig(k, projectPath, "project")
	case customPath == "" && fileExists(legacyPath):
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("failed to load legacy project config %s: %w", legacyPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Move it to %s in YAML format.\n\n", ProjectConfigPath())
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file.
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := relyaml.ValidateFile(path); err != nil {
		return fmt.Errorf("validating %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Example: RELMATE_CHANGELOG_PATH -> changelog_path
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "RELMATE_"))
}
