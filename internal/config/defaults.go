package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# Relmate Configuration
# Environment overrides use the RELMATE_ prefix (e.g. RELMATE_CHANGELOG_PATH).

# Changelog settings
changelog_path: CHANGELOG.md          # Path relative to the repository root
baseline_ref: HEAD                    # Revision the changelog is restored to before a release

# Collaborator tools
release_cmd: cargo release            # Release tool; 'relmate release' args are appended verbatim
changelog_cmd: git cliff --tag {{VERSION}} --output {{CHANGELOG}}
                                      # Changelog generator; {{VERSION}} and {{CHANGELOG}} are substituted

# Execution settings
tool_timeout: 0                       # Per-tool timeout in seconds (0 = none; release tools may be interactive)
`
}

// GetDefaults returns the default configuration values.
// The tool defaults match the cargo-release + git-cliff workflow relmate grew
// out of; both are plain command strings and work with any toolchain.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_path": "CHANGELOG.md",
		"baseline_ref":   "HEAD",
		"release_cmd":    "cargo release",
		"changelog_cmd":  "git cliff --tag {{VERSION}} --output {{CHANGELOG}}",
		// tool_timeout: 0 disables the timeout. The release tool may prompt
		// for confirmation or credentials, so bounding it is opt-in.
		"tool_timeout": 0,
	}
}
