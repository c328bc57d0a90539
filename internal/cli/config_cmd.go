package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/relmate/internal/config"
	relerrors "github.com/ariel-frischer/relmate/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage relmate configuration",
	Long:  `Commands for inspecting and initializing relmate configuration.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented config template to .relmate/config.yml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ProjectConfigPath()
		if _, err := os.Stat(path); err == nil {
			return relerrors.NewConfigError(
				fmt.Sprintf("%s already exists", path),
				"Edit the existing file, or delete it and rerun 'relmate config init'")
		}
		if err := os.MkdirAll(config.ProjectConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", config.ProjectConfigDir(), err)
		}
		if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration after merging all sources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return relerrors.WrapWithMessage(err, relerrors.Configuration,
				"loading configuration",
				fmt.Sprintf("Check %s for errors", config.ProjectConfigPath()))
		}

		out, err := yaml.Marshal(map[string]interface{}{
			"changelog_path": cfg.ChangelogPath,
			"baseline_ref":   cfg.BaselineRef,
			"release_cmd":    cfg.ReleaseCmd,
			"changelog_cmd":  cfg.ChangelogCmd,
			"tool_timeout":   cfg.ToolTimeout,
		})
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
