package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var releaseHookCmd = &cobra.Command{
	Use:   "release-hook",
	Short: "Regenerate the changelog for the version in NEW_VERSION",
	Long: `Regenerate the changelog from commit history.

Runs the configured changelog generator (changelog_cmd), substituting the
NEW_VERSION environment variable for {{VERSION}} and the changelog path for
{{CHANGELOG}}. The generator overwrites the changelog file.

NEW_VERSION is normally exported by the release tool when it invokes this
hook mid-release. The value is forwarded exactly as found, including when
empty or unset; whether that is acceptable is the generator's decision.

Example:
  NEW_VERSION=2.3.0 relmate release-hook`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, err := buildOrchestrator(cmd)
		if err != nil {
			return err
		}
		return taskError(orch.Hook(cmd.Context(), os.Getenv("NEW_VERSION")))
	},
}

func init() {
	rootCmd.AddCommand(releaseHookCmd)
}
