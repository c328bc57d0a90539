package cli

import (
	"github.com/spf13/cobra"
)

var releaseCmd = &cobra.Command{
	Use:   "release [-- release-tool-args...]",
	Short: "Discard local changelog edits, then run the release tool",
	Long: `Run a release in two ordered steps.

Step 1 restores the changelog (changelog_path, default CHANGELOG.md) to its
last-committed content. Local edits to that file are destroyed, not merged:
a release always starts from the committed baseline, which the release
process regenerates. If no committed baseline exists, the release aborts
here and the release tool is never invoked.

Step 2 runs the configured release tool (release_cmd). Every argument after
-- is appended verbatim and in order; relmate does not parse or reorder
them. The tool's exit code becomes relmate's exit code.

Examples:
  relmate release
  relmate release -- --dry-run
  relmate release -- minor --no-publish`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, err := buildOrchestrator(cmd)
		if err != nil {
			return err
		}
		return taskError(orch.Release(cmd.Context(), args))
	},
}

func init() {
	rootCmd.AddCommand(releaseCmd)
}
