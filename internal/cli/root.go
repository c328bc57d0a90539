// Package cli implements the relmate command tree.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	relerrors "github.com/ariel-frischer/relmate/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:   "relmate",
	Short: "Two-step release workflow around external release tooling",
	Long: `relmate sequences a package release as two independent tasks:

  release       Restore the changelog to its last-committed baseline, then
                run the configured release tool with any trailing arguments
                forwarded verbatim.
  release-hook  Regenerate the changelog, tagging the newest entries with
                the version in the NEW_VERSION environment variable.

Version bumping, tagging, publishing, and changelog formatting all belong to
the external tools; relmate only orders the calls and forwards arguments.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to project config file (default .relmate/config.yml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// Execute runs the root command and normalizes failures into exit-code
// carrying errors for main. Structured errors are printed here; collaborator
// exit statuses pass through silently because the failing tool has already
// written its own diagnostics.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if cliErr := relerrors.AsCLIError(exitErr.Err); cliErr != nil {
			relerrors.PrintError(cliErr)
		}
		return err
	}

	if cliErr := relerrors.AsCLIError(err); cliErr != nil {
		relerrors.PrintError(cliErr)
		return WrapExitError(ExitFailure, err)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return WrapExitError(ExitFailure, err)
}
