package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relmate/internal/config"
	relerrors "github.com/ariel-frischer/relmate/internal/errors"
	"github.com/ariel-frischer/relmate/internal/git"
	"github.com/ariel-frischer/relmate/internal/progress"
	"github.com/ariel-frischer/relmate/internal/release"
	"github.com/ariel-frischer/relmate/internal/tool"
)

// buildOrchestrator loads configuration and wires the release orchestrator's
// collaborators: the go-git restorer, the release tool, and the changelog
// generator. Both tools run from the working tree root so relative paths in
// their command lines resolve consistently.
func buildOrchestrator(cmd *cobra.Command) (*release.Orchestrator, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		git.SetDebugLogger(func(format string, args ...any) {
			fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
		})
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, relerrors.WrapWithMessage(err, relerrors.Configuration,
			"loading configuration",
			fmt.Sprintf("Check %s for errors", config.ProjectConfigPath()),
			"Run 'relmate config init' to write a commented template")
	}

	root, err := git.RepositoryRoot()
	if err != nil {
		return nil, relerrors.NewBaselineError(
			"not inside a git repository",
			"Run relmate from within the repository being released")
	}

	releaseTool, err := tool.New("release tool", cfg.ReleaseCmd)
	if err != nil {
		return nil, relerrors.Wrap(err, relerrors.Configuration,
			fmt.Sprintf("Set release_cmd in %s", config.ProjectConfigPath()))
	}

	generator, err := tool.New("changelog generator", cfg.ChangelogCmd)
	if err != nil {
		return nil, relerrors.Wrap(err, relerrors.Configuration,
			fmt.Sprintf("Set changelog_cmd in %s", config.ProjectConfigPath()))
	}

	timeout := time.Duration(cfg.ToolTimeout) * time.Second
	return &release.Orchestrator{
		ChangelogPath: cfg.ChangelogPath,
		BaselineRef:   cfg.BaselineRef,
		VCS:           workingTreeVCS{},
		ReleaseTool: &releaseToolRunner{
			tool:    releaseTool,
			workDir: root,
			timeout: timeout,
		},
		Generator: &changelogGenerator{
			tool:    generator,
			workDir: root,
			timeout: timeout,
			spin:    progress.NewSpinner(cmd.OutOrStdout()),
			errOut:  cmd.ErrOrStderr(),
		},
	}, nil
}

// taskError converts orchestration failures into exit-code carrying errors.
// A collaborator's non-zero exit passes through silently with its own code;
// relmate's own failures get structured errors with remediation.
func taskError(err error) error {
	if err == nil {
		return nil
	}

	var notFound *git.BaselineNotFoundError
	if errors.As(err, &notFound) {
		return WrapExitError(ExitNoBaseline, relerrors.NewBaselineError(
			notFound.Error(),
			"Commit the changelog once so a committed baseline exists",
			fmt.Sprintf("Check changelog_path and baseline_ref in %s", config.ProjectConfigPath())))
	}

	var toolExit *release.ToolExitError
	if errors.As(err, &toolExit) {
		return NewExitError(toolExit.Code)
	}

	if errors.Is(err, exec.ErrNotFound) {
		return WrapExitError(ExitToolNotFound, relerrors.Wrap(err, relerrors.Tool,
			"Install the missing tool or fix its command in "+config.ProjectConfigPath()))
	}

	return err
}

// workingTreeVCS adapts the git package to the orchestrator's FileRestorer.
type workingTreeVCS struct{}

func (workingTreeVCS) RestoreFile(ref, path string) error {
	return git.RestoreFile(ref, path)
}

// releaseToolRunner runs the release tool with inherited stdio, so prompts
// and confirmation dialogs from the tool keep working.
type releaseToolRunner struct {
	tool    *tool.Tool
	workDir string
	timeout time.Duration
}

func (r *releaseToolRunner) Run(ctx context.Context, args []string) (int, error) {
	res, err := r.tool.Run(ctx, tool.RunOptions{
		ExtraArgs: args,
		WorkDir:   r.workDir,
		Timeout:   r.timeout,
	})
	if err != nil {
		return 0, err
	}
	return res.ExitCode, nil
}

// changelogGenerator runs the generator with captured output behind a
// spinner. On failure the generator's own diagnostics are replayed to
// stderr; nothing is added to them.
type changelogGenerator struct {
	tool    *tool.Tool
	workDir string
	timeout time.Duration
	spin    *progress.Spinner
	errOut  io.Writer
}

func (g *changelogGenerator) Generate(ctx context.Context, version, path string) (int, error) {
	var out bytes.Buffer

	if g.spin != nil {
		g.spin.Start("Regenerating " + path)
	}
	res, err := g.tool.Run(ctx, tool.RunOptions{
		Substitutions: tool.Substitutions{Version: version, Changelog: path},
		WorkDir:       g.workDir,
		Stdout:        &out,
		Stderr:        &out,
		Timeout:       g.timeout,
	})
	if g.spin != nil {
		g.spin.Stop()
	}

	if err != nil {
		return 0, err
	}
	if res.ExitCode != 0 {
		errOut := g.errOut
		if errOut == nil {
			errOut = os.Stderr
		}
		_, _ = io.Copy(errOut, &out)
	}
	return res.ExitCode, nil
}
