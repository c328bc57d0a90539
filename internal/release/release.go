// Package release implements the two release-workflow tasks: discard the
// changelog's local edits and delegate to the release tool, and regenerate
// the changelog from commit history for a given version.
//
// The package only sequences calls into its collaborators. It performs no
// retries, no locking, and keeps no state of its own; each task is a single
// linear pass and the first failing step aborts the rest. It also produces
// no output: diagnostics belong to the external tools and presentation to
// the CLI layer.
package release

import (
	"context"
	"fmt"
)

// FileRestorer restores a tracked file to its content at a revision.
// A missing baseline must surface as *git.BaselineNotFoundError so the
// caller can distinguish it from I/O failures.
type FileRestorer interface {
	RestoreFile(ref, path string) error
}

// ToolRunner invokes the release tool with extra arguments appended after
// the configured command, and reports the tool's exit code.
type ToolRunner interface {
	Run(ctx context.Context, args []string) (exitCode int, err error)
}

// ChangelogGenerator invokes the changelog generator, asking it to tag the
// newest entries with version and write its output to path.
type ChangelogGenerator interface {
	Generate(ctx context.Context, version, path string) (exitCode int, err error)
}

// ToolExitError reports a collaborator tool that ran and exited non-zero.
// The tool's own diagnostics have already gone to its stderr; relmate adds
// nothing, it only carries the code so the process can exit with it.
type ToolExitError struct {
	Tool string
	Code int
}

func (e *ToolExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Tool, e.Code)
}

// Orchestrator wires the collaborators for both tasks.
type Orchestrator struct {
	// ChangelogPath is the changelog location relative to the working
	// tree root, slash-separated.
	ChangelogPath string
	// BaselineRef is the revision the changelog is restored to.
	BaselineRef string

	VCS         FileRestorer
	ReleaseTool ToolRunner
	Generator   ChangelogGenerator
}

// Release restores the changelog to its committed baseline, then runs the
// release tool with args forwarded verbatim and in order.
//
// The restore is destructive and non-reversible from this workflow's
// perspective: uncommitted changelog edits are gone the moment it succeeds.
// If the restore fails, the release tool is never invoked.
func (o *Orchestrator) Release(ctx context.Context, args []string) error {
	if err := o.VCS.RestoreFile(o.BaselineRef, o.ChangelogPath); err != nil {
		return fmt.Errorf("restoring %s to %s: %w", o.ChangelogPath, o.BaselineRef, err)
	}

	code, err := o.ReleaseTool.Run(ctx, args)
	if err != nil {
		return err
	}
	if code != 0 {
		return &ToolExitError{Tool: "release tool", Code: code}
	}
	return nil
}

// Hook regenerates the changelog, tagging the newest entries with version.
// The version is an explicit parameter; it is passed through to the
// generator unmodified, including the empty string. Validating its format
// is the generator's concern.
func (o *Orchestrator) Hook(ctx context.Context, version string) error {
	code, err := o.Generator.Generate(ctx, version, o.ChangelogPath)
	if err != nil {
		return err
	}
	if code != 0 {
		return &ToolExitError{Tool: "changelog generator", Code: code}
	}
	return nil
}
