package release

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/relmate/internal/git"
)

func TestRelease_ForwardsArgumentsVerbatim(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: []string{}},
		{name: "single flag", args: []string{"--dry-run"}},
		{name: "order and values preserved", args: []string{"minor", "--no-publish", "--dry-run"}},
		{name: "whitespace and empty strings survive", args: []string{"--message", "release: v2.3.0", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orch, _, runner, _, _ := newTestOrchestrator()

			err := orch.Release(context.Background(), tt.args)
			require.NoError(t, err)

			require.Len(t, runner.Calls, 1)
			assert.Equal(t, tt.args, runner.Calls[0])
		})
	}
}

func TestRelease_RestoresBaselineBeforeDelegating(t *testing.T) {
	orch, restorer, _, _, log := newTestOrchestrator()

	err := orch.Release(context.Background(), []string{"--dry-run"})
	require.NoError(t, err)

	require.Len(t, restorer.Calls, 1)
	assert.Equal(t, RestoreCall{Ref: "HEAD", Path: "CHANGELOG.md"}, restorer.Calls[0])
	assert.Equal(t, []string{"restore", "release-tool"}, *log)
}

func TestRelease_AbortsWhenBaselineMissing(t *testing.T) {
	orch, restorer, runner, _, _ := newTestOrchestrator()
	restorer.Err = &git.BaselineNotFoundError{
		Ref:  "HEAD",
		Path: "CHANGELOG.md",
		Err:  errors.New("reference not found"),
	}

	err := orch.Release(context.Background(), []string{"--dry-run"})
	require.Error(t, err)

	// The typed error survives wrapping so callers can map it to an exit code.
	var notFound *git.BaselineNotFoundError
	assert.ErrorAs(t, err, &notFound)

	// Zero release tool invocations: no partial release.
	assert.Empty(t, runner.Calls)
}

func TestRelease_PropagatesReleaseToolExitCode(t *testing.T) {
	orch, _, runner, _, _ := newTestOrchestrator()
	runner.ExitCode = 101

	err := orch.Release(context.Background(), nil)
	require.Error(t, err)

	var toolExit *ToolExitError
	require.ErrorAs(t, err, &toolExit)
	assert.Equal(t, 101, toolExit.Code)
	assert.Equal(t, "release tool", toolExit.Tool)
}

func TestRelease_ReturnsRunnerError(t *testing.T) {
	orch, _, runner, _, _ := newTestOrchestrator()
	runner.Err = errors.New("starting release tool: not found")

	err := orch.Release(context.Background(), nil)
	assert.ErrorContains(t, err, "starting release tool")
}

func TestRelease_UsesConfiguredRefAndPath(t *testing.T) {
	orch, restorer, _, _, _ := newTestOrchestrator()
	orch.BaselineRef = "main"
	orch.ChangelogPath = "docs/CHANGES.md"

	err := orch.Release(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, restorer.Calls, 1)
	assert.Equal(t, RestoreCall{Ref: "main", Path: "docs/CHANGES.md"}, restorer.Calls[0])
}

func TestHook_PassesVersionThroughUnmodified(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{name: "semver", version: "2.3.0"},
		{name: "v-prefixed", version: "v2.3.0"},
		{name: "empty or unset", version: ""},
		{name: "not validated here", version: "definitely not a version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orch, _, _, generator, _ := newTestOrchestrator()

			err := orch.Hook(context.Background(), tt.version)
			require.NoError(t, err)

			require.Len(t, generator.Calls, 1)
			assert.Equal(t, GenerateCall{Version: tt.version, Path: "CHANGELOG.md"}, generator.Calls[0])
		})
	}
}

func TestHook_PropagatesGeneratorExitCode(t *testing.T) {
	orch, _, _, generator, _ := newTestOrchestrator()
	generator.ExitCode = 2

	err := orch.Hook(context.Background(), "2.3.0")
	require.Error(t, err)

	var toolExit *ToolExitError
	require.ErrorAs(t, err, &toolExit)
	assert.Equal(t, 2, toolExit.Code)
	assert.Equal(t, "changelog generator", toolExit.Tool)
}

func TestHook_DoesNotTouchVCS(t *testing.T) {
	orch, restorer, runner, _, _ := newTestOrchestrator()

	err := orch.Hook(context.Background(), "2.3.0")
	require.NoError(t, err)

	assert.Empty(t, restorer.Calls)
	assert.Empty(t, runner.Calls)
}
