package release

import (
	"context"
)

// Recording mocks for the orchestrator's collaborators. Each mock appends to
// a shared call log so tests can assert cross-collaborator ordering.

// RestoreCall records one RestoreFile invocation.
type RestoreCall struct {
	Ref  string
	Path string
}

// MockRestorer is a recording FileRestorer with a configurable error.
type MockRestorer struct {
	Err   error
	Calls []RestoreCall

	log *[]string
}

func (m *MockRestorer) RestoreFile(ref, path string) error {
	m.Calls = append(m.Calls, RestoreCall{Ref: ref, Path: path})
	if m.log != nil {
		*m.log = append(*m.log, "restore")
	}
	return m.Err
}

// MockToolRunner is a recording ToolRunner with configurable exit code and error.
type MockToolRunner struct {
	ExitCode int
	Err      error
	Calls    [][]string

	log *[]string
}

func (m *MockToolRunner) Run(ctx context.Context, args []string) (int, error) {
	// Copy so later caller mutation can't corrupt the record.
	copied := make([]string, len(args))
	copy(copied, args)
	m.Calls = append(m.Calls, copied)
	if m.log != nil {
		*m.log = append(*m.log, "release-tool")
	}
	return m.ExitCode, m.Err
}

// GenerateCall records one Generate invocation.
type GenerateCall struct {
	Version string
	Path    string
}

// MockGenerator is a recording ChangelogGenerator.
type MockGenerator struct {
	ExitCode int
	Err      error
	Calls    []GenerateCall
}

func (m *MockGenerator) Generate(ctx context.Context, version, path string) (int, error) {
	m.Calls = append(m.Calls, GenerateCall{Version: version, Path: path})
	return m.ExitCode, m.Err
}

// newTestOrchestrator wires an orchestrator with fresh mocks sharing a call log.
func newTestOrchestrator() (*Orchestrator, *MockRestorer, *MockToolRunner, *MockGenerator, *[]string) {
	log := &[]string{}
	restorer := &MockRestorer{log: log}
	runner := &MockToolRunner{log: log}
	generator := &MockGenerator{}

	orch := &Orchestrator{
		ChangelogPath: "CHANGELOG.md",
		BaselineRef:   "HEAD",
		VCS:           restorer,
		ReleaseTool:   runner,
		Generator:     generator,
	}
	return orch, restorer, runner, generator, log
}
