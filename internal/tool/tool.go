// Package tool runs the external collaborator commands relmate sequences:
// the release tool and the changelog generator. Commands are configured as
// shell-like templates with {{VERSION}} and {{CHANGELOG}} placeholders,
// parsed with shlex so quoting in config behaves as users expect.
package tool

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"
)

const (
	// VersionPlaceholder is replaced with the version tag being released.
	VersionPlaceholder = "{{VERSION}}"
	// ChangelogPlaceholder is replaced with the changelog output path.
	ChangelogPlaceholder = "{{CHANGELOG}}"
)

// Tool is an external command built from a template.
type Tool struct {
	name     string
	template string
}

// New creates a Tool from a command template. The name is used only in
// error messages (e.g. "release tool", "changelog generator").
func New(name, template string) (*Tool, error) {
	if strings.TrimSpace(template) == "" {
		return nil, fmt.Errorf("%s: command template is empty", name)
	}
	return &Tool{name: name, template: template}, nil
}

// Name returns the tool's display name.
func (t *Tool) Name() string {
	return t.name
}

// Substitutions holds the values substituted for template placeholders.
// Placeholders absent from the template are simply not substituted.
type Substitutions struct {
	Version   string
	Changelog string
}

// RunOptions configures a single tool invocation.
type RunOptions struct {
	// Substitutions expanded into the template before execution.
	Substitutions Substitutions
	// ExtraArgs are appended after the template's arguments, verbatim and
	// in order. They are NOT shlex-parsed; each element is passed to the
	// process as exactly one argument.
	ExtraArgs []string
	// WorkDir sets the working directory (default: current directory).
	WorkDir string
	// Env entries are appended to the inherited environment.
	Env map[string]string
	// Stdin/Stdout/Stderr default to the calling process's streams, so
	// interactive tools keep working. Set writers to capture instead.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Timeout bounds the run; zero means no timeout.
	Timeout time.Duration
}

// Result holds the outcome of a completed tool run.
type Result struct {
	ExitCode int
	Duration time.Duration
}

// Validate checks that the template parses and the command exists in PATH.
// Placeholders are expanded with empty values for the check.
func (t *Tool) Validate() error {
	args, err := t.expand(Substitutions{})
	if err != nil {
		return err
	}
	if _, err := exec.LookPath(args[0]); err != nil {
		return fmt.Errorf("%s: %w", t.name, err)
	}
	return nil
}

// expand substitutes placeholders and parses the template into argv.
// Substituted values are single-quoted so spaces and shell metacharacters
// survive shlex parsing as a single argument.
func (t *Tool) expand(subs Substitutions) ([]string, error) {
	expanded := strings.ReplaceAll(t.template, VersionPlaceholder, quoteForShlex(subs.Version))
	expanded = strings.ReplaceAll(expanded, ChangelogPlaceholder, quoteForShlex(subs.Changelog))

	args, err := shlex.Split(expanded)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid command template: %w", t.name, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%s: template produces no command", t.name)
	}
	return args, nil
}

// quoteForShlex wraps a string in single quotes for safe shlex parsing.
// Single quotes preserve literal values, escaping embedded single quotes.
// 'don't' becomes 'don'\''t'.
func quoteForShlex(s string) string {
	if s == "" {
		return "''"
	}
	escaped := strings.ReplaceAll(s, "'", `'\''`)
	return "'" + escaped + "'"
}

// BuildCommand constructs the exec.Cmd for an invocation without running it.
func (t *Tool) BuildCommand(opts RunOptions) (*exec.Cmd, error) {
	args, err := t.expand(opts.Substitutions)
	if err != nil {
		return nil, err
	}
	args = append(args, opts.ExtraArgs...)

	cmd := exec.Command(args[0], args[1:]...)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.Env = os.Environ()
	for k, v := range opts.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	cmd.Stdin = opts.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = opts.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = opts.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd, nil
}

// Run executes the tool and waits for it to finish. A non-zero exit from the
// tool is not an error here; it is reported via Result.ExitCode so callers
// can propagate the collaborator's own status. An error is returned only
// when the process could not be started or was cancelled.
func (t *Tool) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	cmd, err := t.BuildCommand(opts)
	if err != nil {
		return nil, err
	}

	ctx, cancel := applyTimeout(ctx, opts.Timeout)
	defer cancel()

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", t.name, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	start := time.Now()
	select {
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return nil, fmt.Errorf("running %s: %w", t.name, ctx.Err())
	case err = <-done:
	}
	duration := time.Since(start)

	result := &Result{Duration: duration}
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return nil, fmt.Errorf("running %s: %w", t.name, err)
		}
		result.ExitCode = exitErr.ExitCode()
	}
	return result, nil
}

// applyTimeout returns a context with timeout if timeout is positive.
func applyTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return ctx, func() {}
}
