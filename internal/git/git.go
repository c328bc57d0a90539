// Package git provides the version-control collaborator for relmate: restoring
// a tracked file to its committed baseline and locating the working tree root.
// It uses the go-git library so no git CLI installation is required.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// BaselineNotFoundError reports that a committed baseline does not exist:
// either the revision does not resolve (e.g. a repository with no commits)
// or the file is absent from the baseline commit's tree.
type BaselineNotFoundError struct {
	Ref  string
	Path string
	Err  error
}

func (e *BaselineNotFoundError) Error() string {
	return fmt.Sprintf("no committed baseline for %s at %s: %v", e.Path, e.Ref, e.Err)
}

func (e *BaselineNotFoundError) Unwrap() error {
	return e.Err
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*gogit.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened")
	return repo, nil
}

// RepositoryRoot returns the absolute path to the working tree root.
func RepositoryRoot() (string, error) {
	repo, err := openRepo("")
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] RepositoryRoot: %s", root)
	return root, nil
}

// IsRepository checks if the current directory is within a git repository.
func IsRepository() bool {
	_, err := openRepo("")
	result := err == nil
	logDebug("[git] IsRepository: %v", result)
	return result
}

// RestoreFile reverts a tracked file to its content at the given revision,
// overwriting the working copy. The path is relative to the working tree
// root, using forward slashes. Uncommitted edits to the file are destroyed;
// there is no merge and no backup.
//
// Returns a *BaselineNotFoundError when the revision does not resolve or the
// file does not exist in the baseline commit; in that case the working copy
// is left untouched.
func RestoreFile(ref, path string) error {
	repo, err := openRepo("")
	if err != nil {
		return err
	}
	return restoreFile(repo, ref, path)
}

// RestoreFileIn is RestoreFile for a repository containing dir rather than
// the current working directory.
func RestoreFileIn(dir, ref, path string) error {
	repo, err := openRepo(dir)
	if err != nil {
		return err
	}
	return restoreFile(repo, ref, path)
}

func restoreFile(repo *gogit.Repository, ref, path string) error {
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		logDebug("[git] RestoreFile: revision %s not found: %v", ref, err)
		return &BaselineNotFoundError{Ref: ref, Path: path, Err: err}
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return fmt.Errorf("reading commit %s: %w", hash, err)
	}

	file, err := commit.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			logDebug("[git] RestoreFile: %s absent from %s", path, ref)
			return &BaselineNotFoundError{Ref: ref, Path: path, Err: err}
		}
		return fmt.Errorf("reading %s at %s: %w", path, ref, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return fmt.Errorf("reading blob for %s: %w", path, err)
	}

	mode, err := file.Mode.ToOSFileMode()
	if err != nil {
		mode = 0o644
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	dest := filepath.Join(worktree.Filesystem.Root(), filepath.FromSlash(path))
	if err := os.WriteFile(dest, []byte(contents), mode); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}

	logDebug("[git] RestoreFile: %s restored to content at %s", path, ref)
	return nil
}
