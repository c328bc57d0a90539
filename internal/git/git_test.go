package git

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates an empty repository in a temp directory.
func initRepo(t *testing.T) (string, *gogit.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

// commitFile writes a file and commits it, returning nothing; the test
// repository's HEAD then contains the file as its baseline.
func commitFile(t *testing.T, repo *gogit.Repository, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add(name)
	require.NoError(t, err)

	_, err = worktree.Commit("add "+name, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(data)
}

func TestRestoreFile_DiscardsLocalEdits(t *testing.T) {
	dir, repo := initRepo(t)
	baseline := "# Changelog\n\n## 1.0.0\n- initial release\n"
	commitFile(t, repo, dir, "CHANGELOG.md", baseline)

	// Local edit that a release must not see.
	edited := baseline + "\n## unreleased scribbles\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGELOG.md"), []byte(edited), 0o644))

	err := RestoreFileIn(dir, "HEAD", "CHANGELOG.md")
	require.NoError(t, err)

	// No merge, no backup: the working copy equals the baseline again.
	assert.Equal(t, baseline, readFile(t, dir, "CHANGELOG.md"))
}

func TestRestoreFile_NestedPath(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, repo, dir, "docs/CHANGES.md", "baseline\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "CHANGES.md"), []byte("dirty\n"), 0o644))

	err := RestoreFileIn(dir, "HEAD", "docs/CHANGES.md")
	require.NoError(t, err)
	assert.Equal(t, "baseline\n", readFile(t, dir, "docs/CHANGES.md"))
}

func TestRestoreFile_UntrackedFileHasNoBaseline(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, repo, dir, "README.md", "readme\n")

	// Present in the working tree, never committed.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGELOG.md"), []byte("local only\n"), 0o644))

	err := RestoreFileIn(dir, "HEAD", "CHANGELOG.md")
	var notFound *BaselineNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "CHANGELOG.md", notFound.Path)
	assert.Equal(t, "HEAD", notFound.Ref)

	// The failed restore leaves the working copy untouched.
	assert.Equal(t, "local only\n", readFile(t, dir, "CHANGELOG.md"))
}

func TestRestoreFile_EmptyRepositoryHasNoBaseline(t *testing.T) {
	dir, _ := initRepo(t)

	err := RestoreFileIn(dir, "HEAD", "CHANGELOG.md")
	var notFound *BaselineNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRestoreFile_UnknownRef(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, repo, dir, "CHANGELOG.md", "baseline\n")

	err := RestoreFileIn(dir, "no-such-branch", "CHANGELOG.md")
	var notFound *BaselineNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "no-such-branch", notFound.Ref)
}

func TestRestoreFile_NotARepository(t *testing.T) {
	dir := t.TempDir()

	err := RestoreFileIn(dir, "HEAD", "CHANGELOG.md")
	require.Error(t, err)
	var notFound *BaselineNotFoundError
	assert.False(t, errors.As(err, &notFound), "opening failure is not a baseline error")
}

func TestRepositoryRoot(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, repo, dir, "CHANGELOG.md", "baseline\n")

	sub := filepath.Join(dir, "sub", "dir")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	t.Chdir(sub)

	root, err := RepositoryRoot()
	require.NoError(t, err)

	wantRoot, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)
}

func TestIsRepository(t *testing.T) {
	dir, _ := initRepo(t)
	t.Chdir(dir)
	assert.True(t, IsRepository())

	t.Chdir(t.TempDir())
	assert.False(t, IsRepository())
}

func TestSetDebugLogger(t *testing.T) {
	var lines []string
	SetDebugLogger(func(format string, args ...any) {
		lines = append(lines, format)
	})
	t.Cleanup(func() { SetDebugLogger(nil) })

	dir, repo := initRepo(t)
	commitFile(t, repo, dir, "CHANGELOG.md", "baseline\n")
	require.NoError(t, RestoreFileIn(dir, "HEAD", "CHANGELOG.md"))

	assert.NotEmpty(t, lines)
}
