package yaml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSyntax_Valid(t *testing.T) {
	valid := `
changelog_path: CHANGELOG.md
baseline_ref: HEAD
nested:
  key: value
list:
  - one
  - two
`
	assert.NoError(t, ValidateSyntax(strings.NewReader(valid)))
}

func TestValidateSyntax_MultipleDocuments(t *testing.T) {
	multi := "a: 1\n---\nb: 2\n"
	assert.NoError(t, ValidateSyntax(strings.NewReader(multi)))
}

func TestValidateSyntax_Invalid(t *testing.T) {
	invalid := "key: [unclosed\n"
	assert.Error(t, ValidateSyntax(strings.NewReader(invalid)))
}

func TestValidateSyntax_Empty(t *testing.T) {
	assert.NoError(t, ValidateSyntax(strings.NewReader("")))
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yml")
	require.NoError(t, os.WriteFile(good, []byte("key: value\n"), 0o644))
	assert.NoError(t, ValidateFile(good))

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("key: [unclosed\n"), 0o644))
	err := ValidateFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yml")
}

func TestValidateFile_Missing(t *testing.T) {
	err := ValidateFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
