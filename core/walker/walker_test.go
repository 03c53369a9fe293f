package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	return path
}

func TestExpandGlobsLiteralPassthrough(t *testing.T) {
	files, err := ExpandGlobs([]string{"some/missing/file.py"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Clean("some/missing/file.py")}, files)
}

func TestExpandGlobsSimplePattern(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "model_a.py")
	b := touch(t, dir, "model_b.py")
	touch(t, dir, "model_c.txt")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub_dir.py"), 0755))

	files, err := ExpandGlobs([]string{filepath.Join(dir, "*.py")})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files, "directories and non-matching files are excluded")
}

func TestExpandGlobsDoubleStar(t *testing.T) {
	dir := t.TempDir()
	top := touch(t, dir, "impl/api.py")
	nested := touch(t, dir, "impl/deep/nested/handler.py")
	touch(t, dir, "impl/deep/nested/readme.md")
	outside := touch(t, dir, "other/api.py")

	files, err := ExpandGlobs([]string{filepath.Join(dir, "impl", "**", "*.py")})
	require.NoError(t, err)
	assert.Contains(t, files, top, "** matches zero segments")
	assert.Contains(t, files, nested)
	assert.NotContains(t, files, outside)
	assert.Len(t, files, 2)
}

func TestExpandGlobsDoubleStarMissingRoot(t *testing.T) {
	files, err := ExpandGlobs([]string{"no/such/dir/**/*.py"})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestExpandGlobsDeduplicatesAndSorts(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.py")
	b := touch(t, dir, "b.py")

	files, err := ExpandGlobs([]string{
		filepath.Join(dir, "*.py"),
		b,
		a,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}

func TestMatchSegments(t *testing.T) {
	tests := []struct {
		name    string
		pattern []string
		path    []string
		want    bool
	}{
		{"exact", []string{"a", "b.py"}, []string{"a", "b.py"}, true},
		{"star segment", []string{"a", "*.py"}, []string{"a", "b.py"}, true},
		{"doublestar consumes many", []string{"**", "*.py"}, []string{"a", "b", "c.py"}, true},
		{"doublestar consumes none", []string{"**", "*.py"}, []string{"c.py"}, true},
		{"suffix mismatch", []string{"**", "*.py"}, []string{"a", "b.md"}, false},
		{"too short", []string{"a", "b", "c"}, []string{"a", "b"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := matchSegments(tt.pattern, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
