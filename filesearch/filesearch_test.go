package filesearch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{
		"a.pro",
		"b.txt",
		".hidden.pro",
		"sub/c.pro",
		"sub/deeper/d.pro",
		"sub/deeper/e.sav",
	} {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
	return dir
}

func rel(t *testing.T, dir string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestSearchPattern(t *testing.T) {
	dir := makeTree(t)
	found, err := Search(dir, "*.pro", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pro", "sub/c.pro", "sub/deeper/d.pro"}, rel(t, dir, found))

	found, err = Search(dir, "*.pro", Options{MatchAllInitialDot: true})
	require.NoError(t, err)
	assert.Equal(t, []string{".hidden.pro", "a.pro", "sub/c.pro", "sub/deeper/d.pro"}, rel(t, dir, found))

	found, err = Search(dir, "?.sav", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"sub/deeper/e.sav"}, rel(t, dir, found))
}

func TestSearchDotIsLiteral(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aXpro"), nil, 0o644))
	found, err := Search(dir, "a.pro", Options{})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestSearchNoPattern(t *testing.T) {
	dir := makeTree(t)
	found, err := Search(dir, "", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{".hidden.pro", "a.pro", "b.txt"}, rel(t, dir, found))
}

func TestSearchErrors(t *testing.T) {
	_, err := Search(t.TempDir(), "[", Options{})
	assert.ErrorIs(t, err, filepath.ErrBadPattern)

	_, err = Search(filepath.Join(t.TempDir(), "missing"), "*", Options{})
	assert.True(t, os.IsNotExist(err), "have %v", err)
	_, err = Search(filepath.Join(t.TempDir(), "missing"), "", Options{})
	assert.True(t, os.IsNotExist(err), "have %v", err)
}
