package filewalker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWalk_FiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.js.lz4"), "bb")
	touch(t, filepath.Join(root, "a.js.lz4"), "a")
	touch(t, filepath.Join(root, "notes.txt"), "x")
	touch(t, filepath.Join(root, "nested", "c.js.lz4"), "ccc")

	entries, err := NewWalker(".lz4").Walk(root)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"a.js.lz4", "b.js.lz4", "c.js.lz4"}, names)
	assert.Equal(t, int64(3), entries[2].Size)
	assert.Equal(t, filepath.Join(root, "nested", "c.js.lz4"), entries[2].Path)
}

func TestWalk_NoSuffixAcceptsAll(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "x"), "")
	touch(t, filepath.Join(root, "y.txt"), "")

	entries, err := NewWalker().Walk(root)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWalk_MissingRoot(t *testing.T) {
	entries, err := NewWalker(".lz4").Walk(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWalk_RootIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.lz4")
	touch(t, path, "")

	_, err := NewWalker().Walk(path)
	assert.Error(t, err)
}
