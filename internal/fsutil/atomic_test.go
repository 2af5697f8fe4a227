package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")

	require.NoError(t, WriteFileAtomic(path, []byte("one"), 0600))
	require.NoError(t, WriteFileAtomic(path, []byte("two"), 0600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if os.PathSeparator == '/' {
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "x.json")
	assert.Error(t, WriteFileAtomic(path, []byte("x"), 0600))
}

func TestWriteJSON_Backup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habits.json")

	require.NoError(t, WriteJSON(path, []string{"a"}, 0600, true))
	_, err := os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(err), "first write has nothing to back up")

	require.NoError(t, WriteJSON(path, []string{"b"}, 0600, true))

	bak, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"a\"\n]\n", string(bak))

	cur, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"b\"\n]\n", string(cur))
}

func TestReadIfExists(t *testing.T) {
	dir := t.TempDir()

	data, ok, err := ReadIfExists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)

	path := filepath.Join(dir, "present")
	require.NoError(t, os.WriteFile(path, []byte("hi"), 0600))
	data, ok, err = ReadIfExists(path)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hi", string(data))
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0600))

	require.NoError(t, CopyFile(src, dst, 0600))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	assert.True(t, Exists(dst))
	assert.False(t, Exists(filepath.Join(dir, "other")))
}
