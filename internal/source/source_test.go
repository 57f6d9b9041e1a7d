package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "ls_access.log.2024-03-16"), "")
	touch(t, filepath.Join(dir, "ls_access.log.2024-03-15"), "")
	touch(t, filepath.Join(dir, "ls_access.log"), "")
	touch(t, filepath.Join(dir, "server.log"), "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "ls_access.log.d"), 0o755))

	got, err := List(dir, "ls_access.log")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "ls_access.log"),
		filepath.Join(dir, "ls_access.log.2024-03-15"),
		filepath.Join(dir, "ls_access.log.2024-03-16"),
	}, got)
}

func TestList_NoFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "server.log"), "")

	_, err := List(dir, "ls_access.log")
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestList_MissingDir(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "nope"), "ls_access.log")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("/var/log/dtp/ls_access.log.2024-03-15", "ls_access.log"))
	assert.False(t, Matches("/var/log/ls_access.log.d/other.log", "ls_access.log"))
}

func TestArchive(t *testing.T) {
	srcDir := t.TempDir()
	archiveDir := filepath.Join(t.TempDir(), "analyzed")
	src := filepath.Join(srcDir, "ls_access.log.2024-03-15")
	touch(t, src, "first")

	dst, err := Archive(src, archiveDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(archiveDir, "ls_access.log.2024-03-15"), dst)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	// Overwrites a previous copy.
	touch(t, src, "second, longer")
	_, err = Archive(src, archiveDir)
	require.NoError(t, err)
	data, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "second, longer", string(data))
}

func TestArchive_SameDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "ls_access.log.2024-03-15")
	touch(t, src, "keep me")

	dst, err := Archive(src, dir)
	require.NoError(t, err)
	assert.Equal(t, src, dst)

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))
}

func TestArchive_MissingSource(t *testing.T) {
	_, err := Archive(filepath.Join(t.TempDir(), "missing"), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
