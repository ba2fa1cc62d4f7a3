package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestExpand_Directory(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.vmg"))
	touch(t, filepath.Join(dir, "a.vmg"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, ".hidden.vmg"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	touch(t, filepath.Join(dir, "sub", "c.vmg"))

	files, err := Expand([]string{dir}, "")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.vmg"),
		filepath.Join(dir, "b.vmg"),
	}, files)
}

func TestExpand_CustomPattern(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "inbox-1.vmg"))
	touch(t, filepath.Join(dir, "sent-1.vmg"))

	files, err := Expand([]string{dir}, "inbox-*")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "inbox-1.vmg")}, files)
}

func TestExpand_FilesKeepArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "z.vmg")
	second := filepath.Join(dir, "a.txt")
	touch(t, first)
	touch(t, second)

	files, err := Expand([]string{first, second}, "")
	require.NoError(t, err)

	// explicit files are taken as given, whatever their extension
	assert.Equal(t, []string{first, second}, files)
}

func TestExpand_Mixed(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "export")
	require.NoError(t, os.Mkdir(sub, 0755))
	touch(t, filepath.Join(sub, "1.vmg"))
	single := filepath.Join(dir, "single.vmg")
	touch(t, single)

	files, err := Expand([]string{single, sub}, DefaultPattern)
	require.NoError(t, err)
	assert.Equal(t, []string{single, filepath.Join(sub, "1.vmg")}, files)
}

func TestExpand_Missing(t *testing.T) {
	_, err := Expand([]string{"/nonexistent/export"}, "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExpand_EmptyDirectory(t *testing.T) {
	files, err := Expand([]string{t.TempDir()}, "")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestExpand_DeviceRejected(t *testing.T) {
	if _, err := os.Stat(os.DevNull); err != nil {
		t.Skip("no null device")
	}
	_, err := Expand([]string{os.DevNull}, "")
	assert.ErrorIs(t, err, ErrUnsupportedPath)
}
