package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir_Relative(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)

	got, err := EnsureDir("reports")
	require.NoError(t, err)

	want, err := filepath.Abs("reports")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}

	again, err := EnsureDir("reports")
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestEnsureDir_Absolute(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sales", "2026")

	got, err := EnsureDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
	assert.DirExists(t, dir)
}

func TestEnsureDir_FileInTheWay(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("reports", []byte("x"), 0o660))

	_, err := EnsureDir("reports")
	require.Error(t, err)
}

func TestSaveFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := SaveFile(dir, "reports/seller/2026/10/18/abc.csv", []byte("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "abc.csv"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(got))
}

func TestSaveFile_RejectsEmptyName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	_, err := SaveFile(dir, "", []byte("x"))
	require.Error(t, err)
	assert.NoDirExists(t, dir, "nothing is created for a bad name")
}
