package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestScanDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.pdf"))
	writeFile(t, filepath.Join(root, "b.PDF"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeFile(t, filepath.Join(root, "sub", "c.pdf"))
	writeFile(t, filepath.Join(root, ".hidden", "d.pdf"))
	writeFile(t, filepath.Join(root, ".ignored.pdf"))

	paths, stats, err := ScanDirectory(root, true)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(root, "a.pdf"),
		filepath.Join(root, "b.PDF"),
		filepath.Join(root, "sub", "c.pdf"),
	}, paths)
	assert.Equal(t, uint32(3), stats.Matched)
	assert.Equal(t, uint32(4), stats.Scanned) // hidden entries are never scanned
}

func TestScanDirectoryKeepsHiddenWhenAsked(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".hidden", "d.pdf"))

	paths, _, err := ScanDirectory(root, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, ".hidden", "d.pdf")}, paths)
}

func TestScanDirectoryEmptyRoot(t *testing.T) {
	_, _, err := ScanDirectory("  ", true)
	assert.Error(t, err)
}
