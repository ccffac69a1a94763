package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vorobyoffn/Financial-Dashboard/internal/shared/testutil"
)

func writeFile(t *testing.T, dir, name string, mod time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	testutil.Touch(t, path, mod)
	return path
}

func TestFindInputFiles(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	writeFile(t, dir, "old.csv", base)
	writeFile(t, dir, "Package_US_2024_01_15.XLSX", base.Add(2*time.Hour))
	writeFile(t, dir, "legacy.xls", base.Add(time.Hour))
	writeFile(t, dir, "b_same.csv", base.Add(3*time.Hour))
	writeFile(t, dir, "a_same.csv", base.Add(3*time.Hour))
	writeFile(t, dir, "notes.txt", base.Add(4*time.Hour))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0755))

	files, err := NewDiscovery("").FindInputFiles(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a_same.csv", "b_same.csv", "Package_US_2024_01_15.XLSX", "old.csv"}, names)
	assert.Equal(t, filepath.Join(dir, "a_same.csv"), files[0].Path)
	assert.Equal(t, int64(1), files[0].Size)
}

func TestFindInputFilesRelativeToBase(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "input"), 0755))
	writeFile(t, filepath.Join(base, "input"), "a.csv", time.Now())

	files, err := NewDiscovery(base, "csv").FindInputFiles("input")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(base, "input", "a.csv"), files[0].Path)
}

func TestFindInputFilesMissingDir(t *testing.T) {
	_, err := NewDiscovery("").FindInputFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestAccepts(t *testing.T) {
	d := NewDiscovery("", ".XLSX", "csv")
	assert.True(t, d.Accepts("a.xlsx"))
	assert.True(t, d.Accepts("b.CSV"))
	assert.False(t, d.Accepts("c.xls"))
	assert.False(t, d.Accepts("noext"))
	assert.False(t, d.Accepts("~$a.xlsx"))
}
