package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/csv-sorter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirectories_Idempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	fm := NewFileManager(filepath.Join(root, "source"), filepath.Join(root, "nested", "output"))

	require.NoError(t, fm.EnsureDirectories())
	require.NoError(t, fm.EnsureDirectories())

	for _, dir := range []string{fm.InputDir, fm.OutputDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestEnsureDirectories_Failure(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	blocker := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	fm := NewFileManager(filepath.Join(blocker, "source"), filepath.Join(root, "output"))
	err := fm.EnsureDirectories()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create directory")
}

func TestDiscoverInputFiles(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	for _, name := range []string{"b.csv", "a.csv", "notes.txt", "C.CSV", "book.xlsx", ".csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x\n"), 0600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir.csv"), 0755))
	fm := NewFileManager(root, filepath.Join(root, "out"))

	// --- Act ---
	files, err := fm.DiscoverInputFiles([]string{".csv"})

	// --- Assert ---
	require.NoError(t, err)
	var got []string
	for _, f := range files {
		got = append(got, f.Name)
		assert.Equal(t, filepath.Join(root, f.Name), f.Path)
	}
	assert.Equal(t, []string{"C.CSV", "a.csv", "b.csv"}, got)
}

func TestDiscoverInputFiles_MultipleExtensions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, name := range []string{"a.csv", "b.xlsx", "c.xls"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), nil, 0600))
	}

	files, err := NewFileManager(root, root).DiscoverInputFiles([]string{".csv", ".xlsx"})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.csv", files[0].Name)
	assert.Equal(t, "b.xlsx", files[1].Name)
}

func TestDiscoverInputFiles_Empty(t *testing.T) {
	t.Parallel()

	files, err := NewFileManager(t.TempDir(), "").DiscoverInputFiles(nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscoverInputFiles_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := NewFileManager(filepath.Join(t.TempDir(), "absent"), "").DiscoverInputFiles(nil)
	require.Error(t, err)
}

func TestOutputFileName_AllModes(t *testing.T) {
	t.Parallel()

	file := types.FileDescriptor{Name: "data.csv", Path: "source/data.csv"}

	tests := map[string]string{
		"alpha_asc":  "data_sorted_Score_alpha_asc.csv",
		"alpha_desc": "data_sorted_Score_alpha_desc.csv",
		"num_asc":    "data_sorted_Score_num_asc.csv",
		"num_desc":   "data_sorted_Score_num_desc.csv",
	}
	for token, want := range tests {
		assert.Equal(t, want, OutputFileName(file, "Score", token))
	}
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	fm := NewFileManager("source", "output")
	file := types.FileDescriptor{Name: "report.v2.xlsx"}

	assert.Equal(t,
		filepath.Join("output", "report.v2_sorted_First Name_alpha_desc.xlsx"),
		fm.OutputPath(file, "First Name", "alpha_desc"))
}
