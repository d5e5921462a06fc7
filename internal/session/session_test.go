package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/csv-sorter/internal/prompt"
	"github.com/ginjaninja78/csv-sorter/internal/sorter"
	"github.com/ginjaninja78/csv-sorter/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scoresCSV = "Name,Score\nbob,10\nAnn,2\ncy,x\n"

// newTestSession builds a session over fresh source/output folders under a
// temp dir and writes files into the source folder.
func newTestSession(t *testing.T, files map[string]string) (*Session, *bytes.Buffer, *utils.FileManager) {
	t.Helper()

	root := t.TempDir()
	fm := utils.NewFileManager(filepath.Join(root, "source"), filepath.Join(root, "output"))
	require.NoError(t, os.MkdirAll(fm.InputDir, 0755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(fm.InputDir, name), []byte(content), 0600))
	}

	out := &bytes.Buffer{}
	s := New(fm, out, nil, Options{Extensions: []string{".csv", ".xlsx"}, Delimiter: ","})
	return s, out, fm
}

func runInteractive(s *Session, out *bytes.Buffer, input string) Result {
	return s.Run(context.Background(), prompt.New(strings.NewReader(input), out))
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_NumericAscending(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	s, out, fm := newTestSession(t, map[string]string{"data.csv": scoresCSV})

	// --- Act ---
	res := runInteractive(s, out, "1\n2\n3\n")

	// --- Assert ---
	require.NoError(t, res.Err)
	assert.True(t, res.Success)
	assert.Equal(t, StateWritten, res.State)
	assert.Equal(t, filepath.Join(fm.OutputDir, "data_sorted_Score_num_asc.csv"), res.OutputFile)
	assert.Equal(t, "Name,Score\nAnn,2\nbob,10\ncy,\n", readOutput(t, res.OutputFile))

	assert.Equal(t, 3, res.Stats.RowsLoaded)
	assert.Equal(t, 2, res.Stats.ColumnsLoaded)
	assert.Equal(t, 1, res.Stats.MissingValues)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "=== CSV File Sorter ===\n"))
	assert.Contains(t, text, "Found 1 CSV file(s):\n1. data.csv\n")
	assert.Contains(t, text, "Reading data.csv...\n")
	assert.Contains(t, text, "Successfully loaded 3 rows and 2 columns.\n")
	assert.Contains(t, text, "Available columns:\n1. Name\n2. Score\n")
	assert.Contains(t, text, "Sorting by column 'Score'...\n")
	assert.Contains(t, text, "Sorted file saved as: "+res.OutputFile+"\n")
	assert.Contains(t, text, "Operation completed successfully!\n")

	// Input file is left untouched.
	assert.Equal(t, scoresCSV, readOutput(t, filepath.Join(fm.InputDir, "data.csv")))
}

func TestRun_AlphabeticalModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		file  string
		want  string
	}{
		{
			name:  "ascending",
			input: "1\n1\n1\n",
			file:  "data_sorted_Name_alpha_asc.csv",
			want:  "Name,Score\nAnn,2\nbob,10\ncy,x\n",
		},
		{
			name:  "descending",
			input: "1\n1\n2\n",
			file:  "data_sorted_Name_alpha_desc.csv",
			want:  "Name,Score\ncy,x\nbob,10\nAnn,2\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, out, fm := newTestSession(t, map[string]string{"data.csv": scoresCSV})
			res := runInteractive(s, out, tt.input)

			require.NoError(t, res.Err)
			assert.Equal(t, filepath.Join(fm.OutputDir, tt.file), res.OutputFile)
			assert.Equal(t, tt.want, readOutput(t, res.OutputFile))
		})
	}
}

func TestRun_NumericDescendingKeepsMissingLast(t *testing.T) {
	t.Parallel()

	s, out, _ := newTestSession(t, map[string]string{"data.csv": scoresCSV})

	res := runInteractive(s, out, "1\n2\n4\n")

	require.NoError(t, res.Err)
	assert.Equal(t, "Name,Score\nbob,10\nAnn,2\ncy,\n", readOutput(t, res.OutputFile))
}

func TestRun_NoInputFiles(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	s, out, fm := newTestSession(t, nil)

	// --- Act ---
	res := runInteractive(s, out, "1\n")

	// --- Assert ---
	require.ErrorIs(t, res.Err, ErrNoInputFiles)
	assert.False(t, res.Success)
	assert.Equal(t, StateFilesListed, res.State)

	text := out.String()
	assert.Contains(t, text, "No CSV files found in the '"+fm.InputDir+"' directory.")
	assert.Contains(t, text, "Please place your CSV files in the '"+fm.InputDir+"' folder")
	assert.NotContains(t, text, "Select CSV file")

	_, err := os.Stat(fm.OutputDir)
	require.NoError(t, err, "output directory is created even when there is nothing to sort")
}

func TestRun_RepromptsOnInvalidFileChoice(t *testing.T) {
	t.Parallel()

	s, out, _ := newTestSession(t, map[string]string{"data.csv": scoresCSV})

	res := runInteractive(s, out, "abc\n1\n1\n1\n")

	require.NoError(t, res.Err)
	text := out.String()
	assert.Contains(t, text, "Please enter a valid number.")
	assert.Equal(t, 2, strings.Count(text, "Select CSV file to sort (1-1): "))
}

func TestRun_InputEndsDuringPrompt(t *testing.T) {
	t.Parallel()

	s, out, fm := newTestSession(t, map[string]string{"data.csv": scoresCSV})

	res := runInteractive(s, out, "1\n")

	require.ErrorIs(t, res.Err, prompt.ErrInputClosed)
	assert.Equal(t, StateColumnsDisplayed, res.State)

	entries, err := os.ReadDir(fm.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_LoadFailure(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The second data row has more fields than the header.
	s, out, fm := newTestSession(t, map[string]string{"bad.csv": "a,b\n1,2\n1,2,3\n"})

	// --- Act ---
	res := runInteractive(s, out, "1\n")

	// --- Assert ---
	require.Error(t, res.Err)
	assert.Equal(t, StateFileSelected, res.State)
	assert.Contains(t, out.String(), "Error reading CSV file: ")
	assert.NotContains(t, out.String(), "Available columns:")

	entries, err := os.ReadDir(fm.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_EmptyFile(t *testing.T) {
	t.Parallel()

	s, out, _ := newTestSession(t, map[string]string{"empty.csv": ""})

	res := runInteractive(s, out, "1\n")

	require.Error(t, res.Err)
	assert.Contains(t, out.String(), "Error reading CSV file: ")
}

func TestRun_WriteFailure(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A directory occupying the output name makes the final rename fail.
	s, out, fm := newTestSession(t, map[string]string{"data.csv": scoresCSV})
	require.NoError(t, os.MkdirAll(filepath.Join(fm.OutputDir, "data_sorted_Name_alpha_asc.csv", "x"), 0755))

	// --- Act ---
	res := runInteractive(s, out, "1\n1\n1\n")

	// --- Assert ---
	require.Error(t, res.Err)
	assert.False(t, res.Success)
	assert.Equal(t, StateSorted, res.State)
	assert.Empty(t, res.OutputFile)
	assert.Contains(t, out.String(), "Error saving file: ")
	assert.NotContains(t, out.String(), "Operation completed successfully!")
}

func TestRun_DirectorySetupFailure(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	blocker := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	out := &bytes.Buffer{}
	s := New(utils.NewFileManager(filepath.Join(blocker, "source"), filepath.Join(root, "output")), out, nil, Options{})

	res := runInteractive(s, out, "")

	require.Error(t, res.Err)
	assert.Equal(t, StateInit, res.State)
	assert.Contains(t, out.String(), "Unexpected error: ")
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	s, out, _ := newTestSession(t, map[string]string{"data.csv": scoresCSV})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := s.Run(ctx, prompt.New(strings.NewReader(""), out))

	require.ErrorIs(t, res.Err, context.Canceled)
	assert.Contains(t, out.String(), "Program interrupted by user.")
}

func TestRun_OverwritesExistingOutput(t *testing.T) {
	t.Parallel()

	s, out, fm := newTestSession(t, map[string]string{"data.csv": scoresCSV})
	target := filepath.Join(fm.OutputDir, "data_sorted_Score_num_asc.csv")
	require.NoError(t, os.MkdirAll(fm.OutputDir, 0755))
	require.NoError(t, os.WriteFile(target, []byte("stale"), 0600))

	res := runInteractive(s, out, "1\n2\n3\n")

	require.NoError(t, res.Err)
	assert.Equal(t, "Name,Score\nAnn,2\nbob,10\ncy,\n", readOutput(t, target))

	entries, err := os.ReadDir(fm.OutputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		sel     Selection
		output  string
		wantErr bool
	}{
		{
			name:   "by name",
			sel:    Selection{File: "data.csv", Column: "Score", Mode: sorter.NumDesc},
			output: "data_sorted_Score_num_desc.csv",
		},
		{
			name:   "by position",
			sel:    Selection{File: "1", Column: "1", Mode: sorter.AlphaAsc},
			output: "data_sorted_Name_alpha_asc.csv",
		},
		{
			name:    "unknown file",
			sel:     Selection{File: "missing.csv", Column: "Score", Mode: sorter.NumAsc},
			wantErr: true,
		},
		{
			name:    "unknown column",
			sel:     Selection{File: "data.csv", Column: "Age", Mode: sorter.NumAsc},
			wantErr: true,
		},
		{
			name:    "invalid mode",
			sel:     Selection{File: "data.csv", Column: "Score", Mode: sorter.Mode(9)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, out, fm := newTestSession(t, map[string]string{"data.csv": scoresCSV})

			res := s.RunSelection(context.Background(), tt.sel)

			if tt.wantErr {
				require.Error(t, res.Err)
				assert.Contains(t, out.String(), "Invalid selection: ")
				return
			}
			require.NoError(t, res.Err)
			assert.Equal(t, filepath.Join(fm.OutputDir, tt.output), res.OutputFile)
			assert.NotContains(t, out.String(), "Available columns:")
		})
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Init", StateInit.String())
	assert.Equal(t, "Written", StateWritten.String())
	assert.Equal(t, "Unknown", State(99).String())
}
