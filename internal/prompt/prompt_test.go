package prompt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ginjaninja78/csv-sorter/internal/sorter"
	"github.com/ginjaninja78/csv-sorter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrompter(input string) (*Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return New(strings.NewReader(input), out), out
}

func testFiles() []types.FileDescriptor {
	return []types.FileDescriptor{
		{Name: "a.csv", Path: "source/a.csv"},
		{Name: "b.csv", Path: "source/b.csv"},
	}
}

func TestReadLine(t *testing.T) {
	t.Parallel()

	p, _ := newPrompter("first\r\nsecond\nlast")
	ctx := context.Background()

	for _, want := range []string{"first", "second", "last"} {
		line, err := p.ReadLine(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, line)
	}

	_, err := p.ReadLine(ctx)
	require.ErrorIs(t, err, ErrInputClosed)
}

func TestChooseFile_ValidChoice(t *testing.T) {
	t.Parallel()

	p, out := newPrompter("2\n")

	file, err := p.ChooseFile(context.Background(), testFiles())

	require.NoError(t, err)
	assert.Equal(t, "b.csv", file.Name)
	assert.Contains(t, out.String(), "Found 2 CSV file(s):\n1. a.csv\n2. b.csv\n")
	assert.Equal(t, 1, strings.Count(out.String(), "Select CSV file to sort (1-2): "))
}

func TestChooseFile_RepromptsOnInvalidInput(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Non-numeric, zero, negative and out-of-range answers before a valid one.
	p, out := newPrompter("abc\n0\n-1\n3\n\n1\n")

	// --- Act ---
	file, err := p.ChooseFile(context.Background(), testFiles())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "a.csv", file.Name)

	text := out.String()
	assert.Equal(t, 6, strings.Count(text, "Select CSV file to sort (1-2): "))
	assert.Equal(t, 2, strings.Count(text, "Please enter a valid number."))
	assert.Equal(t, 3, strings.Count(text, "Invalid choice. Please enter a number between 1 and 2."))
}

func TestChooseFile_InputEndsWithoutChoice(t *testing.T) {
	t.Parallel()

	p, out := newPrompter("abc\n")

	_, err := p.ChooseFile(context.Background(), testFiles())

	require.ErrorIs(t, err, ErrInputClosed)
	assert.Contains(t, out.String(), "Please enter a valid number.")
}

func TestChooseFile_NoFiles(t *testing.T) {
	t.Parallel()

	p, _ := newPrompter("1\n")
	_, err := p.ChooseFile(context.Background(), nil)
	require.Error(t, err)
}

func TestChooseColumn(t *testing.T) {
	t.Parallel()

	p, out := newPrompter("x\n5\n2\n")
	columns := []string{"Name", "Score", "Team"}

	p.DisplayColumns(columns)
	col, err := p.ChooseColumn(context.Background(), columns)

	require.NoError(t, err)
	assert.Equal(t, "Score", col)
	assert.Contains(t, out.String(), "Available columns:\n1. Name\n2. Score\n3. Team\n")
	assert.Contains(t, out.String(), "Invalid choice. Please enter a number between 1 and 3.")
}

func TestChooseMode(t *testing.T) {
	t.Parallel()

	tests := map[string]sorter.Mode{
		"1\n": sorter.AlphaAsc,
		"2\n": sorter.AlphaDesc,
		"3\n": sorter.NumAsc,
		"4\n": sorter.NumDesc,
	}

	for input, want := range tests {
		p, _ := newPrompter(input)
		got, err := p.ChooseMode(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestChooseMode_RepromptsWithMenu(t *testing.T) {
	t.Parallel()

	p, out := newPrompter("5\nnum\n3\n")

	got, err := p.ChooseMode(context.Background())

	require.NoError(t, err)
	assert.Equal(t, sorter.NumAsc, got)
	assert.Equal(t, 3, strings.Count(out.String(), "Select sorting type:"))
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid choice. Please enter 1, 2, 3, or 4."))
	assert.Contains(t, out.String(), "3. Numerical (Low to High)\n")
}

func TestReadLine_CancelledContext(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A pipe with no writer activity blocks the read.
	pr, pw := io.Pipe()
	defer pw.Close()
	p := New(pr, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	// --- Act ---
	_, err := p.Choose(ctx, "? ", 2)

	// --- Assert ---
	require.ErrorIs(t, err, context.Canceled)

	// The abandoned read still delivers its line to the next caller.
	go func() { _, _ = pw.Write([]byte("2\n")) }()
	n, err := p.Choose(context.Background(), "? ", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPause(t *testing.T) {
	t.Parallel()

	p, out := newPrompter("")
	p.Pause(context.Background())
	assert.Contains(t, out.String(), "Press Enter to exit...")
}
