// =============================================================================
// CSV Sorter - Interactive Prompts
// =============================================================================
//
// This module implements the numbered menus the user answers during a run:
//   1. File choice   : 1..N over the discovered files
//   2. Column choice : 1..M over the loaded dataset's columns
//   3. Sort type     : 1..4 over the sort modes
//
// Each loop re-prompts on invalid input until a valid choice is made. There
// is no retry limit; a loop only ends early when input is exhausted or the
// context is cancelled (Ctrl+C).
//
// Reads happen on a helper goroutine so that a cancelled context unblocks a
// prompt that is waiting for the user.
//
// =============================================================================

package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/csv-sorter/internal/sorter"
	"github.com/ginjaninja78/csv-sorter/internal/types"
	"github.com/ginjaninja78/csv-sorter/internal/validation"
)

// ErrInputClosed is returned when input ends before a choice is made.
var ErrInputClosed = errors.New("input closed")

// readResult carries one line from the reader goroutine.
type readResult struct {
	line string
	err  error
}

// =============================================================================
// PROMPTER
// =============================================================================

// Prompter reads answers from in and writes menus to out.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer

	// pending is non-nil while a read is in flight.
	pending chan readResult
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// ReadLine returns the next line without its line ending.
//
// A read abandoned by a cancelled context is not lost: the next call picks
// up its result.
func (p *Prompter) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if p.pending == nil {
		ch := make(chan readResult, 1)
		p.pending = ch
		go func() {
			line, err := p.reader.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}()
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-p.pending:
		p.pending = nil

		line := strings.TrimRight(res.line, "\r\n")
		if res.err == nil {
			return line, nil
		}
		if errors.Is(res.err, io.EOF) {
			if res.line != "" {
				return line, nil
			}
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("failed to read input: %w", res.err)
	}
}

// Choose asks question until the answer is a number in 1..max.
//
// Messages for rejected answers:
//   - not a number   : "Please enter a valid number."
//   - out of range   : "Invalid choice. Please enter a number between 1 and N."
func (p *Prompter) Choose(ctx context.Context, question string, max int) (int, error) {
	for {
		fmt.Fprint(p.out, question)

		line, err := p.ReadLine(ctx)
		if err != nil {
			return 0, err
		}

		n, err := validation.ParseChoice(line, max)
		switch {
		case err == nil:
			return n, nil
		case errors.Is(err, validation.ErrNotANumber):
			fmt.Fprintln(p.out, "Please enter a valid number.")
		default:
			fmt.Fprintf(p.out, "Invalid choice. Please enter a number between 1 and %d.\n", max)
		}
	}
}

// =============================================================================
// MENUS
// =============================================================================

// ChooseFile lists files and returns the one the user picks.
func (p *Prompter) ChooseFile(ctx context.Context, files []types.FileDescriptor) (types.FileDescriptor, error) {
	if len(files) == 0 {
		return types.FileDescriptor{}, errors.New("no files to choose from")
	}

	fmt.Fprintf(p.out, "\nFound %d CSV file(s):\n", len(files))
	for i, file := range files {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, file.Name)
	}

	n, err := p.Choose(ctx, fmt.Sprintf("\nSelect CSV file to sort (1-%d): ", len(files)), len(files))
	if err != nil {
		return types.FileDescriptor{}, err
	}

	return files[n-1], nil
}

// DisplayColumns prints the numbered column list.
func (p *Prompter) DisplayColumns(columns []string) {
	fmt.Fprintln(p.out, "\nAvailable columns:")
	for i, col := range columns {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, col)
	}
}

// ChooseColumn returns the column the user picks by its 1-based position.
// The list is expected to have been shown with DisplayColumns.
func (p *Prompter) ChooseColumn(ctx context.Context, columns []string) (string, error) {
	if len(columns) == 0 {
		return "", errors.New("no columns to choose from")
	}

	n, err := p.Choose(ctx, fmt.Sprintf("\nSelect column to sort by (1-%d): ", len(columns)), len(columns))
	if err != nil {
		return "", err
	}

	return columns[n-1], nil
}

// ChooseMode shows the sorting menu until one of the four types is picked.
func (p *Prompter) ChooseMode(ctx context.Context) (sorter.Mode, error) {
	modes := sorter.Modes()

	for {
		fmt.Fprintln(p.out, "\nSelect sorting type:")
		for i, m := range modes {
			fmt.Fprintf(p.out, "%d. %s\n", i+1, m.Label())
		}
		fmt.Fprintf(p.out, "Enter your choice (1-%d): ", len(modes))

		line, err := p.ReadLine(ctx)
		if err != nil {
			return 0, err
		}

		n, err := validation.ParseChoice(line, len(modes))
		if err == nil {
			return modes[n-1], nil
		}
		fmt.Fprintln(p.out, "Invalid choice. Please enter 1, 2, 3, or 4.")
	}
}

// Pause blocks until the user presses Enter, input ends, or ctx is done.
func (p *Prompter) Pause(ctx context.Context) {
	fmt.Fprint(p.out, "\nPress Enter to exit...")
	_, _ = p.ReadLine(ctx)
}
