package sorter

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode is one of the four fixed (comparison basis, direction) pairs.
type Mode int

// Sort modes, numbered as in the sorting menu.
const (
	AlphaAsc Mode = iota + 1
	AlphaDesc
	NumAsc
	NumDesc
)

var modeTokens = map[Mode]string{
	AlphaAsc:  "alpha_asc",
	AlphaDesc: "alpha_desc",
	NumAsc:    "num_asc",
	NumDesc:   "num_desc",
}

var modeLabels = map[Mode]string{
	AlphaAsc:  "Alphabetical (A-Z)",
	AlphaDesc: "Alphabetical (Z-A)",
	NumAsc:    "Numerical (Low to High)",
	NumDesc:   "Numerical (High to Low)",
}

// Modes returns every mode in menu order.
func Modes() []Mode {
	return []Mode{AlphaAsc, AlphaDesc, NumAsc, NumDesc}
}

// Valid reports whether m is one of the four modes.
func (m Mode) Valid() bool {
	_, ok := modeTokens[m]
	return ok
}

// Token is the short name used in output file names, e.g. "num_asc".
func (m Mode) Token() string {
	if tok, ok := modeTokens[m]; ok {
		return tok
	}
	return fmt.Sprintf("mode_%d", int(m))
}

// Label is the menu text, e.g. "Numerical (Low to High)".
func (m Mode) Label() string {
	if label, ok := modeLabels[m]; ok {
		return label
	}
	return m.Token()
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return m.Token()
}

// Numeric reports whether the mode compares parsed numbers.
func (m Mode) Numeric() bool {
	return m == NumAsc || m == NumDesc
}

// Descending reports whether the comparison direction is reversed.
func (m Mode) Descending() bool {
	return m == AlphaDesc || m == NumDesc
}

// ModeFromChoice maps a 1-based menu choice to a mode.
func ModeFromChoice(n int) (Mode, error) {
	m := Mode(n)
	if !m.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownMode, n)
	}
	return m, nil
}

// ParseMode accepts a token ("num_asc") or a menu number ("3").
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if n, err := strconv.Atoi(s); err == nil {
		return ModeFromChoice(n)
	}
	for m, tok := range modeTokens {
		if tok == s {
			return m, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}
