package sorter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModes_MenuOrder(t *testing.T) {
	t.Parallel()

	var tokens, labels []string
	for _, m := range Modes() {
		tokens = append(tokens, m.Token())
		labels = append(labels, m.Label())
	}

	assert.Equal(t, []string{"alpha_asc", "alpha_desc", "num_asc", "num_desc"}, tokens)
	assert.Equal(t, []string{
		"Alphabetical (A-Z)",
		"Alphabetical (Z-A)",
		"Numerical (Low to High)",
		"Numerical (High to Low)",
	}, labels)
}

func TestMode_Flags(t *testing.T) {
	t.Parallel()

	assert.False(t, AlphaAsc.Numeric())
	assert.False(t, AlphaAsc.Descending())
	assert.True(t, AlphaDesc.Descending())
	assert.True(t, NumAsc.Numeric())
	assert.False(t, NumAsc.Descending())
	assert.True(t, NumDesc.Numeric())
	assert.True(t, NumDesc.Descending())
	assert.False(t, Mode(0).Valid())
}

func TestModeFromChoice(t *testing.T) {
	t.Parallel()

	for i, want := range Modes() {
		got, err := ModeFromChoice(i + 1)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ModeFromChoice(5)
	require.ErrorIs(t, err, ErrUnknownMode)
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := map[string]Mode{
		"alpha_asc":  AlphaAsc,
		"ALPHA_DESC": AlphaDesc,
		" num_asc ":  NumAsc,
		"num_desc":   NumDesc,
		"3":          NumAsc,
	}
	for input, want := range tests {
		got, err := ParseMode(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	for _, input := range []string{"", "0", "numeric", "asc"} {
		_, err := ParseMode(input)
		require.ErrorIs(t, err, ErrUnknownMode, "input %q", input)
	}
}
