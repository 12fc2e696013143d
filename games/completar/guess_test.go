/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package completar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGuessUppercases(t *testing.T) {
	r, err := ParseGuess("t")
	require.NoError(t, err)
	assert.Equal(t, 'T', r)

	r, err = ParseGuess("ñ")
	require.NoError(t, err)
	assert.Equal(t, 'Ñ', r)
}

func TestParseGuessRequiresSingleCharacter(t *testing.T) {
	for _, s := range []string{"", "ab", "\xff"} {
		_, err := ParseGuess(s)
		assert.ErrorIs(t, err, ErrInvalidGuess, "%q", s)
	}
}

// Names may contain digits and punctuation, so those are valid guesses.
func TestParseGuessAcceptsAnyCharacter(t *testing.T) {
	for s, want := range map[string]rune{"7": '7', "-": '-', " ": ' '} {
		r, err := ParseGuess(s)
		require.NoError(t, err, "%q", s)
		assert.Equal(t, want, r)
	}
}

func TestIsIncorrectGuess(t *testing.T) {
	removed := []rune{'T', 'A', 'C'}

	guess, err := ParseGuess("t")
	require.NoError(t, err)
	assert.False(t, IsIncorrectGuess(removed, guess))

	assert.True(t, IsIncorrectGuess(removed, 'X'))
	assert.True(t, IsIncorrectGuess(nil, 'T'))
	assert.True(t, IsIncorrectGuess([]rune{}, 'T'))
}

func TestLowercaseRemovedNeverMatches(t *testing.T) {
	res, err := Obfuscate("gato", FirstLetter)
	require.NoError(t, err)

	for _, raw := range []string{"g", "G"} {
		ok, err := res.Check(raw)
		require.NoError(t, err)
		assert.False(t, ok, raw)
	}
}

func TestResultCheck(t *testing.T) {
	res, err := Obfuscate("CAT", AllLetters)
	require.NoError(t, err)

	ok, err := res.Check("a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = res.Check("z")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = res.Check("ca")
	assert.ErrorIs(t, err, ErrInvalidGuess)
}
