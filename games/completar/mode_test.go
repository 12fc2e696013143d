/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package completar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tokens := map[string]Mode{
		"incompleto1":     FirstLetter,
		"incompleto2":     TwoRandomLetters,
		"incompletoTotal": AllLetters,
		"letrasSeparadas": Spaced,
	}

	for token, want := range tokens {
		got, err := ParseMode(token)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, token, got.String())
	}
}

func TestParseModeUnknown(t *testing.T) {
	for _, token := range []string{"bogus", "", "Incompleto1", "incompleto3"} {
		_, err := ParseMode(token)
		assert.ErrorIs(t, err, ErrInvalidMode, token)
	}

	assert.Equal(t, "unknown", Mode(42).String())
}
