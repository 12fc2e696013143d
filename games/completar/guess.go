/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package completar

import (
	"slices"
	"unicode"
	"unicode/utf8"
)

// ParseGuess uppercases a submitted letter. It must be exactly one character.
func ParseGuess(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, ErrInvalidGuess
	}

	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0, ErrInvalidGuess
	}

	return unicode.ToUpper(r), nil
}

// IsIncorrectGuess reports whether guess is missing from removed.
//
// Only the guess is uppercased (by ParseGuess); removed letters keep the
// case they had in the stored name, so a lowercase removed letter can never
// be matched.
// TODO: decide with the frontend whether stored letters should be folded too.
func IsIncorrectGuess(removed []rune, guess rune) bool {
	return !slices.Contains(removed, guess)
}

// Check parses raw and validates it against the letters r removed.
func (r Result) Check(raw string) (bool, error) {
	guess, err := ParseGuess(raw)
	if err != nil {
		return false, err
	}

	return !IsIncorrectGuess(r.Removed, guess), nil
}
