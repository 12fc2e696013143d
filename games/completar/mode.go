/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package completar

import "errors"

var (
	ErrInvalidMode  = errors.New("invalid obfuscation mode")
	ErrEmptyName    = errors.New("name must not be empty")
	ErrInvalidGuess = errors.New("guess must be a single character")
)

// Mode selects how a name is redacted.
type Mode int

const (
	FirstLetter Mode = iota + 1
	TwoRandomLetters
	AllLetters
	Spaced
)

var modeTokens = map[Mode]string{
	FirstLetter:      "incompleto1",
	TwoRandomLetters: "incompleto2",
	AllLetters:       "incompletoTotal",
	Spaced:           "letrasSeparadas",
}

// Modes returns every supported mode, in token order.
func Modes() []Mode {
	return []Mode{FirstLetter, TwoRandomLetters, AllLetters, Spaced}
}

// ParseMode maps a path token such as "incompleto1" to its Mode.
func ParseMode(token string) (Mode, error) {
	for m, t := range modeTokens {
		if t == token {
			return m, nil
		}
	}

	return 0, ErrInvalidMode
}

func (m Mode) Valid() bool {
	_, ok := modeTokens[m]

	return ok
}

func (m Mode) String() string {
	if t, ok := modeTokens[m]; ok {
		return t
	}

	return "unknown"
}
