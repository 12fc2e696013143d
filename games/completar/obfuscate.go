/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package completar redacts presentation names for the fill-in-the-letters
// game and checks guessed letters against what was removed.
//
// Names are handled as runes. A redacted position is always replaced by a
// single Marker, so underscore renderings keep the length of the name.
package completar

import (
	"math/rand/v2"
	"slices"
	"strings"
)

// Marker replaces every removed letter in a rendered name.
const Marker = '_'

// IndexSource yields a pseudo-random integer in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type IndexSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// Result is a single redaction of a name.
type Result struct {
	Name     string
	Mode     Mode
	Rendered string

	// Letters holds the name split into characters. Only set for Spaced.
	Letters []string

	// Removed holds the redacted characters in the order the mode records them.
	Removed []rune
}

// RemovedStrings returns Removed as one-character strings.
func (r Result) RemovedStrings() []string {
	out := make([]string, 0, len(r.Removed))
	for _, c := range r.Removed {
		out = append(out, string(c))
	}

	return out
}

// Obfuscator redacts names. The zero value uses the global math/rand/v2 source.
type Obfuscator struct {
	src IndexSource
}

func New(src IndexSource) *Obfuscator {
	return &Obfuscator{src: src}
}

// Obfuscate redacts name with the default random source.
func Obfuscate(name string, mode Mode) (Result, error) {
	return (&Obfuscator{}).Obfuscate(name, mode)
}

func (o *Obfuscator) Obfuscate(name string, mode Mode) (Result, error) {
	if !mode.Valid() {
		return Result{}, ErrInvalidMode
	}

	if name == "" {
		return Result{}, ErrEmptyName
	}

	chars := []rune(name)
	res := Result{Name: name, Mode: mode}

	switch mode {
	case FirstLetter:
		res.Rendered, res.Removed = firstLetter(chars)
	case TwoRandomLetters:
		res.Rendered, res.Removed = o.twoRandomLetters(chars)
	case AllLetters:
		res.Rendered, res.Removed = allLetters(chars)
	case Spaced:
		res.Letters = spaced(chars)
		res.Removed = []rune{}
	}

	return res, nil
}

// A name of one character is removed whole.
func firstLetter(chars []rune) (string, []rune) {
	if len(chars) <= 1 {
		return string(Marker), slices.Clone(chars)
	}

	return string(Marker) + string(chars[1:]), []rune{chars[0]}
}

// Names of two characters or fewer lose their first character with no marker.
func (o *Obfuscator) twoRandomLetters(chars []rune) (string, []rune) {
	if len(chars) <= 2 {
		return string(chars[1:]), []rune{}
	}

	src := o.src
	if src == nil {
		src = globalSource{}
	}

	// Index 0 is never eligible. The second draw skips over the first,
	// which samples without replacement in exactly two calls.
	eligible := len(chars) - 1
	first := 1 + src.IntN(eligible)
	second := 1 + src.IntN(eligible-1)
	if second >= first {
		second++
	}

	indices := []int{first, second}
	slices.SortFunc(indices, func(a, b int) int { return b - a })

	out := slices.Clone(chars)
	removed := make([]rune, 0, len(indices))
	for _, i := range indices {
		removed = append(removed, out[i])
		out[i] = Marker
	}

	return string(out), removed
}

func allLetters(chars []rune) (string, []rune) {
	removed := slices.Clone(chars)
	slices.Reverse(removed)

	return strings.Repeat(string(Marker), len(chars)), removed
}

func spaced(chars []rune) []string {
	out := make([]string, 0, len(chars))
	for _, c := range chars {
		out = append(out, string(c))
	}

	return out
}
