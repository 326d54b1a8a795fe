package utils

import (
	"strings"
	"unicode"
)

// CaseMask records which rune positions of a word were upper case.
type CaseMask struct {
	upper []bool
	any   bool
}

// FoldCase returns the lower-cased word and the mask needed to restore it.
func FoldCase(s string) (string, CaseMask) {
	var mask CaseMask
	i := 0
	for _, r := range s {
		if unicode.IsUpper(r) {
			if mask.upper == nil {
				mask.upper = make([]bool, len(s))
			}
			mask.upper[i] = true
			mask.any = true
		}
		i++
	}
	if !mask.any {
		return s, mask
	}
	mask.upper = mask.upper[:i]
	return strings.ToLower(s), mask
}

// Apply upper-cases the runes of word at the recorded positions. Positions
// past the end of word are ignored.
func (m CaseMask) Apply(word string) string {
	if !m.any {
		return word
	}
	runes := []rune(word)
	for i := range runes {
		if i < len(m.upper) && m.upper[i] {
			runes[i] = unicode.ToUpper(runes[i])
		}
	}
	return string(runes)
}
