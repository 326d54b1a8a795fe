package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeWord trims surrounding space and converts word to NFC so that
// composed and decomposed forms (й vs и + U+0306) index the same trie path.
func NormalizeWord(word string) string {
	return norm.NFC.String(strings.TrimSpace(word))
}
