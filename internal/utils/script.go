package utils

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Script is the alphabet a word is written in.
type Script int

const (
	ScriptOther Script = iota
	ScriptRussian
	ScriptEnglish
	// ScriptAny accepts every word. DetectScript never returns it.
	ScriptAny
)

func (s Script) String() string {
	switch s {
	case ScriptRussian:
		return "rus"
	case ScriptEnglish:
		return "eng"
	case ScriptAny:
		return "any"
	default:
		return "other"
	}
}

// ParseScript maps a config value to a Script.
func ParseScript(name string) (Script, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rus", "ru", "russian":
		return ScriptRussian, nil
	case "eng", "en", "english":
		return ScriptEnglish, nil
	case "any", "":
		return ScriptAny, nil
	case "other":
		return ScriptOther, nil
	}
	return ScriptOther, fmt.Errorf("unknown script %q", name)
}

// DetectScript classifies word. A word is Russian or English only when every
// character is a letter of that alphabet; anything else, including the empty
// word, is ScriptOther.
func DetectScript(word string) Script {
	var rus, eng, other bool
	for _, r := range word {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			eng = true
		case r >= 'а' && r <= 'я', r >= 'А' && r <= 'Я', r == 'ё', r == 'Ё':
			rus = true
		default:
			other = true
		}
	}
	switch {
	case rus && !eng && !other:
		return ScriptRussian
	case eng && !rus && !other:
		return ScriptEnglish
	default:
		return ScriptOther
	}
}

// Accepts reports whether word belongs to s.
func (s Script) Accepts(word string) bool {
	return s == ScriptAny || DetectScript(word) == s
}

// IsValidInput checks if a query word should be processed at all.
// Empty words, words longer than maxRunes and words with spaces or control
// characters are rejected. A non-positive maxRunes disables the length check.
func IsValidInput(s string, maxRunes int) bool {
	if s == "" || !utf8.ValidString(s) {
		return false
	}
	if maxRunes > 0 && utf8.RuneCountInString(s) > maxRunes {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}
