// Package levenshtein computes edit distances together with the
// character-level operations that realize them.
package levenshtein

import "fmt"

// ActionType is the coarse kind of an edit operation.
type ActionType uint8

const (
	NoType ActionType = iota
	RemovalType
	InsertionType
	ReplacementType
	MatchType
)

func (t ActionType) String() string {
	switch t {
	case RemovalType:
		return "removal"
	case InsertionType:
		return "insertion"
	case ReplacementType:
		return "replacement"
	case MatchType:
		return "match"
	}
	return "none"
}

// Action is a single edit operation relating one position of the source to
// one position of the target. Actions are comparable and can be used as map keys.
//
// Removal uses From, Insertion uses To, Match and Replacement use both.
// The zero Action stands for "no action".
type Action struct {
	Type ActionType
	From rune
	To   rune
}

// Removal drops r from the source.
func Removal(r rune) Action { return Action{Type: RemovalType, From: r} }

// Insertion adds r to the target.
func Insertion(r rune) Action { return Action{Type: InsertionType, To: r} }

// Replacement turns from into to.
func Replacement(from, to rune) Action { return Action{Type: ReplacementType, From: from, To: to} }

// Match keeps r unchanged.
func Match(r rune) Action { return Action{Type: MatchType, From: r, To: r} }

// IsZero reports whether a is the empty action.
func (a Action) IsZero() bool { return a.Type == NoType }

// IsEdit reports whether a changes the string (anything but a Match).
func (a Action) IsEdit() bool { return a.Type != NoType && a.Type != MatchType }

// Letter returns the character a appends to the target, if any.
func (a Action) Letter() (rune, bool) {
	switch a.Type {
	case InsertionType, ReplacementType, MatchType:
		return a.To, true
	}
	return 0, false
}

func (a Action) String() string {
	switch a.Type {
	case RemovalType:
		return fmt.Sprintf("remove(%c)", a.From)
	case InsertionType:
		return fmt.Sprintf("insert(%c)", a.To)
	case ReplacementType:
		return fmt.Sprintf("replace(%c→%c)", a.From, a.To)
	case MatchType:
		return fmt.Sprintf("match(%c)", a.From)
	}
	return "none"
}
