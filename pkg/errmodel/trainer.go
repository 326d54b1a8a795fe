package errmodel

import (
	"unicode/utf8"

	"github.com/bastiangx/wordfix/pkg/levenshtein"
)

// MaxFieldLength is the default rune length at which a training row is dropped.
const MaxFieldLength = 50

// Trainer accumulates Tables from (observed, expected) pairs.
type Trainer struct {
	tables  Tables
	maxLen  int
	rows    int
	skipped int
}

// NewTrainer returns a trainer that skips rows with a field of maxLen runes or
// more. A non-positive maxLen selects MaxFieldLength.
func NewTrainer(maxLen int) *Trainer {
	if maxLen <= 0 {
		maxLen = MaxFieldLength
	}
	return &Trainer{tables: NewTables(), maxLen: maxLen}
}

// Observe aligns observed with expected and counts the resulting actions.
// It returns false when the row was skipped for being too long.
func (tr *Trainer) Observe(observed, expected string) bool {
	if utf8.RuneCountInString(observed) >= tr.maxLen || utf8.RuneCountInString(expected) >= tr.maxLen {
		tr.skipped++
		return false
	}
	tr.tables.Add(levenshtein.Calculate(observed, expected).Actions)
	tr.rows++
	return true
}

// Tables returns the counters collected so far.
// The trainer must not be used after the tables are handed to a Scorer.
func (tr *Trainer) Tables() Tables { return tr.tables }

// Rows returns the number of rows counted.
func (tr *Trainer) Rows() int { return tr.rows }

// Skipped returns the number of rows dropped by the length rule.
func (tr *Trainer) Skipped() int { return tr.skipped }
