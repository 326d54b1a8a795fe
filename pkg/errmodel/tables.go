// Package errmodel learns how often each edit operation appears in a labeled
// corpus of misspellings and ranks candidate operations by those frequencies.
package errmodel

import "github.com/bastiangx/wordfix/pkg/levenshtein"

// Pair is an ordered pair of consecutive actions.
type Pair struct {
	Prev levenshtein.Action
	Next levenshtein.Action
}

// Tables holds the error model counters.
type Tables struct {
	Types    map[levenshtein.ActionType]int64
	Detailed map[levenshtein.Action]int64
	Context  map[Pair]int64
}

// NewTables returns empty tables.
func NewTables() Tables {
	return Tables{
		Types:    make(map[levenshtein.ActionType]int64),
		Detailed: make(map[levenshtein.Action]int64),
		Context:  make(map[Pair]int64),
	}
}

// Add counts one trace.
func (t Tables) Add(actions []levenshtein.Action) {
	var prev levenshtein.Action
	for _, act := range actions {
		t.Types[act.Type]++
		t.Detailed[act]++
		if !prev.IsZero() {
			t.Context[Pair{Prev: prev, Next: act}]++
		}
		prev = act
	}
}

func sum[K comparable](m map[K]int64) float64 {
	var total float64
	for _, v := range m {
		total += float64(v)
	}
	return total
}
