// Package search enumerates dictionary words close to a misspelled input by
// walking a trie under a bounded edit budget. The walk is steered by a Ranker
// that keeps only the most likely edits at every step.
package search

import (
	lv "github.com/bastiangx/wordfix/pkg/levenshtein"
	"github.com/bastiangx/wordfix/pkg/trie"
)

const (
	DefaultMaxChanges = 1
	DefaultMaxActions = 10
)

// Ranker orders candidate actions and keeps at most limit of them.
// *errmodel.Scorer satisfies it.
type Ranker interface {
	Rank(candidates []lv.Action, prev lv.Action, limit int) []lv.Action
}

// Ops selects which edit kinds the search may use. Matches are always allowed.
type Ops struct {
	Replacements bool
	Insertions   bool
	Removals     bool
}

// Candidate is one word reached by the search together with the actions that
// turn the input into it.
type Candidate struct {
	Word    string
	Path    []lv.Action
	Changes int
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithMaxChanges bounds the number of non-Match actions on a path.
func WithMaxChanges(n int) Option {
	return func(s *Searcher) {
		if n >= 0 {
			s.maxChanges = n
		}
	}
}

// WithMaxActions bounds how many ranked actions are followed from each state.
func WithMaxActions(n int) Option {
	return func(s *Searcher) {
		if n >= 0 {
			s.maxActions = n
		}
	}
}

// Searcher is immutable after New and safe for concurrent use as long as the
// trie and ranker are not modified.
type Searcher struct {
	trie       *trie.Trie
	ranker     Ranker
	maxChanges int
	maxActions int
}

// New returns a Searcher over t ranked by r.
func New(t *trie.Trie, r Ranker, opts ...Option) *Searcher {
	s := &Searcher{
		trie:       t,
		ranker:     r,
		maxChanges: DefaultMaxChanges,
		maxActions: DefaultMaxActions,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxChanges returns the edit budget.
func (s *Searcher) MaxChanges() int { return s.maxChanges }

// Search returns the distinct dictionary words reachable from word, in the
// order they were first found.
func (s *Searcher) Search(word string, ops Ops) []string {
	paths := s.SearchPaths(word, ops)
	seen := make(map[string]struct{}, len(paths))
	words := make([]string, 0, len(paths))
	for _, c := range paths {
		if _, ok := seen[c.Word]; ok {
			continue
		}
		seen[c.Word] = struct{}{}
		words = append(words, c.Word)
	}
	return words
}

// SearchPaths returns every path the search completed, one entry per path.
// The same word may appear more than once with different paths.
func (s *Searcher) SearchPaths(word string, ops Ops) []Candidate {
	w := walk{
		Searcher: s,
		input:    []rune(word),
		ops:      ops,
	}
	w.ending = endingSize(len(w.input))
	w.visit(0, s.trie.Root(), nil, 0, lv.Action{})
	return w.found
}

// endingSize is the number of trailing input runes that are never edited.
func endingSize(n int) int {
	switch {
	case n > 6:
		return 3
	case n > 4:
		return 2
	default:
		return 1
	}
}

// walk holds the per-call state of one search.
type walk struct {
	*Searcher
	input  []rune
	ops    Ops
	ending int
	found  []Candidate
}

func (w *walk) visit(pos int, node *trie.Node, path []lv.Action, changes int, prev lv.Action) {
	if pos == len(w.input) && node.Terminal() {
		w.found = append(w.found, w.emit(path, changes))
	}

	canEdit := changes < w.maxChanges && len(w.input)-pos > w.ending
	ops := Ops{
		Replacements: w.ops.Replacements && canEdit,
		Insertions:   w.ops.Insertions && canEdit,
		Removals:     w.ops.Removals && canEdit,
	}

	candidates := w.candidates(pos, node, ops)
	if len(candidates) == 0 {
		return
	}
	for _, act := range w.ranker.Rank(candidates, prev, w.maxActions) {
		next := append(path[:len(path):len(path)], act)
		switch act.Type {
		case lv.MatchType:
			child, _ := node.Child(act.To)
			w.visit(pos+1, child, next, changes, act)
		case lv.ReplacementType:
			child, _ := node.Child(act.To)
			w.visit(pos+1, child, next, changes+1, act)
		case lv.InsertionType:
			child, _ := node.Child(act.To)
			w.visit(pos, child, next, changes+1, act)
		case lv.RemovalType:
			w.visit(pos+1, node, next, changes+1, act)
		}
	}
}

// candidates lists the actions applicable at (pos, node), without duplicates,
// in edge order.
func (w *walk) candidates(pos int, node *trie.Node, ops Ops) []lv.Action {
	var out []lv.Action
	seen := make(map[lv.Action]struct{})
	add := func(a lv.Action) {
		if _, ok := seen[a]; ok {
			return
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}

	if pos == len(w.input) {
		if ops.Insertions {
			for _, edge := range node.Labels() {
				add(lv.Insertion(edge))
			}
		}
		return out
	}

	in := w.input[pos]
	for _, edge := range node.Labels() {
		if in == edge {
			add(lv.Match(in))
		}
		if ops.Removals {
			add(lv.Removal(in))
		}
		if ops.Insertions {
			add(lv.Insertion(edge))
		}
		if ops.Replacements && in != edge {
			add(lv.Replacement(in, edge))
		}
	}
	if ops.Removals {
		add(lv.Removal(in))
	}
	return out
}

func (w *walk) emit(path []lv.Action, changes int) Candidate {
	word := make([]rune, 0, len(path))
	for _, act := range path {
		if r, ok := act.Letter(); ok {
			word = append(word, r)
		}
	}
	return Candidate{
		Word:    string(word),
		Path:    append([]lv.Action(nil), path...),
		Changes: changes,
	}
}
