// Package corrector wires the search, scorer and selector into a word
// correction pipeline and runs it over single words or whole batches.
package corrector

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/dataset"
	"github.com/bastiangx/wordfix/pkg/dictionary"
	"github.com/bastiangx/wordfix/pkg/errmodel"
	"github.com/bastiangx/wordfix/pkg/search"
	"github.com/bastiangx/wordfix/pkg/suggest"
	"github.com/bastiangx/wordfix/pkg/trie"
)

const DefaultMaxSuggestions = 5

// Result is the outcome of correcting one word.
type Result struct {
	Original    string               `json:"original" msgpack:"o"`
	Corrected   string               `json:"corrected" msgpack:"c"`
	Changed     bool                 `json:"changed" msgpack:"ch"`
	Suggestions []suggest.Suggestion `json:"suggestions" msgpack:"s"`
}

// Option configures a Corrector.
type Option func(*Corrector)

// WithScript restricts correction to words of one alphabet; other words are
// returned unchanged.
func WithScript(s utils.Script) Option {
	return func(c *Corrector) { c.script = s }
}

// WithOps selects the edit kinds the search may use.
func WithOps(ops search.Ops) Option {
	return func(c *Corrector) { c.ops = ops }
}

// WithCache enables an LRU of results. A non-positive size disables it.
func WithCache(size int) Option {
	return func(c *Corrector) {
		if size > 0 {
			c.cache = NewCache(size)
		} else {
			c.cache = nil
		}
	}
}

// WithFoldCase corrects the lower-cased word and restores the input's
// capitals on the result.
func WithFoldCase(fold bool) Option {
	return func(c *Corrector) { c.foldCase = fold }
}

// WithMaxSuggestions bounds Result.Suggestions.
func WithMaxSuggestions(n int) Option {
	return func(c *Corrector) {
		if n >= 0 {
			c.maxSuggestions = n
		}
	}
}

// Corrector is safe for concurrent use.
type Corrector struct {
	searcher *search.Searcher
	selector *suggest.Selector

	script         utils.Script
	ops            search.Ops
	foldCase       bool
	maxSuggestions int
	cache          *Cache
}

// New returns a corrector over a prepared searcher and selector.
func New(searcher *search.Searcher, selector *suggest.Selector, opts ...Option) *Corrector {
	c := &Corrector{
		searcher:       searcher,
		selector:       selector,
		script:         utils.ScriptAny,
		ops:            search.Ops{Replacements: true},
		maxSuggestions: DefaultMaxSuggestions,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Settings holds the tunables Build needs.
type Settings struct {
	MaxChanges     int
	MaxActions     int
	Ops            search.Ops
	Weights        errmodel.Weights
	Absolute       float64
	Relative       float64
	MaxFieldLength int
	Script         utils.Script
	FoldCase       bool
	CacheSize      int
	MaxSuggestions int
}

// DefaultSettings returns the settings of the reference pipeline.
func DefaultSettings() Settings {
	return Settings{
		MaxChanges:     search.DefaultMaxChanges,
		MaxActions:     search.DefaultMaxActions,
		Ops:            search.Ops{Replacements: true},
		Weights:        errmodel.DefaultWeights(),
		Absolute:       suggest.DefaultAbsoluteThreshold,
		Relative:       suggest.DefaultRelativeThreshold,
		MaxFieldLength: errmodel.MaxFieldLength,
		Script:         utils.ScriptRussian,
		MaxSuggestions: DefaultMaxSuggestions,
	}
}

// Build indexes dict, trains the error model on pairs and returns the
// assembled corrector.
func Build(dict *dictionary.Dictionary, pairs []dataset.Pair, s Settings) *Corrector {
	t := trie.New()
	dict.Each(func(word string, _ int64) error {
		t.AddWord(word)
		return nil
	})

	trainer := errmodel.NewTrainer(s.MaxFieldLength)
	for _, p := range pairs {
		trainer.Observe(utils.NormalizeWord(p.Observed), utils.NormalizeWord(p.Expected))
	}
	scorer := errmodel.NewScorer(trainer.Tables(), s.Weights)
	log.Debugf("Error model trained: %d rows, %d skipped, stats %v", trainer.Rows(), trainer.Skipped(), scorer.Stats())

	searcher := search.New(t, scorer,
		search.WithMaxChanges(s.MaxChanges),
		search.WithMaxActions(s.MaxActions),
	)
	selector := suggest.NewSelector(dict, s.Absolute, s.Relative)

	return New(searcher, selector,
		WithScript(s.Script),
		WithOps(s.Ops),
		WithFoldCase(s.FoldCase),
		WithCache(s.CacheSize),
		WithMaxSuggestions(s.MaxSuggestions),
	)
}

// Correct returns the best correction of word, or word itself when no
// candidate passes the frequency filters.
func (c *Corrector) Correct(word string) Result {
	res := Result{Original: word, Corrected: word}

	query := utils.NormalizeWord(word)
	var mask utils.CaseMask
	if c.foldCase {
		query, mask = utils.FoldCase(query)
	}
	if query == "" || !c.script.Accepts(query) {
		return res
	}

	e, ok := c.lookup(query)
	if len(e.suggestions) > 0 {
		// The entry may be cached; callers get their own copy.
		res.Suggestions = slices.Clone(e.suggestions)
	}
	if ok && e.corrected != query {
		res.Corrected = mask.Apply(e.corrected)
		res.Changed = true
	}
	return res
}

func (c *Corrector) lookup(query string) (entry, bool) {
	if c.cache != nil {
		if e, ok := c.cache.get(query); ok {
			return e, e.found
		}
	}

	ranked := c.selector.Rank(query, c.searcher.Search(query, c.ops))
	e := entry{}
	if len(ranked) > 0 {
		e.corrected = ranked[0].Word
		e.found = true
	}
	if len(ranked) > c.maxSuggestions {
		ranked = ranked[:c.maxSuggestions]
	}
	e.suggestions = ranked

	if c.cache != nil {
		c.cache.put(query, e)
	}
	return e, e.found
}

// CorrectAll corrects words on up to workers goroutines. Results are in
// input order. It stops early when ctx is cancelled.
func (c *Corrector) CorrectAll(ctx context.Context, words []string, workers int) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(words))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, w := range words {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.Correct(w)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch correction interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch correction interrupted: %w", err)
	}
	return results, nil
}

// Stats reports cache usage, or nil when caching is off.
func (c *Corrector) Stats() map[string]int {
	if c.cache == nil {
		return nil
	}
	return c.cache.Stats()
}
