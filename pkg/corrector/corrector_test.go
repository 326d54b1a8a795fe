package corrector

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/dataset"
	"github.com/bastiangx/wordfix/pkg/dictionary"
	"github.com/bastiangx/wordfix/pkg/suggest"
)

func testDictionary() *dictionary.Dictionary {
	d := dictionary.New()
	d.Set("кот", 100)
	d.Set("кит", 30)
	d.Set("код", 10)
	d.Set("молоко", 50)
	d.Set("cat", 1000)
	return d
}

var testPairs = []dataset.Pair{
	{Observed: "кат", Expected: "кот"},
	{Observed: "малоко", Expected: "молоко"},
	{Observed: "кот", Expected: "кот"},
}

func newTestCorrector(opts ...func(*Settings)) *Corrector {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return Build(testDictionary(), testPairs, s)
}

func TestCorrect(t *testing.T) {
	c := newTestCorrector()

	testCases := []struct {
		description string
		input       string
		expected    Result
	}{
		{
			"misspelling",
			"кат",
			Result{
				Original:    "кат",
				Corrected:   "кот",
				Changed:     true,
				Suggestions: []suggest.Suggestion{{Word: "кот", Frequency: 100}, {Word: "кит", Frequency: 30}},
			},
		},
		{
			"vowel in longer word",
			"малоко",
			Result{
				Original:    "малоко",
				Corrected:   "молоко",
				Changed:     true,
				Suggestions: []suggest.Suggestion{{Word: "молоко", Frequency: 50}},
			},
		},
		{"known word stays", "кот", Result{Original: "кот", Corrected: "кот"}},
		{"other script passes through", "cot", Result{Original: "cot", Corrected: "cot"}},
		{"mixed script passes through", "кoт", Result{Original: "кoт", Corrected: "кoт"}},
		{"empty", "", Result{}},
		{"nothing close", "жжж", Result{Original: "жжж", Corrected: "жжж"}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := c.Correct(tc.input)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("Correct(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestCorrectFoldCase(t *testing.T) {
	plain := newTestCorrector()
	if got := plain.Correct("Кат"); got.Changed {
		t.Errorf("Correct(Кат) without case folding = %+v; want unchanged", got)
	}

	folded := newTestCorrector(func(s *Settings) { s.FoldCase = true })
	got := folded.Correct("Кат")
	if got.Corrected != "Кот" || !got.Changed {
		t.Errorf("Correct(Кат) = %+v; want Кот", got)
	}
}

func TestCorrectAnyScript(t *testing.T) {
	c := newTestCorrector(func(s *Settings) { s.Script = utils.ScriptAny })
	if got := c.Correct("cot"); got.Corrected != "cat" {
		t.Errorf("Correct(cot) = %+v; want cat", got)
	}
}

func TestCache(t *testing.T) {
	c := newTestCorrector(func(s *Settings) { s.CacheSize = 1 })

	first := c.Correct("кат")
	second := c.Correct("кат")
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached result differs (-first +second):\n%s", diff)
	}
	c.Correct("малоко")

	stats := c.Stats()
	want := map[string]int{
		"cacheWords":   1,
		"maxCacheSize": 1,
		"cacheHits":    1,
		"cacheMisses":  2,
		"cacheEvicted": 1,
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
	}

	if newTestCorrector().Stats() != nil {
		t.Error("Stats() without a cache should be nil")
	}
}

func TestCachedSuggestionsAreCopied(t *testing.T) {
	c := newTestCorrector(func(s *Settings) { s.CacheSize = 4 })

	first := c.Correct("кат")
	if len(first.Suggestions) == 0 {
		t.Fatal("Correct(кат) returned no suggestions")
	}
	want := first.Suggestions[0]
	first.Suggestions[0].Word = "мышь"
	first.Suggestions[0].Frequency = -1

	second := c.Correct("кат")
	if diff := cmp.Diff(want, second.Suggestions[0]); diff != "" {
		t.Errorf("cached suggestion changed by caller (-want +got):\n%s", diff)
	}
}

func TestCorrectAll(t *testing.T) {
	c := newTestCorrector(func(s *Settings) { s.CacheSize = 16 })

	var words []string
	for i := 0; i < 50; i++ {
		words = append(words, []string{"кат", "малоко", "кот", "cot", fmt.Sprint(i)}[i%5])
	}
	got, err := c.CorrectAll(context.Background(), words, 4)
	if err != nil {
		t.Fatalf("CorrectAll() error: %v", err)
	}
	if len(got) != len(words) {
		t.Fatalf("CorrectAll() returned %d results; want %d", len(got), len(words))
	}
	for i, w := range words {
		if want := c.Correct(w); !cmp.Equal(want, got[i]) {
			t.Errorf("result %d = %+v; want %+v", i, got[i], want)
		}
	}
}

func TestCorrectAllCancelled(t *testing.T) {
	c := newTestCorrector()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.CorrectAll(ctx, []string{"кат", "малоко"}, 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("CorrectAll() error = %v; want context.Canceled", err)
	}
}
