package suggest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type freqTable struct {
	counts map[string]int64
	total  int64
}

func (f freqTable) Freq(word string) int64 { return f.counts[word] }
func (f freqTable) Total() int64           { return f.total }

func TestBest(t *testing.T) {
	freqs := freqTable{
		counts: map[string]int64{"cat": 100, "cart": 1, "bat": 100, "car": 50, "cot": 10},
		total:  10000,
	}

	testCases := []struct {
		description string
		word        string
		candidates  []string
		absolute    float64
		relative    float64
		expected    string
		ok          bool
	}{
		{"absolute filter", "cxt", []string{"cat", "cart"}, 0.001, 2.5, "cat", true},
		{"all below absolute", "cxt", []string{"cart"}, 0.001, 2.5, "", false},
		{"no candidates", "cxt", nil, 0.001, 2.5, "", false},
		{"tie keeps first", "cxt", []string{"bat", "cat"}, 0.001, 2.5, "bat", true},
		{"tie keeps first reversed", "cxt", []string{"cat", "bat"}, 0.001, 2.5, "cat", true},
		{"most frequent wins", "cxt", []string{"car", "cat"}, 0.001, 2.5, "cat", true},
		{"relative to known word", "cot", []string{"car", "cat"}, 0.001, 5, "cat", true},
		{"known word too frequent", "car", []string{"cat"}, 0.001, 2.5, "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			s := NewSelector(freqs, tc.absolute, tc.relative)
			got, ok := s.Best(tc.word, tc.candidates)
			if got != tc.expected || ok != tc.ok {
				t.Errorf("Best(%q, %q) = %q, %v; want %q, %v", tc.word, tc.candidates, got, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestRelativeRatioWithUnknownWord(t *testing.T) {
	freqs := freqTable{counts: map[string]int64{"cat": 100}, total: 100}
	// Absolute threshold below zero lets a zero count through that filter.
	s := NewSelector(freqs, -1, 2.5)

	// 0/0 is NaN and never passes.
	if got, ok := s.Best("cxt", []string{"dog"}); ok {
		t.Errorf("Best(cxt, [dog]) = %q; want no result", got)
	}
	// x/0 is +Inf and always passes.
	if got, ok := s.Best("cxt", []string{"dog", "cat"}); !ok || got != "cat" {
		t.Errorf("Best(cxt, [dog cat]) = %q, %v; want cat", got, ok)
	}
}

func TestEmptyTotal(t *testing.T) {
	s := NewSelector(freqTable{counts: map[string]int64{}}, DefaultAbsoluteThreshold, DefaultRelativeThreshold)
	if got, ok := s.Best("cxt", []string{"cat"}); ok {
		t.Errorf("Best over an empty table = %q; want no result", got)
	}
}

func TestRank(t *testing.T) {
	freqs := freqTable{
		counts: map[string]int64{"cat": 100, "bat": 300, "hat": 100, "cart": 1},
		total:  10000,
	}
	s := NewSelector(freqs, DefaultAbsoluteThreshold, DefaultRelativeThreshold)

	got := s.Rank("cxt", []string{"cat", "cart", "hat", "bat"})
	want := []Suggestion{{"bat", 300}, {"cat", 100}, {"hat", 100}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rank mismatch (-want +got):\n%s", diff)
	}
}
