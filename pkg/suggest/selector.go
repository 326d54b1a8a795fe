// Package suggest picks the correction to keep among the words the search
// found, using dictionary frequencies.
package suggest

import "sort"

const (
	DefaultAbsoluteThreshold = 0.0001
	DefaultRelativeThreshold = 2.5
)

// Frequencies exposes word counts. *dictionary.Dictionary implements it.
type Frequencies interface {
	Freq(word string) int64
	Total() int64
}

// Suggestion is a candidate that passed both thresholds.
type Suggestion struct {
	Word      string `json:"word" msgpack:"w"`
	Frequency int64  `json:"frequency" msgpack:"f"`
}

// Selector filters candidates by absolute and relative frequency.
type Selector struct {
	freqs    Frequencies
	absolute float64
	relative float64
}

// NewSelector returns a selector keeping candidates whose share of the total
// count exceeds absolute and whose count exceeds relative times the count of
// the input word.
func NewSelector(freqs Frequencies, absolute, relative float64) *Selector {
	return &Selector{freqs: freqs, absolute: absolute, relative: relative}
}

// Best returns the most frequent surviving candidate. Among equally frequent
// survivors the earliest one wins. ok is false when nothing survives.
func (s *Selector) Best(word string, candidates []string) (string, bool) {
	ranked := s.Rank(word, candidates)
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].Word, true
}

// Rank returns every surviving candidate ordered by descending frequency,
// preserving candidate order among ties.
func (s *Selector) Rank(word string, candidates []string) []Suggestion {
	total := float64(s.freqs.Total())
	own := float64(s.freqs.Freq(word))

	var out []Suggestion
	for _, c := range candidates {
		f := s.freqs.Freq(c)
		// A zero own count makes the ratio NaN (0/0, rejected) or +Inf (accepted).
		if !(float64(f)/total > s.absolute) || !(float64(f)/own > s.relative) {
			continue
		}
		out = append(out, Suggestion{Word: c, Frequency: f})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Frequency > out[j].Frequency
	})
	return out
}
