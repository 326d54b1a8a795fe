// Package dictionary holds the word frequency table used to select
// corrections, and loads it from CSV or binary files.
package dictionary

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// CustomFrequency is the count reported for user-added words so that they
// win every frequency comparison.
const CustomFrequency int64 = 1_000_000_000

// Entry is a word with its count.
type Entry struct {
	Word      string `json:"word" msgpack:"w"`
	Frequency int64  `json:"frequency" msgpack:"f"`
}

// Filter decides whether a word is loaded. A nil Filter keeps every word.
type Filter func(word string) bool

// Dictionary maps words to occurrence counts.
// It is not safe for concurrent writes; once loaded it may be read from any
// number of goroutines.
type Dictionary struct {
	trie   *patricia.Trie
	total  int64
	words  int
	custom map[string]struct{}
}

// New returns an empty dictionary.
func New() *Dictionary {
	return &Dictionary{trie: patricia.NewTrie()}
}

// Set stores the count of word, replacing any previous count. A custom word
// given a real count becomes an ordinary word.
func (d *Dictionary) Set(word string, freq int64) {
	key := patricia.Prefix(word)
	if old := d.trie.Get(key); old == nil {
		d.words++
	} else if _, ok := d.custom[word]; ok {
		delete(d.custom, word)
	} else {
		d.total -= old.(int64)
	}
	d.trie.Set(key, freq)
	d.total += freq
}

// AddCustom stores word with CustomFrequency unless it already has a count,
// and reports whether it was added. Custom words are not part of Total.
func (d *Dictionary) AddCustom(word string) bool {
	key := patricia.Prefix(word)
	if d.trie.Get(key) != nil {
		return false
	}
	if d.custom == nil {
		d.custom = make(map[string]struct{})
	}
	d.custom[word] = struct{}{}
	d.trie.Set(key, CustomFrequency)
	d.words++
	return true
}

// IsCustom reports whether word was added by AddCustom.
func (d *Dictionary) IsCustom(word string) bool {
	_, ok := d.custom[word]
	return ok
}

// Freq returns the count of word, 0 if unknown.
func (d *Dictionary) Freq(word string) int64 {
	if item := d.trie.Get(patricia.Prefix(word)); item != nil {
		return item.(int64)
	}
	return 0
}

// Contains reports whether word is in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	return d.trie.Get(patricia.Prefix(word)) != nil
}

// Total returns the sum of all counts, custom words excluded.
func (d *Dictionary) Total() int64 { return d.total }

// Len returns the number of distinct words.
func (d *Dictionary) Len() int { return d.words }

// Each calls fn for every word in byte order until fn returns an error.
func (d *Dictionary) Each(fn func(word string, freq int64) error) error {
	return d.trie.Visit(func(p patricia.Prefix, item patricia.Item) error {
		return fn(string(p), item.(int64))
	})
}

// Words returns all words in byte order.
func (d *Dictionary) Words() []string {
	out := make([]string, 0, d.words)
	d.Each(func(word string, _ int64) error {
		out = append(out, word)
		return nil
	})
	return out
}

// Complete returns up to limit words starting with prefix, most frequent
// first. The prefix itself is not returned. A non-positive limit returns all.
func (d *Dictionary) Complete(prefix string, limit int) []Entry {
	var results []Entry
	err := d.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		if word == prefix {
			return nil
		}
		results = append(results, Entry{Word: word, Frequency: item.(int64)})
		return nil
	})
	if err != nil {
		log.Errorf("Error completing prefix %q: %v", prefix, err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Frequency > results[j].Frequency
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Stats returns statistics about the loaded dictionary.
func (d *Dictionary) Stats() map[string]int {
	return map[string]int{
		"totalWords":  d.words,
		"totalFreq":   int(d.total),
		"customWords": len(d.custom),
	}
}
