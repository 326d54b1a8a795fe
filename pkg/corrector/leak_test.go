//go:build memtest

package corrector

import (
	"context"
	"fmt"
	"runtime"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordfix/pkg/dataset"
	"github.com/bastiangx/wordfix/pkg/dictionary"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var syllables = []string{"ка", "ко", "ми", "ло", "ре", "ту", "ны", "ве"}

// syntheticData returns every three syllable word with a count, and one
// misspelled query per word.
func syntheticData() (*dictionary.Dictionary, []dataset.Pair, []string) {
	dict := dictionary.New()
	var pairs []dataset.Pair
	var queries []string
	n := int64(1)
	for _, a := range syllables {
		for _, b := range syllables {
			for _, c := range syllables {
				word := a + b + c
				dict.Set(word, n*7%1000+1)
				n++
				typo := []rune(word)
				typo[1] = 'а'
				queries = append(queries, string(typo))
				if n%5 == 0 {
					pairs = append(pairs, dataset.Pair{Observed: string(typo), Expected: word})
				}
			}
		}
	}
	return dict, pairs, queries
}

func heapAlloc() uint64 {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func TestMemoryBoundedCache(t *testing.T) {
	dict, pairs, queries := syntheticData()
	s := DefaultSettings()
	s.CacheSize = 64
	c := Build(dict, pairs, s)

	for _, q := range queries {
		c.Correct(q)
	}
	baseline := heapAlloc()
	baselineGoroutines := runtime.NumGoroutine()

	rounds := 20
	for i := 0; i < rounds; i++ {
		for _, q := range queries {
			c.Correct(q)
		}
	}

	memDelta := int64(heapAlloc()) - int64(baseline)
	totalOps := rounds * len(queries)
	memPerOp := float64(memDelta) / float64(totalOps)
	t.Logf("ops=%d mem_delta=%d bytes mem_per_op=%.2f cache=%v", totalOps, memDelta, memPerOp, c.Stats())

	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}
	if n := c.Stats()["cacheWords"]; n > 64 {
		t.Errorf("cache holds %d words; want at most 64", n)
	}
	if delta := runtime.NumGoroutine() - baselineGoroutines; delta > 2 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", delta)
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	dict, pairs, queries := syntheticData()

	configs := []struct {
		workers int
		rounds  int
	}{
		{workers: 1, rounds: 8},
		{workers: 4, rounds: 8},
		{workers: 16, rounds: 4},
	}
	for _, cfg := range configs {
		t.Run(fmt.Sprintf("workers_%d_rounds_%d", cfg.workers, cfg.rounds), func(t *testing.T) {
			s := DefaultSettings()
			s.CacheSize = 128
			c := Build(dict, pairs, s)

			baseline := heapAlloc()
			baselineGoroutines := runtime.NumGoroutine()

			for i := 0; i < cfg.rounds; i++ {
				if _, err := c.CorrectAll(context.Background(), queries, cfg.workers); err != nil {
					t.Fatalf("CorrectAll() error: %v", err)
				}
			}

			memDelta := int64(heapAlloc()) - int64(baseline)
			goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
			t.Logf("mem_delta=%d bytes goroutine_delta=%d", memDelta, goroutineDelta)

			if memDelta > 10*1024*1024 {
				t.Errorf("excessive retained memory: %d bytes", memDelta)
			}
			if goroutineDelta > 3 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
			}
		})
	}
}
