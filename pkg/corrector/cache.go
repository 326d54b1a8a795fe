package corrector

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/golang/groupcache/lru"

	"github.com/bastiangx/wordfix/pkg/suggest"
)

// entry is the cached outcome for a normalized, case-folded word.
type entry struct {
	corrected   string
	found       bool
	suggestions []suggest.Suggestion
}

// Cache is a bounded LRU of correction results shared by all goroutines.
type Cache struct {
	mu       sync.Mutex
	lru      *lru.Cache
	maxWords int
	hits     int64
	misses   int64
	evicted  int64
}

// NewCache returns a cache holding up to maxWords results.
func NewCache(maxWords int) *Cache {
	c := &Cache{lru: lru.New(maxWords), maxWords: maxWords}
	c.lru.OnEvicted = func(key lru.Key, _ any) {
		c.evicted++
		log.Debugf("Evicted word '%s' from correction cache", key)
	}
	return c
}

func (c *Cache) get(word string) (entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lru.Get(word)
	if !ok {
		c.misses++
		return entry{}, false
	}
	c.hits++
	return v.(entry), true
}

func (c *Cache) put(word string, e entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(word, e)
}

// Len returns the number of cached words.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats reports cache usage.
func (c *Cache) Stats() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return map[string]int{
		"cacheWords":   c.lru.Len(),
		"maxCacheSize": c.maxWords,
		"cacheHits":    int(c.hits),
		"cacheMisses":  int(c.misses),
		"cacheEvicted": int(c.evicted),
	}
}
