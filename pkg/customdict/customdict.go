// Package customdict keeps user supplied dictionary words in a Redis set.
package customdict

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/dictionary"
)

const DefaultKey = "custom_dict"

// ErrEmptyWord is returned by Add for blank words.
var ErrEmptyWord = errors.New("empty word")

// SetClient is the subset of the Redis API the store needs.
// *redis.Client implements it.
type SetClient interface {
	SAdd(ctx context.Context, key string, members ...any) *redis.IntCmd
	SRem(ctx context.Context, key string, members ...any) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
}

// Options locate the Redis set.
type Options struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// CustomDict wraps a Redis client to store custom dictionary words.
type CustomDict struct {
	client SetClient
	key    string
}

// New creates a new CustomDict with the provided client. An empty key uses
// DefaultKey.
func New(client SetClient, key string) *CustomDict {
	if key == "" {
		key = DefaultKey
	}
	return &CustomDict{client: client, key: key}
}

// Dial connects to the Redis server described by opts.
func Dial(opts Options) *CustomDict {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return New(client, opts.Key)
}

// Add inserts a word into the custom dictionary.
func (cd *CustomDict) Add(ctx context.Context, word string) error {
	word = utils.NormalizeWord(word)
	if word == "" {
		return ErrEmptyWord
	}
	if err := cd.client.SAdd(ctx, cd.key, word).Err(); err != nil {
		return fmt.Errorf("failed to add %q to %s: %w", word, cd.key, err)
	}
	return nil
}

// Remove deletes a word from the custom dictionary.
func (cd *CustomDict) Remove(ctx context.Context, word string) error {
	word = utils.NormalizeWord(word)
	if err := cd.client.SRem(ctx, cd.key, word).Err(); err != nil {
		return fmt.Errorf("failed to remove %q from %s: %w", word, cd.key, err)
	}
	return nil
}

// All returns all words stored in the custom dictionary.
func (cd *CustomDict) All(ctx context.Context) ([]string, error) {
	words, err := cd.client.SMembers(ctx, cd.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cd.key, err)
	}
	return words, nil
}

// LoadInto adds every stored word accepted by keep to dict as a custom word
// and returns how many were added. Words dict already counts keep their count.
func (cd *CustomDict) LoadInto(ctx context.Context, dict *dictionary.Dictionary, keep dictionary.Filter) (int, error) {
	words, err := cd.All(ctx)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, w := range words {
		w = utils.NormalizeWord(w)
		if w == "" || (keep != nil && !keep(w)) {
			log.Debugf("Skipping custom word %q", w)
			continue
		}
		if !dict.AddCustom(w) {
			log.Debugf("Custom word %q is already in the dictionary", w)
			continue
		}
		added++
	}
	return added, nil
}
