package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cached keeps recently loaded collections in an LRU in front of another Store.
// Saves go through to the backend first and then refresh the cached copy.
// Only Save puts fresh data in the cache; a miss fills it only when no Save
// ran while the backend read was in flight.
type Cached struct {
	next  Store
	cache *lru.Cache[string, []json.RawMessage]

	mu  sync.Mutex
	gen map[string]uint64 // bumped by every Save
}

// NewCached wraps next with an LRU holding up to size collections.
func NewCached(next Store, size int) (*Cached, error) {
	cache, err := lru.New[string, []json.RawMessage](size)
	if err != nil {
		return nil, fmt.Errorf("create collection cache: %w", err)
	}
	return &Cached{next: next, cache: cache, gen: make(map[string]uint64)}, nil
}

// Load implements Store.
func (c *Cached) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if records, ok := c.cache.Get(collection); ok {
		return clone(records), nil
	}
	c.mu.Lock()
	gen := c.gen[collection]
	c.mu.Unlock()

	records, err := c.next.Load(ctx, collection)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.gen[collection] == gen {
		c.cache.Add(collection, clone(records))
	}
	c.mu.Unlock()
	return records, nil
}

// Save implements Store.
func (c *Cached) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	err := c.next.Save(ctx, collection, records)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen[collection]++
	if err != nil {
		c.cache.Remove(collection)
		return err
	}
	c.cache.Add(collection, clone(records))
	return nil
}

// Names implements Lister when the backend does.
func (c *Cached) Names(ctx context.Context) ([]string, error) {
	if l, ok := c.next.(Lister); ok {
		return l.Names(ctx)
	}
	return AllCollections, nil
}

// Unwrap returns the wrapped backend.
func (c *Cached) Unwrap() Store {
	return c.next
}

func clone(records []json.RawMessage) []json.RawMessage {
	out := make([]json.RawMessage, len(records))
	copy(out, records)
	return out
}
