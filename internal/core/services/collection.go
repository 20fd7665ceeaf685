package services

import (
	"context"
	"sync"
)

// Collection caches one server-owned list. It keeps the coarse-grained
// loading flag and last error message shared by every consumer of the list,
// and refreshes only by wholesale replacement.
//
// Concurrent fetches are resolved with a monotonic sequence number: each
// dispatch bumps the sequence, and a response belonging to an older dispatch
// is discarded instead of overwriting newer data.
type Collection[T any] struct {
	mu      sync.Mutex
	items   []T
	loading bool
	lastErr string
	seq     uint64

	fetch func(ctx context.Context) ([]T, error)
	keyOf func(T) string
}

func NewCollection[T any](fetch func(ctx context.Context) ([]T, error), keyOf func(T) string) *Collection[T] {
	return &Collection[T]{fetch: fetch, keyOf: keyOf}
}

// FetchAll replaces the cached list with the upstream response. Only the
// newest dispatch clears the loading flag; while a newer fetch is still in
// flight the collection keeps reporting loading. A cancelled context never
// mutates the cache.
func (c *Collection[T]) FetchAll(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	items, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq == c.seq {
		c.loading = false
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if seq < c.seq {
		// A newer fetch was dispatched while this one was in flight.
		return nil
	}
	if err != nil {
		c.lastErr = err.Error()
		return err
	}
	c.items = items
	c.lastErr = ""
	return nil
}

// Items returns a copy of the cached list.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Status reports the shared loading flag and the last error message, empty
// when the last operation succeeded.
func (c *Collection[T]) Status() (loading bool, errMsg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading, c.lastErr
}

// Get returns the cached record with the given key.
func (c *Collection[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if c.keyOf(item) == key {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// ReplaceByID swaps in the server's authoritative record for the one cached
// under the same key. Every other record is left untouched.
func (c *Collection[T]) ReplaceByID(updated T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.keyOf(updated)
	for i, item := range c.items {
		if c.keyOf(item) == key {
			c.items[i] = updated
			return true
		}
	}
	return false
}
