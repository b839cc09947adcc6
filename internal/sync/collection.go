// Package sync holds the screen-level synchronization controllers: the
// load/transform/render/mutate lifecycle every list-bearing screen repeats,
// page-based pagination, and the optimistic toggle state machine.
package sync

import (
	"context"
	"errors"
	"sync"
)

// Phase is the render branch a collection is in. Loading, Failed and Ready
// are mutually exclusive in the UI.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

// ErrStale is returned by Load when a newer load superseded this one; its
// result was discarded and must not be rendered.
var ErrStale = errors.New("load superseded by a newer load")

// Collection drives one remote-backed list. Mutations are applied only
// after server confirmation, so a failed mutation leaves items untouched.
type Collection[T any] struct {
	mu    sync.Mutex
	phase Phase
	items []T
	err   error

	// gen guards against a stale load (screen refreshed, or unmounted and
	// remounted) overwriting newer state.
	gen uint64
}

// Load runs loader and installs its result. The loading phase is entered
// before the call and always exited after it, mirroring the try/finally
// spinner handling of the screens. A load that loses the race to a newer
// one returns ErrStale and changes nothing.
func (c *Collection[T]) Load(ctx context.Context, loader func(context.Context) ([]T, error)) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.phase = PhaseLoading
	c.mu.Unlock()

	items, err := loader(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return ErrStale
	}

	if err != nil {
		c.phase = PhaseFailed
		c.err = err
		return err
	}

	if items == nil {
		items = []T{}
	}
	c.phase = PhaseReady
	c.items = items
	c.err = nil
	return nil
}

// Append adds a confirmed item to the collection.
func (c *Collection[T]) Append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// Remove drops every item matching the predicate. Call it only after the
// server confirmed the delete.
func (c *Collection[T]) Remove(match func(T) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	removed := 0
	for _, item := range c.items {
		if match(item) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	c.items = kept
	return removed
}

// Items returns a copy of the current items.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the current item count.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Phase returns the current render branch.
func (c *Collection[T]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Err returns the error behind a Failed phase, for the retry affordance.
func (c *Collection[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
