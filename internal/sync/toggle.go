package sync

import (
	"errors"
	"sync"
)

// ToggleState is the lifecycle of one optimistic mutation.
type ToggleState int

const (
	ToggleIdle ToggleState = iota
	TogglePending
	ToggleCommitted
	ToggleRolledBack
)

// ErrTogglePending is returned when a second mutation starts before the
// first settles.
var ErrTogglePending = errors.New("a toggle is already in flight")

// LikeState is the value a like toggle carries: the flag and the count move
// together so a rollback restores both.
type LikeState struct {
	Liked bool
	Count int
}

// Toggle holds an optimistically mutated value (like state, rating) with
// deterministic rollback. The lifecycle is
//
//	Idle -> Pending(previous) -> Committed | RolledBack(previous)
//
// On commit the server's value wins over the optimistic one; on rollback
// the captured previous value is restored. This replaces the original
// flip-and-forget behavior that left state ambiguous after a failure.
type Toggle[V any] struct {
	mu    sync.Mutex
	state ToggleState
	value V
	prev  V
}

// NewToggle returns a toggle settled at the given value.
func NewToggle[V any](value V) *Toggle[V] {
	return &Toggle[V]{state: ToggleIdle, value: value}
}

// Begin applies the optimistic value, capturing the previous one for
// rollback. Only one mutation may be in flight at a time.
func (t *Toggle[V]) Begin(optimistic V) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == TogglePending {
		return ErrTogglePending
	}

	t.prev = t.value
	t.value = optimistic
	t.state = TogglePending
	return nil
}

// Commit settles the mutation with the authoritative server value.
func (t *Toggle[V]) Commit(server V) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != TogglePending {
		return
	}
	t.value = server
	t.state = ToggleCommitted
}

// Rollback restores the value captured by Begin.
func (t *Toggle[V]) Rollback() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != TogglePending {
		return
	}
	t.value = t.prev
	t.state = ToggleRolledBack
}

// Value returns the currently rendered value.
func (t *Toggle[V]) Value() V {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

// State returns the lifecycle state.
func (t *Toggle[V]) State() ToggleState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
