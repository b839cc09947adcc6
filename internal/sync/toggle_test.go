package sync

import (
	"errors"
	"testing"
)

func TestToggle_CommitUsesServerValue(t *testing.T) {
	like := NewToggle(LikeState{Liked: false, Count: 4})

	if err := like.Begin(LikeState{Liked: true, Count: 5}); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if got := like.Value(); !got.Liked || got.Count != 5 {
		t.Errorf("optimistic value = %+v, want liked with count 5", got)
	}

	// The server saw another like land in between; its count wins.
	like.Commit(LikeState{Liked: true, Count: 7})

	if got := like.Value(); got.Count != 7 {
		t.Errorf("committed count = %d, want 7", got.Count)
	}
	if like.State() != ToggleCommitted {
		t.Errorf("state = %v, want ToggleCommitted", like.State())
	}
}

func TestToggle_RollbackRestoresPrevious(t *testing.T) {
	like := NewToggle(LikeState{Liked: false, Count: 4})

	if err := like.Begin(LikeState{Liked: true, Count: 5}); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	like.Rollback()

	if got := like.Value(); got.Liked || got.Count != 4 {
		t.Errorf("rolled-back value = %+v, want unliked with count 4", got)
	}
	if like.State() != ToggleRolledBack {
		t.Errorf("state = %v, want ToggleRolledBack", like.State())
	}
}

func TestToggle_SecondBeginWhilePendingFails(t *testing.T) {
	rating := NewToggle(0)

	if err := rating.Begin(4); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if err := rating.Begin(5); !errors.Is(err, ErrTogglePending) {
		t.Fatalf("error = %v, want ErrTogglePending", err)
	}

	// The rejected begin must not disturb the in-flight value.
	if got := rating.Value(); got != 4 {
		t.Errorf("value = %d, want 4", got)
	}
}

func TestToggle_CommitWithoutBeginIsNoop(t *testing.T) {
	rating := NewToggle(3)
	rating.Commit(5)

	if got := rating.Value(); got != 3 {
		t.Errorf("value = %d, want 3", got)
	}
	if rating.State() != ToggleIdle {
		t.Errorf("state = %v, want ToggleIdle", rating.State())
	}
}
