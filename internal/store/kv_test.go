package store

import (
	"context"
	"testing"
)

func openTestKV(t *testing.T) *KV {
	t.Helper()

	kv, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestKV_SetOverwrites(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	if err := kv.Set(ctx, "auth_token", "first"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "auth_token", "second"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	value, ok, err := kv.Get(ctx, "auth_token")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected key to be present")
	}
	if value != "second" {
		t.Errorf("value = %q, want %q", value, "second")
	}
}

func TestKV_GetMissingKey(t *testing.T) {
	kv := openTestKV(t)

	value, ok, err := kv.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Errorf("expected missing key, got value %q", value)
	}
}

func TestKV_DeleteManyIsIdempotent(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	if err := kv.Set(ctx, "auth_token", "tok"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "user_data", `{"id":"u1"}`); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := kv.Delete(ctx, "auth_token", "user_data", "never_existed"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for _, key := range []string{"auth_token", "user_data"} {
		if _, ok, _ := kv.Get(ctx, key); ok {
			t.Errorf("key %q still present after delete", key)
		}
	}

	// A second delete of the same keys is not an error.
	if err := kv.Delete(ctx, "auth_token", "user_data"); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
}
