package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_SharesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "tables", nil
	}

	const callers = 16
	var wg sync.WaitGroup
	results := make(chan any, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.GetOrLoad(context.Background(), "standings", loader)
			if err != nil {
				t.Errorf("GetOrLoad error: %v", err)
				return
			}
			results <- v
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for v := range results {
		if v != "tables" {
			t.Fatalf("unexpected value %v", v)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	boom := errors.New("boom")
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, boom
		}
		return 42, nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, boom) {
		t.Fatalf("first GetOrLoad error = %v, want boom", err)
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}
	if v != 42 {
		t.Fatalf("value = %v, want 42", v)
	}
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute)
	store.now = func() time.Time { return now }

	ctx := context.Background()
	store.Set(ctx, "round:r1", "r1")
	store.Set(ctx, "round:r2", "r2")

	if _, ok := store.Get(ctx, "round:r1"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(time.Minute)
	if _, ok := store.Get(ctx, "round:r1"); ok {
		t.Fatalf("expected entry to expire at ttl")
	}
	if removed := store.Purge(); removed != 1 {
		t.Fatalf("Purge removed %d, want 1", removed)
	}
	if store.Len() != 0 {
		t.Fatalf("Len = %d, want 0", store.Len())
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "player:id:a", 1)
	store.Set(ctx, "player:list", 2)
	store.Set(ctx, "club:list", 3)

	store.DeletePrefix(ctx, "player:")
	if store.Len() != 1 {
		t.Fatalf("Len = %d, want 1", store.Len())
	}
	if _, ok := store.Get(ctx, "club:list"); !ok {
		t.Fatalf("expected unrelated key to survive")
	}

	store.Delete(ctx, "club:list", "missing")
	if store.Len() != 0 {
		t.Fatalf("Len = %d, want 0", store.Len())
	}
}
