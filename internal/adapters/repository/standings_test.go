package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/ploffs/internal/domain/types"
)

func sampleEntries(n int) []types.Entry {
	out := make([]types.Entry, n)
	for i := range out {
		out[i] = types.Entry{Seed: i + 1, Rank: i + 1, Name: fmt.Sprintf("entrant%d", i+1), Total: float64(1000 - 10*i)}
	}
	return out
}

func TestStandingsStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewStandingsStore()

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}
	if _, err := store.Rank(ctx, "entrant1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on empty store, got %v", err)
	}

	if err := store.Replace(ctx, sampleEntries(10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count := store.Count(ctx); count != 10 {
		t.Errorf("expected count 10, got %d", count)
	}

	entry, err := store.Rank(ctx, "entrant4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Seed != 4 || entry.Total != 970 {
		t.Errorf("unexpected entry %+v", entry)
	}

	top, err := store.TopN(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 3 || top[0].Name != "entrant1" || top[2].Name != "entrant3" {
		t.Errorf("unexpected top 3: %+v", top)
	}

	all, err := store.TopN(ctx, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 10 {
		t.Errorf("expected limit clamped to 10, got %d", len(all))
	}
}

func TestStandingsStore_InvalidLimit(t *testing.T) {
	store := NewStandingsStore()
	for _, n := range []int{0, -1} {
		if _, err := store.TopN(context.Background(), n); !errors.Is(err, ErrInvalidLimit) {
			t.Errorf("limit %d: expected ErrInvalidLimit, got %v", n, err)
		}
	}
}

func TestStandingsStore_ReplaceIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewStandingsStore()
	entries := sampleEntries(2)
	if err := store.Replace(ctx, entries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries[0].Name = "mutated"
	if _, err := store.Rank(ctx, "entrant1"); err != nil {
		t.Errorf("store should not share the caller's slice: %v", err)
	}

	top, _ := store.TopN(ctx, 1)
	top[0].Total = -1
	again, _ := store.TopN(ctx, 1)
	if again[0].Total == -1 {
		t.Error("TopN result shares memory with the store")
	}

	if err := store.Replace(ctx, sampleEntries(3)[2:]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Rank(ctx, "entrant1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected old entry gone after replace, got %v", err)
	}
}

func TestStandingsStore_ConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	store := NewStandingsStore()
	_ = store.Replace(ctx, sampleEntries(10))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if j%50 == 0 && i == 0 {
					_ = store.Replace(ctx, sampleEntries(10))
				}
				if _, err := store.Rank(ctx, "entrant5"); err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				if _, err := store.TopN(ctx, 5); err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestStandingsStore_CancelledReplace(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewStandingsStore().Replace(ctx, sampleEntries(1)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
