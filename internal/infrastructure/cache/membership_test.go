package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingLookup struct {
	mu    sync.Mutex
	calls int
	data  map[int64][]int64
	err   error
}

func (l *countingLookup) ListTeamIDsForUser(ctx context.Context, userID int64) ([]int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return l.data[userID], nil
}

func (l *countingLookup) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func TestMembershipCache_MissThenHit(t *testing.T) {
	t.Parallel()

	lookup := &countingLookup{data: map[int64][]int64{7: {100, 200}}}
	c := NewMembershipCache(lookup, time.Minute)

	for i := 0; i < 3; i++ {
		ids, err := c.TeamsOf(context.Background(), 7)
		if err != nil {
			t.Fatalf("TeamsOf failed: %v", err)
		}
		if len(ids) != 2 {
			t.Fatalf("ids = %v, want two entries", ids)
		}
	}
	if got := lookup.callCount(); got != 1 {
		t.Errorf("store queries = %d, want 1", got)
	}
}

func TestMembershipCache_Invalidate(t *testing.T) {
	t.Parallel()

	lookup := &countingLookup{data: map[int64][]int64{7: {100}}}
	c := NewMembershipCache(lookup, time.Minute)

	if _, err := c.TeamsOf(context.Background(), 7); err != nil {
		t.Fatalf("TeamsOf failed: %v", err)
	}
	c.Invalidate(7)
	lookup.data[7] = []int64{100, 200}

	ids, err := c.TeamsOf(context.Background(), 7)
	if err != nil {
		t.Fatalf("TeamsOf failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("ids = %v, want the refreshed set", ids)
	}
	if got := lookup.callCount(); got != 2 {
		t.Errorf("store queries = %d, want 2", got)
	}
}

func TestMembershipCache_TTLExpiry(t *testing.T) {
	t.Parallel()

	lookup := &countingLookup{data: map[int64][]int64{7: {100}}}
	c := NewMembershipCache(lookup, 10*time.Millisecond)

	if _, err := c.TeamsOf(context.Background(), 7); err != nil {
		t.Fatalf("TeamsOf failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := c.TeamsOf(context.Background(), 7); err != nil {
		t.Fatalf("TeamsOf failed: %v", err)
	}
	if got := lookup.callCount(); got != 2 {
		t.Errorf("store queries = %d, want 2 after expiry", got)
	}
}

func TestMembershipCache_StoreErrorNotCached(t *testing.T) {
	t.Parallel()

	lookup := &countingLookup{err: errors.New("db down")}
	c := NewMembershipCache(lookup, time.Minute)

	if _, err := c.TeamsOf(context.Background(), 7); err == nil {
		t.Fatal("store error should surface")
	}
	lookup.mu.Lock()
	lookup.err = nil
	lookup.data = map[int64][]int64{7: {100}}
	lookup.mu.Unlock()

	ids, err := c.TeamsOf(context.Background(), 7)
	if err != nil {
		t.Fatalf("TeamsOf after recovery failed: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("ids = %v, want one entry", ids)
	}
}

func TestMembershipCache_Concurrent(t *testing.T) {
	t.Parallel()

	lookup := &countingLookup{data: map[int64][]int64{1: {10}, 2: {20}, 3: {30}}}
	c := NewMembershipCache(lookup, time.Minute)

	var wg sync.WaitGroup
	var failures atomic.Int64
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := int64(i%3 + 1)
			for j := 0; j < 100; j++ {
				ids, err := c.TeamsOf(context.Background(), userID)
				if err != nil || len(ids) != 1 {
					failures.Add(1)
					return
				}
				if j%10 == 0 {
					c.Invalidate(userID)
				}
			}
		}(i)
	}
	wg.Wait()
	if failures.Load() != 0 {
		t.Errorf("%d goroutines observed bad reads", failures.Load())
	}
}
