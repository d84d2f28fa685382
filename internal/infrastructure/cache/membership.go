package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
)

type entry struct {
	teamIDs   []int64
	fetchedAt time.Time
}

// MembershipLookup is the store query backing the cache.
type MembershipLookup interface {
	ListTeamIDsForUser(ctx context.Context, userID int64) ([]int64, error)
}

// MembershipCache is an in-memory user -> team-ids cache suitable for a
// single-instance deployment. Entries expire after a TTL so the map stays
// bounded by the active user population. Two goroutines racing on the same
// miss both query the store and both write; the results are identical, so
// no coordination beyond the mutex is needed.
type MembershipCache struct {
	mu    sync.RWMutex
	data  map[int64]*entry
	store MembershipLookup
	ttl   time.Duration
}

// DefaultMembershipTTL keeps entries fresh enough that a stale read after a
// missed invalidation self-heals quickly.
const DefaultMembershipTTL = time.Minute

// NewMembershipCache returns a cache over store. ttl <= 0 selects the default.
func NewMembershipCache(store MembershipLookup, ttl time.Duration) *MembershipCache {
	if ttl <= 0 {
		ttl = DefaultMembershipTTL
	}
	return &MembershipCache{
		data:  make(map[int64]*entry),
		store: store,
		ttl:   ttl,
	}
}

// TeamsOf returns the ids of the teams userID belongs to, from cache when
// fresh, otherwise from the store.
func (c *MembershipCache) TeamsOf(ctx context.Context, userID int64) ([]int64, error) {
	c.mu.RLock()
	e, ok := c.data[userID]
	c.mu.RUnlock()
	if ok && time.Since(e.fetchedAt) < c.ttl {
		return e.teamIDs, nil
	}

	teamIDs, err := c.store.ListTeamIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.data[userID] = &entry{teamIDs: teamIDs, fetchedAt: time.Now()}
	c.mu.Unlock()
	return teamIDs, nil
}

// Invalidate drops the cached entry for userID. Callers that mutate
// membership rows must invalidate every affected user.
func (c *MembershipCache) Invalidate(userID int64) {
	c.mu.Lock()
	delete(c.data, userID)
	c.mu.Unlock()
}

var _ ports.MembershipCache = (*MembershipCache)(nil)
