package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nhle/dashboard/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewTestAdapter returns a JSON adapter over a fresh in-memory store,
// along with the store itself for direct inspection.
func NewTestAdapter(t *testing.T) (*store.Adapter, *store.SQLiteStore) {
	t.Helper()
	s := NewTestStore(t)
	return store.NewAdapter(s, nil), s
}

// ErrBroken is returned by every BrokenStore operation.
var ErrBroken = errors.New("store unavailable")

// BrokenStore fails every operation.
type BrokenStore struct{}

func (BrokenStore) Get(context.Context, string) ([]byte, error) { return nil, ErrBroken }
func (BrokenStore) Put(context.Context, string, []byte) error   { return ErrBroken }
func (BrokenStore) Delete(context.Context, string) error        { return ErrBroken }
func (BrokenStore) Close() error                                { return nil }

// Clock is a manually advanced clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock frozen at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current frozen time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
