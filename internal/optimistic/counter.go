package optimistic

import "sync"

// Counter is a display counter split into a settled snapshot and at most one
// pending optimistic delta. The snapshot is only ever replaced by store
// truth; the delta exists between apply and settle/rollback.
type Counter struct {
	mu       sync.Mutex
	snapshot int
	delta    int
}

// NewCounter creates a counter settled at the given snapshot.
func NewCounter(snapshot int) *Counter {
	return &Counter{snapshot: snapshot}
}

// Value is the displayed count: snapshot plus pending delta, floored at
// zero. A stale snapshot combined with a negative delta must never render
// below zero.
func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.snapshot + c.delta
	if v < 0 {
		return 0
	}
	return v
}

// Apply records a pending delta. A second apply before settle replaces the
// first; callers serialize mutations through a Controller so this only
// happens on rollback-then-retry.
func (c *Counter) Apply(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delta = delta
}

// Settle replaces the snapshot with store truth and clears the pending
// delta: the settled value already includes the mutation's effect.
func (c *Counter) Settle(snapshot int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = snapshot
	c.delta = 0
}

// Rollback clears the pending delta, restoring the last settled value.
func (c *Counter) Rollback() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delta = 0
}

// SetSnapshot replaces the snapshot from a fresh read. Any pending delta is
// discarded; the read raced the mutation and the next settle will carry the
// mutation's effect anyway.
func (c *Counter) SetSnapshot(snapshot int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = snapshot
	c.delta = 0
}
