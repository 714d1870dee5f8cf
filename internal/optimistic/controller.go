// Package optimistic implements apply-then-settle mutation handling: state
// changes are shown immediately, confirmed against the store, and rolled
// back exactly on failure.
package optimistic

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultTimeout bounds how long a mutation may stay pending before it is
// treated as failed and rolled back.
const DefaultTimeout = 10 * time.Second

// ErrPending is returned when a mutation is triggered while another one on
// the same controller is still in flight. The trigger is dropped, not queued.
var ErrPending = errors.New("mutation already in flight")

// Controller serializes optimistic mutations over one piece of state. It
// holds at most one pending mutation; the snapshot taken before apply is the
// exact state restored on failure.
type Controller struct {
	mu      sync.Mutex
	pending bool
	timeout time.Duration
}

// NewController creates a controller with the default settle timeout.
func NewController() *Controller {
	return &Controller{timeout: DefaultTimeout}
}

// NewControllerWithTimeout creates a controller with a custom settle timeout.
func NewControllerWithTimeout(timeout time.Duration) *Controller {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Controller{timeout: timeout}
}

// Pending reports whether a mutation is currently in flight.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Run executes one optimistic mutation: apply flips the state immediately,
// commit settles it against the store under the controller's timeout, and
// rollback restores the pre-apply state if commit fails. Returns ErrPending
// without touching anything when another mutation is still in flight.
func (c *Controller) Run(ctx context.Context, apply func(), commit func(ctx context.Context) error, rollback func()) error {
	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return ErrPending
	}
	c.pending = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.pending = false
		c.mu.Unlock()
	}()

	apply()

	commitCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := commit(commitCtx); err != nil {
		rollback()
		return err
	}
	return nil
}
