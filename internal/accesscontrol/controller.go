// Package accesscontrol gates every mutating operation of the registry to a
// single designated owner and serializes all writes into one global order.
package accesscontrol

import (
	"context"
	"sync"

	"coldchain/pkg/domain"
	dErrors "coldchain/pkg/domain-errors"
	"coldchain/pkg/requestcontext"
)

// Controller holds the owner identity, fixed at initialization. Mutations on
// all three ledgers pass through Write; reads never do.
type Controller struct {
	owner domain.EntityID

	// mu is the single-writer gate: each mutation, including its audit
	// emission, runs to completion before the next is admitted.
	mu sync.Mutex
}

// New constructs a controller for the given owner.
func New(owner domain.EntityID) *Controller {
	return &Controller{owner: owner}
}

// Owner returns the privileged caller identity.
func (c *Controller) Owner() domain.EntityID {
	return c.owner
}

// Write runs fn as an owner-gated mutation. A caller mismatch aborts with
// Unauthorized before any state is touched. fn executes under the global
// write lock, so a failing fn leaves no partial effects visible to the next
// writer and id counters advance only on fully validated operations.
func (c *Controller) Write(ctx context.Context, fn func(ctx context.Context) error) error {
	caller, ok := requestcontext.Caller(ctx)
	if !ok {
		return dErrors.New(dErrors.CodeUnauthorized, "caller identity missing")
	}
	if caller != c.owner {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not the registry owner")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(ctx)
}
