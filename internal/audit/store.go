package audit

import "context"

// Store persists the append-only audit log. Implementations must preserve
// append order; events are never updated or deleted.
type Store interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context) ([]Event, error)
}

// Sink receives committed events for external observers (streams, brokers).
// Sinks get read-side copies only; they are never a write path back into the
// ledgers.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}
