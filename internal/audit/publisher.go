package audit

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"coldchain/pkg/requestcontext"
)

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily. Emit runs
// inside the owner write gate, which is what guarantees exactly-once,
// in-order emission per successful mutation.
type Publisher struct {
	store  Store
	sinks  []Sink
	logger *slog.Logger
}

func NewPublisher(store Store, logger *slog.Logger, sinks ...Sink) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{store: store, sinks: sinks, logger: logger}
}

// Emit assigns the event identity, persists it, then fans out to sinks.
// Persistence failures propagate (the surrounding write aborts); sink
// failures are logged and swallowed because external observability must not
// roll back a committed ledger write.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Action == "" {
		return errors.New("audit event missing action")
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	for _, sink := range p.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			p.logger.WarnContext(ctx, "audit sink publish failed",
				"action", event.Action,
				"event_id", event.ID,
				"error", err,
			)
		}
	}
	return nil
}

// List exposes the committed log to external observers.
func (p *Publisher) List(ctx context.Context) ([]Event, error) {
	return p.store.List(ctx)
}
