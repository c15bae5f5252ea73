package audit

import (
	"context"
	"log/slog"
)

// Worker drains buffered events into a downstream sink (typically the Kafka
// publisher) so slow brokers never block the write path. Pair it with
// NewBufferedSink.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run consumes until the context is cancelled. Delivery failures are logged;
// the log store remains the durable record.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Publish(ctx, event); err != nil {
				w.logger.WarnContext(ctx, "audit worker delivery failed",
					"action", event.Action,
					"event_id", event.ID,
					"error", err,
				)
			}
		}
	}
}

// bufferedSink enqueues events for a Worker, dropping when the buffer is
// full rather than stalling a ledger write.
type bufferedSink struct {
	inbox  chan<- Event
	logger *slog.Logger
}

// NewBufferedSink returns a Sink feeding the channel consumed by a Worker.
func NewBufferedSink(inbox chan<- Event, logger *slog.Logger) Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &bufferedSink{inbox: inbox, logger: logger}
}

func (s *bufferedSink) Publish(ctx context.Context, event Event) error {
	select {
	case s.inbox <- event:
		return nil
	default:
		s.logger.WarnContext(ctx, "audit buffer full, dropping event copy",
			"action", event.Action,
			"event_id", event.ID,
		)
		return nil
	}
}
