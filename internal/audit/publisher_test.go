package audit_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldchain/internal/audit"
	auditmemory "coldchain/internal/audit/store/memory"
	"coldchain/pkg/requestcontext"
	"coldchain/pkg/testutil"
)

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
	err    error
}

func (s *recordingSink) Publish(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) recorded() []audit.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]audit.Event{}, s.events...)
}

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error { return errors.New("disk gone") }
func (failingStore) List(context.Context) ([]audit.Event, error) {
	return nil, errors.New("disk gone")
}

func TestEmitAssignsIdentityAndPersists(t *testing.T) {
	store := auditmemory.New()
	publisher := audit.NewPublisher(store, nil)
	entityID := testutil.MustEntityID(t, "0x1000000000000000000000000000000000000001")

	err := publisher.Emit(context.Background(), audit.NewAddEntity(entityID, 0))
	require.NoError(t, err)

	events, err := publisher.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotEqual(t, uuid.Nil, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, audit.ActionAddEntity, events[0].Action)
}

func TestEmitUsesRequestTime(t *testing.T) {
	publisher := audit.NewPublisher(auditmemory.New(), nil)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), at)
	entityID := testutil.MustEntityID(t, "0x1000000000000000000000000000000000000001")

	require.NoError(t, publisher.Emit(ctx, audit.NewAddEntity(entityID, 0)))

	events, err := publisher.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, at, events[0].Timestamp)
}

func TestEmitRejectsEventWithoutAction(t *testing.T) {
	publisher := audit.NewPublisher(auditmemory.New(), nil)
	err := publisher.Emit(context.Background(), audit.Event{})
	assert.Error(t, err)
}

func TestEmitStoreFailurePropagates(t *testing.T) {
	sink := &recordingSink{}
	publisher := audit.NewPublisher(failingStore{}, nil, sink)
	entityID := testutil.MustEntityID(t, "0x1000000000000000000000000000000000000001")

	err := publisher.Emit(context.Background(), audit.NewAddEntity(entityID, 0))
	require.Error(t, err)
	// Sinks never see an event the store refused.
	assert.Empty(t, sink.recorded())
}

func TestEmitSinkFailureIsSwallowed(t *testing.T) {
	broken := &recordingSink{err: errors.New("broker down")}
	healthy := &recordingSink{}
	publisher := audit.NewPublisher(auditmemory.New(), nil, broken, healthy)
	entityID := testutil.MustEntityID(t, "0x1000000000000000000000000000000000000001")

	err := publisher.Emit(context.Background(), audit.NewAddEntity(entityID, 0))
	require.NoError(t, err)

	// The committed log and the remaining sinks are unaffected.
	events, err := publisher.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Len(t, healthy.recorded(), 1)
}

func TestEmitPreservesOrder(t *testing.T) {
	publisher := audit.NewPublisher(auditmemory.New(), nil)
	entityID := testutil.MustEntityID(t, "0x1000000000000000000000000000000000000001")

	require.NoError(t, publisher.Emit(context.Background(), audit.NewAddEntity(entityID, 0)))
	require.NoError(t, publisher.Emit(context.Background(), audit.NewAddVaccineBatch(0, entityID)))
	require.NoError(t, publisher.Emit(context.Background(), audit.NewIssueCertificate(entityID, entityID, 0)))

	events, err := publisher.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, audit.ActionAddEntity, events[0].Action)
	assert.Equal(t, audit.ActionAddVaccineBatch, events[1].Action)
	assert.Equal(t, audit.ActionIssueCertificate, events[2].Action)
}

func TestWorkerDrainsBufferedSink(t *testing.T) {
	inbox := make(chan audit.Event, 8)
	downstream := &recordingSink{}
	worker := audit.NewWorker(downstream, inbox, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = worker.Run(ctx)
	}()

	buffered := audit.NewBufferedSink(inbox, nil)
	entityID := testutil.MustEntityID(t, "0x1000000000000000000000000000000000000001")
	for i := 0; i < 3; i++ {
		require.NoError(t, buffered.Publish(context.Background(), audit.NewAddVaccineBatch(0, entityID)))
	}

	require.Eventually(t, func() bool {
		return len(downstream.recorded()) == 3
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestBufferedSinkDropsWhenFull(t *testing.T) {
	inbox := make(chan audit.Event, 1)
	buffered := audit.NewBufferedSink(inbox, nil)
	entityID := testutil.MustEntityID(t, "0x1000000000000000000000000000000000000001")

	// No worker draining: the second publish drops instead of blocking.
	require.NoError(t, buffered.Publish(context.Background(), audit.NewAddEntity(entityID, 0)))
	require.NoError(t, buffered.Publish(context.Background(), audit.NewAddEntity(entityID, 0)))
	assert.Len(t, inbox, 1)
}
