package batch_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldchain/internal/accesscontrol"
	"coldchain/internal/audit"
	auditmemory "coldchain/internal/audit/store/memory"
	"coldchain/internal/batch"
	"coldchain/internal/registry"
	"coldchain/pkg/domain"
	dErrors "coldchain/pkg/domain-errors"
	"coldchain/pkg/testutil"
)

type batchFixture struct {
	entities *registry.Service
	batches  *batch.Service
	auditLog *audit.Publisher
	ownerCtx context.Context
}

func newBatchFixture(t *testing.T) *batchFixture {
	t.Helper()
	owner := testutil.MustEntityID(t, "0xaAaAaAaaAaAaAaaAaAAAAAAAAaaaAaAaAaaAaaAa")
	gate := accesscontrol.New(owner)
	auditor := audit.NewPublisher(auditmemory.New(), nil)
	entities := registry.NewService(gate, registry.NewInMemory(), auditor, nil)
	batches := batch.NewService(gate, batch.NewInMemory(), entities, auditor, nil)
	return &batchFixture{
		entities: entities,
		batches:  batches,
		auditLog: auditor,
		ownerCtx: testutil.ContextWithCaller(owner),
	}
}

func (f *batchFixture) registerManufacturer(t *testing.T, hex string) domain.EntityID {
	t.Helper()
	id := testutil.MustEntityID(t, hex)
	_, err := f.entities.AddEntity(f.ownerCtx, id, domain.RoleProver)
	require.NoError(t, err)
	return id
}

func TestAddVaccineBatchAssignsDenseIDs(t *testing.T) {
	f := newBatchFixture(t)
	manufacturer := f.registerManufacturer(t, "0x1000000000000000000000000000000000000001")

	brands := []string{"Pfizer-BioNTech", "Moderna", "Johnson and Johnson's Janssen", "Sputnik V"}
	for i, brand := range brands {
		b, err := f.batches.AddVaccineBatch(f.ownerCtx, brand, manufacturer)
		require.NoError(t, err)
		assert.Equal(t, domain.BatchID(i), b.ID)
		assert.Equal(t, brand, b.Brand)
		assert.Equal(t, manufacturer, b.Manufacturer)
	}

	for i, brand := range brands {
		b, err := f.batches.GetVaccineBatch(context.Background(), domain.BatchID(i))
		require.NoError(t, err)
		assert.Equal(t, brand, b.Brand)
	}
}

func TestAddVaccineBatchFailureConsumesNoID(t *testing.T) {
	f := newBatchFixture(t)
	manufacturer := f.registerManufacturer(t, "0x1000000000000000000000000000000000000001")
	unregistered := testutil.MustEntityID(t, "0x2000000000000000000000000000000000000002")

	_, err := f.batches.AddVaccineBatch(f.ownerCtx, "Moderna", unregistered)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	// The failed call must not leave a gap: the next batch still gets id 0.
	b, err := f.batches.AddVaccineBatch(f.ownerCtx, "Moderna", manufacturer)
	require.NoError(t, err)
	assert.Equal(t, domain.BatchID(0), b.ID)
}

func TestAddVaccineBatchValidation(t *testing.T) {
	f := newBatchFixture(t)
	manufacturer := f.registerManufacturer(t, "0x1000000000000000000000000000000000000001")

	t.Run("rejects blank brand", func(t *testing.T) {
		_, err := f.batches.AddVaccineBatch(f.ownerCtx, "   ", manufacturer)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects non-owner caller", func(t *testing.T) {
		intruder := testutil.MustEntityID(t, "0x3000000000000000000000000000000000000003")
		_, err := f.batches.AddVaccineBatch(testutil.ContextWithCaller(intruder), "Moderna", manufacturer)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("accepts any registered role as manufacturer", func(t *testing.T) {
		// Role is not enforced on batch creation; existence is.
		verifier := testutil.MustEntityID(t, "0x4000000000000000000000000000000000000004")
		_, err := f.entities.AddEntity(f.ownerCtx, verifier, domain.RoleVerifier)
		require.NoError(t, err)

		_, err = f.batches.AddVaccineBatch(f.ownerCtx, "Sputnik V", verifier)
		assert.NoError(t, err)
	})
}

func TestGetVaccineBatchNotFound(t *testing.T) {
	f := newBatchFixture(t)
	_, err := f.batches.GetVaccineBatch(context.Background(), domain.BatchID(42))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestAddVaccineBatchEmitsAuditEvent(t *testing.T) {
	f := newBatchFixture(t)
	manufacturer := f.registerManufacturer(t, "0x1000000000000000000000000000000000000001")

	_, err := f.batches.AddVaccineBatch(f.ownerCtx, "Pfizer-BioNTech", manufacturer)
	require.NoError(t, err)

	events, err := f.auditLog.List(context.Background())
	require.NoError(t, err)
	// One AddEntity event from registration, then the batch event.
	require.Len(t, events, 2)
	assert.Equal(t, audit.ActionAddVaccineBatch, events[1].Action)
	require.NotNil(t, events[1].AddVaccineBatch)
	assert.Equal(t, domain.BatchID(0), events[1].AddVaccineBatch.VaccineBatchID)
	assert.Equal(t, manufacturer, events[1].AddVaccineBatch.Manufacturer)
}

func TestBatchIDsSurviveManyWrites(t *testing.T) {
	f := newBatchFixture(t)
	manufacturer := f.registerManufacturer(t, "0x1000000000000000000000000000000000000001")

	const n = 50
	for i := 0; i < n; i++ {
		b, err := f.batches.AddVaccineBatch(f.ownerCtx, fmt.Sprintf("brand-%d", i), manufacturer)
		require.NoError(t, err)
		require.Equal(t, domain.BatchID(i), b.ID)
	}
}
