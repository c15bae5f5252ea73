package accesscontrol

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldchain/pkg/domain"
	dErrors "coldchain/pkg/domain-errors"
	"coldchain/pkg/requestcontext"
)

func TestWriteRequiresOwner(t *testing.T) {
	owner, err := domain.ParseEntityID("0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	other, err := domain.ParseEntityID("0x2222222222222222222222222222222222222222")
	require.NoError(t, err)

	ctrl := New(owner)

	ran := false
	body := func(context.Context) error {
		ran = true
		return nil
	}

	t.Run("rejects missing caller", func(t *testing.T) {
		err := ctrl.Write(context.Background(), body)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		assert.False(t, ran)
	})

	t.Run("rejects non-owner caller", func(t *testing.T) {
		ctx := requestcontext.WithCaller(context.Background(), other)
		err := ctrl.Write(ctx, body)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		assert.False(t, ran)
	})

	t.Run("admits the owner", func(t *testing.T) {
		ctx := requestcontext.WithCaller(context.Background(), owner)
		require.NoError(t, ctrl.Write(ctx, body))
		assert.True(t, ran)
	})
}

func TestWriteSerializesMutations(t *testing.T) {
	owner, err := domain.ParseEntityID("0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	ctrl := New(owner)
	ctx := requestcontext.WithCaller(context.Background(), owner)

	// Two writers incrementing a shared counter must never interleave.
	const writers, perWriter = 8, 200
	counter := 0
	done := make(chan struct{})
	for i := 0; i < writers; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < perWriter; j++ {
				_ = ctrl.Write(ctx, func(context.Context) error {
					counter++
					return nil
				})
			}
		}()
	}
	for i := 0; i < writers; i++ {
		<-done
	}
	assert.Equal(t, writers*perWriter, counter)
}
