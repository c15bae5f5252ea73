package jwttoken_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldchain/internal/jwttoken"
	dErrors "coldchain/pkg/domain-errors"
	"coldchain/pkg/testutil"
)

func TestGenerateAndValidateCallerToken(t *testing.T) {
	service := jwttoken.NewService("test-signing-key", "coldchain", "coldchain-registry")
	caller := testutil.MustEntityID(t, "0xaAaAaAaaAaAaAaaAaAAAAAAAAaaaAaAaAaaAaaAa")

	token, err := service.GenerateCallerToken(caller, time.Hour)
	require.NoError(t, err)

	got, err := service.ValidateCallerToken(token)
	require.NoError(t, err)
	assert.Equal(t, caller, got)
}

func TestValidateCallerTokenRejections(t *testing.T) {
	service := jwttoken.NewService("test-signing-key", "coldchain", "coldchain-registry")
	caller := testutil.MustEntityID(t, "0xaAaAaAaaAaAaAaaAaAAAAAAAAaaaAaAaAaaAaaAa")

	t.Run("expired token", func(t *testing.T) {
		token, err := service.GenerateCallerToken(caller, -time.Minute)
		require.NoError(t, err)

		_, err = service.ValidateCallerToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := jwttoken.NewService("another-key", "coldchain", "coldchain-registry")
		token, err := other.GenerateCallerToken(caller, time.Hour)
		require.NoError(t, err)

		_, err = service.ValidateCallerToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := jwttoken.NewService("test-signing-key", "someone-else", "coldchain-registry")
		token, err := other.GenerateCallerToken(caller, time.Hour)
		require.NoError(t, err)

		_, err = service.ValidateCallerToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("wrong audience", func(t *testing.T) {
		other := jwttoken.NewService("test-signing-key", "coldchain", "another-service")
		token, err := other.GenerateCallerToken(caller, time.Hour)
		require.NoError(t, err)

		_, err = service.ValidateCallerToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := service.ValidateCallerToken("not.a.token")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
