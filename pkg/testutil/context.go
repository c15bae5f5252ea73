// Package testutil provides common test utilities for service and handler
// tests: caller contexts and disposable signing identities.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"coldchain/pkg/domain"
	"coldchain/pkg/requestcontext"
)

// ContextWithCaller simulates what the auth middleware does for an
// authenticated request.
func ContextWithCaller(caller domain.EntityID) context.Context {
	return requestcontext.WithCaller(context.Background(), caller)
}

// MustEntityID parses a hex address or fails the test.
func MustEntityID(t *testing.T, s string) domain.EntityID {
	t.Helper()
	id, err := domain.ParseEntityID(s)
	require.NoError(t, err)
	return id
}
