package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireFault asserts that fn panics through behaviortreex.Fault with an
// error wrapping target.
func RequireFault(t testing.TB, target error, fn func()) {
	t.Helper()
	var recovered any
	func() {
		defer func() {
			recovered = recover()
		}()
		fn()
	}()
	require.NotNil(t, recovered, "expected fault wrapping %v", target)
	err, ok := recovered.(error)
	require.True(t, ok, "panic value %v (%T) is not an error", recovered, recovered)
	require.True(t, errors.Is(err, target), "fault %q does not wrap %q", err, target)
}
