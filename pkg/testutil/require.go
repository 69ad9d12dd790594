// Package testutil implements various utilities to reduce boilerplate in unit
// tests a la testify.
package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// RequireEqualEmptyNil is a version of require.Equal, but considers nil
// slices/maps to be equal to empty slices/maps.
func RequireEqualEmptyNil(t testing.TB, expected, actual any, msgAndArgs ...any) {
	t.Helper()
	opts := []cmp.Option{cmpopts.EquateEmpty()}
	msgAndArgs = append(msgAndArgs, cmp.Diff(expected, actual, opts...))
	require.Truef(t, cmp.Equal(expected, actual, opts...), "Should be equal", msgAndArgs...)
}

// RequireEqualFunc is require.Equal for types that carry an equality method,
// such as values holding unexported state that go-cmp cannot look into.
func RequireEqualFunc[T any](t testing.TB, expected, actual T, equal func(T, T) bool, msgAndArgs ...any) {
	t.Helper()
	if !equal(expected, actual) {
		require.Failf(t, "Not equal", "expected: %v\nactual  : %v", append([]any{expected, actual}, msgAndArgs...)...)
	}
}
