//go:build !ci

package spiceerrors

const DebugAssertionsEnabled = false

// DebugAssertf is a no-op in non-CI builds.
func DebugAssertf(condition func() bool, format string, args ...any) {
	// Do nothing on purpose
}
