//go:build ci

package spiceerrors

import "fmt"

const DebugAssertionsEnabled = true

// DebugAssertf panics if the condition is false in CI builds.
func DebugAssertf(condition func() bool, format string, args ...any) {
	if !condition() {
		panic(fmt.Sprintf(format, args...))
	}
}
