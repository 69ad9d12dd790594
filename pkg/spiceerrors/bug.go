package spiceerrors

import (
	"fmt"
	"os"
	"strings"
)

// IsInTests returns true if the binary is running under `go test`.
//
// Based on: https://stackoverflow.com/a/58945030
func IsInTests() bool {
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, "-test.") {
			return true
		}
	}
	return false
}

// MustPanicf panics with the formatted message. It marks a violated caller
// contract, such as an out-of-range index, which no caller can recover from.
func MustPanicf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}

// MustBugf returns an error representing a bug in the system. Will panic if run under testing.
func MustBugf(format string, args ...any) error {
	if IsInTests() {
		panic(fmt.Sprintf(format, args...))
	}

	return fmt.Errorf("BUG: "+format, args...)
}
