package testutils

import (
	"runtime/debug"
	"testing"
)

// This package contains cross-package helpers that are used in tests for multiple packages.
// We don't want to export those to users, so they are in an internal package.
// NOTE: Only the standard library and internal/utils may be imported here to avoid cyclic dependencies.

// Assert(condition) panics if condition is false; Assert(condition, error) panics if condition is false with panic(error).
func Assert(condition bool, err ...any) {
	if len(err) > 1 {
		panic("montgomery / testutils: Assert can only handle 1 extra error argument")
	}
	if !condition {
		if len(err) == 0 {
			panic("This is not supposed to be possible")
		} else {
			panic(err[0])
		}
	}
}

// FatalUnless fails the test with the given message (printing the stack) unless condition holds.
func FatalUnless(t *testing.T, condition bool, formatstring string, args ...any) {
	t.Helper()
	if !condition {
		debug.PrintStack()
		t.Fatalf(formatstring, args...)
	}
}
