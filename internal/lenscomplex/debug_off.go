//go:build !debug

package lenscomplex

// Without the debug build tag the trace compiles away.

func DebugLog(format string, args ...interface{}) {}

func DebugLogOnce(format string, args ...interface{}) {}
