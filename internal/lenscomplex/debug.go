//go:build debug

package lenscomplex

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// debugLogger receives the trace of debug builds on stderr, tagged with the package.
var debugLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})).
	With(slog.String("pkg", "lenscomplex"))

// DebugLog traces one step of layering, calibration or rendering.
func DebugLog(format string, args ...interface{}) {
	debugLogger.Log(context.Background(), slog.LevelDebug, fmt.Sprintf(format, args...))
}

// seen holds the formats DebugLogOnce has already printed.
var seen sync.Map

// DebugLogOnce prints the first message of each format only, for hot paths such as
// canvas allocation.
func DebugLogOnce(format string, args ...interface{}) {
	if _, dup := seen.LoadOrStore(format, struct{}{}); dup {
		return
	}
	DebugLog(format, args...)
}
