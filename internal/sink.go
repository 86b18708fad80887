package internal

import "fmt"

// defaultUncaughtExceptionHandler is the default configuration hook of
// spec §6: log a single line via the debug sink rather than crashing
// the propagator. Swappable per-runtime with SetUncaughtExceptionHandler.
func defaultUncaughtExceptionHandler(debug func(string)) func(any) {
	return func(v any) {
		debug(fmt.Sprintf("frtime: uncaught exception in listener/cleanup: %v", v))
	}
}

// defaultDebugSink drops everything, per spec §6's default ("drop").
func defaultDebugSink(string) {}
