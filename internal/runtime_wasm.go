//go:build wasm

package internal

import "sync"

var once sync.Once
var globalRuntime *Runtime

// GetRuntime returns the single process-wide runtime under wasm,
// where there is exactly one goroutine that matters (the one driving
// the event loop) and petermattis/goid doesn't build.
func GetRuntime() *Runtime {
	once.Do(func() {
		globalRuntime = NewRuntime()
	})

	return globalRuntime
}
