//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

var runtimes sync.Map

// GetRuntime returns the Runtime bound to the calling goroutine,
// creating one on first use. This is the concrete realization of
// spec §5's "single executor": the executor is one goroutine, and two
// goroutines never share propagator state, so no lock is needed
// inside Runtime itself (spec §9's design note on scoping
// "process-wide" state to an explicit handle, done here via a
// thread-local keyed by goroutine id rather than a handle threaded
// through every call).
func GetRuntime() *Runtime {
	gid := getGID()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}

func getGID() int64 {
	return goid.Get()
}
