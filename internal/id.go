package internal

import "sync/atomic"

var nextID uint64

// allocID hands out the process-unique, monotonically increasing ids
// used only by HashBehavior/HashEvent (spec §4.G's stable identity
// hash) — never by equality or propagation order.
func allocID() uint64 {
	return atomic.AddUint64(&nextID, 1)
}
