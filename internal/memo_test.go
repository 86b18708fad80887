package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func eqAny(a, b any) bool { return a == b }

func TestMemoTableHitsOnReplayWithSameKey(t *testing.T) {
	m := newMemoTable()

	calls := 0
	compute := func() any {
		calls++
		return "computed"
	}

	m.resetCursor()
	v1 := m.Call(1, "k", eqAny, compute)
	assert.Equal(t, "computed", v1)
	assert.Equal(t, 1, calls)

	// Replay the same incarnation shape: same key at position 0.
	m.resetCursor()
	v2 := m.Call(1, "k", eqAny, compute)
	assert.Equal(t, "computed", v2)
	assert.Equal(t, 1, calls, "second call with the same key at the same position must not recompute")
}

func TestMemoTableMissTruncatesFromCursorOnward(t *testing.T) {
	m := newMemoTable()

	m.resetCursor()
	m.Call(1, "a", eqAny, func() any { return "A" })
	m.Call(2, "b", eqAny, func() any { return "B" })
	m.Call(3, "c", eqAny, func() any { return "C" })

	// Next incarnation: same first call, then a *different* key at
	// position 1. Everything from position 1 onward must be discarded
	// and recomputed, including the untouched "c" entry from before.
	m.resetCursor()
	calls := 0
	v0 := m.Call(1, "a", eqAny, func() any { calls++; return "A" })
	assert.Equal(t, "A", v0)
	assert.Equal(t, 0, calls, "position 0 should still hit")

	v1 := m.Call(2, "different", eqAny, func() any { calls++; return "B2" })
	assert.Equal(t, "B2", v1)
	assert.Equal(t, 1, calls)

	assert.Len(t, m.entries, 2, "the stale position-2 entry ('c') must have been truncated")
}

func TestMemoTableFreshCallsAfterTruncationExtendTable(t *testing.T) {
	m := newMemoTable()

	m.resetCursor()
	m.Call(1, "a", eqAny, func() any { return "A" })

	m.resetCursor()
	calls := 0
	v := m.Call(99, "new-key", eqAny, func() any { calls++; return "fresh" })

	assert.Equal(t, "fresh", v)
	assert.Equal(t, 1, calls)
	assert.Len(t, m.entries, 1)
}
