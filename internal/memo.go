package internal

// memoEntry is one recorded (key, result) call.
type memoEntry struct {
	keyHash uint64
	key     any
	result  any
}

// MemoTable is the per-context replayable memo table of component H:
// an ordered list of prior calls, replayed positionally. The i-th
// call of an incarnation checks the i-th recorded entry; a key
// mismatch at position i discards every entry from i onward and the
// function runs afresh from there (spec §4.G/§8 invariant 8). This is
// intentionally order-preserving reuse, not a general-purpose cache:
// memoizing, say, a recursive traversal over stable structure, where
// each incarnation issues the same calls in the same order.
type MemoTable struct {
	entries []memoEntry
	cursor  int
}

func newMemoTable() *MemoTable {
	return &MemoTable{}
}

// resetCursor starts a fresh incarnation: the next Call checks
// position 0 again.
func (m *MemoTable) resetCursor() {
	m.cursor = 0
}

// Call probes the table at the current cursor position. On a hit
// (same hash, and eq(key, storedKey)) it returns the stored result
// without invoking compute. On a miss it truncates every entry from
// the cursor onward, invokes compute, and records the fresh result.
func (m *MemoTable) Call(hash uint64, key any, eq func(a, b any) bool, compute func() any) any {
	if m.cursor < len(m.entries) {
		entry := m.entries[m.cursor]
		if entry.keyHash == hash && eq(key, entry.key) {
			m.cursor++
			return entry.result
		}
		m.entries = m.entries[:m.cursor]
	}

	result := compute()
	m.entries = append(m.entries, memoEntry{keyHash: hash, key: key, result: result})
	m.cursor++
	return result
}
