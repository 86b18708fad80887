package internal

import mapset "github.com/deckarep/golang-set/v2"

// Reader is the dependency record of spec §3: a first-class record for
// a computation registered as a dependent of one or more behaviors or
// events. It is owned by the binder that created it (Bind/Lift/Catch/
// notify, or an arity-N combinator); when that binder re-runs, the
// reader and everything transitively created inside it are released
// by splicing out the timestamps strictly between StartTs and EndTs.
type Reader struct {
	// StartTs is the timestamp at which the enclosing computation
	// began; it is also this reader's priority in the heap.
	StartTs *Timestamp
	// EndTs is the timestamp just past the reader's last recorded
	// action, set after each run.
	EndTs *Timestamp

	// Run re-executes the reader's body.
	Run func()

	// Dependencies mirrors, for introspection and tests, the set of
	// behaviors/events this reader subscribed to during its last run.
	// The actual deregistration is done by cleanups recorded on
	// timestamps strictly between StartTs and EndTs; this set does not
	// own that.
	Dependencies mapset.Set[any]

	// enqueued makes re-enqueueing idempotent within one propagation
	// cycle (spec §4.B/§8 invariant 2): at most one insertion per
	// cycle, regardless of how many dependencies fired.
	enqueued bool

	heapIndex int

	// memo is this reader's component-H memo table, created lazily the
	// first time its body calls Memo.
	memo *MemoTable
}

// Memo returns this reader's memo table, creating it on first use.
func (r *Reader) Memo() *MemoTable {
	if r.memo == nil {
		r.memo = newMemoTable()
	}
	return r.memo
}

// NewReader allocates a reader that hasn't run yet.
func NewReader(run func()) *Reader {
	return &Reader{
		Run:          run,
		Dependencies: mapset.NewSet[any](),
	}
}

// Enqueued reports whether the reader currently sits in the priority
// queue.
func (r *Reader) Enqueued() bool {
	return r.enqueued
}

// TrackDependency records that src (a *Behavior or *Channel) was read
// or subscribed to during the reader's current run.
func (r *Reader) TrackDependency(src any) {
	r.Dependencies.Add(src)
}
