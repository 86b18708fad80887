package internal

import mapset "github.com/deckarep/golang-set/v2"

// EqualFunc decides whether a binder's next output counts as a change
// for its downstream readers (spec §3: "equality lives on the binder
// that produced the behavior"). A nil EqualFunc means "always
// different", the spec's documented default.
type EqualFunc func(a, b any) bool

type notifierEntry struct {
	id  uint64
	fn  func(Result)
	off bool
}

// NotifierHandle cancels a single notifier registration. Cancelling
// twice is a no-op (spec §5).
type NotifierHandle struct {
	entry *notifierEntry
}

// Cancel removes the listener. Safe to call more than once.
func (h *NotifierHandle) Cancel() {
	if h == nil || h.entry == nil {
		return
	}
	h.entry.off = true
}

// Behavior is the shared cell of component E: a current result, the
// timestamp it last changed at, the binder's equality predicate, the
// readers currently depending on it, and the externally-registered
// notifiers that aren't dependency nodes.
type Behavior struct {
	id uint64

	result    Result
	changedAt *Timestamp
	eq        EqualFunc

	readers   mapset.Set[*Reader]
	notifiers []*notifierEntry
}

// NewBehavior allocates a behavior cell already holding result, as of
// changedAt (used for constant/fail behaviors and as the seed for
// hold/make_cell).
func NewBehavior(result Result, changedAt *Timestamp, eq EqualFunc) *Behavior {
	return &Behavior{
		id:        allocID(),
		result:    result,
		changedAt: changedAt,
		eq:        eq,
		readers:   mapset.NewSet[*Reader](),
	}
}

// ID is the behavior's stable creation-order identity, used only by
// HashBehavior.
func (b *Behavior) ID() uint64 { return b.id }

// ReadResult returns the current result without registering a
// dependency. Documented (spec §4.E) as possibly stale if called
// outside the propagator.
func (b *Behavior) ReadResult() Result {
	return b.result
}

// ChangedAt returns the timestamp at which result was last written.
func (b *Behavior) ChangedAt() *Timestamp {
	return b.changedAt
}

// AddReader registers r as a dependent; the caller is responsible for
// arranging r's deregistration (normally via a cleanup on the current
// timestamp that calls RemoveReader).
func (b *Behavior) AddReader(r *Reader) {
	b.readers.Add(r)
}

// RemoveReader deregisters r.
func (b *Behavior) RemoveReader(r *Reader) {
	b.readers.Remove(r)
}

// Readers iterates the currently registered readers.
func (b *Behavior) Readers(yield func(*Reader) bool) {
	for r := range b.readers.Iter() {
		if !yield(r) {
			return
		}
	}
}

// AddNotifier registers fn to be called synchronously, with the
// delivered result, on every change that survives the equality check.
func (b *Behavior) AddNotifier(fn func(Result)) *NotifierHandle {
	entry := &notifierEntry{id: allocID(), fn: fn}
	b.notifiers = append(b.notifiers, entry)
	return &NotifierHandle{entry: entry}
}

// Write is the write algorithm of spec §4.E: a no-op if eq holds
// between the old and new value (both successes); otherwise it
// updates result and changedAt, enqueues every current reader into
// heap, and synchronously delivers to every live notifier, in
// registration order.
func (b *Behavior) Write(heap *ReaderHeap, now *Timestamp, next Result, uncaught func(any)) {
	if !b.result.IsFail() && !next.IsFail() && b.eq != nil && b.eq(b.result.Value(), next.Value()) {
		return
	}

	b.result = next
	b.changedAt = now

	for r := range b.readers.Iter() {
		heap.Insert(r)
	}

	for _, entry := range b.notifiers {
		if entry.off {
			continue
		}
		invokeGuarded(uncaught, func() { entry.fn(next) })
	}
}

func invokeGuarded(uncaught func(any), fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if uncaught != nil {
				uncaught(r)
			}
		}
	}()
	fn()
}
