package internal

import "fmt"

// ErrInvalidTimestamp is returned when a timeline operation is given a
// timestamp that has been spliced out, or a splice range that doesn't
// run forward.
var ErrInvalidTimestamp = fmt.Errorf("frtime: invalid timestamp")

// Timestamp is a node in the timeline's singly next-chained list. The
// sentinel is the unique live timestamp whose next pointer is itself;
// every other live timestamp eventually reaches it by following next.
type Timestamp struct {
	next       *Timestamp
	splicedOut bool
	cleanups   []func()
}

// IsSplicedOut reports whether t has been removed from the timeline.
func (t *Timestamp) IsSplicedOut() bool {
	return t.splicedOut
}

func (t *Timestamp) isSentinel() bool {
	return t.next == t
}

// Timeline is the totally-ordered, splice-capable sequence of
// timestamps described in spec §3/§4.A. head is the dummy node
// installed by the most recent Init, kept distinct from the sentinel
// so that Init can walk the whole live chain (head -> ... -> sentinel)
// to fire every outstanding cleanup before discarding it. now is the
// cursor at the most recently allocated live timestamp.
type Timeline struct {
	head *Timestamp
	now  *Timestamp
}

// NewTimeline allocates a timeline with a fresh head/sentinel pair.
func NewTimeline() *Timeline {
	tl := &Timeline{}
	tl.Init()
	return tl
}

// Init discards the current timeline: every cleanup still attached to
// a live node fires, walking from head to the sentinel in forward
// order, before a fresh head/sentinel pair is installed. now is reset
// to the fresh head. Idempotent, and required before first use.
func (tl *Timeline) Init() {
	if tl.head != nil {
		for node := tl.head; ; {
			next := node.next
			tl.fireCleanups(node)
			sentinel := node.isSentinel()
			node.splicedOut = true
			if sentinel {
				break
			}
			node = next
		}
	}

	sentinel := &Timestamp{}
	sentinel.next = sentinel

	head := &Timestamp{next: sentinel}

	tl.head = head
	tl.now = head
}

func (tl *Timeline) fireCleanups(t *Timestamp) {
	for i := len(t.cleanups) - 1; i >= 0; i-- {
		fn := t.cleanups[i]
		t.cleanups[i] = nil
		fn()
	}
	t.cleanups = nil
}

// GetNow returns the current cursor.
func (tl *Timeline) GetNow() *Timestamp {
	return tl.now
}

// SetNow moves the cursor to t. Fails if t has been spliced out.
func (tl *Timeline) SetNow(t *Timestamp) error {
	if t.splicedOut {
		return ErrInvalidTimestamp
	}
	tl.now = t
	return nil
}

// Tick inserts a fresh node right after now, advances now to it, and
// returns it.
func (tl *Timeline) Tick() *Timestamp {
	fresh := &Timestamp{next: tl.now.next}
	tl.now.next = fresh
	tl.now = fresh
	return fresh
}

// AddCleanup validates t and appends fn to its cleanup list; the list
// is fired back to front, so cleanups run in reverse-registration
// (LIFO) order within t.
func (tl *Timeline) AddCleanup(t *Timestamp, fn func()) error {
	if t.splicedOut {
		return ErrInvalidTimestamp
	}
	t.cleanups = append(t.cleanups, fn)
	return nil
}

// SpliceOut removes every node strictly between t1 and t2, firing and
// clearing their cleanups in forward order and marking them spliced
// out, then links t1 directly to t2. Fails with ErrInvalidTimestamp if
// t2 does not lie after t1 — detected when the forward walk from t1
// reaches the sentinel without finding t2. As documented in spec §9,
// that failure is destructive: nodes walked before detection are
// already spliced out.
func (tl *Timeline) SpliceOut(t1, t2 *Timestamp) error {
	if t1.splicedOut || t2.splicedOut {
		return ErrInvalidTimestamp
	}

	node := t1.next
	for node != t2 {
		if node.isSentinel() {
			return ErrInvalidTimestamp
		}

		next := node.next
		tl.fireCleanups(node)
		node.splicedOut = true
		node = next
	}

	t1.next = t2
	return nil
}

// Compare returns 0 if t1 and t2 are the same node, -1 if t1 precedes
// t2 (found by walking forward from t1), and +1 otherwise.
func (tl *Timeline) Compare(t1, t2 *Timestamp) int {
	if t1 == t2 {
		return 0
	}

	for node := t1; !node.isSentinel(); node = node.next {
		if node == t2 {
			return -1
		}
	}

	return 1
}

// Equal reports identity equality between two timestamps.
func (tl *Timeline) Equal(t1, t2 *Timestamp) bool {
	return t1 == t2
}
