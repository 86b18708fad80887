package internal

// listenerEntry is one registration on a channel. Listeners are kept
// in an ordered slice, not a set: spec §5 requires delivery in
// registration order, which a golang-set-style unordered collection
// (used for Behavior.readers, where propagation order is decided by
// the timeline instead) cannot give us.
type listenerEntry struct {
	id  uint64
	fn  func(Result)
	off bool
}

// ListenerHandle cancels a single listener registration. Cancelling
// twice is a no-op.
type ListenerHandle struct {
	entry *listenerEntry
}

// Cancel removes the listener. Safe to call more than once.
func (h *ListenerHandle) Cancel() {
	if h == nil || h.entry == nil {
		return
	}
	h.entry.off = true
}

// Channel is the shared cell of component F: an ordered set of
// listeners plus a stable identity.
type Channel struct {
	id        uint64
	listeners []*listenerEntry
}

// NewChannel allocates a channel with no listeners.
func NewChannel() *Channel {
	return &Channel{id: allocID()}
}

// ID is the channel's stable creation-order identity, used only by
// HashEvent.
func (c *Channel) ID() uint64 { return c.id }

// AddListener registers fn, returning a handle to cancel it.
func (c *Channel) AddListener(fn func(Result)) *ListenerHandle {
	entry := &listenerEntry{id: allocID(), fn: fn}
	c.listeners = append(c.listeners, entry)
	return &ListenerHandle{entry: entry}
}

// Deliver invokes every live listener, in registration order, with
// result. A listener that panics is caught and routed to uncaught
// (spec §4.C: "the runtime consults the process-wide uncaught-exception
// sink and continues with the next listener").
func (c *Channel) Deliver(result Result, uncaught func(any)) {
	// Snapshot the live listeners: a listener firing synchronously
	// inside Deliver (e.g. next's self-cancelling registration, or a
	// listener that adds or cancels another listener) does not change
	// who receives this delivery; it takes effect from the next one.
	listeners := make([]*listenerEntry, 0, len(c.listeners))
	for _, entry := range c.listeners {
		if !entry.off {
			listeners = append(listeners, entry)
		}
	}

	for _, entry := range listeners {
		invokeGuarded(uncaught, func() { entry.fn(result) })
	}
}

// Sender is the capability token required to write to a channel; a
// plain *Channel cannot publish (spec §3/§6's sender/channel split).
type Sender struct {
	channel *Channel
}

// Channel returns the read side paired with this sender.
func (s *Sender) Channel() *Channel {
	return s.channel
}

// MakeEvent allocates a channel and hands back the channel and its
// paired sender.
func MakeEvent() (*Channel, *Sender) {
	ch := NewChannel()
	return ch, &Sender{channel: ch}
}

// Never returns a channel with no sender: nothing can ever write to
// it, so it never fires.
func Never() *Channel {
	return NewChannel()
}
