package internal

// Runtime is the propagator of component D: the timeline, the pending
// reader heap, the pending event FIFO, and the "current reader"
// context used for dependency recording, plus the two configuration
// hooks of spec §6. One Runtime is a single logical executor (spec
// §5); GetRuntime (runtime_default.go / runtime_wasm.go) scopes one
// per goroutine so a process can run many independent propagators.
type Runtime struct {
	timeline   *Timeline
	heap       *ReaderHeap
	eventQueue *EventQueue

	currentReader *Reader
	propagating   bool

	uncaughtHandler func(any)
	debugSink       func(string)
}

// NewRuntime allocates a fresh, initialized runtime.
func NewRuntime() *Runtime {
	rt := &Runtime{}
	rt.Init()
	return rt
}

// Init (re)installs a fresh timeline, heap and event queue. Required
// before first use; idempotent. Any reader or notifier cleanup still
// attached to the discarded timeline fires during this call (spec
// §4.A "init").
func (rt *Runtime) Init() {
	if rt.timeline != nil {
		rt.timeline.Init()
	} else {
		rt.timeline = NewTimeline()
	}
	rt.heap = NewReaderHeap(rt.timeline)
	rt.eventQueue = NewEventQueue()
	rt.currentReader = nil
	rt.propagating = false
	rt.debugSink = defaultDebugSink
	rt.uncaughtHandler = defaultUncaughtExceptionHandler(rt.debug)
}

// Timeline exposes the underlying timeline for callers that need
// direct timestamp comparisons.
func (rt *Runtime) Timeline() *Timeline { return rt.timeline }

// Now returns the current cursor.
func (rt *Runtime) Now() *Timestamp { return rt.timeline.GetNow() }

// Tick advances the timeline and returns the fresh timestamp.
func (rt *Runtime) Tick() *Timestamp { return rt.timeline.Tick() }

// AddCleanup attaches fn to the current timestamp.
func (rt *Runtime) AddCleanup(fn func()) {
	_ = rt.timeline.AddCleanup(rt.timeline.GetNow(), fn)
}

// CurrentReader returns the reader currently executing, or nil.
func (rt *Runtime) CurrentReader() *Reader { return rt.currentReader }

// IsPropagating reports whether a propagation cycle is in progress.
func (rt *Runtime) IsPropagating() bool { return rt.propagating }

// SetUncaughtExceptionHandler installs the sink consulted when a
// listener or cleanup panics during propagation (spec §4.C/§7).
func (rt *Runtime) SetUncaughtExceptionHandler(fn func(any)) {
	if fn == nil {
		fn = defaultUncaughtExceptionHandler(rt.debug)
	}
	rt.uncaughtHandler = fn
}

// SetDebugSink installs the sink consulted for internal diagnostic
// strings (spec §6).
func (rt *Runtime) SetDebugSink(fn func(string)) {
	if fn == nil {
		fn = defaultDebugSink
	}
	rt.debugSink = fn
}

func (rt *Runtime) debug(s string) { rt.debugSink(s) }

// TrackBehavior subscribes r to b for the remainder of r's current
// run (registers r in b.readers, and arranges — via a cleanup on the
// current timestamp — that the registration is dropped the next time
// r's span is spliced out), then returns b's current result. This is
// the explicit tracking step spec combinators (Bind, Lift, ...)
// perform; plain Read/ReadResult never do this implicitly.
func (rt *Runtime) TrackBehavior(b *Behavior, r *Reader) Result {
	b.AddReader(r)
	rt.AddCleanup(func() { b.RemoveReader(r) })
	r.TrackDependency(b)
	return b.ReadResult()
}

// WriteBehavior runs the write algorithm of spec §4.E against the
// runtime's current notion of "now".
func (rt *Runtime) WriteBehavior(b *Behavior, result Result) {
	b.Write(rt.heap, rt.timeline.GetNow(), result, rt.uncaughtHandler)
}

// Memo replays or records one call against the current reader's
// per-context memo table (component H). Outside any reader there is
// no calling context to replay against, so compute just runs: memo is
// only meaningful for reuse across an incarnation's re-runs.
func (rt *Runtime) Memo(hash uint64, key any, eq func(a, b any) bool, compute func() any) any {
	if rt.currentReader == nil {
		return compute()
	}
	return rt.currentReader.Memo().Call(hash, key, eq, compute)
}

// EnqueueReader inserts r into the pending-reader heap directly
// (used by combinators that need to force a reader to re-run without
// going through a behavior write, e.g. a forced refresh).
func (rt *Runtime) EnqueueReader(r *Reader) {
	rt.heap.Insert(r)
}

// RunInitial performs the "initial run" of a freshly created reader:
// ticks a new start timestamp, installs r as the current reader, runs
// it, then records the timestamp the run left off at.
//
// splice_out(t1, t2) is exclusive of both endpoints (spec §4.A), so a
// cleanup registered on the body's very first or very last action
// would otherwise sit exactly on start_ts or end_ts and never be
// released by a rerun's splice — e.g. bind's inner-subscription
// deregistration, which is recorded on "the current timestamp" the
// instant the body starts. Ticking once before invoking Run, and once
// more before recording end_ts, guarantees every cleanup the body
// records lands strictly inside (start_ts, end_ts).
func (rt *Runtime) RunInitial(r *Reader) {
	r.StartTs = rt.Tick()
	rt.Tick()
	rt.runWithReader(r, r.Run)
	r.EndTs = rt.Tick()
}

func (rt *Runtime) runWithReader(r *Reader, fn func()) {
	if r.memo != nil {
		r.memo.resetCursor()
	}
	if r.Dependencies != nil {
		r.Dependencies.Clear()
	}

	prev := rt.currentReader
	rt.currentReader = r
	defer func() { rt.currentReader = prev }()
	fn()
}

// runPendingReader is the update-phase step of Propagate (spec §4.D
// step 4): splice out the reader's previous span (releasing every
// subordinate reader and cleanup it owned), rewind now to its start
// timestamp, run it, and record where it left off. Brackets the run
// with the same pair of ticks as RunInitial, for the same reason.
func (rt *Runtime) runPendingReader(r *Reader) {
	if r.EndTs != nil {
		if err := rt.timeline.SpliceOut(r.StartTs, r.EndTs); err != nil {
			rt.debug("frtime: discarding reader with invalid span: " + err.Error())
			return
		}
	}

	_ = rt.timeline.SetNow(r.StartTs)
	rt.Tick()

	rt.runWithReader(r, func() {
		invokeGuarded(rt.uncaughtHandler, r.Run)
	})

	r.EndTs = rt.Tick()
}

// Send is the externally-visible effect of the event primitives
// (send/send_exn/send_result): enqueue a delivery, and if no
// propagation cycle is already running, drive one to quiescence
// before returning (spec §4.D/§5).
func (rt *Runtime) Send(ch *Channel, result Result) {
	rt.eventQueue.Enqueue(ch, result)
	if !rt.propagating {
		rt.Propagate()
	}
}

// Propagate runs one full propagation cycle to quiescence: repeatedly
// draining the event queue into channel listeners, then draining the
// reader heap in timestamp order, looping back to the event queue if
// listeners enqueued new deliveries, until both are empty (spec
// §4.D). A nested call (propagation already running) is a no-op: the
// delivery that triggered it was already enqueued and will be seen by
// the outer loop.
func (rt *Runtime) Propagate() {
	if rt.propagating {
		return
	}

	rt.propagating = true
	defer func() { rt.propagating = false }()

	for {
		for rt.eventQueue.Len() > 0 {
			ch, result := rt.eventQueue.Dequeue()
			ch.Deliver(result, rt.uncaughtHandler)
		}

		rt.heap.Drain(rt.runPendingReader)

		if rt.eventQueue.Len() == 0 {
			break
		}
	}
}
