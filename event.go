package frtime

import "github.com/ochreflow/frtime/internal"

// Channel is the read side of an occurrence stream: a channel has
// listeners but, unlike a Sender, no way to publish to itself.
type Channel[T any] struct {
	ch *internal.Channel
}

// Sender is the write-capability paired with a Channel by MakeEvent.
type Sender[T any] struct {
	s *internal.Sender
}

// MakeEvent allocates a fresh channel and hands back its read side and
// its paired write capability.
func MakeEvent[T any]() (*Channel[T], *Sender[T]) {
	ch, sender := internal.MakeEvent()
	return &Channel[T]{ch: ch}, &Sender[T]{s: sender}
}

// Never returns a channel with no sender: nothing can ever publish to
// it, so it never fires.
func Never[T any]() *Channel[T] {
	return &Channel[T]{ch: internal.Never()}
}

// Send publishes v on sender's channel. If no propagation cycle is
// already running, this call drives one to quiescence before
// returning.
func Send[T any](sender *Sender[T], v T) {
	internal.GetRuntime().Send(sender.s.Channel(), internal.ValueResult(v))
}

// SendExn publishes a failure on sender's channel.
func SendExn[T any](sender *Sender[T], err error) {
	internal.GetRuntime().Send(sender.s.Channel(), internal.FailResult(err))
}

// SendResult publishes a (value, error, ok) triple on sender's
// channel as a success or failure depending on ok.
func SendResult[T any](sender *Sender[T], v T, err error, ok bool) {
	if ok {
		Send(sender, v)
		return
	}
	SendExn(sender, err)
}

// NotifyE registers fn to run on every occurrence delivered on ch,
// success or failure filtered to successes only. Scoped to the
// enclosing reader the same way NotifyB is: implicitly cancelled on
// rerun if called from inside one, permanent otherwise.
func NotifyE[T any](ch *Channel[T], fn func(T)) {
	handle := ch.ch.AddListener(func(res internal.Result) {
		if res.IsFail() {
			return
		}
		fn(as[T](res.Value()))
	})
	scopeToCurrentReader(handle.Cancel)
}

// NotifyECancel is NotifyE with an explicit, always-returned cancel
// handle.
func NotifyECancel[T any](ch *Channel[T], fn func(T)) *NotifierHandle {
	handle := ch.ch.AddListener(func(res internal.Result) {
		if res.IsFail() {
			return
		}
		fn(as[T](res.Value()))
	})
	return &NotifierHandle{cancel: handle.Cancel}
}

// NotifyResultE is NotifyE without the failure filter.
func NotifyResultE[T any](ch *Channel[T], fn func(T, error, bool)) {
	handle := ch.ch.AddListener(func(res internal.Result) {
		if res.IsFail() {
			var zero T
			fn(zero, res.Err(), false)
			return
		}
		fn(as[T](res.Value()), nil, true)
	})
	scopeToCurrentReader(handle.Cancel)
}

// NotifyResultECancel is NotifyResultE with an explicit cancel handle.
func NotifyResultECancel[T any](ch *Channel[T], fn func(T, error, bool)) *NotifierHandle {
	handle := ch.ch.AddListener(func(res internal.Result) {
		if res.IsFail() {
			var zero T
			fn(zero, res.Err(), false)
			return
		}
		fn(as[T](res.Value()), nil, true)
	})
	return &NotifierHandle{cancel: handle.Cancel}
}

// Next returns a channel that fires exactly once, carrying the first
// occurrence delivered by ch after Next was called, then cancels its
// own listener.
func Next[T any](ch *Channel[T]) *Channel[T] {
	out, sender := MakeEvent[T]()

	var handle *internal.ListenerHandle
	handle = ch.ch.AddListener(func(res internal.Result) {
		handle.Cancel()
		if res.IsFail() {
			SendExn(sender, res.Err())
			return
		}
		Send(sender, as[T](res.Value()))
	})

	return out
}

// Merge returns a channel that fires whenever any of es fires, with
// that occurrence's value, in the order the inputs deliver it.
func Merge[T any](es ...*Channel[T]) *Channel[T] {
	out, sender := MakeEvent[T]()

	for _, e := range es {
		e.ch.AddListener(func(res internal.Result) {
			if res.IsFail() {
				SendExn(sender, res.Err())
				return
			}
			Send(sender, as[T](res.Value()))
		})
	}

	return out
}

// Map returns a channel that fires f(v) whenever e fires v. Failures
// pass through untransformed.
func Map[A, B any](f func(A) B, e *Channel[A]) *Channel[B] {
	out, sender := MakeEvent[B]()

	e.ch.AddListener(func(res internal.Result) {
		if res.IsFail() {
			SendExn(sender, res.Err())
			return
		}
		Send(sender, f(as[A](res.Value())))
	})

	return out
}

// Filter returns a channel that forwards e's occurrences only when
// p(v) holds. Failures always pass through.
func Filter[T any](p func(T) bool, e *Channel[T]) *Channel[T] {
	out, sender := MakeEvent[T]()

	e.ch.AddListener(func(res internal.Result) {
		if res.IsFail() {
			SendExn(sender, res.Err())
			return
		}
		v := as[T](res.Value())
		if p(v) {
			Send(sender, v)
		}
	})

	return out
}

// Collect returns a channel that, on each occurrence v of e, feeds the
// running accumulator (seeded at init) through f and forwards the
// result, retaining it as the new accumulator for the next occurrence.
func Collect[A, T any](f func(acc A, v T) A, initial A, e *Channel[T]) *Channel[A] {
	out, sender := MakeEvent[A]()
	acc := initial

	e.ch.AddListener(func(res internal.Result) {
		if res.IsFail() {
			SendExn(sender, res.Err())
			return
		}
		acc = f(acc, as[T](res.Value()))
		Send(sender, acc)
	})

	return out
}

// HashEvent returns ch's stable identity hash, suitable as a Memo key
// component.
func HashEvent[T any](ch *Channel[T]) uint64 {
	return internal.HashEvent(ch.ch)
}
