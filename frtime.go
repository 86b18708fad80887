// Package frtime implements a functional-reactive runtime based on
// self-adjusting computation: a timeline of logical timestamps, a
// priority-ordered propagator, and behavior/event primitives built on
// top of them. See SPEC_FULL.md for the full operation catalogue.
package frtime

import (
	"errors"

	"github.com/ochreflow/frtime/internal"
)

// as recovers a T from the any the internal engine hands back,
// returning the zero value for a nil/untyped hole. The teacher's own
// generic wrapper layer (sig.go) uses the identical helper to bridge
// its internal package's any-typed core to typed public structs.
func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

func eqFunc[T any](eq func(a, b T) bool) internal.EqualFunc {
	if eq == nil {
		return nil
	}
	return func(a, b any) bool { return eq(a.(T), b.(T)) }
}

// Init discards the calling goroutine's entire runtime state: timeline,
// pending-reader heap, event queue, and configuration hooks. Every
// outstanding cleanup fires during the call. Required before first use
// of the package from a goroutine; idempotent.
func Init() {
	internal.GetRuntime().Init()
}

// SetUncaughtExceptionHandler installs the sink consulted when a
// listener or cleanup panics during propagation. Passing nil restores
// the default (log via the debug sink and continue).
func SetUncaughtExceptionHandler(fn func(any)) {
	internal.GetRuntime().SetUncaughtExceptionHandler(fn)
}

// SetDebugSink installs the sink consulted for internal diagnostic
// strings. Passing nil restores the default (drop).
func SetDebugSink(fn func(string)) {
	internal.GetRuntime().SetDebugSink(fn)
}

// Behavior is a time-varying value: at any instant it holds either a
// successfully produced value or a failure, and notifies its
// dependents exactly once per propagation cycle in which it changes.
type Behavior[T any] struct {
	b *internal.Behavior
}

// NotifierHandle cancels a behavior or event notifier registration
// made outside a reactive context. Cancelling twice is a no-op.
type NotifierHandle struct {
	cancel func()
}

// Cancel removes the registration.
func (h *NotifierHandle) Cancel() {
	if h == nil || h.cancel == nil {
		return
	}
	h.cancel()
}

// Return allocates a behavior whose value is fixed at v for its entire
// lifetime, beyond whatever notifiers a caller attaches.
func Return[T any](v T) *Behavior[T] {
	rt := internal.GetRuntime()
	return &Behavior[T]{b: internal.NewBehavior(internal.ValueResult(v), rt.Now(), nil)}
}

// Fail allocates a behavior whose value is fixed as a failure.
func Fail[T any](err error) *Behavior[T] {
	rt := internal.GetRuntime()
	return &Behavior[T]{b: internal.NewBehavior(internal.FailResult(err), rt.Now(), nil)}
}

// ErrBehaviorFailed is returned by Read when the behavior it reads
// currently carries a failure, wrapping the carried error.
var ErrBehaviorFailed = errors.New("frtime: behavior is in a failed state")

// Read returns the behavior's current value, raising its carried
// failure (wrapped in ErrBehaviorFailed) as a Go error instead. Does
// not register a dependency: documented as possibly stale if called
// outside a reader's run.
func Read[T any](b *Behavior[T]) (T, error) {
	res := b.b.ReadResult()
	if res.IsFail() {
		var zero T
		return zero, errors.Join(ErrBehaviorFailed, res.Err())
	}
	return as[T](res.Value()), nil
}

// MustRead is Read's raising form: it panics with the wrapped failure
// instead of returning an error. It exists for use inside a Catch or
// TryBind thunk, where spec §4.E's "thunk raises, handler substitutes"
// contract is realized as Go panic/recover rather than an error
// return — Catch and TryBind are exactly the constructs that catch it.
func MustRead[T any](b *Behavior[T]) T {
	v, err := Read(b)
	if err != nil {
		panic(err)
	}
	return v
}

// ReadResult is identical to Read but never raises: ok reports whether
// the current value is a success.
func ReadResult[T any](b *Behavior[T]) (value T, err error, ok bool) {
	res := b.b.ReadResult()
	if res.IsFail() {
		return value, res.Err(), false
	}
	return as[T](res.Value()), nil, true
}

// NotifyB registers fn to run, synchronously, on every change to b
// that survives its equality check. If called from inside a reader's
// run, the registration is scoped to that reader: it is cancelled
// automatically the next time the reader's span is spliced out.
// Outside a reader, the registration is permanent; use NotifyBCancel
// for an explicit handle in that case.
func NotifyB[T any](b *Behavior[T], fn func(T)) {
	handle := b.b.AddNotifier(func(res internal.Result) {
		if res.IsFail() {
			return
		}
		fn(as[T](res.Value()))
	})
	scopeToCurrentReader(handle.Cancel)
}

// NotifyBCancel is NotifyB but always returns an explicit cancel
// handle and never implicitly scopes to the enclosing reader.
func NotifyBCancel[T any](b *Behavior[T], fn func(T)) *NotifierHandle {
	handle := b.b.AddNotifier(func(res internal.Result) {
		if res.IsFail() {
			return
		}
		fn(as[T](res.Value()))
	})
	return &NotifierHandle{cancel: handle.Cancel}
}

// NotifyResultB is NotifyB without the failure filter: fn sees every
// change, success or failure, as an (value, error, ok) triple.
func NotifyResultB[T any](b *Behavior[T], fn func(T, error, bool)) {
	handle := b.b.AddNotifier(func(res internal.Result) {
		if res.IsFail() {
			var zero T
			fn(zero, res.Err(), false)
			return
		}
		fn(as[T](res.Value()), nil, true)
	})
	scopeToCurrentReader(handle.Cancel)
}

// NotifyResultBCancel is NotifyResultB with an explicit cancel handle.
func NotifyResultBCancel[T any](b *Behavior[T], fn func(T, error, bool)) *NotifierHandle {
	handle := b.b.AddNotifier(func(res internal.Result) {
		if res.IsFail() {
			var zero T
			fn(zero, res.Err(), false)
			return
		}
		fn(as[T](res.Value()), nil, true)
	})
	return &NotifierHandle{cancel: handle.Cancel}
}

// scopeToCurrentReader arranges for cancel to run when the calling
// reader's span is next spliced out; outside any reader, it is a
// permanent registration with no implicit cancellation.
func scopeToCurrentReader(cancel func()) {
	rt := internal.GetRuntime()
	if rt.CurrentReader() == nil {
		return
	}
	rt.AddCleanup(cancel)
}

// Cleanup registers fn to run once, the next time the enclosing
// reader's span is spliced out (on rerun, or on the next Init if the
// reader never reruns). Outside a reader, this is a programmer error
// in every reactive system this runtime is modeled on, but here it
// degenerates harmlessly: fn fires the next time the current timeline
// segment is released.
func Cleanup(fn func()) {
	internal.GetRuntime().AddCleanup(fn)
}

// Memo reuses or records one call to compute against the enclosing
// reader's per-incarnation memo table, keyed by hash and disambiguated
// by eq(key, storedKey). Outside a reader there is no incarnation to
// replay against, so compute always runs.
func Memo[T any](hash uint64, key any, eq func(a, b any) bool, compute func() T) T {
	rt := internal.GetRuntime()
	return as[T](rt.Memo(hash, key, eq, func() any { return compute() }))
}

// HashBehavior returns b's stable identity hash, suitable as a Memo
// key component. It never reflects b's mutable value.
func HashBehavior[T any](b *Behavior[T]) uint64 {
	return internal.HashBehavior(b.b)
}
