package frtime

import (
	"fmt"

	"github.com/ochreflow/frtime/internal"
)

// safeApply runs fn and reports any panic it raises as a Fail result
// instead of letting it cross into the propagator: spec §7's policy
// that only InvalidTimestamp is allowed to surface as a thrown
// exception from a runtime operation means a user callback's panic —
// a division by zero in a lifted function, say — becomes the output
// behavior's failure instead, observable (and catchable) the same way
// any other Fail is.
func safeApply[T any](fn func() T) internal.Result {
	var result internal.Result
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				result = internal.FailResult(asError(rec))
			}
		}()
		result = internal.ValueResult(fn())
	}()
	return result
}

func asError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("%v", rec)
}

// Bind allocates a reader-backed output behavior that tracks b and,
// on every run, calls f with b's current value to choose an inner
// behavior; the output forwards whatever that inner behavior writes
// until the next run picks a different one. f is re-invoked only when
// b itself changes — not on every write of the currently-chosen inner
// behavior, which is forwarded directly.
func Bind[A, B any](b *Behavior[A], f func(A) *Behavior[B], eq func(x, y B) bool) *Behavior[B] {
	rt := internal.GetRuntime()
	out := internal.NewBehavior(internal.FailResult(errNotYetRun), rt.Now(), eqFunc(eq))

	r := internal.NewReader(nil)
	r.Run = func() {
		res := rt.TrackBehavior(b.b, r)
		if res.IsFail() {
			rt.WriteBehavior(out, res)
			return
		}

		innerRes := safeApply(func() *Behavior[B] { return f(as[A](res.Value())) })
		if innerRes.IsFail() {
			rt.WriteBehavior(out, innerRes)
			return
		}

		inner := innerRes.Value().(*Behavior[B])
		handle := inner.b.AddNotifier(func(innerRes internal.Result) {
			rt.WriteBehavior(out, innerRes)
		})
		rt.AddCleanup(handle.Cancel)
		rt.WriteBehavior(out, inner.b.ReadResult())
	}
	rt.RunInitial(r)

	return &Behavior[B]{b: out}
}

// errNotYetRun is never observable: every output behavior Bind/Lift/
// Catch/TryBind allocate is always written during its own reader's
// initial run before RunInitial returns control to the caller.
var errNotYetRun = errNotYetRunError{}

type errNotYetRunError struct{}

func (errNotYetRunError) Error() string { return "frtime: behavior never ran" }

// Lift applies a pure function f over b's current value on every
// change and writes the result to the output directly, without the
// inner-behavior subscription a Bind sets up. Failures in b pass
// through untouched.
func Lift[A, B any](f func(A) B, b *Behavior[A], eq func(x, y B) bool) *Behavior[B] {
	return liftReader[A, B](b, eqFunc(eq), func(rt *internal.Runtime, r *internal.Reader, res internal.Result) internal.Result {
		if res.IsFail() {
			return res
		}
		return safeApply(func() B { return f(as[A](res.Value())) })
	})
}

// BLift is Lift with the behavior-first argument order the spec names
// separately (`blift(b, f)` vs `lift(f, b)`); the implementation is
// identical.
func BLift[A, B any](b *Behavior[A], f func(A) B, eq func(x, y B) bool) *Behavior[B] {
	return Lift(f, b, eq)
}

func liftReader[A, B any](b *Behavior[A], eq internal.EqualFunc, step func(*internal.Runtime, *internal.Reader, internal.Result) internal.Result) *Behavior[B] {
	rt := internal.GetRuntime()
	out := internal.NewBehavior(internal.FailResult(errNotYetRun), rt.Now(), eq)

	r := internal.NewReader(nil)
	r.Run = func() {
		res := rt.TrackBehavior(b.b, r)
		rt.WriteBehavior(out, step(rt, r, res))
	}
	rt.RunInitial(r)

	return &Behavior[B]{b: out}
}

// Catch runs thunk inside a fresh reader, so any Bind/Lift/NotifyB
// call thunk makes is scoped to that reader. If thunk panics with an
// error — the shape MustRead produces when the behavior it reads has
// failed — handler(err) is substituted as the output. Any other panic
// value propagates unchanged. The reader records no dependency of its
// own: the output is computed once, when Catch is called, and is not
// recomputed when behaviors that thunk read change later.
func Catch[T any](thunk func() T, handler func(error) T, eq func(x, y T) bool) *Behavior[T] {
	rt := internal.GetRuntime()
	out := internal.NewBehavior(internal.FailResult(errNotYetRun), rt.Now(), eqFunc(eq))

	r := internal.NewReader(nil)
	r.Run = func() {
		result := runCatching(thunk, handler)
		rt.WriteBehavior(out, internal.ValueResult(result))
	}
	rt.RunInitial(r)

	return &Behavior[T]{b: out}
}

func runCatching[T any](thunk func() T, handler func(error) T) (result T) {
	defer func() {
		if rec := recover(); rec != nil {
			if err, isErr := rec.(error); isErr {
				result = handler(err)
				return
			}
			panic(rec)
		}
	}()
	return thunk()
}

// TryBind runs thunk inside a reader; ok receives its result on
// success and chooses the inner behavior to forward, err receives any
// failure (propagated the same way as thunk panicking with an error,
// per Catch) and chooses the inner behavior to forward instead.
func TryBind[T, B any](thunk func() T, ok func(T) *Behavior[B], err func(error) *Behavior[B], eq func(x, y B) bool) *Behavior[B] {
	rt := internal.GetRuntime()
	out := internal.NewBehavior(internal.FailResult(errNotYetRun), rt.Now(), eqFunc(eq))

	r := internal.NewReader(nil)
	r.Run = func() {
		inner := runCatching(func() *Behavior[B] {
			return ok(thunk())
		}, err)

		handle := inner.b.AddNotifier(func(innerRes internal.Result) {
			rt.WriteBehavior(out, innerRes)
		})
		rt.AddCleanup(handle.Cancel)
		rt.WriteBehavior(out, inner.b.ReadResult())
	}
	rt.RunInitial(r)

	return &Behavior[B]{b: out}
}
