package frtime

import "github.com/ochreflow/frtime/internal"

// AnyBehavior erases a Behavior[T]'s type parameter so BindN/LiftN can
// accept a heterogeneous slice of inputs. Every *Behavior[T] satisfies
// it automatically; callers never implement it themselves.
type AnyBehavior interface {
	behaviorHandle() *internal.Behavior
}

func (b *Behavior[T]) behaviorHandle() *internal.Behavior { return b.b }

// trackAll records a dependency on every input, in order, before any
// value is inspected — spec §4.E's "dependency on each input must be
// recorded before reading" for the arity-N combinators. Returns the
// values in input order and, if any input is failed, the first
// failure encountered.
func trackAll(rt *internal.Runtime, r *internal.Reader, inputs []AnyBehavior) (vals []any, failed internal.Result, hasFail bool) {
	vals = make([]any, len(inputs))
	for i, in := range inputs {
		res := rt.TrackBehavior(in.behaviorHandle(), r)
		if res.IsFail() && !hasFail {
			failed = res
			hasFail = true
		}
		vals[i] = res.Value()
	}
	return vals, failed, hasFail
}

// LiftN is the dynamic-arity generalization of Lift: register one
// reader against every behavior in inputs, and invoke f with their
// values, in order, whenever any of them changes.
func LiftN[B any](inputs []AnyBehavior, f func(vals []any) B, eq func(x, y B) bool) *Behavior[B] {
	rt := internal.GetRuntime()
	out := internal.NewBehavior(internal.FailResult(errNotYetRun), rt.Now(), eqFunc(eq))

	r := internal.NewReader(nil)
	r.Run = func() {
		vals, failed, hasFail := trackAll(rt, r, inputs)
		if hasFail {
			rt.WriteBehavior(out, failed)
			return
		}
		rt.WriteBehavior(out, safeApply(func() B { return f(vals) }))
	}
	rt.RunInitial(r)

	return &Behavior[B]{b: out}
}

// BindN is the dynamic-arity generalization of Bind: register one
// reader against every behavior in inputs, invoke f with their
// values to choose an inner behavior, and forward that behavior's
// writes the same way Bind does.
func BindN[B any](inputs []AnyBehavior, f func(vals []any) *Behavior[B], eq func(x, y B) bool) *Behavior[B] {
	rt := internal.GetRuntime()
	out := internal.NewBehavior(internal.FailResult(errNotYetRun), rt.Now(), eqFunc(eq))

	r := internal.NewReader(nil)
	r.Run = func() {
		vals, failed, hasFail := trackAll(rt, r, inputs)
		if hasFail {
			rt.WriteBehavior(out, failed)
			return
		}

		innerRes := safeApply(func() *Behavior[B] { return f(vals) })
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

// Lift2 through Lift7 and Bind2 through Bind7 below are the typed
// arity family spec §6 names alongside bindN/liftN: the same
// construct as LiftN/BindN, specialized so callers get compile-time
// argument types instead of an []any. Each is a thin shim over
// LiftN/BindN, in the repetitive shape a generator would emit.

func Lift2[A1, A2, B any](f func(A1, A2) B, b1 *Behavior[A1], b2 *Behavior[A2], eq func(x, y B) bool) *Behavior[B] {
	return LiftN[B]([]AnyBehavior{b1, b2}, func(v []any) B {
		return f(as[A1](v[0]), as[A2](v[1]))
	}, eq)
}

func Lift3[A1, A2, A3, B any](f func(A1, A2, A3) B, b1 *Behavior[A1], b2 *Behavior[A2], b3 *Behavior[A3], eq func(x, y B) bool) *Behavior[B] {
	return LiftN[B]([]AnyBehavior{b1, b2, b3}, func(v []any) B {
		return f(as[A1](v[0]), as[A2](v[1]), as[A3](v[2]))
	}, eq)
}

func Lift4[A1, A2, A3, A4, B any](f func(A1, A2, A3, A4) B, b1 *Behavior[A1], b2 *Behavior[A2], b3 *Behavior[A3], b4 *Behavior[A4], eq func(x, y B) bool) *Behavior[B] {
	return LiftN[B]([]AnyBehavior{b1, b2, b3, b4}, func(v []any) B {
		return f(as[A1](v[0]), as[A2](v[1]), as[A3](v[2]), as[A4](v[3]))
	}, eq)
}

func Lift5[A1, A2, A3, A4, A5, B any](f func(A1, A2, A3, A4, A5) B, b1 *Behavior[A1], b2 *Behavior[A2], b3 *Behavior[A3], b4 *Behavior[A4], b5 *Behavior[A5], eq func(x, y B) bool) *Behavior[B] {
	return LiftN[B]([]AnyBehavior{b1, b2, b3, b4, b5}, func(v []any) B {
		return f(as[A1](v[0]), as[A2](v[1]), as[A3](v[2]), as[A4](v[3]), as[A5](v[4]))
	}, eq)
}

func Lift6[A1, A2, A3, A4, A5, A6, B any](f func(A1, A2, A3, A4, A5, A6) B, b1 *Behavior[A1], b2 *Behavior[A2], b3 *Behavior[A3], b4 *Behavior[A4], b5 *Behavior[A5], b6 *Behavior[A6], eq func(x, y B) bool) *Behavior[B] {
	return LiftN[B]([]AnyBehavior{b1, b2, b3, b4, b5, b6}, func(v []any) B {
		return f(as[A1](v[0]), as[A2](v[1]), as[A3](v[2]), as[A4](v[3]), as[A5](v[4]), as[A6](v[5]))
	}, eq)
}

func Lift7[A1, A2, A3, A4, A5, A6, A7, B any](f func(A1, A2, A3, A4, A5, A6, A7) B, b1 *Behavior[A1], b2 *Behavior[A2], b3 *Behavior[A3], b4 *Behavior[A4], b5 *Behavior[A5], b6 *Behavior[A6], b7 *Behavior[A7], eq func(x, y B) bool) *Behavior[B] {
	return LiftN[B]([]AnyBehavior{b1, b2, b3, b4, b5, b6, b7}, func(v []any) B {
		return f(as[A1](v[0]), as[A2](v[1]), as[A3](v[2]), as[A4](v[3]), as[A5](v[4]), as[A6](v[5]), as[A7](v[6]))
	}, eq)
}

func Bind2[A1, A2, B any](f func(A1, A2) *Behavior[B], b1 *Behavior[A1], b2 *Behavior[A2], eq func(x, y B) bool) *Behavior[B] {
	return BindN[B]([]AnyBehavior{b1, b2}, func(v []any) *Behavior[B] {
		return f(as[A1](v[0]), as[A2](v[1]))
	}, eq)
}

func Bind3[A1, A2, A3, B any](f func(A1, A2, A3) *Behavior[B], b1 *Behavior[A1], b2 *Behavior[A2], b3 *Behavior[A3], eq func(x, y B) bool) *Behavior[B] {
	return BindN[B]([]AnyBehavior{b1, b2, b3}, func(v []any) *Behavior[B] {
		return f(as[A1](v[0]), as[A2](v[1]), as[A3](v[2]))
	}, eq)
}

func Bind4[A1, A2, A3, A4, B any](f func(A1, A2, A3, A4) *Behavior[B], b1 *Behavior[A1], b2 *Behavior[A2], b3 *Behavior[A3], b4 *Behavior[A4], eq func(x, y B) bool) *Behavior[B] {
	return BindN[B]([]AnyBehavior{b1, b2, b3, b4}, func(v []any) *Behavior[B] {
		return f(as[A1](v[0]), as[A2](v[1]), as[A3](v[2]), as[A4](v[3]))
	}, eq)
}

func Bind5[A1, A2, A3, A4, A5, B any](f func(A1, A2, A3, A4, A5) *Behavior[B], b1 *Behavior[A1], b2 *Behavior[A2], b3 *Behavior[A3], b4 *Behavior[A4], b5 *Behavior[A5], eq func(x, y B) bool) *Behavior[B] {
	return BindN[B]([]AnyBehavior{b1, b2, b3, b4, b5}, func(v []any) *Behavior[B] {
		return f(as[A1](v[0]), as[A2](v[1]), as[A3](v[2]), as[A4](v[3]), as[A5](v[4]))
	}, eq)
}

func Bind6[A1, A2, A3, A4, A5, A6, B any](f func(A1, A2, A3, A4, A5, A6) *Behavior[B], b1 *Behavior[A1], b2 *Behavior[A2], b3 *Behavior[A3], b4 *Behavior[A4], b5 *Behavior[A5], b6 *Behavior[A6], eq func(x, y B) bool) *Behavior[B] {
	return BindN[B]([]AnyBehavior{b1, b2, b3, b4, b5, b6}, func(v []any) *Behavior[B] {
		return f(as[A1](v[0]), as[A2](v[1]), as[A3](v[2]), as[A4](v[3]), as[A5](v[4]), as[A6](v[5]))
	}, eq)
}

func Bind7[A1, A2, A3, A4, A5, A6, A7, B any](f func(A1, A2, A3, A4, A5, A6, A7) *Behavior[B], b1 *Behavior[A1], b2 *Behavior[A2], b3 *Behavior[A3], b4 *Behavior[A4], b5 *Behavior[A5], b6 *Behavior[A6], b7 *Behavior[A7], eq func(x, y B) bool) *Behavior[B] {
	return BindN[B]([]AnyBehavior{b1, b2, b3, b4, b5, b6, b7}, func(v []any) *Behavior[B] {
		return f(as[A1](v[0]), as[A2](v[1]), as[A3](v[2]), as[A4](v[3]), as[A5](v[4]), as[A6](v[5]), as[A7](v[6]))
	}, eq)
}
