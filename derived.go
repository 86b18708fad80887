package frtime

import "github.com/ochreflow/frtime/internal"

// Hold creates a behavior seeded at initial whose value tracks e's
// occurrences: each delivery is written into the behavior (respecting
// eq), success or failure alike, so a failed occurrence leaves the
// behavior in a failed state until the next successful one.
func Hold[T any](initial T, e *Channel[T], eq func(x, y T) bool) *Behavior[T] {
	return holdImpl(internal.ValueResult(initial), e, eq)
}

// HoldResult is Hold's failure-seeded counterpart: the same
// construct, offered separately because spec §4.F names `hold` and
// `hold_result` as distinct public operations even though — in this
// engine, where every channel delivery and every behavior write is
// already a uniform success-or-failure Result — they need no separate
// code path. initial is itself a (value, error, ok) triple so the
// seed can start failed.
func HoldResult[T any](initial T, initialErr error, initialOk bool, e *Channel[T], eq func(x, y T) bool) *Behavior[T] {
	seed := internal.ValueResult(initial)
	if !initialOk {
		seed = internal.FailResult(initialErr)
	}
	return holdImpl(seed, e, eq)
}

func holdImpl[T any](seed internal.Result, e *Channel[T], eq func(x, y T) bool) *Behavior[T] {
	rt := internal.GetRuntime()
	out := internal.NewBehavior(seed, rt.Now(), eqFunc(eq))

	e.ch.AddListener(func(res internal.Result) {
		rt.WriteBehavior(out, res)
	})

	return &Behavior[T]{b: out}
}

// SwitchBB flips the output behavior to whatever behavior bb currently
// holds, re-switching every time bb itself changes.
func SwitchBB[T any](bb *Behavior[*Behavior[T]], eq func(x, y T) bool) *Behavior[T] {
	return Bind(bb, func(inner *Behavior[T]) *Behavior[T] { return inner }, eq)
}

func behaviorPtrEq[T any](a, b *Behavior[T]) bool { return a == b }

// SwitchBE behaves as b until be fires, then as the behavior carried
// by be's most recent firing, switching again each time be fires.
func SwitchBE[T any](b *Behavior[T], be *Channel[*Behavior[T]], eq func(x, y T) bool) *Behavior[T] {
	held := Hold(b, be, behaviorPtrEq[T])
	return SwitchBB(held, eq)
}

// Until behaves as b until be fires its first replacement, then
// commits to that replacement permanently — unlike SwitchBE, later
// firings of be have no further effect.
func Until[T any](b *Behavior[T], be *Channel[*Behavior[T]], eq func(x, y T) bool) *Behavior[T] {
	return SwitchBE(b, Next(be), eq)
}

// Changes allocates a channel that fires b's new value on every
// change; nothing is emitted for b's value at the moment Changes is
// called.
func Changes[T any](b *Behavior[T]) *Channel[T] {
	out, sender := MakeEvent[T]()

	b.b.AddNotifier(func(res internal.Result) {
		if res.IsFail() {
			SendExn(sender, res.Err())
			return
		}
		Send(sender, as[T](res.Value()))
	})

	return out
}

// WhenTrue allocates a channel that fires once on every transition of
// b from false to true. A failed read of b is treated as not-true for
// the purpose of edge detection.
func WhenTrue(b *Behavior[bool]) *Channel[struct{}] {
	out, sender := MakeEvent[struct{}]()

	prev, _, _ := ReadResult(b)

	b.b.AddNotifier(func(res internal.Result) {
		cur := !res.IsFail() && as[bool](res.Value())
		if cur && !prev {
			Send(sender, struct{}{})
		}
		prev = cur
	})

	return out
}

// Count exposes the number of occurrences e has delivered so far as a
// behavior, starting at 0.
func Count[T any](e *Channel[T]) *Behavior[int] {
	counted := Collect(func(acc int, _ T) int { return acc + 1 }, 0, e)
	return Hold(0, counted, func(a, b int) bool { return a == b })
}

// MakeCell allocates a behavior together with a setter function: each
// call to the setter enqueues a synthetic event so the write
// participates in the propagation cycle like any other, rather than
// mutating the behavior out of band.
func MakeCell[T any](initial T) (*Behavior[T], func(T)) {
	ch, sender := MakeEvent[T]()
	cell := Hold(initial, ch, nil)
	return cell, func(v T) { Send(sender, v) }
}
