package frtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/ochreflow/frtime"
)

func TestLiftNSumsAllInputsInOrder(t *testing.T) {
	Init()

	a, setA := MakeCell(1)
	b, _ := MakeCell(10)
	c, _ := MakeCell(100)

	sum := LiftN[int]([]AnyBehavior{a, b, c}, func(vals []any) int {
		total := 0
		for _, v := range vals {
			total += v.(int)
		}
		return total
	}, nil)

	setA(2)

	v, err := Read(sum)
	require.NoError(t, err)
	assert.Equal(t, 112, v)
}

func TestBindNSelectsInnerBehaviorFromAllInputs(t *testing.T) {
	Init()

	useFirst, setUseFirst := MakeCell(true)
	first, _ := MakeCell("first")
	second, _ := MakeCell("second")

	chosen := BindN[string]([]AnyBehavior{useFirst, first, second}, func(vals []any) *Behavior[string] {
		if vals[0].(bool) {
			return first
		}
		return second
	}, nil)

	v, err := Read(chosen)
	require.NoError(t, err)
	assert.Equal(t, "first", v)

	setUseFirst(false)

	v, err = Read(chosen)
	require.NoError(t, err)
	assert.Equal(t, "second", v)
}

func TestLift3ThroughLift7CompileAndCompute(t *testing.T) {
	Init()

	b1, _ := MakeCell(1)
	b2, _ := MakeCell(2)
	b3, _ := MakeCell(3)
	b4, _ := MakeCell(4)
	b5, _ := MakeCell(5)
	b6, _ := MakeCell(6)
	b7, _ := MakeCell(7)

	l3 := Lift3(func(a, b, c int) int { return a + b + c }, b1, b2, b3, nil)
	l4 := Lift4(func(a, b, c, d int) int { return a + b + c + d }, b1, b2, b3, b4, nil)
	l5 := Lift5(func(a, b, c, d, e int) int { return a + b + c + d + e }, b1, b2, b3, b4, b5, nil)
	l6 := Lift6(func(a, b, c, d, e, f int) int { return a + b + c + d + e + f }, b1, b2, b3, b4, b5, b6, nil)
	l7 := Lift7(func(a, b, c, d, e, f, g int) int { return a + b + c + d + e + f + g }, b1, b2, b3, b4, b5, b6, b7, nil)

	assertRead(t, l3, 6)
	assertRead(t, l4, 10)
	assertRead(t, l5, 15)
	assertRead(t, l6, 21)
	assertRead(t, l7, 28)
}

func TestBind3ThroughBind7CompileAndSelect(t *testing.T) {
	Init()

	target, _ := MakeCell(42)
	b2, _ := MakeCell(2)
	b3, _ := MakeCell(3)
	b4, _ := MakeCell(4)
	b5, _ := MakeCell(5)
	b6, _ := MakeCell(6)
	b7, _ := MakeCell(7)

	bind3 := Bind3(func(int, int, int) *Behavior[int] { return target }, target, b2, b3, nil)
	bind4 := Bind4(func(int, int, int, int) *Behavior[int] { return target }, target, b2, b3, b4, nil)
	bind5 := Bind5(func(int, int, int, int, int) *Behavior[int] { return target }, target, b2, b3, b4, b5, nil)
	bind6 := Bind6(func(int, int, int, int, int, int) *Behavior[int] { return target }, target, b2, b3, b4, b5, b6, nil)
	bind7 := Bind7(func(int, int, int, int, int, int, int) *Behavior[int] { return target }, target, b2, b3, b4, b5, b6, b7, nil)

	assertRead(t, bind3, 42)
	assertRead(t, bind4, 42)
	assertRead(t, bind5, 42)
	assertRead(t, bind6, 42)
	assertRead(t, bind7, 42)
}

func TestBLiftIsLiftWithBehaviorFirstArgOrder(t *testing.T) {
	Init()

	a, _ := MakeCell(3)
	b := BLift(a, func(x int) int { return x * x }, nil)

	assertRead(t, b, 9)
}

func TestTryBindSelectsOkOrErrBranch(t *testing.T) {
	Init()

	a, _ := MakeCell(1)
	okBranch, _ := MakeCell("ok")
	errBranch, _ := MakeCell("err")

	okBind := TryBind(func() int {
		return MustRead(Lift(func(x int) int { return 10 / x }, a, nil))
	}, func(int) *Behavior[string] {
		return okBranch
	}, func(error) *Behavior[string] {
		return errBranch
	}, nil)
	assertRead(t, okBind, "ok")

	zero, _ := MakeCell(0)
	failBind := TryBind(func() int {
		return MustRead(Lift(func(x int) int { return 10 / x }, zero, nil))
	}, func(int) *Behavior[string] {
		return okBranch
	}, func(error) *Behavior[string] {
		return errBranch
	}, nil)
	assertRead(t, failBind, "err")
}

func assertRead[T any](t *testing.T, b *Behavior[T], want T) {
	t.Helper()
	v, err := Read(b)
	require.NoError(t, err)
	assert.Equal(t, want, v)
}
