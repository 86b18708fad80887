package frtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/ochreflow/frtime"
)

func TestNextFiresOnceThenStaysSilent(t *testing.T) {
	Init()

	e, send := MakeEvent[int]()
	n := Next(e)

	var seen []int
	NotifyE(n, func(v int) { seen = append(seen, v) })

	Send(send, 1)
	Send(send, 2)
	Send(send, 3)

	assert.Equal(t, []int{1}, seen)
}

func TestFilterForwardsOnlyMatching(t *testing.T) {
	Init()

	e, send := MakeEvent[int]()
	evens := Filter(func(v int) bool { return v%2 == 0 }, e)

	var seen []int
	NotifyE(evens, func(v int) { seen = append(seen, v) })

	for i := 1; i <= 5; i++ {
		Send(send, i)
	}

	assert.Equal(t, []int{2, 4}, seen)
}

func TestCollectAccumulatesAcrossOccurrences(t *testing.T) {
	Init()

	e, send := MakeEvent[int]()
	sums := Collect(func(acc, v int) int { return acc + v }, 0, e)

	var seen []int
	NotifyE(sums, func(v int) { seen = append(seen, v) })

	Send(send, 1)
	Send(send, 2)
	Send(send, 3)

	assert.Equal(t, []int{1, 3, 6}, seen)
}

func TestCountTracksOccurrenceTotal(t *testing.T) {
	Init()

	e, send := MakeEvent[string]()
	c := Count(e)

	Send(send, "a")
	Send(send, "b")

	v, err := Read(c)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestWhenTrueFiresOnlyOnRisingEdge(t *testing.T) {
	Init()

	b, setB := MakeCell(false)
	edges := WhenTrue(b)

	fired := 0
	NotifyE(edges, func(struct{}) { fired++ })

	setB(true)
	setB(true)
	setB(false)
	setB(true)

	assert.Equal(t, 2, fired)
}

func TestHoldResultStartsFailedUntilFirstSuccess(t *testing.T) {
	Init()

	e, send := MakeEvent[int]()
	seedErr := assert.AnError
	b := HoldResult(0, seedErr, false, e, nil)

	_, err := Read(b)
	assert.ErrorIs(t, err, seedErr)

	Send(send, 7)

	v, err := Read(b)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestNotifyECancelStopsDelivery(t *testing.T) {
	Init()

	e, send := MakeEvent[int]()

	var seen []int
	handle := NotifyECancel(e, func(v int) { seen = append(seen, v) })

	Send(send, 1)
	handle.Cancel()
	Send(send, 2)

	assert.Equal(t, []int{1}, seen)
}

func TestNotifyResultEObservesFailures(t *testing.T) {
	Init()

	e, send := MakeEvent[int]()

	var gotErr error
	var gotOk bool
	NotifyResultE(e, func(_ int, err error, ok bool) {
		gotErr, gotOk = err, ok
	})

	SendExn(send, assert.AnError)

	assert.False(t, gotOk)
	assert.ErrorIs(t, gotErr, assert.AnError)
}

func TestHashEventIsStableForSameChannel(t *testing.T) {
	Init()

	e, _ := MakeEvent[int]()
	assert.Equal(t, HashEvent(e), HashEvent(e))
}
