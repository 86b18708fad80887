package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineTickAndCompare(t *testing.T) {
	tl := NewTimeline()

	head := tl.GetNow()
	a := tl.Tick()
	b := tl.Tick()

	assert.Equal(t, -1, tl.Compare(head, a))
	assert.Equal(t, -1, tl.Compare(a, b))
	assert.Equal(t, 1, tl.Compare(b, a))
	assert.Equal(t, 0, tl.Compare(a, a))
	assert.True(t, tl.Equal(a, a))
	assert.False(t, tl.Equal(a, b))
}

func TestTimelineAddCleanupFiresLIFO(t *testing.T) {
	tl := NewTimeline()
	t0 := tl.GetNow()
	t1 := tl.Tick()

	var log []string
	require.NoError(t, tl.AddCleanup(t1, func() { log = append(log, "first") }))
	require.NoError(t, tl.AddCleanup(t1, func() { log = append(log, "second") }))

	t2 := tl.Tick()
	require.NoError(t, tl.SpliceOut(t0, t2))

	assert.Equal(t, []string{"second", "first"}, log)
	assert.True(t, t1.IsSplicedOut())
}

func TestTimelineSpliceOutRange(t *testing.T) {
	tl := NewTimeline()
	t0 := tl.GetNow()

	var log []string
	a := tl.Tick()
	require.NoError(t, tl.AddCleanup(a, func() { log = append(log, "a") }))
	b := tl.Tick()
	require.NoError(t, tl.AddCleanup(b, func() { log = append(log, "b") }))
	c := tl.Tick()

	require.NoError(t, tl.SpliceOut(t0, c))

	assert.Equal(t, []string{"a", "b"}, log)
	assert.True(t, a.IsSplicedOut())
	assert.True(t, b.IsSplicedOut())
	assert.False(t, c.IsSplicedOut())
	assert.Equal(t, 0, tl.Compare(t0, t0))
	assert.Equal(t, -1, tl.Compare(t0, c))
}

func TestTimelineSpliceOutInvalidRangeIsDestructive(t *testing.T) {
	tl := NewTimeline()
	a := tl.Tick()
	b := tl.Tick()
	c := tl.Tick()

	// a does not come after b: splicing (b, a) walks forward from b,
	// passes c, never finds a, and hits the sentinel.
	err := tl.SpliceOut(b, a)
	require.ErrorIs(t, err, ErrInvalidTimestamp)

	// Per spec §9, the failure is destructive: c was walked over and
	// is now spliced out even though the call failed.
	assert.True(t, c.IsSplicedOut())
}

func TestTimelineSetNowOnSplicedOutFails(t *testing.T) {
	tl := NewTimeline()
	t0 := tl.GetNow()
	a := tl.Tick()
	b := tl.Tick()

	require.NoError(t, tl.SpliceOut(t0, b))

	err := tl.SetNow(a)
	require.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestTimelineInitFiresOutstandingCleanups(t *testing.T) {
	tl := NewTimeline()
	a := tl.Tick()

	var log []string
	require.NoError(t, tl.AddCleanup(a, func() { log = append(log, "cleanup") }))

	tl.Init()

	assert.Equal(t, []string{"cleanup"}, log)
	assert.True(t, a.IsSplicedOut())
}
