package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReaderHeapDrainsInTimestampOrder(t *testing.T) {
	tl := NewTimeline()
	h := NewReaderHeap(tl)

	var order []string
	rC := &Reader{StartTs: tl.Tick()}
	rA := &Reader{StartTs: tl.Tick()}
	rB := &Reader{StartTs: tl.Tick()}

	// Insert out of order; drain must still visit by StartTs order
	// (rC was ticked first, so it has the earliest timestamp).
	h.Insert(rB)
	h.Insert(rA)
	h.Insert(rC)

	h.Drain(func(r *Reader) {
		switch r {
		case rC:
			order = append(order, "C")
		case rA:
			order = append(order, "A")
		case rB:
			order = append(order, "B")
		}
	})

	assert.Equal(t, []string{"C", "A", "B"}, order)
	assert.Equal(t, 0, h.Len())
}

func TestReaderHeapInsertIsIdempotentWithinOneCycle(t *testing.T) {
	tl := NewTimeline()
	h := NewReaderHeap(tl)

	r := &Reader{StartTs: tl.Tick()}
	h.Insert(r)
	h.Insert(r)
	h.Insert(r)

	assert.Equal(t, 1, h.Len())

	runs := 0
	h.Drain(func(*Reader) { runs++ })

	assert.Equal(t, 1, runs)
}

func TestReaderHeapSkipsSplicedOutStart(t *testing.T) {
	tl := NewTimeline()
	h := NewReaderHeap(tl)

	before := tl.GetNow()
	start := tl.Tick()
	r := &Reader{StartTs: start}
	h.Insert(r)

	end := tl.Tick()
	_ = tl.SpliceOut(tl.GetNow(), end) // no-op range, just to keep tl busy
	_ = tl.SpliceOut(before, end)

	ran := false
	h.Drain(func(*Reader) { ran = true })

	assert.False(t, ran)
}

func TestReaderHeapRemove(t *testing.T) {
	tl := NewTimeline()
	h := NewReaderHeap(tl)

	r := &Reader{StartTs: tl.Tick()}
	h.Insert(r)
	h.Remove(r)

	assert.Equal(t, 0, h.Len())
	assert.False(t, r.Enqueued())
}
