package internal

import "container/heap"

// ReaderHeap is the priority queue of component B: pending readers
// ordered "min start timestamp first" via the timeline's (O(n)) walk
// comparator. The teacher repo's internal/heap.go buckets entries by
// an integer height, which is cheap to index into directly; a
// timeline timestamp isn't a small integer (comparing two of them
// means walking the chain), so this generalizes the same "ring of
// pending entries, dequeued in priority order" shape onto
// container/heap, the standard-library priority-queue primitive, with
// Less delegating to Timeline.Compare. No third-party generic heap
// appears anywhere in the example corpus, so there is nothing in the
// domain stack to prefer over container/heap here.
type ReaderHeap struct {
	timeline *Timeline
	entries  []*Reader
}

// NewReaderHeap creates an empty heap ordered by tl.
func NewReaderHeap(tl *Timeline) *ReaderHeap {
	return &ReaderHeap{timeline: tl}
}

func (h *ReaderHeap) Len() int { return len(h.entries) }

func (h *ReaderHeap) Less(i, j int) bool {
	return h.timeline.Compare(h.entries[i].StartTs, h.entries[j].StartTs) < 0
}

func (h *ReaderHeap) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
	h.entries[i].heapIndex = i
	h.entries[j].heapIndex = j
}

func (h *ReaderHeap) Push(x any) {
	r := x.(*Reader)
	r.heapIndex = len(h.entries)
	h.entries = append(h.entries, r)
}

func (h *ReaderHeap) Pop() any {
	n := len(h.entries)
	r := h.entries[n-1]
	h.entries[n-1] = nil
	h.entries = h.entries[:n-1]
	r.heapIndex = -1
	return r
}

// Insert enqueues r if it isn't already pending. Idempotent per spec
// §4.B/§8 invariant 2.
func (h *ReaderHeap) Insert(r *Reader) {
	if r.enqueued {
		return
	}
	r.enqueued = true
	heap.Push(h, r)
}

// InsertAll enqueues every reader produced by readers.
func (h *ReaderHeap) InsertAll(readers func(yield func(*Reader) bool)) {
	readers(func(r *Reader) bool {
		h.Insert(r)
		return true
	})
}

// Remove drops r from the heap if present (e.g. because its enclosing
// binder disposed it before it ran).
func (h *ReaderHeap) Remove(r *Reader) {
	if !r.enqueued {
		return
	}
	heap.Remove(h, r.heapIndex)
	r.enqueued = false
}

// Drain pops readers in timeline order of StartTs, skipping (without
// invoking process) any reader whose StartTs was spliced out because
// its binder was superseded before it got to run, until the heap is
// empty.
func (h *ReaderHeap) Drain(process func(*Reader)) {
	for h.Len() > 0 {
		r := heap.Pop(h).(*Reader)
		r.enqueued = false

		if r.StartTs.IsSplicedOut() {
			continue
		}

		process(r)
	}
}
