package internal

// delivery is a pending (channel, result) pair waiting to be handed to
// a channel's listeners (spec §4.C).
type delivery struct {
	channel *Channel
	result  Result
}

// EventQueue is the FIFO of component C, drained outside propagation
// proper as the first half of a propagation cycle. Slice-based FIFO,
// following the shape of the teacher's internal/queue.go NodeQueue/
// SettledQueue (append to enqueue, reslice-to-empty to drain).
type EventQueue struct {
	pending []delivery
}

// NewEventQueue returns an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Enqueue appends a pending delivery.
func (q *EventQueue) Enqueue(ch *Channel, result Result) {
	q.pending = append(q.pending, delivery{channel: ch, result: result})
}

// Len reports how many deliveries are pending.
func (q *EventQueue) Len() int {
	return len(q.pending)
}

// Dequeue pops the oldest pending delivery. Panics if the queue is
// empty; callers must check Len first.
func (q *EventQueue) Dequeue() (*Channel, Result) {
	d := q.pending[0]
	q.pending[0] = delivery{}
	q.pending = q.pending[1:]
	return d.channel, d.result
}
