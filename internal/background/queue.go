package background

// FrameQueue is a Scheduler whose requests run when the host calls Flush.
// Hosts flush once per repaint; tests flush a fixed number of times.
type FrameQueue struct {
	next    FrameHandle
	pending []queuedFrame
}

type queuedFrame struct {
	handle FrameHandle
	fn     func()
}

// NewFrameQueue creates an empty queue
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame queues fn for the next Flush
func (q *FrameQueue) RequestFrame(fn func()) FrameHandle {
	q.next++
	q.pending = append(q.pending, queuedFrame{handle: q.next, fn: fn})
	return q.next
}

// CancelFrame drops a pending request; unknown or already-run handles are ignored
func (q *FrameQueue) CancelFrame(h FrameHandle) {
	for i, f := range q.pending {
		if f.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Flush runs the requests that were pending when it was called and returns how many ran.
// Requests made by those callbacks wait for the next Flush.
func (q *FrameQueue) Flush() int {
	batch := q.pending
	q.pending = nil
	for _, f := range batch {
		f.fn()
	}
	return len(batch)
}

// Run flushes n times and returns the total number of callbacks run
func (q *FrameQueue) Run(n int) int {
	total := 0
	for i := 0; i < n; i++ {
		total += q.Flush()
	}
	return total
}

// Pending reports how many requests wait for the next Flush
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}
