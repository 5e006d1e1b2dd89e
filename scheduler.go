package ambient

// FrameHandle identifies a requested frame callback. The zero handle is
// never issued.
type FrameHandle uint64

// Scheduler delivers frame callbacks, in the manner of requestAnimationFrame.
// Each requested callback runs at most once.
type Scheduler interface {
	RequestFrame(fn func()) FrameHandle
	CancelFrame(h FrameHandle)
}

type pendingFrame struct {
	handle FrameHandle
	fn     func()
}

// FrameQueue is a Scheduler driven explicitly by calling Flush once per
// display frame. The run host flushes it from ebiten's Update; tests flush
// it to step the loop deterministically.
type FrameQueue struct {
	pending []pendingFrame
	running []pendingFrame
	next    FrameHandle
}

// RequestFrame queues fn for the next Flush.
func (q *FrameQueue) RequestFrame(fn func()) FrameHandle {
	q.next++
	q.pending = append(q.pending, pendingFrame{handle: q.next, fn: fn})
	return q.next
}

// CancelFrame removes a queued callback. Cancelling an unknown or already
// delivered handle is a no-op.
func (q *FrameQueue) CancelFrame(h FrameHandle) {
	if h == 0 {
		return
	}
	for i := range q.pending {
		if q.pending[i].handle == h {
			copy(q.pending[i:], q.pending[i+1:])
			q.pending[len(q.pending)-1] = pendingFrame{}
			q.pending = q.pending[:len(q.pending)-1]
			return
		}
	}
	// The callback may be in the batch currently being flushed.
	for i := range q.running {
		if q.running[i].handle == h {
			q.running[i].fn = nil
			return
		}
	}
}

// Flush runs the callbacks that were pending when Flush was called.
// Callbacks requested during the flush are deferred to the next one.
// It returns the number of callbacks run.
func (q *FrameQueue) Flush() int {
	if len(q.pending) == 0 {
		return 0
	}
	q.running, q.pending = q.pending, q.running[:0]
	n := 0
	for i := range q.running {
		if fn := q.running[i].fn; fn != nil {
			q.running[i].fn = nil
			fn()
			n++
		}
	}
	q.running = q.running[:0]
	return n
}

// Pending returns the number of callbacks waiting for the next Flush.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}
