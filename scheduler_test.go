package ambient

import "testing"

func TestFrameQueueRunsOnce(t *testing.T) {
	var q FrameQueue
	calls := 0
	h := q.RequestFrame(func() { calls++ })
	if h == 0 {
		t.Fatal("handle is zero")
	}
	if q.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", q.Pending())
	}
	if n := q.Flush(); n != 1 {
		t.Errorf("flush ran %d, want 1", n)
	}
	q.Flush()
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestFrameQueueDefersRequestsDuringFlush(t *testing.T) {
	var q FrameQueue
	calls := 0
	var loop func()
	loop = func() {
		calls++
		q.RequestFrame(loop)
	}
	q.RequestFrame(loop)

	for i := 1; i <= 5; i++ {
		q.Flush()
		if calls != i {
			t.Fatalf("after flush %d: calls = %d", i, calls)
		}
	}
	if q.Pending() != 1 {
		t.Errorf("pending = %d, want 1", q.Pending())
	}
}

func TestFrameQueueCancel(t *testing.T) {
	var q FrameQueue
	called := false
	h := q.RequestFrame(func() { called = true })
	q.CancelFrame(h)
	if q.Pending() != 0 {
		t.Errorf("pending = %d, want 0", q.Pending())
	}
	if n := q.Flush(); n != 0 || called {
		t.Errorf("cancelled callback ran (n=%d)", n)
	}

	// Unknown and zero handles are ignored.
	q.CancelFrame(h)
	q.CancelFrame(0)
	q.CancelFrame(999)
}

func TestFrameQueueCancelWithinBatch(t *testing.T) {
	var q FrameQueue
	var second FrameHandle
	ran := false
	q.RequestFrame(func() { q.CancelFrame(second) })
	second = q.RequestFrame(func() { ran = true })

	if n := q.Flush(); n != 1 {
		t.Errorf("flush ran %d, want 1", n)
	}
	if ran {
		t.Error("callback cancelled earlier in the same flush still ran")
	}
}

func TestFrameQueueHandlesUnique(t *testing.T) {
	var q FrameQueue
	seen := make(map[FrameHandle]bool)
	for range 100 {
		h := q.RequestFrame(func() {})
		if seen[h] {
			t.Fatalf("handle %d issued twice", h)
		}
		seen[h] = true
	}
}
