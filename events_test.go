package ambient

import "testing"

func TestEventsDeliverInOrder(t *testing.T) {
	var ev Events
	var got []string
	ev.OnResize(func() { got = append(got, "a") })
	ev.OnResize(func() { got = append(got, "b") })
	ev.EmitResize()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("order = %v, want [a b]", got)
	}
}

func TestEventsPointerCoordinates(t *testing.T) {
	var ev Events
	var gx, gy float64
	ev.OnPointerMove(func(x, y float64) { gx, gy = x, y })
	ev.EmitPointerMove(12.5, -3)
	assertNear(t, "x", gx, 12.5)
	assertNear(t, "y", gy, -3)
}

func TestCallbackHandleRemove(t *testing.T) {
	var ev Events
	calls := 0
	h := ev.OnThemeChanged(func() { calls++ })
	ev.EmitThemeChanged()
	h.Remove()
	ev.EmitThemeChanged()
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if ev.HandlerCount(EventThemeChanged) != 0 {
		t.Errorf("handler count = %d, want 0", ev.HandlerCount(EventThemeChanged))
	}

	// Second remove and zero handle are no-ops.
	h.Remove()
	CallbackHandle{}.Remove()
}

func TestRemoveOnlyTargetsOwnEvent(t *testing.T) {
	var ev Events
	leave := ev.OnPointerLeave(func() {})
	ev.OnResize(func() {})
	ev.OnPointerMove(func(x, y float64) {})

	leave.Remove()
	if ev.HandlerCount(EventPointerLeave) != 0 {
		t.Error("pointer-leave handler not removed")
	}
	if ev.HandlerCount(EventResize) != 1 || ev.HandlerCount(EventPointerMove) != 1 {
		t.Error("removing one handler affected another event")
	}
}

func TestHandlerRemovesItselfDuringEmit(t *testing.T) {
	var ev Events
	calls := 0
	var self CallbackHandle
	self = ev.OnResize(func() {
		calls++
		self.Remove()
	})
	ev.OnResize(func() { calls++ })

	ev.EmitResize()
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (snapshot delivers to all)", calls)
	}
	ev.EmitResize()
	if calls != 3 {
		t.Errorf("calls = %d, want 3 after self-removal", calls)
	}
}

func TestEmitWithoutHandlers(t *testing.T) {
	var ev Events
	ev.EmitPointerMove(1, 2)
	ev.EmitPointerLeave()
	ev.EmitResize()
	ev.EmitThemeChanged()
}
