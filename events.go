package ambient

// EventType identifies a kind of host event.
type EventType uint8

const (
	EventPointerMove  EventType = iota // pointer moved to new coordinates
	EventPointerLeave                  // pointer left the surface
	EventResize                        // viewport changed size
	EventThemeChanged                  // dark-mode signal may have flipped
)

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(x, y float64)
}

type signalHandler struct {
	id uint32
	fn func()
}

// Events is the hub a host uses to deliver input and lifecycle events.
// Handlers run synchronously on the emitting goroutine, in registration
// order. The zero value is ready to use.
type Events struct {
	pointerMove  []pointerHandler
	pointerLeave []signalHandler
	resize       []signalHandler
	themeChanged []signalHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered handler.
type CallbackHandle struct {
	id    uint32
	reg   *Events
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing twice,
// or removing the zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerMove:
		h.reg.pointerMove = removePointerHandler(h.reg.pointerMove, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removeSignalHandler(h.reg.pointerLeave, h.id)
	case EventResize:
		h.reg.resize = removeSignalHandler(h.reg.resize, h.id)
	case EventThemeChanged:
		h.reg.themeChanged = removeSignalHandler(h.reg.themeChanged, h.id)
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeSignalHandler(s []signalHandler, id uint32) []signalHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = signalHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (e *Events) allocID() uint32 {
	e.nextID++
	return e.nextID
}

// OnPointerMove registers fn to receive pointer coordinates.
func (e *Events) OnPointerMove(fn func(x, y float64)) CallbackHandle {
	id := e.allocID()
	e.pointerMove = append(e.pointerMove, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: e, event: EventPointerMove}
}

// OnPointerLeave registers fn to run when the pointer leaves the surface.
func (e *Events) OnPointerLeave(fn func()) CallbackHandle {
	return e.onSignal(&e.pointerLeave, EventPointerLeave, fn)
}

// OnResize registers fn to run after the viewport changes size.
func (e *Events) OnResize(fn func()) CallbackHandle {
	return e.onSignal(&e.resize, EventResize, fn)
}

// OnThemeChanged registers fn to run after a theme change notification.
func (e *Events) OnThemeChanged(fn func()) CallbackHandle {
	return e.onSignal(&e.themeChanged, EventThemeChanged, fn)
}

func (e *Events) onSignal(list *[]signalHandler, ev EventType, fn func()) CallbackHandle {
	id := e.allocID()
	*list = append(*list, signalHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: e, event: ev}
}

// EmitPointerMove delivers a pointer-move event.
func (e *Events) EmitPointerMove(x, y float64) {
	for _, h := range snapshot(e.pointerMove) {
		h.fn(x, y)
	}
}

// EmitPointerLeave delivers a pointer-leave event.
func (e *Events) EmitPointerLeave() { emitSignal(e.pointerLeave) }

// EmitResize delivers a resize event.
func (e *Events) EmitResize() { emitSignal(e.resize) }

// EmitThemeChanged delivers a theme-changed notification.
func (e *Events) EmitThemeChanged() { emitSignal(e.themeChanged) }

// HandlerCount returns the number of handlers registered for ev.
func (e *Events) HandlerCount(ev EventType) int {
	switch ev {
	case EventPointerMove:
		return len(e.pointerMove)
	case EventPointerLeave:
		return len(e.pointerLeave)
	case EventResize:
		return len(e.resize)
	case EventThemeChanged:
		return len(e.themeChanged)
	}
	return 0
}

func emitSignal(list []signalHandler) {
	for _, h := range snapshot(list) {
		h.fn()
	}
}

// snapshot copies the handler list so handlers may remove themselves (or
// others) while an event is being delivered.
func snapshot[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
