package ambient

// syntheticPointerEvent is a single injected pointer event in surface
// coordinates. A leave event carries no position.
type syntheticPointerEvent struct {
	x, y  float64
	leave bool
}

// Injector queues synthetic pointer events and delivers them one per frame
// through an Events hub, in place of real input. The zero value is ready to
// use.
type Injector struct {
	queue []syntheticPointerEvent
}

// InjectMove queues a pointer move to (x, y).
func (in *Injector) InjectMove(x, y float64) {
	in.queue = append(in.queue, syntheticPointerEvent{x: x, y: y})
}

// InjectLeave queues the pointer leaving the surface.
func (in *Injector) InjectLeave() {
	in.queue = append(in.queue, syntheticPointerEvent{leave: true})
}

// InjectSweep queues a straight pointer path from (fromX, fromY) to
// (toX, toY), both ends included, one move per frame. The sequence
// consumes frames frames; the minimum is 2.
func (in *Injector) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	last := float64(frames - 1)
	for i := range frames {
		t := float64(i) / last
		in.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// Pending returns the number of queued events.
func (in *Injector) Pending() int {
	return len(in.queue)
}

// Process pops one event and emits it on ev. It returns true if an event
// was consumed, in which case real pointer input should be skipped for the
// frame.
func (in *Injector) Process(ev *Events) bool {
	if len(in.queue) == 0 {
		return false
	}
	e := in.queue[0]
	copy(in.queue, in.queue[1:])
	in.queue = in.queue[:len(in.queue)-1]

	if e.leave {
		ev.EmitPointerLeave()
	} else {
		ev.EmitPointerMove(e.x, e.y)
	}
	return true
}
