package ambient

import (
	"errors"
	"fmt"
	"time"
)

// Host is the environment a Field runs in. It resolves drawing surfaces,
// reports the viewport and theme, delivers events and schedules frames.
type Host interface {
	// Surface resolves a drawing surface by id.
	Surface(id string) (Surface, bool)
	// ViewportSize returns the current viewport dimensions in pixels.
	ViewportSize() (w, h float64)
	// DarkMode reports whether the host is currently in dark mode.
	DarkMode() bool
	// Events returns the hub the field subscribes to.
	Events() *Events
	// Scheduler returns the frame scheduler that drives the loop.
	Scheduler() Scheduler
}

// ErrSurfaceNotFound is matched (via errors.Is) by *SurfaceNotFoundError.
var ErrSurfaceNotFound = errors.New("ambient: surface not found")

// SurfaceNotFoundError reports that the host could not resolve the
// configured surface id. No Field is created.
type SurfaceNotFoundError struct {
	ID string
}

func (e *SurfaceNotFoundError) Error() string {
	return fmt.Sprintf("ambient: surface %q not found", e.ID)
}

// Is reports whether target is ErrSurfaceNotFound.
func (e *SurfaceNotFoundError) Is(target error) bool {
	return target == ErrSurfaceNotFound
}

// Ambient preset: the particles a Field creates are larger and more opaque
// than the Particle defaults.
var (
	AmbientSize    = Range{Min: 1.8, Max: 3.3}
	AmbientOpacity = Range{Min: 0.5, Max: 0.75}
)

// FieldConfig controls how a Field is built.
type FieldConfig struct {
	// SurfaceID names the surface to resolve through Host.Surface.
	SurfaceID string
	// Device selects the population target. Ignored when Population > 0.
	Device DeviceClass
	// Population overrides the device-derived particle count.
	Population int
	// Shapes are the candidate particle shapes. Empty uses AllShapes.
	Shapes []Shape
	// Size is the particle size range. Zero uses AmbientSize.
	Size Range
	// Opacity is the particle opacity range. Zero uses AmbientOpacity.
	Opacity Range
}

// FieldState is the lifecycle state of a Field.
type FieldState uint8

const (
	StateUninitialized FieldState = iota
	StateRunning
	StateStopped
)

func (s FieldState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "uninitialized"
	}
}

// Field owns a population of particles, the pointer state, the palette and
// the frame loop. It is single-threaded: every method, handler and frame
// callback must run on the host's event goroutine.
type Field struct {
	host    Host
	surface Surface
	sched   Scheduler
	cfg     FieldConfig

	w, h       float64
	particles  []Particle
	pointer    Pointer
	theme      Theme
	palette    Palette
	population int

	state    FieldState
	frame    FrameHandle
	frames   uint64
	handles  []CallbackHandle
	tickFn   func()
	observer func(*Field)
	debug    bool
}

// NewField resolves the configured surface, picks the population and
// palette, populates the field and starts the frame loop. If the surface
// cannot be resolved it returns a *SurfaceNotFoundError and nothing is
// started.
func NewField(host Host, cfg FieldConfig) (*Field, error) {
	if host == nil {
		return nil, errors.New("ambient: nil host")
	}
	surface, ok := host.Surface(cfg.SurfaceID)
	if !ok || surface == nil {
		err := &SurfaceNotFoundError{ID: cfg.SurfaceID}
		logger.Error("field construction aborted", "surface", cfg.SurfaceID, "err", err)
		return nil, err
	}

	if cfg.Size.IsZero() {
		cfg.Size = AmbientSize
	}
	if cfg.Opacity.IsZero() {
		cfg.Opacity = AmbientOpacity
	}
	pop := cfg.Population
	if pop <= 0 {
		pop = PopulationFor(cfg.Device)
	}

	f := &Field{
		host:       host,
		surface:    surface,
		sched:      host.Scheduler(),
		cfg:        cfg,
		population: pop,
	}
	f.tickFn = f.tick
	f.theme = ThemeFor(host.DarkMode())
	f.palette = PaletteFor(f.theme)
	f.initialize()
	return f, nil
}

// initialize sizes the surface, populates the field, subscribes to host
// events and requests the first frame.
func (f *Field) initialize() {
	f.readViewport()
	f.populate()
	f.listen()
	f.state = StateRunning
	f.frame = f.sched.RequestFrame(f.tickFn)
	logger.Debug("field started",
		"surface", f.cfg.SurfaceID,
		"particles", len(f.particles),
		"theme", f.theme.String(),
		"width", f.w, "height", f.h)
}

func (f *Field) readViewport() {
	f.w, f.h = f.host.ViewportSize()
	f.surface.SetSize(f.w, f.h)
}

// populate discards every particle and creates a fresh population.
func (f *Field) populate() {
	if cap(f.particles) < f.population {
		f.particles = make([]Particle, f.population)
	}
	f.particles = f.particles[:f.population]
	for i := range f.particles {
		f.particles[i] = NewParticle(f.w, f.h, ParticleConfig{
			Size:    f.cfg.Size,
			Opacity: f.cfg.Opacity,
			Color:   f.palette.Pick(),
			Shapes:  f.cfg.Shapes,
		})
	}
}

func (f *Field) listen() {
	ev := f.host.Events()
	if ev == nil {
		return
	}
	f.handles = append(f.handles,
		ev.OnPointerMove(f.SetPointer),
		ev.OnPointerLeave(f.ClearPointer),
		ev.OnResize(f.Resize),
		ev.OnThemeChanged(f.ThemeChanged),
	)
}

// Resize re-reads the viewport and recreates the whole population. All
// accumulated particle state is discarded.
func (f *Field) Resize() {
	if f.state != StateRunning {
		return
	}
	f.readViewport()
	f.populate()
	logger.Debug("field resized", "width", f.w, "height", f.h, "particles", len(f.particles))
}

// ThemeChanged re-reads the dark-mode signal and recolors every particle
// with a random pick from the new palette. Particles are not recreated.
func (f *Field) ThemeChanged() {
	if f.state != StateRunning {
		return
	}
	f.theme = ThemeFor(f.host.DarkMode())
	f.palette = PaletteFor(f.theme)
	for i := range f.particles {
		f.particles[i].Color = f.palette.Pick()
	}
	logger.Debug("field theme changed", "theme", f.theme.String())
}

// SetPointer moves the pointer to (x, y) and activates its influence.
func (f *Field) SetPointer(x, y float64) {
	if f.state != StateRunning {
		return
	}
	f.pointer = PointerAt(x, y)
}

// ClearPointer removes pointer influence.
func (f *Field) ClearPointer() {
	f.pointer = NoPointer
}

// tick is the frame callback: clear, update and draw every particle in
// order, then reschedule.
func (f *Field) tick() {
	f.frame = 0
	if f.state != StateRunning {
		return
	}

	var t0 time.Time
	if f.debug {
		t0 = time.Now()
	}

	f.surface.Clear()
	for i := range f.particles {
		p := &f.particles[i]
		p.Update(f.pointer, f.w, f.h)
		p.Draw(f.surface)
	}
	f.frames++

	if f.debug {
		f.debugLog(time.Since(t0))
	}
	if f.observer != nil {
		f.observer(f)
	}

	// The observer may have torn the field down.
	if f.state == StateRunning {
		f.frame = f.sched.RequestFrame(f.tickFn)
	}
}

// Teardown cancels the pending frame and detaches every event handler.
// The field never runs again. Calling Teardown more than once is a no-op.
func (f *Field) Teardown() {
	if f.state == StateStopped {
		return
	}
	if f.frame != 0 {
		f.sched.CancelFrame(f.frame)
		f.frame = 0
	}
	for _, h := range f.handles {
		h.Remove()
	}
	f.handles = f.handles[:0]
	f.state = StateStopped
	logger.Debug("field stopped", "frames", f.frames)
}

// SetFrameObserver registers fn to run after every completed frame. Pass
// nil to remove it.
func (f *Field) SetFrameObserver(fn func(*Field)) {
	f.observer = fn
}

// Particles returns the current population. The returned slice MUST NOT be
// retained across a Resize.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Population returns the fixed particle count.
func (f *Field) Population() int {
	return f.population
}

// Palette returns the palette for the current theme.
func (f *Field) Palette() Palette {
	return f.palette
}

// Theme returns the current theme.
func (f *Field) Theme() Theme {
	return f.theme
}

// Size returns the surface size used as wrap bounds.
func (f *Field) Size() (w, h float64) {
	return f.w, f.h
}

// Pointer returns the current pointer state.
func (f *Field) Pointer() Pointer {
	return f.pointer
}

// State returns the lifecycle state.
func (f *Field) State() FieldState {
	return f.state
}

// FrameCount returns the number of completed frames.
func (f *Field) FrameCount() uint64 {
	return f.frames
}

// Surface returns the surface the field draws onto.
func (f *Field) Surface() Surface {
	return f.surface
}
