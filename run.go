package ambient

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultSurfaceID is the surface id the run host registers its canvas under.
const DefaultSurfaceID = "particleCanvas"

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// SurfaceID is the id the window's canvas is registered under. Empty
	// uses DefaultSurfaceID.
	SurfaceID string
	// Field configures the particle field. Field.SurfaceID defaults to
	// SurfaceID.
	Field FieldConfig
	// DarkMode is the initial theme signal. Press T to toggle it.
	DarkMode bool
	// FadeIn is the fade-in duration in seconds after start and after each
	// resize. Zero disables the fade.
	FadeIn float32
	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool
	// ScreenshotDir receives PNGs queued with the S key. Empty uses
	// "screenshots".
	ScreenshotDir string
	// Debug enables per-frame stats on the diagnostic logger.
	Debug bool
	// OnFrame runs after every field frame.
	OnFrame func(*Field)
	// Script, if set, replaces real pointer input with scripted events.
	Script *ScriptRunner
	// ExitAfterScript closes the window once Script is done and its
	// screenshots are written.
	ExitAfterScript bool
}

// Run opens a window and runs a particle field in it until the window is
// closed or Escape is pressed. The window acts as the field's Host.
func Run(cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("ambient: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.SurfaceID == "" {
		cfg.SurfaceID = DefaultSurfaceID
	}
	if cfg.Field.SurfaceID == "" {
		cfg.Field.SurfaceID = cfg.SurfaceID
	}

	w := newWindow(cfg)

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	field, err := NewField(w, cfg.Field)
	if err != nil {
		return fmt.Errorf("ambient: start field: %w", err)
	}
	field.SetDebugMode(cfg.Debug)
	field.SetFrameObserver(cfg.OnFrame)
	w.field = field
	w.startFade()

	err = ebiten.RunGame(w)
	field.Teardown()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// window implements ebiten.Game and Host.
type window struct {
	cfg     RunConfig
	events  Events
	queue   FrameQueue
	surface *ImageSurface
	field   *Field

	dark          bool
	vw, vh        int
	resizePending bool

	pointerIn    bool
	lastX, lastY int
	inject       Injector

	fade      *gween.Tween
	fadeAlpha float32

	// Background crossfade on theme toggle.
	bgFrom, bgTo Color
	bgTween      *gween.Tween
	bgMix        float32

	shots *screenshotter
	fps   *fpsOverlay
}

func newWindow(cfg RunConfig) *window {
	w := &window{
		cfg:       cfg,
		surface:   NewImageSurface(cfg.Width, cfg.Height),
		dark:      cfg.DarkMode,
		vw:        cfg.Width,
		vh:        cfg.Height,
		fadeAlpha: 1,
		bgTo:      BackgroundFor(ThemeFor(cfg.DarkMode)),
		bgMix:     1,
		shots:     newScreenshotter(cfg.ScreenshotDir),
	}
	if cfg.ShowFPS {
		w.fps = newFPSOverlay()
	}
	return w
}

// --- Host ---

func (w *window) Surface(id string) (Surface, bool) {
	if id != w.cfg.SurfaceID {
		return nil, false
	}
	return w.surface, true
}

func (w *window) ViewportSize() (float64, float64) { return float64(w.vw), float64(w.vh) }
func (w *window) DarkMode() bool                   { return w.dark }
func (w *window) Events() *Events                  { return &w.events }
func (w *window) Scheduler() Scheduler             { return &w.queue }

// --- ebiten.Game ---

func (w *window) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))

	if w.resizePending {
		w.resizePending = false
		w.events.EmitResize()
		w.startFade()
	}

	if !w.inject.Process(&w.events) && w.cfg.Script == nil {
		w.processPointer()
	}

	if s := w.cfg.Script; s != nil {
		if s.Done() && w.cfg.ExitAfterScript && len(w.shots.queue) == 0 {
			w.field.Teardown()
			return ebiten.Termination
		}
		s.step(w)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		w.toggleTheme()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		w.screenshot(fmt.Sprintf("frame_%d", w.field.FrameCount()))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		w.field.Teardown()
		return ebiten.Termination
	}

	w.queue.Flush()

	if w.fade != nil {
		v, done := w.fade.Update(dt)
		w.fadeAlpha = v
		if done {
			w.fade = nil
			w.fadeAlpha = 1
		}
	}
	if w.bgTween != nil {
		v, done := w.bgTween.Update(dt)
		w.bgMix = v
		if done {
			w.bgTween = nil
			w.bgMix = 1
		}
	}
	if w.fps != nil {
		w.fps.update(float64(dt))
	}
	return nil
}

func (w *window) injector() *Injector { return &w.inject }

func (w *window) toggleTheme() {
	w.dark = !w.dark
	w.events.EmitThemeChanged()
	w.startThemeFade()
}

func (w *window) screenshot(label string) {
	w.shots.Queue(label)
}

// processPointer turns cursor (or first touch) movement into pointer
// events, and the cursor leaving the window into a pointer-leave.
func (w *window) processPointer() {
	var x, y int
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y = ebiten.TouchPosition(ids[0])
	} else {
		x, y = ebiten.CursorPosition()
	}

	inside := x >= 0 && y >= 0 && x < w.vw && y < w.vh
	switch {
	case inside && (!w.pointerIn || x != w.lastX || y != w.lastY):
		w.pointerIn = true
		w.lastX, w.lastY = x, y
		w.events.EmitPointerMove(float64(x), float64(y))
	case !inside && w.pointerIn:
		w.pointerIn = false
		w.events.EmitPointerLeave()
	}
}

func (w *window) Draw(screen *ebiten.Image) {
	screen.Fill(w.background().toRGBA())

	var op ebiten.DrawImageOptions
	op.ColorScale.ScaleAlpha(w.fadeAlpha)
	screen.DrawImage(w.surface.Image(), &op)

	if w.fps != nil {
		w.fps.draw(screen)
	}
	w.shots.flush(screen)
}

func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.vw || outsideHeight != w.vh {
		w.vw, w.vh = outsideWidth, outsideHeight
		w.resizePending = true
	}
	return outsideWidth, outsideHeight
}

// startFade restarts the fade-in so a repopulated field eases into view.
func (w *window) startFade() {
	if w.cfg.FadeIn <= 0 {
		w.fadeAlpha = 1
		return
	}
	w.fade = gween.New(0, 1, w.cfg.FadeIn, ease.OutQuad)
	w.fadeAlpha = 0
}

const themeFadeSeconds = 0.35

// startThemeFade crossfades the window background toward the new theme,
// starting from whatever color is currently showing.
func (w *window) startThemeFade() {
	w.bgFrom = w.background()
	w.bgTo = BackgroundFor(ThemeFor(w.dark))
	w.bgTween = gween.New(0, 1, themeFadeSeconds, ease.InOutSine)
	w.bgMix = 0
}

func (w *window) background() Color {
	if w.bgMix >= 1 {
		return w.bgTo
	}
	return w.bgFrom.Blend(w.bgTo, float64(w.bgMix))
}
