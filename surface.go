package ambient

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Surface is the 2D drawing contract the field renders onto. It follows the
// immediate-mode canvas model: state (transform, alpha, fill, glow) is set
// before each fill call and scoped with Save/Restore.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (w, h float64)
	// SetSize resizes the surface. Content and state are reset.
	SetSize(w, h float64)
	// Clear erases the whole surface to transparent.
	Clear()

	// Save pushes the current state; Restore pops it. Restore without a
	// matching Save is a no-op.
	Save()
	Restore()

	SetAlpha(a float64)
	SetFill(c Color)
	// SetGlow sets a soft halo of color c extending blur pixels past the
	// shape's edge. A blur of zero disables the glow.
	SetGlow(c Color, blur float64)
	Translate(x, y float64)
	Rotate(theta float64)

	// FillPolygon fills a closed outline given in local coordinates. The
	// outline must be star-shaped about the local origin.
	FillPolygon(pts []Vec2)
	// FillCircle fills a circle of radius r centered on the local origin.
	FillCircle(r float64)
}

const (
	circleSegments = 16
	glowLayers     = 3
	glowStrength   = 0.6 // total halo alpha relative to the fill
)

type surfaceState struct {
	transform [6]float64
	alpha     float64
	fill      Color
	glow      Color
	blur      float64
}

var defaultSurfaceState = surfaceState{
	transform: identityTransform,
	alpha:     1,
	fill:      ColorWhite,
}

// ImageSurface is a Surface backed by a persistent offscreen *ebiten.Image.
// Polygons are triangulated as fans from the local origin.
type ImageSurface struct {
	image *ebiten.Image
	w, h  int
	state surfaceState
	stack []surfaceState

	verts   []ebiten.Vertex
	inds    []uint16
	circBuf []Vec2
}

// NewImageSurface creates a surface of the given size. Dimensions below one
// pixel are clamped to one.
func NewImageSurface(w, h int) *ImageSurface {
	w, h = max(w, 1), max(h, 1)
	return &ImageSurface{
		image: ebiten.NewImage(w, h),
		w:     w,
		h:     h,
		state: defaultSurfaceState,
	}
}

// Image returns the underlying *ebiten.Image for compositing.
func (s *ImageSurface) Image() *ebiten.Image {
	return s.image
}

// Size returns the surface dimensions in pixels.
func (s *ImageSurface) Size() (float64, float64) {
	return float64(s.w), float64(s.h)
}

// SetSize deallocates the old image and creates a new one when the size
// changes. Like resizing a canvas, it always resets drawing state.
func (s *ImageSurface) SetSize(w, h float64) {
	iw := max(int(w), 1)
	ih := max(int(h), 1)
	if iw != s.w || ih != s.h || s.image == nil {
		if s.image != nil {
			s.image.Deallocate()
		}
		s.image = ebiten.NewImage(iw, ih)
		s.w, s.h = iw, ih
	} else {
		s.image.Clear()
	}
	s.state = defaultSurfaceState
	s.stack = s.stack[:0]
}

// Clear fills the surface with transparent black.
func (s *ImageSurface) Clear() {
	s.image.Clear()
}

// Save pushes the current drawing state.
func (s *ImageSurface) Save() {
	s.stack = append(s.stack, s.state)
}

// Restore pops the most recently saved drawing state.
func (s *ImageSurface) Restore() {
	n := len(s.stack)
	if n == 0 {
		return
	}
	s.state = s.stack[n-1]
	s.stack = s.stack[:n-1]
}

// Depth returns the number of unrestored Save calls.
func (s *ImageSurface) Depth() int {
	return len(s.stack)
}

func (s *ImageSurface) SetAlpha(a float64) { s.state.alpha = clamp01(a) }
func (s *ImageSurface) SetFill(c Color)    { s.state.fill = c }

func (s *ImageSurface) SetGlow(c Color, blur float64) {
	s.state.glow = c
	s.state.blur = math.Max(blur, 0)
}

func (s *ImageSurface) Translate(x, y float64) {
	s.state.transform = translateAffine(s.state.transform, x, y)
}

func (s *ImageSurface) Rotate(theta float64) {
	s.state.transform = rotateAffine(s.state.transform, theta)
}

// FillCircle approximates the circle with a regular polygon.
func (s *ImageSurface) FillCircle(r float64) {
	if r <= 0 {
		return
	}
	s.circBuf = s.circBuf[:0]
	for i := range circleSegments {
		a := float64(i) * 2 * math.Pi / circleSegments
		s.circBuf = append(s.circBuf, Vec2{math.Cos(a) * r, math.Sin(a) * r})
	}
	s.FillPolygon(s.circBuf)
}

// FillPolygon fills pts with the current fill color and alpha, preceded by
// the glow halo when one is set.
func (s *ImageSurface) FillPolygon(pts []Vec2) {
	if len(pts) < 3 {
		return
	}
	st := &s.state

	if st.blur > 0 && st.glow.A > 0 {
		var radius float64
		for _, p := range pts {
			radius = math.Max(radius, math.Hypot(p.X, p.Y))
		}
		if radius > 0 {
			layerAlpha := st.alpha * glowStrength / glowLayers
			for i := glowLayers; i >= 1; i-- {
				scale := (radius + st.blur*float64(i)/glowLayers) / radius
				s.fan(pts, scale, st.glow, layerAlpha)
			}
		}
	}
	s.fan(pts, 1, st.fill, st.alpha)
}

// fan submits pts scaled about the local origin as a triangle fan.
func (s *ImageSurface) fan(pts []Vec2, scale float64, c Color, alpha float64) {
	r, g, b, a := float32(c.R), float32(c.G), float32(c.B), float32(clamp01(c.A*alpha))
	if a == 0 {
		return
	}
	m := s.state.transform
	src := whiteSource()

	s.verts = s.verts[:0]
	s.inds = s.inds[:0]

	cx, cy := transformPoint(m, 0, 0)
	s.verts = append(s.verts, vertex(cx, cy, r, g, b, a))
	for _, p := range pts {
		x, y := transformPoint(m, p.X*scale, p.Y*scale)
		s.verts = append(s.verts, vertex(x, y, r, g, b, a))
	}
	n := uint16(len(pts))
	for i := uint16(1); i <= n; i++ {
		next := i%n + 1
		s.inds = append(s.inds, 0, i, next)
	}

	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModeStraightAlpha
	op.AntiAlias = true
	s.image.DrawTriangles(s.verts, s.inds, src, &op)
}

func vertex(x, y float64, r, g, b, a float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: float32(x), DstY: float32(y),
		SrcX: 1, SrcY: 1,
		ColorR: r, ColorG: g, ColorB: b, ColorA: a,
	}
}

// whiteImage is a 3x3 white image; the center pixel is sampled so that
// anti-aliased edges never bleed past the image border.
var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

func whiteSource() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(ColorWhite.toRGBA())
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}
