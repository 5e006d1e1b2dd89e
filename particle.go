package ambient

import (
	"math"
	"math/rand/v2"
)

// Simulation constants. Units are pixels and ticks.
const (
	InfluenceRadius = 120.0 // pointer reach
	PushGain        = 2.0   // velocity at full force
	MagnifyGain     = 0.8   // extra size fraction at full force
	Damping         = 0.9   // per-tick velocity decay without influence
	VelocityScale   = 10.0  // render offset per unit of velocity

	maxDrift         = 0.075
	maxRotationSpeed = 0.0025
	glowBlur         = 4.0
)

// Default particle presets, used when a ParticleConfig range is zero.
var (
	DefaultSize    = Range{Min: 1, Max: 3}
	DefaultOpacity = Range{Min: 0.15, Max: 0.45}
)

// ParticleConfig overrides a new particle's randomized properties. The zero
// value gives the defaults.
type ParticleConfig struct {
	// Position fixes the base position; nil means uniform within the surface.
	Position *Vec2
	// Size is the range of rest sizes. Zero uses DefaultSize.
	Size Range
	// Opacity is the range of alpha values. Zero uses DefaultOpacity.
	Opacity Range
	// Color is the fill color. The zero Color uses ColorWhite.
	Color Color
	// Shapes are the candidate shapes, picked uniformly. Empty uses AllShapes.
	Shapes []Shape
}

// Particle is one drifting shape. BaseX/BaseY integrate the drift and stay
// inside the surface; X/Y add the pointer push and are used only for drawing.
type Particle struct {
	BaseX, BaseY   float64
	X, Y           float64
	VX, VY         float64
	Size, BaseSize float64
	DriftX, DriftY float64
	Opacity        float64
	Color          Color
	Shape          Shape
	Rotation       float64
	RotationSpeed  float64
}

// NewParticle creates a particle on a w by h surface.
func NewParticle(w, h float64, cfg ParticleConfig) Particle {
	var p Particle

	if cfg.Position != nil {
		p.BaseX, p.BaseY = cfg.Position.X, cfg.Position.Y
	} else {
		p.BaseX = rand.Float64() * w
		p.BaseY = rand.Float64() * h
	}
	p.X, p.Y = p.BaseX, p.BaseY

	sizeRange := cfg.Size
	if sizeRange.IsZero() {
		sizeRange = DefaultSize
	}
	p.Size = math.Max(sizeRange.Random(), 0)
	p.BaseSize = p.Size

	opRange := cfg.Opacity
	if opRange.IsZero() {
		opRange = DefaultOpacity
	}
	p.Opacity = clamp01(opRange.Random())

	p.Color = cfg.Color
	if p.Color == (Color{}) {
		p.Color = ColorWhite
	}

	p.DriftX = (rand.Float64() - 0.5) * 2 * maxDrift
	p.DriftY = (rand.Float64() - 0.5) * 2 * maxDrift

	shapes := cfg.Shapes
	if len(shapes) == 0 {
		shapes = AllShapes
	}
	p.Shape = shapes[rand.IntN(len(shapes))]

	p.Rotation = rand.Float64() * 2 * math.Pi
	p.RotationSpeed = (rand.Float64() - 0.5) * 2 * maxRotationSpeed

	return p
}

// Update advances the particle one tick against a w by h surface.
func (p *Particle) Update(ptr Pointer, w, h float64) {
	p.BaseX += p.DriftX
	p.BaseY += p.DriftY
	p.Rotation += p.RotationSpeed

	p.BaseX = wrap(p.BaseX, w)
	p.BaseY = wrap(p.BaseY, h)

	if !p.push(ptr) {
		p.Size = p.BaseSize
		p.VX *= Damping
		p.VY *= Damping
	}

	p.X = p.BaseX + p.VX*VelocityScale
	p.Y = p.BaseY + p.VY*VelocityScale
}

// push applies the pointer force field. It reports false when the pointer
// is inactive, out of range, or exactly on the particle (no direction).
func (p *Particle) push(ptr Pointer) bool {
	if !ptr.Active {
		return false
	}
	dx := p.BaseX - ptr.X
	dy := p.BaseY - ptr.Y
	dist := math.Hypot(dx, dy)
	if dist >= InfluenceRadius || dist <= 0 {
		return false
	}

	force := (InfluenceRadius - dist) / InfluenceRadius
	strength := force * PushGain
	p.VX = dx / dist * strength
	p.VY = dy / dist * strength
	p.Size = p.BaseSize * (1 + force*MagnifyGain)
	return true
}

// Draw renders the particle and leaves the surface state as it found it.
func (p *Particle) Draw(s Surface) {
	s.Save()
	defer s.Restore()

	s.SetAlpha(p.Opacity)
	s.SetFill(p.Color)
	s.Translate(p.X, p.Y)
	s.Rotate(p.Rotation)
	s.SetGlow(p.Color, glowBlur)

	if p.Size <= 0 {
		return
	}
	p.Shape.fill(s, p.Shape.Radius(p.Size))
}

// wrap folds v into [0, extent). Values just below zero reappear at the far
// edge; values at or past the extent reappear near zero.
func wrap(v, extent float64) float64 {
	if extent <= 0 {
		return 0
	}
	if v < 0 {
		v += extent
	} else if v >= extent {
		v -= extent
	}
	if v < 0 || v >= extent {
		v = math.Mod(v, extent)
		if v < 0 {
			v += extent
		}
		// v+extent can round up to extent for tiny negative v.
		if v >= extent {
			v = 0
		}
	}
	return v
}
