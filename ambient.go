package ambient

import "math/rand/v2"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when vertices are submitted to the surface.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default particle fill.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Range is a general-purpose min/max range used by particle presets.
// A zero Range means "use the default".
type Range struct {
	Min, Max float64
}

// IsZero reports whether r is the zero Range.
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Random returns a random float64 in [Min, Max).
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies within [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Pointer is the field's view of the pointer. When Active is false the
// pointer exerts no influence.
type Pointer struct {
	X, Y   float64
	Active bool
}

// PointerAt returns an active pointer at (x, y).
func PointerAt(x, y float64) Pointer {
	return Pointer{X: x, Y: y, Active: true}
}

// NoPointer is the inactive pointer.
var NoPointer = Pointer{}
