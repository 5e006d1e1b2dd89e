package ambient

import (
	"fmt"
	"math"
	"strings"
)

// Shape is the closed set of particle outlines.
type Shape uint8

const (
	ShapeCircle   Shape = iota // filled arc
	ShapeDiamond               // square rotated 45 degrees
	ShapeCross                 // plus sign with arms 0.35 of the radius
	ShapeTriangle              // isosceles triangle inscribed in the radius
	ShapeStar                  // four-spike star
)

// AllShapes lists every Shape in declaration order.
var AllShapes = []Shape{ShapeCircle, ShapeDiamond, ShapeCross, ShapeTriangle, ShapeStar}

const (
	crossArmRatio  = 0.35
	crossScale     = 0.9
	starSpikes     = 4
	starInnerRatio = 0.45
	starScale      = 1.2

	maxOutlinePoints = 12 // cross
)

var shapeNames = [...]string{
	ShapeCircle:   "circle",
	ShapeDiamond:  "diamond",
	ShapeCross:    "cross",
	ShapeTriangle: "triangle",
	ShapeStar:     "star",
}

// String returns the lowercase shape name.
func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", s)
}

// ParseShape converts a shape name (case-insensitive) to a Shape.
func ParseShape(name string) (Shape, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, sn := range shapeNames {
		if sn == n {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shape %q", name)
}

// Radius returns the drawing radius for a particle of the given size.
// Crosses are drawn slightly smaller and stars slightly larger so all
// shapes read as the same visual weight.
func (s Shape) Radius(size float64) float64 {
	switch s {
	case ShapeCross:
		return size * crossScale
	case ShapeStar:
		return size * starScale
	default:
		return size
	}
}

// Outline appends the closed outline of s with radius r, centered on the
// origin, to buf and returns the extended slice. Circles have no polygon
// outline; Outline returns buf unchanged for them.
func (s Shape) Outline(buf []Vec2, r float64) []Vec2 {
	switch s {
	case ShapeDiamond:
		return append(buf,
			Vec2{0, -r},
			Vec2{r, 0},
			Vec2{0, r},
			Vec2{-r, 0},
		)

	case ShapeCross:
		arm := r * crossArmRatio
		return append(buf,
			Vec2{-arm, -r},
			Vec2{arm, -r},
			Vec2{arm, -arm},
			Vec2{r, -arm},
			Vec2{r, arm},
			Vec2{arm, arm},
			Vec2{arm, r},
			Vec2{-arm, r},
			Vec2{-arm, arm},
			Vec2{-r, arm},
			Vec2{-r, -arm},
			Vec2{-arm, -arm},
		)

	case ShapeTriangle:
		return append(buf,
			Vec2{0, -r},
			Vec2{r, r},
			Vec2{-r, r},
		)

	case ShapeStar:
		inner := r * starInnerRatio
		rot := math.Pi * 1.5
		step := math.Pi / starSpikes
		for range starSpikes {
			buf = append(buf, Vec2{math.Cos(rot) * r, math.Sin(rot) * r})
			rot += step
			buf = append(buf, Vec2{math.Cos(rot) * inner, math.Sin(rot) * inner})
			rot += step
		}
		return buf
	}
	return buf
}

// fill draws s at radius r onto the surface using the surface's current
// transform, alpha, fill and glow.
func (s Shape) fill(surf Surface, r float64) {
	if s == ShapeCircle {
		surf.FillCircle(r)
		return
	}
	var buf [maxOutlinePoints]Vec2
	surf.FillPolygon(s.Outline(buf[:0], r))
}
