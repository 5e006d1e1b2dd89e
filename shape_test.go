package ambient

import (
	"math"
	"testing"
)

func TestShapeString(t *testing.T) {
	for _, s := range AllShapes {
		got, err := ParseShape(s.String())
		if err != nil || got != s {
			t.Errorf("ParseShape(%q) = %v, %v", s.String(), got, err)
		}
	}
	if got, err := ParseShape("  STAR "); err != nil || got != ShapeStar {
		t.Errorf("ParseShape is not case-insensitive: %v, %v", got, err)
	}
	if _, err := ParseShape("hexagon"); err == nil {
		t.Error("expected error for unknown shape")
	}
	if Shape(99).String() != "Shape(99)" {
		t.Errorf("String() = %q", Shape(99).String())
	}
}

func TestShapeRadius(t *testing.T) {
	assertNear(t, "circle", ShapeCircle.Radius(2), 2)
	assertNear(t, "diamond", ShapeDiamond.Radius(2), 2)
	assertNear(t, "triangle", ShapeTriangle.Radius(2), 2)
	assertNear(t, "cross", ShapeCross.Radius(2), 1.8)
	assertNear(t, "star", ShapeStar.Radius(2), 2.4)
}

func TestOutlinePointCounts(t *testing.T) {
	want := map[Shape]int{
		ShapeCircle:   0,
		ShapeDiamond:  4,
		ShapeCross:    12,
		ShapeTriangle: 3,
		ShapeStar:     8,
	}
	for s, n := range want {
		if got := len(s.Outline(nil, 1)); got != n {
			t.Errorf("%v outline has %d points, want %d", s, got, n)
		}
		if n > maxOutlinePoints {
			t.Errorf("%v exceeds maxOutlinePoints", s)
		}
	}
}

func TestOutlineWithinRadius(t *testing.T) {
	const r = 3.0
	for _, s := range AllShapes {
		for _, p := range s.Outline(nil, r) {
			if d := math.Hypot(p.X, p.Y); d > r*math.Sqrt2+epsilon {
				t.Errorf("%v point %v at distance %v beyond %v", s, p, d, r*math.Sqrt2)
			}
		}
	}
}

func TestStarOutline(t *testing.T) {
	pts := ShapeStar.Outline(nil, 2)
	// First spike points straight up.
	assertNear(t, "spike x", pts[0].X, 0)
	assertNear(t, "spike y", pts[0].Y, -2)
	for i, p := range pts {
		want := 2.0
		if i%2 == 1 {
			want = 2 * starInnerRatio
		}
		assertNear(t, "star radius", math.Hypot(p.X, p.Y), want)
	}
}

func TestCrossOutline(t *testing.T) {
	pts := ShapeCross.Outline(nil, 1)
	assertNear(t, "arm x", pts[0].X, -crossArmRatio)
	assertNear(t, "arm y", pts[0].Y, -1)
}

func TestOutlineAppends(t *testing.T) {
	buf := []Vec2{{9, 9}}
	out := ShapeTriangle.Outline(buf, 1)
	if len(out) != 4 || out[0] != (Vec2{9, 9}) {
		t.Errorf("Outline did not append to buf: %v", out)
	}
	if got := ShapeCircle.Outline(buf, 1); len(got) != 1 {
		t.Errorf("circle outline changed buf: %v", got)
	}
}
