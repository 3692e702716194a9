package geom

import (
	"fmt"
	"math"
)

// Vec2 is a point or direction in the plane.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Zero is the origin.
var Zero = Vec2{}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromAngle returns the unit vector pointing at angle (radians).
func FromAngle(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{X: c, Y: s}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Length returns the Euclidean norm of v.
func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }

// SquaredDistance returns |v - o|².
// Cheaper than Distance when only ordering matters.
func (v Vec2) SquaredDistance(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Distance returns |v - o|.
func (v Vec2) Distance(o Vec2) float64 {
	return math.Sqrt(v.SquaredDistance(o))
}

// Lerp linearly interpolates between v (t=0) and o (t=1).
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Midpoint returns the point halfway between v and o.
func (v Vec2) Midpoint(o Vec2) Vec2 {
	return Vec2{(v.X + o.X) * 0.5, (v.Y + o.Y) * 0.5}
}

// AngleTo returns the angle of the direction from v to o.
func (v Vec2) AngleTo(o Vec2) float64 {
	return math.Atan2(o.Y-v.Y, o.X-v.X)
}

// Normalize returns v scaled to unit length.
// Returns false if v has zero length.
func (v Vec2) Normalize() (Vec2, bool) {
	l := v.Length()
	if l == 0 {
		return Zero, false
	}
	return v.Scale(1 / l), true
}

// ApproxEqual reports whether v and o are within eps of each other on both axes.
func (v Vec2) ApproxEqual(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// InRect reports whether v lies inside the closed axis-aligned box [min, max].
func (v Vec2) InRect(min, max Vec2) bool {
	return v.X >= min.X && v.X <= max.X && v.Y >= min.Y && v.Y <= max.Y
}

// String returns a compact representation of v.
func (v Vec2) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y)
}

// Compass maps an angle to one of eight compass labels.
// +X is east and +Y is south, so a positive angle turns clockwise on screen.
func Compass(angle float64) string {
	deg := math.Mod(angle*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	switch {
	case deg < 22.5 || deg >= 337.5:
		return "E"
	case deg < 67.5:
		return "SE"
	case deg < 112.5:
		return "S"
	case deg < 157.5:
		return "SW"
	case deg < 202.5:
		return "W"
	case deg < 247.5:
		return "NW"
	case deg < 292.5:
		return "N"
	default:
		return "NE"
	}
}
