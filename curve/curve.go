package curve

import (
	"fmt"
	"math"

	"github.com/hupe1980/waygraph/geom"
)

// Kind identifies the curve variant.
type Kind uint8

const (
	// KindLine is a straight segment.
	KindLine Kind = iota + 1
	// KindQuadratic is a quadratic Bezier curve.
	KindQuadratic
	// KindCubic is a cubic Bezier curve.
	KindCubic
	// KindCatmullRom is a Catmull-Rom chain through all of its points.
	KindCatmullRom
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "Line"
	case KindQuadratic:
		return "Quadratic"
	case KindCubic:
		return "Cubic"
	case KindCatmullRom:
		return "CatmullRom"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Curve is a parametric curve over t in [0, 1].
// The zero value is an invalid curve that evaluates to the origin.
type Curve struct {
	kind Kind
	// ctrl holds the control points of Line, Quadratic and Cubic.
	ctrl [4]geom.Vec2
	// chain holds the interpolated points of a CatmullRom curve.
	chain []geom.Vec2

	startPhantom    geom.Vec2
	endPhantom      geom.Vec2
	hasStartPhantom bool
	hasEndPhantom   bool
}

// Line returns the straight segment from p0 to p1.
func Line(p0, p1 geom.Vec2) Curve {
	return Curve{kind: KindLine, ctrl: [4]geom.Vec2{p0, p1}}
}

// Quadratic returns the quadratic Bezier curve from p0 to p2 with control point p1.
func Quadratic(p0, p1, p2 geom.Vec2) Curve {
	return Curve{kind: KindQuadratic, ctrl: [4]geom.Vec2{p0, p1, p2}}
}

// Cubic returns the cubic Bezier curve from p0 to p3 with control points p1 and p2.
func Cubic(p0, p1, p2, p3 geom.Vec2) Curve {
	return Curve{kind: KindCubic, ctrl: [4]geom.Vec2{p0, p1, p2, p3}}
}

// CatmullRom returns a Catmull-Rom chain through points.
// Exactly two points degenerate to Line. The points slice is copied.
func CatmullRom(points []geom.Vec2) Curve {
	if len(points) == 2 {
		return Line(points[0], points[1])
	}
	chain := make([]geom.Vec2, len(points))
	copy(chain, points)
	return Curve{kind: KindCatmullRom, chain: chain}
}

// WithStartPhantom overrides the mirrored left flank of the first segment.
// It has no effect on variants other than CatmullRom.
func (c Curve) WithStartPhantom(p geom.Vec2) Curve {
	if c.kind == KindCatmullRom {
		c.startPhantom, c.hasStartPhantom = p, true
	}
	return c
}

// WithEndPhantom overrides the mirrored right flank of the last segment.
// It has no effect on variants other than CatmullRom.
func (c Curve) WithEndPhantom(p geom.Vec2) Curve {
	if c.kind == KindCatmullRom {
		c.endPhantom, c.hasEndPhantom = p, true
	}
	return c
}

// Kind returns the variant of c.
func (c Curve) Kind() Kind { return c.kind }

// IsValid reports whether c has enough points to be evaluated as a path.
func (c Curve) IsValid() bool {
	switch c.kind {
	case KindLine, KindQuadratic, KindCubic:
		return true
	case KindCatmullRom:
		return len(c.chain) >= 2
	default:
		return false
	}
}

// ControlPoints returns a copy of the points defining c, in order.
func (c Curve) ControlPoints() []geom.Vec2 {
	switch c.kind {
	case KindLine:
		return []geom.Vec2{c.ctrl[0], c.ctrl[1]}
	case KindQuadratic:
		return []geom.Vec2{c.ctrl[0], c.ctrl[1], c.ctrl[2]}
	case KindCubic:
		return []geom.Vec2{c.ctrl[0], c.ctrl[1], c.ctrl[2], c.ctrl[3]}
	case KindCatmullRom:
		out := make([]geom.Vec2, len(c.chain))
		copy(out, c.chain)
		return out
	default:
		return nil
	}
}

// Start returns the first control point.
func (c Curve) Start() geom.Vec2 {
	if c.kind == KindCatmullRom {
		if len(c.chain) == 0 {
			return geom.Zero
		}
		return c.chain[0]
	}
	return c.ctrl[0]
}

// End returns the last control point.
func (c Curve) End() geom.Vec2 {
	switch c.kind {
	case KindLine:
		return c.ctrl[1]
	case KindQuadratic:
		return c.ctrl[2]
	case KindCubic:
		return c.ctrl[3]
	case KindCatmullRom:
		if len(c.chain) == 0 {
			return geom.Zero
		}
		return c.chain[len(c.chain)-1]
	default:
		return geom.Zero
	}
}

// Evaluate returns the point at parameter t. t is clamped to [0, 1].
func (c Curve) Evaluate(t float64) geom.Vec2 {
	t = clamp01(t)
	switch c.kind {
	case KindLine:
		return c.ctrl[0].Lerp(c.ctrl[1], t)
	case KindQuadratic:
		return quadraticBezier(c.ctrl[0], c.ctrl[1], c.ctrl[2], t)
	case KindCubic:
		return cubicBezier(c.ctrl[0], c.ctrl[1], c.ctrl[2], c.ctrl[3], t)
	case KindCatmullRom:
		return c.evalChain(t)
	default:
		return geom.Zero
	}
}

func (c Curve) evalChain(t float64) geom.Vec2 {
	n := len(c.chain)
	switch n {
	case 0:
		return geom.Zero
	case 1:
		return c.chain[0]
	case 2:
		return c.chain[0].Lerp(c.chain[1], t)
	}

	segments := n - 1
	s := t * float64(segments)
	seg := int(math.Floor(s))
	if seg >= segments {
		seg = segments - 1
	}
	local := s - float64(seg)

	p1 := c.chain[seg]
	p2 := c.chain[seg+1]

	var p0 geom.Vec2
	switch {
	case seg > 0:
		p0 = c.chain[seg-1]
	case c.hasStartPhantom:
		p0 = c.startPhantom
	default:
		p0 = mirror(c.chain[0], c.chain[1])
	}

	var p3 geom.Vec2
	switch {
	case seg+2 < n:
		p3 = c.chain[seg+2]
	case c.hasEndPhantom:
		p3 = c.endPhantom
	default:
		p3 = mirror(c.chain[n-1], c.chain[n-2])
	}

	return catmullRomPoint(p0, p1, p2, p3, local)
}

// mirror reflects q through p: 2p - q.
func mirror(p, q geom.Vec2) geom.Vec2 {
	return p.Scale(2).Sub(q)
}

// quadraticBezier evaluates (1-t)²·p0 + 2(1-t)t·p1 + t²·p2.
func quadraticBezier(p0, p1, p2 geom.Vec2, t float64) geom.Vec2 {
	inv := 1 - t
	a := inv * inv
	b := 2 * inv * t
	d := t * t
	return geom.V(
		a*p0.X+b*p1.X+d*p2.X,
		a*p0.Y+b*p1.Y+d*p2.Y,
	)
}

// cubicBezier evaluates (1-t)³·p0 + 3(1-t)²t·p1 + 3(1-t)t²·p2 + t³·p3.
func cubicBezier(p0, p1, p2, p3 geom.Vec2, t float64) geom.Vec2 {
	inv := 1 - t
	inv2 := inv * inv
	t2 := t * t
	a := inv2 * inv
	b := 3 * inv2 * t
	d := 3 * inv * t2
	e := t2 * t
	return geom.V(
		a*p0.X+b*p1.X+d*p2.X+e*p3.X,
		a*p0.Y+b*p1.Y+d*p2.Y+e*p3.Y,
	)
}

// catmullRomPoint evaluates the uniform Catmull-Rom segment from p1 to p2.
func catmullRomPoint(p0, p1, p2, p3 geom.Vec2, t float64) geom.Vec2 {
	t2 := t * t
	t3 := t2 * t
	f := func(a, b, c, d float64) float64 {
		return 0.5 * (2*b +
			(-a+c)*t +
			(2*a-5*b+4*c-d)*t2 +
			(-a+3*b-3*c+d)*t3)
	}
	return geom.V(f(p0.X, p1.X, p2.X, p3.X), f(p0.Y, p1.Y, p2.Y, p3.Y))
}

func clamp01(t float64) float64 {
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// ApproxLength sums the chord lengths between samples+1 evaluations evenly
// spaced in t. samples below 1 is treated as 1.
func ApproxLength(c Curve, samples int) float64 {
	if samples < 1 {
		samples = 1
	}
	length := 0.0
	prev := c.Evaluate(0)
	for i := 1; i <= samples; i++ {
		p := c.Evaluate(float64(i) / float64(samples))
		length += prev.Distance(p)
		prev = p
	}
	return length
}
