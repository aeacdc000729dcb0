// Package curves turns slider control points into polylines.
//
// Every path starts at the slider head and is built from a fixed number of
// samples per curve, so the output depends only on the input points. Paths
// never contain NaN or Inf; degenerate input falls back to straight lines.
package curves

import (
	"fmt"
	"math"
)

// Vec is a playfield position in osu!pixels.
type Vec struct {
	X float64
	Y float64
}

// V returns the vector ⟨x, y⟩.
func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func (v Vec) String() string { return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y) }

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Mul(f float64) Vec   { return Vec{v.X * f, v.Y * f} }
func (v Vec) Dot(o Vec) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec) Cross(o Vec) float64 { return v.X*o.Y - v.Y*o.X }
func (v Vec) Hypot() float64      { return math.Hypot(v.X, v.Y) }
func (v Vec) Dist(o Vec) float64  { return o.Sub(v).Hypot() }
func (v Vec) Angle() float64      { return math.Atan2(v.Y, v.X) }
func (v Vec) IsFinite() bool      { return finite(v.X) && finite(v.Y) }
func (v Vec) Lerp(o Vec, t float64) Vec {
	// v + t * (o-v)
	return v.Add(o.Sub(v).Mul(t))
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Kind is a slider curve type.
type Kind uint8

const (
	Linear Kind = iota
	Bezier
	Perfect
	Catmull
)

func (k Kind) String() string {
	switch k {
	case Linear:
		return "L"
	case Bezier:
		return "B"
	case Perfect:
		return "P"
	case Catmull:
		return "C"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

const (
	curveSteps   = 20 // samples per linear segment and per whole bezier/catmull curve
	fallbackStep = 10 // lerp steps per side of a degenerate perfect circle
)

// Path returns the polyline for a slider starting at start. The first point
// is always start; with no controls it is the only point.
func Path(start Vec, kind Kind, controls []Vec) []Vec {
	if len(controls) == 0 {
		return []Vec{start}
	}
	pts := make([]Vec, 0, len(controls)+1)
	pts = append(pts, start)
	pts = append(pts, controls...)

	var out []Vec
	switch kind {
	case Linear:
		out = linearPath(pts, curveSteps)
	case Bezier:
		out = bezierPath(pts)
	case Perfect:
		out = perfectPath(pts)
	case Catmull:
		out = catmullPath(pts)
	default:
		out = linearPath(pts, curveSteps)
	}
	for _, p := range out {
		if !p.IsFinite() {
			return linearPath(pts, curveSteps)
		}
	}
	return out
}

// linearPath lerps through pts, adding steps points per pair. The first
// sample of a pair is the previous pair's last and is not repeated.
func linearPath(pts []Vec, steps int) []Vec {
	out := make([]Vec, 0, (len(pts)-1)*steps+1)
	out = append(out, pts[0])
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		for s := 1; s < steps; s++ {
			out = append(out, a.Lerp(b, float64(s)/float64(steps)))
		}
		out = append(out, b)
	}
	return out
}
