package curves

import "math"

const (
	minArcArea   = 1e-3
	minArcRadius = 1.0
	maxArcRadius = 1000.0
	arcStepLen   = 5.0 // osu!pixels of arc per segment
)

// perfectPath draws the circular arc through start and the first two
// controls. Further controls are ignored; with a single control the slider is
// a straight line.
func perfectPath(pts []Vec) []Vec {
	if len(pts) < 3 {
		return linearPath(pts, curveSteps)
	}
	pts = pts[:3]
	a, b, c := pts[0], pts[1], pts[2]

	if math.Abs(b.Sub(a).Cross(c.Sub(a)))/2 < minArcArea {
		return linearPath(pts, fallbackStep)
	}
	center, r, ok := Circumcircle(a, b, c)
	if !ok || r <= minArcRadius || r >= maxArcRadius {
		return linearPath(pts, fallbackStep)
	}

	start := a.Sub(center).Angle()
	mid := b.Sub(center).Angle()
	end := c.Sub(center).Angle()

	// Sweep in the positive direction unless the middle point is not on that side.
	sweep := wrapAngle(end - start)
	dir := 1.0
	if wrapAngle(mid-start) > sweep {
		dir = -1
		sweep = 2*math.Pi - sweep
	}

	segments := max(curveSteps, int(math.Ceil(r*sweep/arcStepLen)))
	out := make([]Vec, 0, segments+1)
	out = append(out, a)
	for i := 1; i < segments; i++ {
		th := start + dir*sweep*float64(i)/float64(segments)
		out = append(out, center.Add(Vec{math.Cos(th), math.Sin(th)}.Mul(r)))
	}
	out = append(out, c)
	return out
}

// Circumcircle returns the center and radius of the circle through a, b and
// c. ok is false when the points are collinear.
func Circumcircle(a, b, c Vec) (center Vec, radius float64, ok bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-8 {
		return Vec{}, 0, false
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	center = Vec{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}
	radius = center.Dist(a)
	if !center.IsFinite() || !finite(radius) {
		return Vec{}, 0, false
	}
	return center, radius, true
}

// wrapAngle maps th into [0, 2π).
func wrapAngle(th float64) float64 {
	th = math.Mod(th, 2*math.Pi)
	if th < 0 {
		th += 2 * math.Pi
	}
	return th
}
