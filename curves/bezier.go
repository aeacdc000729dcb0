package curves

import "math"

// maxBernsteinDegree is the highest degree evaluated with binomial weights.
// C(n, k) stops being exact in a float64 somewhere above it.
const maxBernsteinDegree = 60

func bezierPath(pts []Vec) []Vec {
	out := make([]Vec, 0, curveSteps+1)
	for s := 0; s <= curveSteps; s++ {
		out = append(out, BezierAt(pts, float64(s)/curveSteps))
	}
	return out
}

// BezierAt evaluates the Bézier curve with the given control points at t in [0, 1].
// At t = 0 and t = 1 it returns the first and last point.
func BezierAt(pts []Vec, t float64) Vec {
	switch len(pts) {
	case 0:
		return Vec{}
	case 1:
		return pts[0]
	}
	if t <= 0 {
		return pts[0]
	}
	if t >= 1 {
		return pts[len(pts)-1]
	}
	n := len(pts) - 1
	if n > maxBernsteinDegree {
		return deCasteljau(pts, t)
	}
	var out Vec
	for i, p := range pts {
		w := binomial(n, i) * math.Pow(1-t, float64(n-i)) * math.Pow(t, float64(i))
		out = out.Add(p.Mul(w))
	}
	return out
}

func deCasteljau(pts []Vec, t float64) Vec {
	buf := make([]Vec, len(pts))
	copy(buf, pts)
	for r := len(buf) - 1; r > 0; r-- {
		for i := 0; i < r; i++ {
			buf[i] = buf[i].Lerp(buf[i+1], t)
		}
	}
	return buf[0]
}

func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	k = min(k, n-k)
	c := 1.0
	for i := 1; i <= k; i++ {
		c = c * float64(n-k+i) / float64(i)
	}
	return c
}
