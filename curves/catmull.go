package curves

// catmullPath samples a uniform Catmull-Rom spline through pts at evenly
// spaced parameters over the whole point range. The end points stand in for
// the missing neighbours at either edge.
func catmullPath(pts []Vec) []Vec {
	n := len(pts)
	out := make([]Vec, 0, curveSteps+1)
	for s := 0; s <= curveSteps; s++ {
		u := float64(s) / curveSteps * float64(n-1)
		i := min(int(u), n-2)
		t := u - float64(i)

		p0 := pts[max(i-1, 0)]
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[min(i+2, n-1)]
		out = append(out, catmullPoint(p0, p1, p2, p3, t))
	}
	return out
}

func catmullPoint(p0, p1, p2, p3 Vec, t float64) Vec {
	t2 := t * t
	t3 := t2 * t
	return Vec{
		X: 0.5 * ((2 * p1.X) + (-p0.X+p2.X)*t + (2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 + (-p0.X+3*p1.X-3*p2.X+p3.X)*t3),
		Y: 0.5 * ((2 * p1.Y) + (-p0.Y+p2.Y)*t + (2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 + (-p0.Y+3*p1.Y-3*p2.Y+p3.Y)*t3),
	}
}
