package curves

// Length returns the polyline length of path.
func Length(path []Vec) float64 {
	var l float64
	for i := 1; i < len(path); i++ {
		l += path[i-1].Dist(path[i])
	}
	return l
}

// PositionAt walks distance along path. Negative distances clamp to the
// head; distances past the end continue along the last non-empty segment.
func PositionAt(path []Vec, distance float64) Vec {
	switch len(path) {
	case 0:
		return Vec{}
	case 1:
		return path[0]
	}
	if distance <= 0 {
		return path[0]
	}
	progress := distance
	for i := 1; i < len(path); i++ {
		dir := path[i].Sub(path[i-1])
		l := dir.Hypot()
		if l == 0 {
			continue
		}
		if progress <= l {
			return path[i-1].Add(dir.Mul(progress / l))
		}
		progress -= l
	}

	from := path[len(path)-1]
	for i := len(path) - 1; i > 0; i-- {
		dir := path[i].Sub(path[i-1])
		if l := dir.Hypot(); l > 0 {
			return from.Add(dir.Mul(progress / l))
		}
	}
	return from
}
