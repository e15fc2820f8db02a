package chart

// Densify fills in evenly spaced values (at x = 0, 1, 2, ...) with a Catmull-Rom curve.
// Each interval gets steps sub-segments; the curve passes through every input value.
// With fewer than three values or steps below 2 the points are returned as they are.
func Densify(values []float64, steps int) (xs, ys []float64) {
	n := len(values)
	if n < 3 || steps < 2 {
		xs = make([]float64, n)
		for i := range xs {
			xs[i] = float64(i)
		}
		return xs, append([]float64(nil), values...)
	}

	at := func(i int) float64 {
		if i < 0 {
			return values[0]
		}
		if i >= n {
			return values[n-1]
		}
		return values[i]
	}

	xs = make([]float64, 0, (n-1)*steps+1)
	ys = make([]float64, 0, (n-1)*steps+1)
	for i := 0; i < n-1; i++ {
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		for s := 0; s < steps; s++ {
			t := float64(s) / float64(steps)
			t2 := t * t
			t3 := t2 * t
			y := 0.5 * (2*p1 +
				(p2-p0)*t +
				(2*p0-5*p1+4*p2-p3)*t2 +
				(3*p1-p0-3*p2+p3)*t3)
			xs = append(xs, float64(i)+t)
			ys = append(ys, y)
		}
	}
	xs = append(xs, float64(n-1))
	ys = append(ys, values[n-1])
	return xs, ys
}
