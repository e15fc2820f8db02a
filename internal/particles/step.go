package particles

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Force returns the pointer pull at distance d: 1 at the pointer, falling linearly to 0 at AttractRadius
func (p Params) Force(d float64) float64 {
	if d >= p.AttractRadius || p.AttractRadius <= 0 {
		return 0
	}
	return (p.AttractRadius - d) / p.AttractRadius
}

// Step advances one particle by one tick and returns the radius it should be drawn with.
//
// The particle moves by its velocity, reverses an axis of velocity when it is outside the
// surface on that axis, and is then nudged toward the pointer. The nudge is applied to the
// position only, so it never builds up momentum. Overshoot past an edge is not clamped; the
// flipped velocity brings the particle back on following ticks.
func (p Params) Step(pt *Particle, pointer r2.Vec, width, height float64) float64 {
	pt.Pos = r2.Add(pt.Pos, pt.Vel)

	if pt.Pos.X < 0 || pt.Pos.X > width {
		pt.Vel.X = -pt.Vel.X
	}
	if pt.Pos.Y < 0 || pt.Pos.Y > height {
		pt.Vel.Y = -pt.Vel.Y
	}

	delta := r2.Sub(pointer, pt.Pos)
	d := r2.Norm(delta)
	if d >= p.AttractRadius {
		return pt.BaseSize
	}

	pt.Pos = r2.Add(pt.Pos, r2.Scale(p.Force(d)*p.AttractStrength, delta))
	return pt.BaseSize + (p.AttractRadius-d)*p.GrowthRate
}

// StepAll advances every particle in the store and reports each drawn radius through fn.
// fn may be nil.
func (s *Store) StepAll(pointer r2.Vec, fn func(pt *Particle, radius float64)) {
	for _, pt := range s.particles {
		radius := s.params.Step(pt, pointer, s.width, s.height)
		if fn != nil {
			fn(pt, radius)
		}
	}
}
