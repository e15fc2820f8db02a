package chart

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Spring tuning: critically damped, settles in roughly one second
const (
	springFrequency = 6.0
	springDamping   = 1.0
	settleEpsilon   = 1e-3
)

// Animator eases plotted values toward a target with one spring per point.
// New series grow from zero; series that keep their shape morph from where they are.
type Animator struct {
	spring  harmonica.Spring
	target  Data
	pos     [][]float64
	vel     [][]float64
	settled bool
}

// NewAnimator creates an animator stepped fps times per second
func NewAnimator(fps int) *Animator {
	return &Animator{
		spring:  harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
		settled: true,
	}
}

// SetTarget changes the values to ease toward. Without animate the values jump there.
func (a *Animator) SetTarget(d Data, animate bool) {
	pos := make([][]float64, len(d.Series))
	vel := make([][]float64, len(d.Series))
	for i, s := range d.Series {
		pos[i] = make([]float64, len(s.Values))
		vel[i] = make([]float64, len(s.Values))
		switch {
		case !animate:
			copy(pos[i], s.Values)
		case i < len(a.pos) && len(a.pos[i]) == len(s.Values):
			copy(pos[i], a.pos[i])
			copy(vel[i], a.vel[i])
		}
	}
	a.target = d
	a.pos = pos
	a.vel = vel
	a.settled = !animate
}

// Step advances every spring one frame and reports whether anything is still moving
func (a *Animator) Step() bool {
	if a.settled {
		return false
	}
	moving := false
	for i, s := range a.target.Series {
		for j, goal := range s.Values {
			p, v := a.spring.Update(a.pos[i][j], a.vel[i][j], goal)
			if math.Abs(p-goal) < settleEpsilon && math.Abs(v) < settleEpsilon {
				p, v = goal, 0
			} else {
				moving = true
			}
			a.pos[i][j] = p
			a.vel[i][j] = v
		}
	}
	a.settled = !moving
	return moving
}

// Settled reports whether the values have reached the target
func (a *Animator) Settled() bool {
	return a.settled
}

// Current returns the target's categories with the animated values
func (a *Animator) Current() Data {
	out := Data{Categories: a.target.Categories, Series: make([]Series, len(a.target.Series))}
	for i, s := range a.target.Series {
		out.Series[i] = Series{Name: s.Name, Values: append([]float64(nil), a.pos[i]...)}
	}
	return out
}
