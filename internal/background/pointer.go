package background

import (
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/r2"
)

// Pointer is the shared latest pointer position.
// Input handlers write it at any time; the simulation reads it once per tick.
type Pointer struct {
	pos atomic.Pointer[r2.Vec]
}

// NewPointer returns a pointer cell starting at (x, y)
func NewPointer(x, y float64) *Pointer {
	p := &Pointer{}
	p.Set(x, y)
	return p
}

// Set replaces the position
func (p *Pointer) Set(x, y float64) {
	p.pos.Store(&r2.Vec{X: x, Y: y})
}

// Load returns the latest position, the origin if never set
func (p *Pointer) Load() r2.Vec {
	if v := p.pos.Load(); v != nil {
		return *v
	}
	return r2.Vec{}
}
