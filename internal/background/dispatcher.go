package background

// Dispatcher fans host input out to registered listeners.
// It is not safe for concurrent use; hosts emit from their update loop.
type Dispatcher struct {
	nextID  uint64
	pointer map[uint64]func(x, y float64)
	resize  map[uint64]func(width, height int)
}

// NewDispatcher creates a dispatcher with no listeners
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		pointer: make(map[uint64]func(x, y float64)),
		resize:  make(map[uint64]func(width, height int)),
	}
}

// OnPointerMove registers fn for pointer movement
func (d *Dispatcher) OnPointerMove(fn func(x, y float64)) func() {
	d.nextID++
	id := d.nextID
	d.pointer[id] = fn
	return func() { delete(d.pointer, id) }
}

// OnResize registers fn for surface size changes
func (d *Dispatcher) OnResize(fn func(width, height int)) func() {
	d.nextID++
	id := d.nextID
	d.resize[id] = fn
	return func() { delete(d.resize, id) }
}

// PointerMoved notifies every pointer listener
func (d *Dispatcher) PointerMoved(x, y float64) {
	for _, fn := range d.pointer {
		fn(x, y)
	}
}

// Resized notifies every resize listener
func (d *Dispatcher) Resized(width, height int) {
	for _, fn := range d.resize {
		fn(width, height)
	}
}

// Listeners returns the number of attached pointer and resize listeners
func (d *Dispatcher) Listeners() (pointer, resize int) {
	return len(d.pointer), len(d.resize)
}
