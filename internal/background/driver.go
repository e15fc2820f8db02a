package background

import (
	"errors"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/olivierh59500/glowboard/internal/particles"
)

var (
	ErrAlreadyRunning = errors.New("background: driver already running")
	ErrNoSurface      = errors.New("background: nil surface")
)

// State is the driver lifecycle state
type State uint8

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Options configures the driver
type Options struct {
	Params    particles.Params
	GlowScale float64 // Drawn glow radius per unit of particle radius
	LinkWidth float64
	LinkColor color.NRGBA // Opaque line colour; alpha comes from proximity
	Seed      int64       // Zero seeds from the clock
}

// DefaultOptions returns the stock look
func DefaultOptions() Options {
	return Options{
		Params:    particles.DefaultParams(),
		GlowScale: 4,
		LinkWidth: 0.5,
		LinkColor: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Driver owns the frame loop of one background.
//
// A Driver is single-threaded: Start, Stop, frames and listener callbacks must all
// run on the host's update/draw goroutine. Only the Pointer cell may be written elsewhere.
type Driver struct {
	opts      Options
	scheduler Scheduler
	events    Events
	pointer   *Pointer
	store     *particles.Store

	state   State
	gen     uint64 // Bumped on every Start and Stop; stale callbacks compare against it
	surface Surface
	handle  FrameHandle

	detachPointer func()
	detachResize  func()

	frames uint64
}

// NewDriver wires a driver to its host facilities; it starts Idle
func NewDriver(opts Options, scheduler Scheduler, events Events, pointer *Pointer) *Driver {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if pointer == nil {
		pointer = &Pointer{}
	}
	return &Driver{
		opts:      opts,
		scheduler: scheduler,
		events:    events,
		pointer:   pointer,
		store:     particles.NewStore(opts.Params, rand.New(rand.NewSource(seed))),
	}
}

// Start binds the surface, seeds particles to its size, attaches listeners and
// schedules the first frame
func (d *Driver) Start(surface Surface) error {
	if d.state == Running {
		return ErrAlreadyRunning
	}
	if surface == nil {
		return ErrNoSurface
	}

	d.gen++
	gen := d.gen
	d.state = Running
	d.surface = surface

	w, h := surface.Size()
	d.reseed(w, h)

	d.detachPointer = d.events.OnPointerMove(func(x, y float64) {
		if !d.live(gen) {
			return
		}
		d.pointer.Set(x, y)
	})
	d.detachResize = d.events.OnResize(func(w, h int) {
		if !d.live(gen) {
			return
		}
		d.surface.Resize(w, h)
		d.reseed(w, h)
	})

	d.schedule(gen)
	log.Printf("background: started %dx%d with %d particles", w, h, d.store.Len())
	return nil
}

// Stop cancels the pending frame and detaches listeners. Safe to call when idle.
func (d *Driver) Stop() {
	if d.state != Running {
		return
	}
	d.state = Idle
	d.gen++

	if d.handle != 0 {
		d.scheduler.CancelFrame(d.handle)
		d.handle = 0
	}
	if d.detachPointer != nil {
		d.detachPointer()
		d.detachPointer = nil
	}
	if d.detachResize != nil {
		d.detachResize()
		d.detachResize = nil
	}
	d.surface = nil
	log.Printf("background: stopped after %d frames", d.frames)
}

// State reports whether the loop is running
func (d *Driver) State() State {
	return d.state
}

// Frames returns the number of frames drawn since construction
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Store exposes the particle store
func (d *Driver) Store() *particles.Store {
	return d.store
}

func (d *Driver) live(gen uint64) bool {
	return d.state == Running && d.gen == gen
}

func (d *Driver) reseed(w, h int) {
	d.store.Reseed(float64(w), float64(h))
}

func (d *Driver) schedule(gen uint64) {
	d.handle = d.scheduler.RequestFrame(func() {
		d.frame(gen)
	})
}

// frame draws one tick: glows first, then proximity links on top
func (d *Driver) frame(gen uint64) {
	if !d.live(gen) {
		return
	}
	d.handle = 0

	s := d.surface
	s.Clear()

	d.store.StepAll(d.pointer.Load(), func(p *particles.Particle, radius float64) {
		s.FillRadial(p.Pos.X, p.Pos.Y, radius*d.opts.GlowScale, GlowStops(p.Color), BlendScreen)
	})

	lc := d.opts.LinkColor
	d.store.Links(func(a, b *particles.Particle, alpha float64) {
		c := color.NRGBA64{
			R: uint16(lc.R) * 0x101,
			G: uint16(lc.G) * 0x101,
			B: uint16(lc.B) * 0x101,
			A: uint16(alpha*0xffff + 0.5),
		}
		s.StrokeLine(a.Pos.X, a.Pos.Y, b.Pos.X, b.Pos.Y, c, d.opts.LinkWidth, BlendLighter)
	})

	d.frames++
	d.schedule(gen)
}
