package background

import (
	"errors"
	"image/color"
	"io"
	"log"
	"math"
	"os"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/glowboard/internal/particles"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type glowCall struct {
	cx, cy, radius float64
	stops          []GradientStop
	mode           BlendMode
}

type lineCall struct {
	x0, y0, x1, y1 float64
	c              color.Color
	width          float64
	mode           BlendMode
}

// recordingSurface logs every primitive of the current frame
type recordingSurface struct {
	w, h    int
	clears  int
	resizes int
	glows   []glowCall
	lines   []lineCall
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) Resize(w, h int) {
	s.w, s.h = w, h
	s.resizes++
}

func (s *recordingSurface) Clear() {
	s.clears++
	s.glows = s.glows[:0]
	s.lines = s.lines[:0]
}

func (s *recordingSurface) FillRadial(cx, cy, radius float64, stops []GradientStop, mode BlendMode) {
	s.glows = append(s.glows, glowCall{cx, cy, radius, stops, mode})
}

func (s *recordingSurface) StrokeLine(x0, y0, x1, y1 float64, c color.Color, width float64, mode BlendMode) {
	s.lines = append(s.lines, lineCall{x0, y0, x1, y1, c, width, mode})
}

type testRig struct {
	queue   *FrameQueue
	events  *Dispatcher
	pointer *Pointer
	surface *recordingSurface
	driver  *Driver
}

func newRig(t *testing.T, opts Options) *testRig {
	t.Helper()
	opts.Seed = 42
	r := &testRig{
		queue:   NewFrameQueue(),
		events:  NewDispatcher(),
		pointer: NewPointer(-1e6, -1e6),
		surface: &recordingSurface{w: 800, h: 600},
	}
	r.driver = NewDriver(opts, r.queue, r.events, r.pointer)
	return r
}

func TestStartSeedsAndSchedules(t *testing.T) {
	r := newRig(t, DefaultOptions())

	if r.driver.State() != Idle {
		t.Fatalf("new driver state = %v, want idle", r.driver.State())
	}
	if err := r.driver.Start(r.surface); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if r.driver.State() != Running {
		t.Fatalf("state after Start = %v, want running", r.driver.State())
	}
	if got := r.driver.Store().Len(); got != particles.DefaultCount {
		t.Errorf("store has %d particles, want %d", got, particles.DefaultCount)
	}
	if r.queue.Pending() != 1 {
		t.Errorf("pending frames = %d, want 1", r.queue.Pending())
	}
	if p, z := r.events.Listeners(); p != 1 || z != 1 {
		t.Errorf("listeners = %d pointer, %d resize; want 1 each", p, z)
	}
}

func TestFrameDrawsGlowsThenLinks(t *testing.T) {
	r := newRig(t, DefaultOptions())
	if err := r.driver.Start(r.surface); err != nil {
		t.Fatal(err)
	}

	// Pack particles so some pairs are linked
	ps := r.driver.Store().Particles()
	for i, p := range ps {
		p.Pos = r2.Vec{X: 100 + float64(i%5)*20, Y: 100 + float64(i/5)*20}
		p.Vel = r2.Vec{}
	}

	if n := r.queue.Flush(); n != 1 {
		t.Fatalf("Flush ran %d callbacks, want 1", n)
	}
	if r.surface.clears != 1 {
		t.Errorf("clears = %d, want 1", r.surface.clears)
	}
	if len(r.surface.glows) != len(ps) {
		t.Fatalf("drew %d glows, want %d", len(r.surface.glows), len(ps))
	}
	for i, g := range r.surface.glows {
		if g.mode != BlendScreen {
			t.Errorf("glow %d blend = %v, want screen", i, g.mode)
		}
		if want := ps[i].BaseSize * 4; math.Abs(g.radius-want) > 1e-9 {
			t.Errorf("glow %d radius = %v, want %v", i, g.radius, want)
		}
		if g.stops[0].Color != ps[i].Color || g.stops[len(g.stops)-1].Color.A != 0 {
			t.Errorf("glow %d stops = %v", i, g.stops)
		}
	}
	if len(r.surface.lines) == 0 {
		t.Fatal("expected link lines between packed particles")
	}
	for i, l := range r.surface.lines {
		if l.mode != BlendLighter || l.width != 0.5 {
			t.Errorf("line %d mode %v width %v", i, l.mode, l.width)
		}
		_, _, _, a := l.c.RGBA()
		if a == 0 || a > 6554 { // 0.1 opacity, rounded
			t.Errorf("line %d alpha %d outside (0, 0.1]", i, a)
		}
	}
	if r.driver.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", r.driver.Frames())
	}
	if r.queue.Pending() != 1 {
		t.Errorf("frame did not reschedule itself")
	}
}

func TestFixedTickCount(t *testing.T) {
	r := newRig(t, DefaultOptions())
	if err := r.driver.Start(r.surface); err != nil {
		t.Fatal(err)
	}
	if ran := r.queue.Run(120); ran != 120 {
		t.Fatalf("ran %d frames, want 120", ran)
	}
	if r.driver.Frames() != 120 {
		t.Errorf("Frames() = %d, want 120", r.driver.Frames())
	}
	for i, p := range r.driver.Store().Particles() {
		if math.IsNaN(p.Pos.X) || math.IsNaN(p.Pos.Y) {
			t.Errorf("particle %d position %v", i, p.Pos)
		}
	}
}

func TestStopHaltsFramesAndListeners(t *testing.T) {
	r := newRig(t, DefaultOptions())
	if err := r.driver.Start(r.surface); err != nil {
		t.Fatal(err)
	}
	r.queue.Run(3)

	r.driver.Stop()
	if r.driver.State() != Idle {
		t.Fatalf("state after Stop = %v", r.driver.State())
	}
	if r.queue.Pending() != 0 {
		t.Errorf("pending frames after Stop = %d, want 0", r.queue.Pending())
	}
	if p, z := r.events.Listeners(); p != 0 || z != 0 {
		t.Errorf("listeners after Stop = %d/%d, want 0/0", p, z)
	}

	frames := r.driver.Frames()
	before := r.driver.Store().Particles()
	pointer := r.pointer.Load()

	if ran := r.queue.Run(10); ran != 0 {
		t.Errorf("%d frame callbacks ran after Stop", ran)
	}
	r.events.PointerMoved(5, 5)
	r.events.Resized(100, 100)

	if r.driver.Frames() != frames {
		t.Errorf("frames advanced after Stop: %d -> %d", frames, r.driver.Frames())
	}
	if r.pointer.Load() != pointer {
		t.Errorf("pointer mutated after Stop: %v", r.pointer.Load())
	}
	if &r.driver.Store().Particles()[0] != &before[0] {
		t.Error("store reseeded after Stop")
	}
	if r.surface.resizes != 0 {
		t.Errorf("surface resized %d times after Stop", r.surface.resizes)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	r := newRig(t, DefaultOptions())
	r.driver.Stop()
	if err := r.driver.Start(r.surface); err != nil {
		t.Fatal(err)
	}
	r.driver.Stop()
	r.driver.Stop()
	if r.driver.State() != Idle {
		t.Errorf("state = %v, want idle", r.driver.State())
	}
}

func TestDoubleStartRejected(t *testing.T) {
	r := newRig(t, DefaultOptions())
	if err := r.driver.Start(r.surface); err != nil {
		t.Fatal(err)
	}
	if err := r.driver.Start(r.surface); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second Start() error = %v, want ErrAlreadyRunning", err)
	}
	if r.queue.Pending() != 1 {
		t.Errorf("pending frames = %d, want 1", r.queue.Pending())
	}
	if p, z := r.events.Listeners(); p != 1 || z != 1 {
		t.Errorf("listeners = %d/%d, want 1/1", p, z)
	}
}

func TestStartNilSurface(t *testing.T) {
	r := newRig(t, DefaultOptions())
	if err := r.driver.Start(nil); !errors.Is(err, ErrNoSurface) {
		t.Fatalf("Start(nil) error = %v, want ErrNoSurface", err)
	}
	if r.driver.State() != Idle {
		t.Errorf("state = %v, want idle", r.driver.State())
	}
}

func TestRestartIgnoresStaleFrame(t *testing.T) {
	q := NewFrameQueue()
	events := NewDispatcher()
	surface := &recordingSurface{w: 400, h: 300}
	opts := DefaultOptions()
	opts.Seed = 7
	d := NewDriver(opts, q, events, nil)

	if err := d.Start(surface); err != nil {
		t.Fatal(err)
	}
	// Capture the first generation's callback before it is cancelled
	stale := q.pending[0].fn
	d.Stop()
	if err := d.Start(surface); err != nil {
		t.Fatal(err)
	}

	stale()
	if d.Frames() != 0 {
		t.Errorf("stale frame callback drew a frame")
	}
	q.Flush()
	if d.Frames() != 1 {
		t.Errorf("Frames() = %d after one live flush, want 1", d.Frames())
	}
}

func TestPointerListenerUpdatesCell(t *testing.T) {
	r := newRig(t, DefaultOptions())
	if err := r.driver.Start(r.surface); err != nil {
		t.Fatal(err)
	}
	r.events.PointerMoved(123, 45)
	if got := r.pointer.Load(); got != (r2.Vec{X: 123, Y: 45}) {
		t.Errorf("pointer = %v, want (123,45)", got)
	}
	if r.driver.Frames() != 0 {
		t.Error("pointer move triggered a frame")
	}
}

func TestResizeReseeds(t *testing.T) {
	r := newRig(t, DefaultOptions())
	if err := r.driver.Start(r.surface); err != nil {
		t.Fatal(err)
	}
	old := r.driver.Store().Particles()

	r.events.Resized(320, 200)

	if r.surface.resizes != 1 {
		t.Errorf("surface resized %d times, want 1", r.surface.resizes)
	}
	ps := r.driver.Store().Particles()
	if len(ps) != particles.DefaultCount {
		t.Fatalf("reseeded %d particles, want %d", len(ps), particles.DefaultCount)
	}
	if ps[0] == old[0] {
		t.Error("resize kept old particles")
	}
	for i, p := range ps {
		if p.Pos.X < 0 || p.Pos.X >= 320 || p.Pos.Y < 0 || p.Pos.Y >= 200 {
			t.Errorf("particle %d at %v outside new bounds", i, p.Pos)
		}
	}
	if w, h := r.driver.Store().Bounds(); w != 320 || h != 200 {
		t.Errorf("store bounds %vx%v, want 320x200", w, h)
	}
}

func TestZeroDistanceFrame(t *testing.T) {
	opts := DefaultOptions()
	opts.Params.Count = 1
	r := newRig(t, opts)
	r.pointer.Set(400, 300)
	if err := r.driver.Start(r.surface); err != nil {
		t.Fatal(err)
	}
	p := r.driver.Store().Particles()[0]
	p.Pos = r2.Vec{X: 400, Y: 300}
	p.Vel = r2.Vec{}

	r.queue.Flush()

	if p.Pos != (r2.Vec{X: 400, Y: 300}) {
		t.Errorf("position = %v, want (400,300)", p.Pos)
	}
	g := r.surface.glows[0]
	if want := (p.BaseSize + 15) * 4; math.Abs(g.radius-want) > 1e-9 {
		t.Errorf("glow radius = %v, want %v", g.radius, want)
	}
}

func TestColorAt(t *testing.T) {
	stops := GlowStops(color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	tests := []struct {
		t    float64
		want color.NRGBA
	}{
		{-1, color.NRGBA{R: 200, G: 100, B: 50, A: 128}},
		{0, color.NRGBA{R: 200, G: 100, B: 50, A: 128}},
		{0.5, color.NRGBA{R: 100, G: 50, B: 25, A: 64}},
		{1, color.NRGBA{}},
		{2, color.NRGBA{}},
	}
	for _, tt := range tests {
		if got := ColorAt(stops, tt.t); got != tt.want {
			t.Errorf("ColorAt(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
	if got := ColorAt(nil, 0.5); got != (color.NRGBA{}) {
		t.Errorf("ColorAt(nil) = %v", got)
	}
}

func TestFrameQueueCancel(t *testing.T) {
	q := NewFrameQueue()
	ran := 0
	a := q.RequestFrame(func() { ran++ })
	q.RequestFrame(func() { ran += 10 })
	q.CancelFrame(a)
	q.CancelFrame(999)
	if n := q.Flush(); n != 1 || ran != 10 {
		t.Errorf("Flush ran %d callbacks, counter %d; want 1 and 10", n, ran)
	}
	if q.Flush() != 0 {
		t.Error("second Flush ran callbacks")
	}
}

func TestPointerZeroValue(t *testing.T) {
	var p Pointer
	if got := p.Load(); got != (r2.Vec{}) {
		t.Errorf("zero Pointer Load() = %v", got)
	}
}
