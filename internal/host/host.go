package host

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/glowboard/internal/background"
)

// Host provides the scheduler, events and surface a background.Driver needs from an ebiten game.
// Update must call Poll, Layout must call Layout and Draw must call Draw.
type Host struct {
	*background.FrameQueue
	*background.Dispatcher

	screen      *Screen
	width       int
	height      int
	cursorX     int
	cursorY     int
	cursorKnown bool
}

// New creates a host for a window of the given size
func New(width, height int, backdrop color.Color) *Host {
	return &Host{
		FrameQueue: background.NewFrameQueue(),
		Dispatcher: background.NewDispatcher(),
		screen:     NewScreen(width, height, backdrop),
		width:      width,
		height:     height,
	}
}

// Screen is the surface to pass to Driver.Start
func (h *Host) Screen() *Screen {
	return h.screen
}

// Poll forwards cursor movement to pointer listeners
func (h *Host) Poll() {
	x, y := ebiten.CursorPosition()
	if h.cursorKnown && x == h.cursorX && y == h.cursorY {
		return
	}
	h.cursorX, h.cursorY, h.cursorKnown = x, y, true
	h.PointerMoved(float64(x), float64(y))
}

// Layout keeps the logical screen equal to the window and reports size changes
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != h.width || outsideHeight != h.height) {
		h.width, h.height = outsideWidth, outsideHeight
		h.screen.Resize(outsideWidth, outsideHeight)
		h.Resized(outsideWidth, outsideHeight)
	}
	return h.width, h.height
}

// Draw runs pending frame requests against dst. With nothing pending the backdrop is painted.
func (h *Host) Draw(dst *ebiten.Image) {
	h.screen.Bind(dst)
	defer h.screen.Bind(nil)
	if h.Flush() == 0 {
		h.screen.Clear()
	}
}

// Size returns the current logical screen size
func (h *Host) Size() (int, int) {
	return h.width, h.height
}
