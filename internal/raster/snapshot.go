package raster

import (
	"fmt"
	"image/color"

	"github.com/olivierh59500/glowboard/internal/background"
)

// SnapshotOptions describes one headless render
type SnapshotOptions struct {
	Width, Height int
	Frames        int
	PointerX      float64
	PointerY      float64
	Backdrop      color.Color
	Background    background.Options
}

// Snapshot runs the background for a fixed number of frames on a software canvas
// and returns the canvas holding the last frame
func Snapshot(opts SnapshotOptions) (*Canvas, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("snapshot size %dx%d: must be positive", opts.Width, opts.Height)
	}
	if opts.Frames < 1 {
		opts.Frames = 1
	}

	canvas, err := New(opts.Width, opts.Height)
	if err != nil {
		return nil, fmt.Errorf("allocate canvas: %w", err)
	}
	canvas.SetBackdrop(opts.Backdrop)

	queue := background.NewFrameQueue()
	events := background.NewDispatcher()
	pointer := background.NewPointer(opts.PointerX, opts.PointerY)

	driver := background.NewDriver(opts.Background, queue, events, pointer)
	if err := driver.Start(canvas); err != nil {
		return nil, fmt.Errorf("start background: %w", err)
	}
	defer driver.Stop()

	queue.Run(opts.Frames)
	return canvas, nil
}
