// Package background drives the particle simulation against a host-provided
// drawing surface, frame scheduler and input events.
package background

import (
	"image/color"
)

// BlendMode selects how a primitive is composited onto what is already drawn
type BlendMode uint8

const (
	BlendSourceOver BlendMode = iota // Regular alpha compositing
	BlendScreen                      // 1-(1-src)(1-dst), overlapping glows brighten
	BlendLighter                     // src+dst, crossing lines brighten
)

func (m BlendMode) String() string {
	switch m {
	case BlendScreen:
		return "screen"
	case BlendLighter:
		return "lighter"
	default:
		return "source-over"
	}
}

// GradientStop is one colour stop of a radial gradient; Offset runs 0 (centre) to 1 (rim)
type GradientStop struct {
	Offset float64
	Color  color.NRGBA
}

// Surface is a 2D raster the driver draws a frame onto
type Surface interface {
	Size() (width, height int)
	Resize(width, height int)
	Clear()
	FillRadial(cx, cy, radius float64, stops []GradientStop, mode BlendMode)
	StrokeLine(x0, y0, x1, y1 float64, c color.Color, width float64, mode BlendMode)
}

// FrameHandle identifies a pending frame request; zero is never issued
type FrameHandle uint64

// Scheduler runs a callback once before the next repaint
type Scheduler interface {
	RequestFrame(fn func()) FrameHandle
	CancelFrame(h FrameHandle)
}

// Events delivers pointer and resize notifications; the returned func detaches the listener
type Events interface {
	OnPointerMove(fn func(x, y float64)) (detach func())
	OnResize(fn func(width, height int)) (detach func())
}

// ColorAt interpolates the stops at offset t, clamping outside the first and last stop.
// Surfaces use it to shade gradients.
func ColorAt(stops []GradientStop, t float64) color.NRGBA {
	if len(stops) == 0 {
		return color.NRGBA{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		f := (t - a.Offset) / span
		return color.NRGBA{
			R: lerp8(a.Color.R, b.Color.R, f),
			G: lerp8(a.Color.G, b.Color.G, f),
			B: lerp8(a.Color.B, b.Color.B, f),
			A: lerp8(a.Color.A, b.Color.A, f),
		}
	}
	return stops[len(stops)-1].Color
}

func lerp8(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*f + 0.5)
}

// GlowStops fades c to fully transparent black at the rim
func GlowStops(c color.NRGBA) []GradientStop {
	return []GradientStop{
		{Offset: 0, Color: c},
		{Offset: 1, Color: color.NRGBA{}},
	}
}
