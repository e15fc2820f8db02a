// Package raster is a software background.Surface over an image.RGBA, used for
// headless snapshots and tests.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/olivierh59500/glowboard/internal/background"
)

// Canvas draws into memory. Glows are shaded per pixel; lines are stroked with
// the go-chart rasterizer onto a scratch layer and then blended in.
type Canvas struct {
	img      *image.RGBA
	scratch  *image.RGBA
	gc       *drawing.RasterGraphicContext
	backdrop color.Color
}

// New allocates a transparent canvas
func New(width, height int) (*Canvas, error) {
	c := &Canvas{}
	if err := c.alloc(width, height); err != nil {
		return nil, err
	}
	return c, nil
}

// SetBackdrop sets the colour Clear fills with; nil clears to transparent
func (c *Canvas) SetBackdrop(col color.Color) {
	c.backdrop = col
}

func (c *Canvas) alloc(width, height int) error {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.scratch = image.NewRGBA(image.Rect(0, 0, width, height))
	gc, err := drawing.NewRasterGraphicContext(c.scratch)
	if err != nil {
		return err
	}
	c.gc = gc
	return nil
}

// Image returns the backing image
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// WritePNG encodes the current frame
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// Size returns the pixel dimensions
func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates both layers; content is dropped
func (c *Canvas) Resize(width, height int) {
	// alloc only fails for non-RGBA images, which never happens here
	_ = c.alloc(width, height)
}

// Clear fills the canvas with the backdrop
func (c *Canvas) Clear() {
	src := image.Image(image.Transparent)
	if c.backdrop != nil {
		src = image.NewUniform(c.backdrop)
	}
	draw.Draw(c.img, c.img.Bounds(), src, image.Point{}, draw.Src)
}

// FillRadial shades a gradient disc pixel by pixel
func (c *Canvas) FillRadial(cx, cy, radius float64, stops []background.GradientStop, mode background.BlendMode) {
	if radius <= 0 {
		return
	}
	area := image.Rect(
		int(math.Floor(cx-radius)), int(math.Floor(cy-radius)),
		int(math.Ceil(cx+radius))+1, int(math.Ceil(cy+radius))+1,
	).Intersect(c.img.Bounds())

	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d > radius {
				continue
			}
			src := premultiply(background.ColorAt(stops, d/radius))
			c.blend(x, y, src, mode)
		}
	}
}

// StrokeLine rasterizes the segment onto the scratch layer and blends its footprint
func (c *Canvas) StrokeLine(x0, y0, x1, y1 float64, col color.Color, width float64, mode background.BlendMode) {
	pad := width + 2
	area := image.Rect(
		int(math.Floor(math.Min(x0, x1)-pad)), int(math.Floor(math.Min(y0, y1)-pad)),
		int(math.Ceil(math.Max(x0, x1)+pad)), int(math.Ceil(math.Max(y0, y1)+pad)),
	).Intersect(c.scratch.Bounds())
	if area.Empty() {
		return
	}
	draw.Draw(c.scratch, area, image.Transparent, image.Point{}, draw.Src)

	c.gc.BeginPath()
	c.gc.SetStrokeColor(col)
	c.gc.SetLineWidth(width)
	c.gc.MoveTo(x0, y0)
	c.gc.LineTo(x1, y1)
	c.gc.Stroke()

	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			src := c.scratch.RGBAAt(x, y)
			if src.A == 0 {
				continue
			}
			c.blend(x, y, src, mode)
		}
	}
}

// blend composites a premultiplied source pixel
func (c *Canvas) blend(x, y int, src color.RGBA, mode background.BlendMode) {
	dst := c.img.RGBAAt(x, y)
	var out color.RGBA
	switch mode {
	case background.BlendLighter:
		out = color.RGBA{
			R: addClamp(src.R, dst.R),
			G: addClamp(src.G, dst.G),
			B: addClamp(src.B, dst.B),
			A: addClamp(src.A, dst.A),
		}
	case background.BlendScreen:
		out = color.RGBA{
			R: screen(src.R, dst.R),
			G: screen(src.G, dst.G),
			B: screen(src.B, dst.B),
			A: screen(src.A, dst.A),
		}
	default:
		inv := 255 - uint32(src.A)
		out = color.RGBA{
			R: uint8(uint32(src.R) + uint32(dst.R)*inv/255),
			G: uint8(uint32(src.G) + uint32(dst.G)*inv/255),
			B: uint8(uint32(src.B) + uint32(dst.B)*inv/255),
			A: uint8(uint32(src.A) + uint32(dst.A)*inv/255),
		}
	}
	c.img.SetRGBA(x, y, out)
}

func premultiply(c color.NRGBA) color.RGBA {
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) * a / 255),
		G: uint8(uint32(c.G) * a / 255),
		B: uint8(uint32(c.B) * a / 255),
		A: c.A,
	}
}

func addClamp(a, b uint8) uint8 {
	s := uint32(a) + uint32(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

// screen is s + d - s*d on premultiplied channels
func screen(s, d uint8) uint8 {
	return uint8(uint32(s) + uint32(d) - uint32(s)*uint32(d)/255)
}
