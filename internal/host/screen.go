// Package host runs the background driver inside an ebiten window: the window
// image is the drawing surface, Draw flushes frame requests and Update feeds input.
package host

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/glowboard/internal/background"
)

// glowTextureSize is the edge of the cached gradient textures; glows are scaled from it
const glowTextureSize = 128

// blendScreen is 1-(1-src)(1-dst) on premultiplied colour: src + dst*(1-src)
var blendScreen = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

func blendFor(mode background.BlendMode) ebiten.Blend {
	switch mode {
	case background.BlendScreen:
		return blendScreen
	case background.BlendLighter:
		return ebiten.BlendLighter
	default:
		return ebiten.BlendSourceOver
	}
}

// Screen is a background.Surface over the ebiten image bound for the current Draw
type Screen struct {
	dst           *ebiten.Image
	width, height int
	backdrop      color.Color
	glows         map[string]*ebiten.Image
	white         *ebiten.Image // 1x1 white source for triangles
	vertices      []ebiten.Vertex
	indices       []uint16
}

// NewScreen creates a surface of the given logical size
func NewScreen(width, height int, backdrop color.Color) *Screen {
	return &Screen{
		width:    width,
		height:   height,
		backdrop: backdrop,
		glows:    make(map[string]*ebiten.Image),
	}
}

// Bind sets the image the next drawing calls go to; nil unbinds
func (s *Screen) Bind(dst *ebiten.Image) {
	s.dst = dst
}

func (s *Screen) Size() (int, int) {
	return s.width, s.height
}

func (s *Screen) Resize(width, height int) {
	s.width, s.height = width, height
}

func (s *Screen) Clear() {
	if s.dst == nil {
		return
	}
	if s.backdrop == nil {
		s.dst.Clear()
		return
	}
	s.dst.Fill(s.backdrop)
}

func (s *Screen) FillRadial(cx, cy, radius float64, stops []background.GradientStop, mode background.BlendMode) {
	if s.dst == nil || radius <= 0 {
		return
	}
	tex := s.glow(stops)
	scale := 2 * radius / glowTextureSize

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-radius, cy-radius)
	op.Filter = ebiten.FilterLinear
	op.Blend = blendFor(mode)
	s.dst.DrawImage(tex, op)
}

func (s *Screen) StrokeLine(x0, y0, x1, y1 float64, c color.Color, width float64, mode background.BlendMode) {
	if s.dst == nil {
		return
	}
	var path vector.Path
	path.MoveTo(float32(x0), float32(y0))
	path.LineTo(float32(x1), float32(y1))

	s.vertices, s.indices = path.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], &vector.StrokeOptions{
		Width: float32(width),
	})

	// Vertex colours are straight alpha under the default ColorScaleMode
	nc := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	for i := range s.vertices {
		v := &s.vertices[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR = float32(nc.R) / 0xffff
		v.ColorG = float32(nc.G) / 0xffff
		v.ColorB = float32(nc.B) / 0xffff
		v.ColorA = float32(nc.A) / 0xffff
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	op.Blend = blendFor(mode)
	s.dst.DrawTriangles(s.vertices, s.indices, s.whiteImage(), op)
}

func (s *Screen) whiteImage() *ebiten.Image {
	if s.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		s.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return s.white
}

// glow returns the cached texture for a gradient, building it on first use
func (s *Screen) glow(stops []background.GradientStop) *ebiten.Image {
	key := fmt.Sprint(stops)
	if tex, ok := s.glows[key]; ok {
		return tex
	}

	img := image.NewNRGBA(image.Rect(0, 0, glowTextureSize, glowTextureSize))
	half := float64(glowTextureSize) / 2
	for y := 0; y < glowTextureSize; y++ {
		for x := 0; x < glowTextureSize; x++ {
			d := math.Hypot(float64(x)+0.5-half, float64(y)+0.5-half) / half
			if d > 1 {
				continue
			}
			img.SetNRGBA(x, y, background.ColorAt(stops, d))
		}
	}
	tex := ebiten.NewImageFromImage(img)
	s.glows[key] = tex
	return tex
}
