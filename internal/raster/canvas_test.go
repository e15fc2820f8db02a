package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"testing"

	"github.com/olivierh59500/glowboard/internal/background"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newCanvas(t *testing.T, w, h int) *Canvas {
	t.Helper()
	c, err := New(w, h)
	if err != nil {
		t.Fatalf("New(%d, %d) error = %v", w, h, err)
	}
	return c
}

func TestCanvasSizeAndResize(t *testing.T) {
	c := newCanvas(t, 64, 32)
	if w, h := c.Size(); w != 64 || h != 32 {
		t.Fatalf("Size() = %dx%d, want 64x32", w, h)
	}
	c.Resize(10, 20)
	if w, h := c.Size(); w != 10 || h != 20 {
		t.Fatalf("Size() after Resize = %dx%d, want 10x20", w, h)
	}
}

func TestClearUsesBackdrop(t *testing.T) {
	c := newCanvas(t, 4, 4)
	c.SetBackdrop(color.RGBA{R: 10, G: 20, B: 30, A: 255})
	c.Clear()
	if got := c.Image().RGBAAt(2, 2); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("pixel after Clear = %v", got)
	}

	c.SetBackdrop(nil)
	c.Clear()
	if got := c.Image().RGBAAt(2, 2); got != (color.RGBA{}) {
		t.Errorf("pixel after transparent Clear = %v", got)
	}
}

func TestFillRadialFadesOut(t *testing.T) {
	c := newCanvas(t, 41, 41)
	stops := background.GlowStops(color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	c.FillRadial(20.5, 20.5, 10, stops, background.BlendSourceOver)

	centre := c.Image().RGBAAt(20, 20)
	mid := c.Image().RGBAAt(25, 20)
	outside := c.Image().RGBAAt(35, 20)

	if centre.R < 240 || centre.A < 240 {
		t.Errorf("centre pixel = %v, want near opaque red", centre)
	}
	if mid.A == 0 || mid.A >= centre.A {
		t.Errorf("mid pixel alpha %d should be between 0 and centre %d", mid.A, centre.A)
	}
	if outside != (color.RGBA{}) {
		t.Errorf("pixel outside radius = %v, want untouched", outside)
	}
}

func TestBlendModes(t *testing.T) {
	src := color.RGBA{R: 100, G: 100, B: 100, A: 100}
	tests := []struct {
		mode background.BlendMode
		want uint8
	}{
		{background.BlendLighter, 200},
		{background.BlendScreen, 100 + 100 - 100*100/255},
		{background.BlendSourceOver, 100 + 100*155/255},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			c := newCanvas(t, 1, 1)
			c.img.SetRGBA(0, 0, src)
			c.blend(0, 0, src, tt.mode)
			if got := c.img.RGBAAt(0, 0).R; got != tt.want {
				t.Errorf("R = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLighterSaturates(t *testing.T) {
	c := newCanvas(t, 1, 1)
	full := color.RGBA{R: 200, G: 200, B: 200, A: 200}
	c.blend(0, 0, full, background.BlendLighter)
	c.blend(0, 0, full, background.BlendLighter)
	if got := c.img.RGBAAt(0, 0); got.R != 255 || got.A != 255 {
		t.Errorf("pixel = %v, want saturated", got)
	}
}

func TestStrokeLineMarksPixels(t *testing.T) {
	c := newCanvas(t, 50, 50)
	c.StrokeLine(5, 25, 45, 25, color.RGBA{R: 255, G: 255, B: 255, A: 255}, 2, background.BlendLighter)

	if got := c.Image().RGBAAt(25, 25); got.A == 0 {
		t.Errorf("pixel on the line is empty: %v", got)
	}
	if got := c.Image().RGBAAt(25, 5); got.A != 0 {
		t.Errorf("pixel far from the line is %v", got)
	}
}

func TestStrokeLineOffCanvas(t *testing.T) {
	c := newCanvas(t, 10, 10)
	c.StrokeLine(-100, -100, -50, -50, color.White, 1, background.BlendLighter)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c.Image().RGBAAt(x, y).A != 0 {
				t.Fatalf("off-canvas line touched (%d,%d)", x, y)
			}
		}
	}
}

func TestSnapshot(t *testing.T) {
	opts := background.DefaultOptions()
	opts.Seed = 3
	canvas, err := Snapshot(SnapshotOptions{
		Width:      200,
		Height:     120,
		Frames:     30,
		PointerX:   100,
		PointerY:   60,
		Backdrop:   color.Black,
		Background: opts,
	})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if w, h := canvas.Size(); w != 200 || h != 120 {
		t.Fatalf("snapshot size %dx%d", w, h)
	}

	lit := 0
	img := canvas.Image()
	for y := 0; y < 120; y++ {
		for x := 0; x < 200; x++ {
			if p := img.RGBAAt(x, y); p.R|p.G|p.B != 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("snapshot has no lit pixels")
	}

	var buf bytes.Buffer
	if err := canvas.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if decoded.Bounds().Dx() != 200 {
		t.Errorf("decoded width = %d", decoded.Bounds().Dx())
	}
}

func TestSnapshotRejectsEmptySize(t *testing.T) {
	if _, err := Snapshot(SnapshotOptions{Width: 0, Height: 10, Background: background.DefaultOptions()}); err == nil {
		t.Error("Snapshot with zero width succeeded")
	}
}
