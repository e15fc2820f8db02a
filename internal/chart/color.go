package chart

import (
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Theme colours for a dark backdrop
var (
	textColor  = drawing.Color{R: 255, G: 255, B: 255, A: 255}
	mutedColor = drawing.Color{R: 255, G: 255, B: 255, A: 178}
	axisColor  = drawing.Color{R: 255, G: 255, B: 255, A: 51}
	gridColor  = drawing.Color{R: 255, G: 255, B: 255, A: 26}
)

// hueOffset starts the palette at the background's purple
const hueOffset = 236.0

// Series colours share saturation and value so no series dominates
const (
	seriesSaturation = 0.6
	seriesValue      = 1.0
)

// seriesColor spreads n series evenly around the hue wheel
func seriesColor(i, n int) drawing.Color {
	if n < 1 {
		n = 1
	}
	return hueColor(hueOffset+float64(i)/float64(n)*360, seriesSaturation, seriesValue)
}

var sectorChannels = [6][3]int{{0, 1, 2}, {1, 0, 2}, {1, 2, 0}, {2, 1, 0}, {2, 0, 1}, {0, 2, 1}}

// hueColor converts hue (degrees, any range), saturation and value to an opaque colour
func hueColor(hue, sat, val float64) drawing.Color {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	chroma := val * sat
	sector := hue / 60
	mid := chroma * (1 - math.Abs(math.Mod(sector, 2)-1))
	base := val - chroma

	// Which channel (0 r, 1 g, 2 b) takes the max, mid and min in each 60 degree sector
	order := sectorChannels[int(sector)%6]
	var rgb [3]float64
	rgb[order[0]] = chroma + base
	rgb[order[1]] = mid + base
	rgb[order[2]] = base

	to8 := func(f float64) uint8 { return uint8(math.Round(f * 255)) }
	return drawing.Color{R: to8(rgb[0]), G: to8(rgb[1]), B: to8(rgb[2]), A: 255}
}
