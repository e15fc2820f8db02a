// Package particles holds the decorative background simulation: a fixed set of
// drifting points that bounce off the surface edges and are pulled toward the pointer.
package particles

import (
	"image/color"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Simulation constants
const (
	DefaultCount           = 40
	DefaultMaxSpeed        = 0.75
	DefaultMinSize         = 1.0
	DefaultSizeRange       = 4.0
	DefaultAttractRadius   = 300.0
	DefaultAttractStrength = 0.05
	DefaultGrowthRate      = 0.05
	DefaultLinkDistance    = 150.0
	DefaultLinkOpacity     = 0.1

	// GridThreshold is the store size above which the link pass switches to spatial bins
	GridThreshold = 256
)

// DefaultPalette is the glow palette, every colour at half opacity
var DefaultPalette = []color.NRGBA{
	{R: 100, G: 108, B: 255, A: 128},
	{R: 56, G: 189, B: 248, A: 128},
	{R: 232, G: 121, B: 249, A: 128},
	{R: 167, G: 139, B: 250, A: 128},
}

// Particle is a single simulated point
type Particle struct {
	Pos      r2.Vec      // Position
	Vel      r2.Vec      // Velocity, units per tick
	BaseSize float64     // Radius before pointer growth
	Color    color.NRGBA // Palette entry
}

// Params tunes seeding, integration and linking
type Params struct {
	Count           int
	MaxSpeed        float64 // Per-axis bound of the initial velocity
	MinSize         float64
	SizeRange       float64
	AttractRadius   float64 // Pointer influence cutoff
	AttractStrength float64 // Fraction of the pointer offset applied per tick at full force
	GrowthRate      float64 // Radius growth per unit of distance inside the cutoff
	LinkDistance    float64
	LinkOpacity     float64 // Line alpha for coincident particles
	Palette         []color.NRGBA
}

// DefaultParams returns the stock background tuning
func DefaultParams() Params {
	palette := make([]color.NRGBA, len(DefaultPalette))
	copy(palette, DefaultPalette)
	return Params{
		Count:           DefaultCount,
		MaxSpeed:        DefaultMaxSpeed,
		MinSize:         DefaultMinSize,
		SizeRange:       DefaultSizeRange,
		AttractRadius:   DefaultAttractRadius,
		AttractStrength: DefaultAttractStrength,
		GrowthRate:      DefaultGrowthRate,
		LinkDistance:    DefaultLinkDistance,
		LinkOpacity:     DefaultLinkOpacity,
		Palette:         palette,
	}
}

// spawn draws a fresh particle inside [0,width) x [0,height)
func (p Params) spawn(rng *rand.Rand, width, height float64) *Particle {
	palette := p.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return &Particle{
		Pos: r2.Vec{
			X: rng.Float64() * width,
			Y: rng.Float64() * height,
		},
		Vel: r2.Vec{
			X: (rng.Float64()*2 - 1) * p.MaxSpeed,
			Y: (rng.Float64()*2 - 1) * p.MaxSpeed,
		},
		BaseSize: p.MinSize + rng.Float64()*p.SizeRange,
		Color:    palette[rng.Intn(len(palette))],
	}
}
