// Package config loads the dashboard settings: a JSON file merged over built-in defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/olivierh59500/glowboard/internal/background"
	"github.com/olivierh59500/glowboard/internal/chart"
	"github.com/olivierh59500/glowboard/internal/particles"
)

var ErrInvalid = errors.New("config: invalid value")

type Window struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
	TPS    int    `json:"tps"`
}

// Background tunes the particle layer. Colours are "#rrggbb" or "#rrggbbaa".
type Background struct {
	Particles       int      `json:"particles"`
	MaxSpeed        float64  `json:"max_speed"`
	MinSize         float64  `json:"min_size"`
	SizeRange       float64  `json:"size_range"`
	AttractRadius   float64  `json:"attract_radius"`
	AttractStrength float64  `json:"attract_strength"`
	GrowthRate      float64  `json:"growth_rate"`
	GlowScale       float64  `json:"glow_scale"`
	LinkDistance    float64  `json:"link_distance"`
	LinkOpacity     float64  `json:"link_opacity"`
	LinkWidth       float64  `json:"link_width"`
	Palette         []string `json:"palette"`
	Backdrop        string   `json:"backdrop"`
	Seed            int64    `json:"seed,omitempty"`
}

type Chart struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Type    string `json:"type"`
	Animate bool   `json:"animate"`
}

// Config is the whole settings file
type Config struct {
	Window     Window     `json:"window"`
	Background Background `json:"background"`
	Chart      Chart      `json:"chart"`
	Dataset    string     `json:"dataset"` // Name of the built-in table shown first
	ExportDir  string     `json:"export_dir"`
	LogDir     string     `json:"log_dir"`
}

// Default returns the stock settings
func Default() Config {
	palette := make([]string, len(particles.DefaultPalette))
	for i, c := range particles.DefaultPalette {
		palette[i] = formatHexColor(c)
	}
	return Config{
		Window: Window{Width: 1280, Height: 800, Title: "Glowboard", TPS: 60},
		Background: Background{
			Particles:       particles.DefaultCount,
			MaxSpeed:        particles.DefaultMaxSpeed,
			MinSize:         particles.DefaultMinSize,
			SizeRange:       particles.DefaultSizeRange,
			AttractRadius:   particles.DefaultAttractRadius,
			AttractStrength: particles.DefaultAttractStrength,
			GrowthRate:      particles.DefaultGrowthRate,
			GlowScale:       4,
			LinkDistance:    particles.DefaultLinkDistance,
			LinkOpacity:     particles.DefaultLinkOpacity,
			LinkWidth:       0.5,
			Palette:         palette,
			Backdrop:        "#0f172a",
		},
		Chart:     Chart{Width: 900, Height: 480, Type: string(chart.Spline), Animate: true},
		Dataset:   "Traffic Data",
		ExportDir: "exports",
		LogDir:    "logs",
	}
}

// Load reads a JSON file over the defaults; keys absent from the file keep their default
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the settings as indented JSON
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func invalid(field string, v any) error {
	return fmt.Errorf("%s = %v: %w", field, v, ErrInvalid)
}

// Validate rejects settings the program cannot run with
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return invalid("window size", fmt.Sprintf("%dx%d", c.Window.Width, c.Window.Height))
	case c.Window.TPS <= 0:
		return invalid("window.tps", c.Window.TPS)
	case c.Background.Particles < 0:
		return invalid("background.particles", c.Background.Particles)
	case c.Background.MaxSpeed < 0:
		return invalid("background.max_speed", c.Background.MaxSpeed)
	case c.Background.MinSize <= 0 || c.Background.SizeRange < 0:
		return invalid("background.min_size", c.Background.MinSize)
	case c.Background.AttractRadius <= 0:
		return invalid("background.attract_radius", c.Background.AttractRadius)
	case c.Background.LinkDistance <= 0:
		return invalid("background.link_distance", c.Background.LinkDistance)
	case c.Background.LinkOpacity < 0 || c.Background.LinkOpacity > 1:
		return invalid("background.link_opacity", c.Background.LinkOpacity)
	case c.Background.GlowScale <= 0:
		return invalid("background.glow_scale", c.Background.GlowScale)
	case len(c.Background.Palette) == 0:
		return invalid("background.palette", "[]")
	case c.Chart.Width <= 0 || c.Chart.Height <= 0:
		return invalid("chart size", fmt.Sprintf("%dx%d", c.Chart.Width, c.Chart.Height))
	case !chart.Type(c.Chart.Type).Valid():
		return invalid("chart.type", c.Chart.Type)
	}
	for i, p := range c.Background.Palette {
		if _, err := ParseHexColor(p); err != nil {
			return fmt.Errorf("background.palette[%d]: %w", i, err)
		}
	}
	if _, err := ParseHexColor(c.Background.Backdrop); err != nil {
		return fmt.Errorf("background.backdrop: %w", err)
	}
	return nil
}

// ParseHexColor reads "#rrggbb" (opaque) or "#rrggbbaa"
func ParseHexColor(hex string) (color.NRGBA, error) {
	var r, g, b, a uint8
	a = 255
	var n int
	var err error
	switch len(hex) {
	case 7:
		n, err = fmt.Sscanf(strings.ToLower(hex), "#%02x%02x%02x", &r, &g, &b)
		if err == nil && n == 3 {
			return color.NRGBA{R: r, G: g, B: b, A: a}, nil
		}
	case 9:
		n, err = fmt.Sscanf(strings.ToLower(hex), "#%02x%02x%02x%02x", &r, &g, &b, &a)
		if err == nil && n == 4 {
			return color.NRGBA{R: r, G: g, B: b, A: a}, nil
		}
	}
	return color.NRGBA{}, invalid("colour", fmt.Sprintf("%q", hex))
}

func formatHexColor(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// BackdropColor is the parsed backdrop, falling back to black
func (c Config) BackdropColor() color.NRGBA {
	bg, err := ParseHexColor(c.Background.Backdrop)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	return bg
}

// BackgroundOptions converts the settings for the particle driver.
// Call Validate first; unparsable palette entries are skipped.
func (c Config) BackgroundOptions() background.Options {
	opts := background.DefaultOptions()
	b := c.Background
	opts.Params.Count = b.Particles
	opts.Params.MaxSpeed = b.MaxSpeed
	opts.Params.MinSize = b.MinSize
	opts.Params.SizeRange = b.SizeRange
	opts.Params.AttractRadius = b.AttractRadius
	opts.Params.AttractStrength = b.AttractStrength
	opts.Params.GrowthRate = b.GrowthRate
	opts.Params.LinkDistance = b.LinkDistance
	opts.Params.LinkOpacity = b.LinkOpacity
	opts.GlowScale = b.GlowScale
	opts.LinkWidth = b.LinkWidth
	opts.Seed = b.Seed

	var palette []color.NRGBA
	for _, p := range b.Palette {
		if col, err := ParseHexColor(p); err == nil {
			palette = append(palette, col)
		}
	}
	if len(palette) > 0 {
		opts.Params.Palette = palette
	}
	return opts
}
