// Package chart turns a dataset into plot series and renders them with go-chart.
package chart

import (
	"github.com/olivierh59500/glowboard/internal/dataset"
)

// Type is a chart style
type Type string

const (
	Spline     Type = "spline"
	Line       Type = "line"
	Column     Type = "column"
	Area       Type = "area"
	Scatter    Type = "scatter"
	AreaSpline Type = "areaspline"
	Pie        Type = "pie"
)

// Types lists every style in menu order
var Types = []Type{Spline, Line, Column, Area, Scatter, AreaSpline, Pie}

// Label is the human name of the style
func (t Type) Label() string {
	switch t {
	case Spline:
		return "Spline (Curved)"
	case Line:
		return "Line"
	case Column:
		return "Column / Bar"
	case Area:
		return "Area"
	case Scatter:
		return "Scatter"
	case AreaSpline:
		return "Area Spline"
	case Pie:
		return "Pie (First Series)"
	}
	return string(t)
}

// Valid reports whether t is a known style
func (t Type) Valid() bool {
	for _, k := range Types {
		if k == t {
			return true
		}
	}
	return false
}

// Next cycles to the following style
func (t Type) Next() Type {
	for i, k := range Types {
		if k == t {
			return Types[(i+1)%len(Types)]
		}
	}
	return Types[0]
}

// Config is what the user picks in the configuration panel
type Config struct {
	Title    string
	Type     Type
	XColumn  string
	YColumns []string
	Animate  bool
}

// DefaultConfig charts every column after the first against the first
func DefaultConfig(d *dataset.Dataset) Config {
	cfg := Config{
		Title:   d.Name + " Analysis",
		Type:    Spline,
		Animate: true,
	}
	if len(d.Headers) > 0 {
		cfg.XColumn = d.Headers[0]
		cfg.YColumns = append([]string(nil), d.Headers[1:]...)
	}
	return cfg
}

// ToggleY adds col to the plotted series, or removes it if already plotted
func (c *Config) ToggleY(col string) {
	for i, y := range c.YColumns {
		if y == col {
			c.YColumns = append(c.YColumns[:i:i], c.YColumns[i+1:]...)
			return
		}
	}
	c.YColumns = append(c.YColumns, col)
}

// HasY reports whether col is plotted
func (c Config) HasY(col string) bool {
	for _, y := range c.YColumns {
		if y == col {
			return true
		}
	}
	return false
}

// NextX moves the x axis to the next header, wrapping around
func (c *Config) NextX(d *dataset.Dataset) {
	if len(d.Headers) == 0 {
		return
	}
	i := d.Column(c.XColumn)
	c.XColumn = d.Headers[(i+1)%len(d.Headers)]
}
