package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrNoData = errors.New("chart: nothing to plot")

// splineSteps is the number of sub-segments per category interval on curved charts
const splineSteps = 12

// Render draws data as a PNG of the given size
func Render(w io.Writer, data Data, cfg Config, width, height int) error {
	if data.Empty() {
		return ErrNoData
	}
	switch cfg.Type {
	case Pie:
		return renderPie(w, data, cfg, width, height)
	case Column:
		return renderColumns(w, data, cfg, width, height)
	default:
		return renderContinuous(w, data, cfg, width, height)
	}
}

// RenderImage renders and decodes the PNG for display
func RenderImage(data Data, cfg Config, width, height int) (image.Image, error) {
	var buf bytes.Buffer
	if err := Render(&buf, data, cfg, width, height); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	return img, nil
}

func titleStyle() gochart.Style {
	return gochart.Style{FontColor: textColor, FontSize: 20}
}

func frameStyle() gochart.Style {
	return gochart.Style{FillColor: drawing.ColorTransparent}
}

func axisStyle() gochart.Style {
	return gochart.Style{StrokeColor: axisColor, FontColor: mutedColor, StrokeWidth: 1}
}

// categoryAxis places one labelled tick per category at x = 0, 1, 2, ...
func categoryAxis(categories []string) gochart.XAxis {
	ticks := make([]gochart.Tick, len(categories))
	for i, c := range categories {
		ticks[i] = gochart.Tick{Value: float64(i), Label: c}
	}
	last := float64(len(categories) - 1)
	if last < 1 {
		last = 1
	}
	return gochart.XAxis{
		Style: axisStyle(),
		Ticks: ticks,
		Range: &gochart.ContinuousRange{Min: 0, Max: last},
	}
}

// valueRange spans every value, widened when flat so the axis never collapses
func valueRange(series []Series, includeZero bool) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	if includeZero {
		lo, hi = 0, 0
	}
	for _, s := range series {
		for _, v := range s.Values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 1
	}
	if hi-lo < 1e-9 {
		return lo - 1, hi + 1
	}
	return lo, hi
}

func valueAxis(lo, hi float64) gochart.YAxis {
	return gochart.YAxis{
		Name:           "Values",
		NameStyle:      gochart.Style{FontColor: mutedColor},
		Style:          axisStyle(),
		GridMajorStyle: gochart.Style{StrokeColor: gridColor, StrokeWidth: 1},
		Range:          &gochart.ContinuousRange{Min: lo, Max: hi},
	}
}

func renderContinuous(w io.Writer, data Data, cfg Config, width, height int) error {
	curved := cfg.Type == Spline || cfg.Type == AreaSpline
	filled := cfg.Type == Area || cfg.Type == AreaSpline

	var series []gochart.Series
	for i, s := range data.Series {
		col := seriesColor(i, len(data.Series))
		style := gochart.Style{StrokeColor: col, StrokeWidth: 2, DotColor: col, DotWidth: 3}
		if filled {
			style.FillColor = col.WithAlpha(64)
		}
		if cfg.Type == Scatter {
			style = gochart.Style{StrokeColor: drawing.ColorTransparent, DotColor: col, DotWidth: 4}
		}

		steps := 1
		if curved {
			steps = splineSteps
		}
		xs, ys := Densify(s.Values, steps)
		// go-chart needs an x range; a lone category gets a flat segment to x = 1
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   style,
		})
	}

	lo, hi := valueRange(data.Series, filled)
	ch := gochart.Chart{
		Title:      cfg.Title,
		TitleStyle: titleStyle(),
		Width:      width,
		Height:     height,
		Background: gochart.Style{FillColor: drawing.ColorTransparent, Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Canvas:     frameStyle(),
		XAxis:      categoryAxis(data.Categories),
		YAxis:      valueAxis(lo, hi),
		Series:     series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render %s chart: %w", cfg.Type, err)
	}
	return nil
}

// renderColumns draws grouped columns: one bar per series inside each category,
// with the category label on the first bar of its group
func renderColumns(w io.Writer, data Data, cfg Config, width, height int) error {
	k := len(data.Series)
	var bars []gochart.Value
	for c, cat := range data.Categories {
		for i, s := range data.Series {
			label := ""
			if i == 0 {
				label = cat
			}
			col := seriesColor(i, k)
			bars = append(bars, gochart.Value{
				Label: label,
				Value: s.Values[c],
				Style: gochart.Style{FillColor: col, StrokeColor: col},
			})
		}
	}

	const spacing = 4
	barWidth := (width-120)/len(bars) - spacing
	if barWidth < 2 {
		barWidth = 2
	}

	lo, hi := valueRange(data.Series, true)
	bc := gochart.BarChart{
		Title:      cfg.Title,
		TitleStyle: titleStyle(),
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: gochart.Style{FillColor: drawing.ColorTransparent, Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Canvas:     frameStyle(),
		XAxis:      axisStyle(),
		YAxis:      valueAxis(lo, hi),
		Bars:       bars,
	}
	if err := bc.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render column chart: %w", err)
	}
	return nil
}

// renderPie plots the first series only, one slice per category
func renderPie(w io.Writer, data Data, cfg Config, width, height int) error {
	first := data.Series[0]
	var values []gochart.Value
	total := 0.0
	for i, cat := range data.Categories {
		v := math.Max(first.Values[i], 0)
		total += v
		values = append(values, gochart.Value{
			Label: cat,
			Value: v,
			Style: gochart.Style{FillColor: seriesColor(i, len(data.Categories)), FontColor: textColor},
		})
	}
	if total == 0 {
		return fmt.Errorf("pie of %s: %w", first.Name, ErrNoData)
	}

	pc := gochart.PieChart{
		Title:      cfg.Title,
		TitleStyle: titleStyle(),
		Width:      width,
		Height:     height,
		Background: frameStyle(),
		Canvas:     frameStyle(),
		Values:     values,
	}
	if err := pc.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}
	return nil
}
