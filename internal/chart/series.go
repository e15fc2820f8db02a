package chart

import (
	"math"

	"github.com/olivierh59500/glowboard/internal/dataset"
)

// Series is one named run of values, one per category
type Series struct {
	Name   string
	Values []float64
}

// Data is the plot-ready shape of a dataset
type Data struct {
	Categories []string
	Series     []Series
}

// Empty reports whether there is nothing to plot
func (d Data) Empty() bool {
	return len(d.Categories) == 0 || len(d.Series) == 0
}

// Build selects the x column as categories and each y column as a numeric series.
// Unknown y columns are skipped; an unknown x column yields empty data.
// Non-finite values plot as 0.
func Build(d *dataset.Dataset, cfg Config) Data {
	x := d.Column(cfg.XColumn)
	if x == -1 {
		return Data{}
	}

	out := Data{Categories: make([]string, len(d.Rows))}
	for i := range d.Rows {
		out.Categories[i] = d.Cell(i, x).String()
	}

	for _, name := range cfg.YColumns {
		col := d.Column(name)
		if col == -1 {
			continue
		}
		s := Series{Name: name, Values: make([]float64, len(d.Rows))}
		for i := range d.Rows {
			v := d.Cell(i, col).Float()
			if math.IsInf(v, 0) || math.IsNaN(v) {
				v = 0
			}
			s.Values[i] = v
		}
		out.Series = append(out.Series, s)
	}
	return out
}
