package dataset

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
)

// Perlin tuning for the generated signal table
const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = 3
	signalRows  = 24
)

func table(name string, headers []string, rows ...[]any) *Dataset {
	d := &Dataset{Name: name, Headers: headers}
	for _, r := range rows {
		row := make([]Cell, len(r))
		for i, v := range r {
			switch v := v.(type) {
			case string:
				row[i] = Text(v)
			case int:
				row[i] = Number(float64(v))
			case float64:
				row[i] = Number(v)
			}
		}
		d.Rows = append(d.Rows, row)
	}
	return d
}

// Traffic is monthly visits by channel
func Traffic() *Dataset {
	return table("Traffic Data",
		[]string{"Month", "Organic Search", "Direct Traffic", "Referral", "Social"},
		[]any{"Jan", 30, 20, 10, 5},
		[]any{"Feb", 40, 25, 12, 8},
		[]any{"Mar", 35, 30, 15, 12},
		[]any{"Apr", 50, 35, 20, 15},
		[]any{"May", 49, 40, 25, 20},
		[]any{"Jun", 60, 45, 30, 25},
		[]any{"Jul", 70, 50, 35, 28},
		[]any{"Aug", 91, 55, 40, 35},
		[]any{"Sep", 125, 65, 45, 40},
		[]any{"Oct", 110, 75, 50, 45},
		[]any{"Nov", 134, 85, 60, 50},
		[]any{"Dec", 150, 95, 70, 55},
	)
}

// Sales is quarterly revenue by product line
func Sales() *Dataset {
	return table("Quarterly Sales",
		[]string{"Quarter", "Product A", "Product B", "Product C", "Services"},
		[]any{"Q1 2024", 1200, 800, 400, 300},
		[]any{"Q2 2024", 1500, 950, 450, 400},
		[]any{"Q3 2024", 1100, 1050, 500, 450},
		[]any{"Q4 2024", 2000, 1300, 600, 550},
	)
}

// Users is a week of user growth
func Users() *Dataset {
	return table("User Growth",
		[]string{"Day", "New Users", "Active Users", "Churned"},
		[]any{"Mon", 50, 500, 5},
		[]any{"Tue", 120, 550, 8},
		[]any{"Wed", 140, 600, 4},
		[]any{"Thu", 130, 580, 6},
		[]any{"Fri", 200, 650, 10},
		[]any{"Sat", 250, 700, 12},
		[]any{"Sun", 300, 800, 15},
	)
}

// Empty is the starting point for a hand-entered table
func Empty() *Dataset {
	return table("New Dataset",
		[]string{"Category", "Series 1"},
		[]any{"A", 10},
		[]any{"B", 20},
	)
}

// Signal is a generated table of two smooth noise channels, stable for a given seed
func Signal(seed int64) *Dataset {
	noise := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, seed)
	d := &Dataset{
		Name:    "Signal Noise",
		Headers: []string{"Tick", "Channel A", "Channel B"},
	}
	for i := 0; i < signalRows; i++ {
		x := float64(i) / 6
		a := 50 + 40*noise.Noise2D(x, 0.5)
		b := 50 + 40*noise.Noise2D(x, 7.25)
		d.Rows = append(d.Rows, []Cell{
			Text(fmt.Sprintf("T%02d", i+1)),
			Number(math.Round(a*10) / 10),
			Number(math.Round(b*10) / 10),
		})
	}
	return d
}

// Builtins returns fresh copies of every built-in table in menu order
func Builtins(seed int64) []*Dataset {
	return []*Dataset{Traffic(), Sales(), Users(), Empty(), Signal(seed)}
}
