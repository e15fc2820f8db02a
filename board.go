package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/olivierh59500/glowboard/internal/chart"
	"github.com/olivierh59500/glowboard/internal/dataset"
)

// User-facing messages
const (
	msgNotCSV   = "Please drop a valid .csv file."
	msgBadCSV   = "Failed to parse CSV. Make sure it has headers."
	msgNoExport = "Export failed, see the log for details."
)

// board is the dashboard state behind the window: the loaded tables, the chart
// settings and the animated series. It never touches ebiten.
type board struct {
	datasets []*dataset.Dataset
	current  int
	chart    chart.Config
	animator *chart.Animator
	errMsg   string
	status   string
	dirty    bool // Chart image needs re-rendering
}

func newBoard(datasets []*dataset.Dataset, initial string, typ chart.Type, animate bool, fps int) *board {
	b := &board{
		datasets: datasets,
		animator: chart.NewAnimator(fps),
	}
	idx := 0
	for i, d := range datasets {
		if d.Name == initial {
			idx = i
			break
		}
	}
	b.chart.Type = typ
	b.chart.Animate = animate
	b.selectDataset(idx)
	return b
}

// data is the table on display
func (b *board) data() *dataset.Dataset {
	return b.datasets[b.current]
}

// selectDataset shows table i with a fresh default chart, keeping the chart style and animation choice
func (b *board) selectDataset(i int) bool {
	if i < 0 || i >= len(b.datasets) {
		return false
	}
	typ, animate := b.chart.Type, b.chart.Animate
	b.current = i
	b.chart = chart.DefaultConfig(b.data())
	if typ.Valid() {
		b.chart.Type = typ
	}
	b.chart.Animate = animate
	b.errMsg = ""
	b.refresh()
	return true
}

// refresh rebuilds the plotted series after any data or config change
func (b *board) refresh() {
	b.animator.SetTarget(chart.Build(b.data(), b.chart), b.chart.Animate)
	b.dirty = true
}

// step advances the animation one frame
func (b *board) step() {
	if b.animator.Step() {
		b.dirty = true
	}
}

// importCSV parses r and adds it as a new table, or replaces a loaded one of the same name
func (b *board) importCSV(name string, r io.Reader) error {
	d, err := dataset.ParseCSV(dataset.NameFromPath(name), r)
	if err != nil {
		log.Printf("import %s: %v", name, err)
		b.errMsg = msgBadCSV
		return err
	}
	log.Printf("imported %q: %d columns, %d rows", d.Name, len(d.Headers), len(d.Rows))
	var i int
	b.datasets, i = upsertDataset(b.datasets, d)
	b.selectDataset(i)
	return nil
}

// upsertDataset replaces the table named like d, or appends d, and returns d's index
func upsertDataset(sets []*dataset.Dataset, d *dataset.Dataset) ([]*dataset.Dataset, int) {
	for i, have := range sets {
		if have.Name == d.Name {
			sets[i] = d
			return sets, i
		}
	}
	return append(sets, d), len(sets)
}

// dropFile handles one file dropped on the window
func (b *board) dropFile(name string, r io.Reader) {
	if !dataset.IsCSV(name) {
		b.errMsg = msgNotCSV
		return
	}
	b.importCSV(name, r)
}

func (b *board) cycleType() {
	b.chart.Type = b.chart.Type.Next()
	b.dirty = true
}

func (b *board) nextX() {
	b.chart.NextX(b.data())
	b.refresh()
}

// toggleY flips column i in or out of the plotted series
func (b *board) toggleY(i int) {
	d := b.data()
	if i < 0 || i >= len(d.Headers) {
		return
	}
	b.chart.ToggleY(d.Headers[i])
	b.refresh()
}

func (b *board) toggleAnimate() {
	b.chart.Animate = !b.chart.Animate
	b.refresh()
}

func (b *board) addRow() {
	b.data().AddRow()
	b.refresh()
}

func (b *board) addColumn() {
	b.data().AddColumn()
	b.refresh()
}

func (b *board) deleteLastRow() {
	d := b.data()
	if len(d.Rows) == 0 {
		return
	}
	if err := d.DeleteRow(len(d.Rows) - 1); err != nil {
		log.Printf("delete row: %v", err)
		return
	}
	b.refresh()
}

// setCell edits one cell of the table on display
func (b *board) setCell(row, col int, value string) error {
	if err := b.data().SetCell(row, col, value); err != nil {
		return err
	}
	b.refresh()
	return nil
}

// setHeader renames column col, keeping the chart pointed at it
func (b *board) setHeader(col int, value string) error {
	d := b.data()
	var old string
	if col >= 0 && col < len(d.Headers) {
		old = d.Headers[col]
	}
	if err := d.SetHeader(col, value); err != nil {
		return err
	}
	if b.chart.XColumn == old {
		b.chart.XColumn = value
	}
	for i, y := range b.chart.YColumns {
		if y == old {
			b.chart.YColumns[i] = value
		}
	}
	b.refresh()
	return nil
}

// exportName turns a table name into a file name stem
func exportName(name string) string {
	stem := strings.ToLower(strings.TrimSpace(name))
	stem = strings.Join(strings.Fields(stem), "-")
	if stem == "" {
		stem = "dataset"
	}
	return stem
}

// export writes the table as CSV and the settled chart as PNG into dir
func (b *board) export(dir string, width, height int) (csvPath, pngPath string, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("create export dir: %w", err)
	}
	d := b.data()
	stem := exportName(d.Name)

	csvPath = filepath.Join(dir, stem+".csv")
	if err := d.SaveCSV(csvPath); err != nil {
		return "", "", err
	}

	pngPath = filepath.Join(dir, stem+".png")
	if err := exportChart(pngPath, chart.Build(d, b.chart), b.chart, width, height); err != nil {
		return csvPath, "", err
	}
	return csvPath, pngPath, nil
}

// exportChart renders data to a PNG file
func exportChart(path string, data chart.Data, cfg chart.Config, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := chart.Render(f, data, cfg, width, height); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
