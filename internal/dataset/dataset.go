// Package dataset models the small tables the dashboard charts: named columns,
// rows of mixed text and number cells, CSV import/export and editing.
package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrTooShort   = errors.New("dataset: need a header row and at least one data row")
	ErrOutOfRange = errors.New("dataset: index out of range")
)

// Dataset is a named table
type Dataset struct {
	Name    string
	Headers []string
	Rows    [][]Cell
}

// Column returns the index of the named header, -1 if absent
func (d *Dataset) Column(name string) int {
	for i, h := range d.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the cell at row, col; cells past the end of a short row read as empty text
func (d *Dataset) Cell(row, col int) Cell {
	if row < 0 || row >= len(d.Rows) || col < 0 || col >= len(d.Rows[row]) {
		return Cell{}
	}
	return d.Rows[row][col]
}

// SetCell stores user input at row, col with numeric coercion
func (d *Dataset) SetCell(row, col int, value string) error {
	if row < 0 || row >= len(d.Rows) {
		return fmt.Errorf("set cell row %d of %d: %w", row, len(d.Rows), ErrOutOfRange)
	}
	if col < 0 || col >= len(d.Headers) {
		return fmt.Errorf("set cell column %d of %d: %w", col, len(d.Headers), ErrOutOfRange)
	}
	for len(d.Rows[row]) <= col {
		d.Rows[row] = append(d.Rows[row], Cell{})
	}
	d.Rows[row][col] = ParseCell(value)
	return nil
}

// SetHeader renames a column
func (d *Dataset) SetHeader(col int, value string) error {
	if col < 0 || col >= len(d.Headers) {
		return fmt.Errorf("set header %d of %d: %w", col, len(d.Headers), ErrOutOfRange)
	}
	d.Headers[col] = value
	return nil
}

// AddRow appends a row of zeros
func (d *Dataset) AddRow() {
	row := make([]Cell, len(d.Headers))
	for i := range row {
		row[i] = Number(0)
	}
	d.Rows = append(d.Rows, row)
}

// AddColumn appends a "Col N" column and fills every row with zero
func (d *Dataset) AddColumn() string {
	name := fmt.Sprintf("Col %d", len(d.Headers)+1)
	d.Headers = append(d.Headers, name)
	for i := range d.Rows {
		d.Rows[i] = append(d.Rows[i], Number(0))
	}
	return name
}

// DeleteRow removes one row
func (d *Dataset) DeleteRow(row int) error {
	if row < 0 || row >= len(d.Rows) {
		return fmt.Errorf("delete row %d of %d: %w", row, len(d.Rows), ErrOutOfRange)
	}
	d.Rows = append(d.Rows[:row], d.Rows[row+1:]...)
	return nil
}
