package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ParseCSV reads a table whose first record is the header row.
// Records may have any length; blank records are dropped.
func ParseCSV(name string, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	var kept [][]string
	for _, rec := range records {
		if !blank(rec) {
			kept = append(kept, rec)
		}
	}
	if len(kept) < 2 {
		return nil, fmt.Errorf("parse %s: %w", name, ErrTooShort)
	}

	d := &Dataset{
		Name:    name,
		Headers: append([]string(nil), kept[0]...),
		Rows:    make([][]Cell, 0, len(kept)-1),
	}
	for _, rec := range kept[1:] {
		row := make([]Cell, len(rec))
		for i, field := range rec {
			row[i] = ParseCell(field)
		}
		d.Rows = append(d.Rows, row)
	}
	return d, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// NameFromPath turns "dir/sales.csv" into "sales"
func NameFromPath(path string) string {
	base := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(base), ".csv") {
		base = base[:len(base)-len(".csv")]
	}
	return base
}

// IsCSV reports whether a file name carries the .csv extension
func IsCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

// LoadCSV opens and parses a CSV file
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return ParseCSV(NameFromPath(path), f)
}

// WriteCSV encodes the header row followed by every data row
func (d *Dataset) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range d.Rows {
		rec := make([]string, len(row))
		for j, c := range row {
			rec[j] = c.String()
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the dataset to path
func (d *Dataset) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := d.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
