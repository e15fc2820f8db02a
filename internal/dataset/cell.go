package dataset

import (
	"regexp"
	"strconv"
	"strings"
)

// Cell is one table value: a number when the text reads as one, otherwise text
type Cell struct {
	Text  string
	Num   float64
	IsNum bool
}

// Number returns a numeric cell
func Number(v float64) Cell {
	return Cell{Num: v, IsNum: true}
}

// Text returns a text cell
func Text(s string) Cell {
	return Cell{Text: s}
}

// leadingNumber matches the longest numeric prefix, the way browsers' parseFloat does
var leadingNumber = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// ParseNumber reads a leading number from s, ignoring leading white space and any trailing text.
// "12px" is 12, "1,200" is 1, "abc" is not a number.
func ParseNumber(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimLeft(s, " \t\r\n"))
	if m == "" {
		return 0, false
	}
	// The match is always valid syntax; a range error still yields ±Inf
	v, _ := strconv.ParseFloat(m, 64)
	return v, true
}

// ParseCell coerces user input: numeric text becomes a number, anything else stays text
func ParseCell(s string) Cell {
	if v, ok := ParseNumber(s); ok {
		return Number(v)
	}
	return Text(s)
}

// String renders the cell for display and CSV export
func (c Cell) String() string {
	if c.IsNum {
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	}
	return c.Text
}

// Float returns the numeric value: the number itself, a leading number of the text, or 0
func (c Cell) Float() float64 {
	if c.IsNum {
		return c.Num
	}
	if v, ok := ParseNumber(c.Text); ok {
		return v
	}
	return 0
}
