package main

import "log"

// headerRow is the editor row index of the column names
const headerRow = -1

// cellEditor is the table view's cursor and pending input. The cursor moves
// over the header row and the data rows; typed text replaces the cell on commit.
type cellEditor struct {
	row, col int
	editing  bool
	buf      []rune
}

// clamp keeps the cursor inside a table of the given shape
func (e *cellEditor) clamp(rows, cols int) {
	e.row = min(max(e.row, headerRow), rows-1)
	e.col = min(max(e.col, 0), max(cols-1, 0))
}

func (e *cellEditor) move(dRow, dCol, rows, cols int) {
	if e.editing {
		return
	}
	e.row += dRow
	e.col += dCol
	e.clamp(rows, cols)
}

// begin starts editing the selected cell with its current text
func (e *cellEditor) begin(b *board) {
	d := b.data()
	e.clamp(len(d.Rows), len(d.Headers))
	if len(d.Headers) == 0 {
		return
	}
	e.editing = true
	if e.row == headerRow {
		e.buf = []rune(d.Headers[e.col])
	} else {
		e.buf = []rune(d.Cell(e.row, e.col).String())
	}
}

func (e *cellEditor) typeRunes(rs []rune) {
	if e.editing {
		e.buf = append(e.buf, rs...)
	}
}

func (e *cellEditor) backspace() {
	if e.editing && len(e.buf) > 0 {
		e.buf = e.buf[:len(e.buf)-1]
	}
}

func (e *cellEditor) cancel() {
	e.editing = false
	e.buf = e.buf[:0]
}

// commit writes the pending text into the board and leaves edit mode
func (e *cellEditor) commit(b *board) error {
	if !e.editing {
		return nil
	}
	value := string(e.buf)
	e.cancel()
	var err error
	if e.row == headerRow {
		err = b.setHeader(e.col, value)
	} else {
		err = b.setCell(e.row, e.col, value)
	}
	if err != nil {
		log.Printf("edit cell %d,%d: %v", e.row, e.col, err)
		return err
	}
	return nil
}

// text is the pending input as shown in the table
func (e *cellEditor) text() string {
	return string(e.buf) + "_"
}
